// Copyright (C) 2025 ZedCloud Org.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"gopkg.in/yaml.v3"
)

var ErrMissingCredentials = errors.New("missing credentials")

type (
	SEO struct {
		Username          string   `yaml:"username"`
		Password          string   `yaml:"password"`
		BaseURL           string   `yaml:"base-url"`
		Target            string   `yaml:"target"`
		Location          string   `yaml:"location"`
		Language          string   `yaml:"language"`
		SERPKeywords      []string `yaml:"serp-keywords"`
		SuggestionSeed    string   `yaml:"suggestion-seed"`
		RequestsPerSecond float64  `yaml:"requests-per-second"`
	}
	Ads struct {
		ClientID     string `yaml:"client-id"`
		ClientSecret string `yaml:"client-secret"`
		RedirectURL  string `yaml:"redirect-url"`
	}
	Share struct {
		AccountFile           string `yaml:"account-file"`
		Subject               string `yaml:"subject"`
		Email                 string `yaml:"email"`
		Role                  string `yaml:"role"`
		SendNotificationEmail bool   `yaml:"send-notification-email"`
		EmailMessage          string `yaml:"email-message"`
	}
	S3 struct {
		Endpoint     string `yaml:"endpoint"`
		ClientId     string `yaml:"client-id"`
		ClientSecret string `yaml:"client-secret"`
		Bucket       string `yaml:"bucket"`
		Prefix       string `yaml:"prefix"`
		UseSSL       bool   `yaml:"use-ssl"`
	}
	Config struct {
		SEO   SEO   `yaml:"seo"`
		Ads   Ads   `yaml:"ads"`
		Share Share `yaml:"share"`
		S3    S3    `yaml:"s3"`
	}
)

// Values used when neither the configuration file nor the environment set them.
// Secrets are never defaulted.
func Default() (cfg *Config) {
	return &Config{
		SEO: SEO{
			BaseURL:  "https://api.dataforseo.com",
			Target:   "turnedyellow.com",
			Location: "United States",
			Language: "English",
			SERPKeywords: []string{
				"turn me yellow",
				"custom simpsons portrait",
				"simpsons style drawing",
				"custom cartoon portrait",
			},
			SuggestionSeed:    "custom simpsons portrait",
			RequestsPerSecond: 5,
		},
		Ads: Ads{
			RedirectURL: "http://localhost",
		},
		Share: Share{
			Role:                  "writer",
			SendNotificationEmail: true,
			EmailMessage:          "You now have access to this Google Sheet for collaboration.",
		},
	}
}

// Load the .env files into the process environment. Missing files are ignored and
// variables already present in the environment are kept.
func LoadDotEnv(files ...string) (err error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		err = godotenv.Load(file)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load env file: %s: %w", file, err)
		}
	}
	return nil
}

// Load the configuration. Precedence from lowest to highest: defaults, the YAML file
// (when file is not empty), .env and the process environment.
func Load(file string) (cfg *Config, err error) {
	cfg = Default()
	if file != "" {
		contents, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read file: %w", err)
		}

		err = yaml.Unmarshal(contents, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to unmarshal contents: %w", err)
		}
	}

	err = LoadDotEnv()
	if err != nil {
		return nil, err
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.SEO.Username = getEnv("DATAFORSEO_USERNAME", c.SEO.Username)
	c.SEO.Password = getEnv("DATAFORSEO_PASSWORD", c.SEO.Password)
	c.SEO.BaseURL = getEnv("DATAFORSEO_BASE_URL", c.SEO.BaseURL)
	c.SEO.Target = getEnv("SEO_TARGET", c.SEO.Target)
	c.SEO.RequestsPerSecond = getEnvFloat("DATAFORSEO_RPS", c.SEO.RequestsPerSecond)

	c.Ads.ClientID = getEnv("GOOGLE_ADS_CLIENT_ID", c.Ads.ClientID)
	c.Ads.ClientSecret = getEnv("GOOGLE_ADS_CLIENT_SECRET", c.Ads.ClientSecret)
	c.Ads.RedirectURL = getEnv("GOOGLE_ADS_REDIRECT_URL", c.Ads.RedirectURL)

	c.Share.AccountFile = getEnv("GOOGLE_APPLICATION_CREDENTIALS", c.Share.AccountFile)
	c.Share.Subject = getEnv("GOOGLE_SUBJECT", c.Share.Subject)
	c.Share.Email = getEnv("SHARE_EMAIL", c.Share.Email)
	c.Share.Role = getEnv("SHARE_ROLE", c.Share.Role)
	c.Share.SendNotificationEmail = getEnvBool("SHARE_SEND_NOTIFICATION", c.Share.SendNotificationEmail)

	c.S3.Endpoint = getEnv("ARCHIVE_S3_ENDPOINT", c.S3.Endpoint)
	c.S3.ClientId = getEnv("ARCHIVE_S3_ACCESS_KEY", c.S3.ClientId)
	c.S3.ClientSecret = getEnv("ARCHIVE_S3_SECRET_KEY", c.S3.ClientSecret)
	c.S3.Bucket = getEnv("ARCHIVE_S3_BUCKET", c.S3.Bucket)
	c.S3.Prefix = getEnv("ARCHIVE_S3_PREFIX", c.S3.Prefix)
	c.S3.UseSSL = getEnvBool("ARCHIVE_S3_USE_SSL", c.S3.UseSSL)
}

// Validate reports which DataForSEO variables are missing.
func (s *SEO) Validate() (err error) {
	var missing []string
	if s.Username == "" {
		missing = append(missing, "DATAFORSEO_USERNAME")
	}
	if s.Password == "" {
		missing = append(missing, "DATAFORSEO_PASSWORD")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: set %s", ErrMissingCredentials, strings.Join(missing, ", "))
	}
	return nil
}

func (s *S3) Enabled() (enabled bool) {
	return s.Endpoint != "" && s.Bucket != ""
}

func (s *S3) Client() (client *minio.Client, err error) {
	client, err = minio.New(
		s.Endpoint,
		&minio.Options{
			Creds:  credentials.NewStaticV4(s.ClientId, s.ClientSecret, ""),
			Secure: s.UseSSL,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare client: %w", err)
	}
	return client, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}
