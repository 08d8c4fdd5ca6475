package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Load(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		assertions := assert.New(t)
		t.Setenv("DATAFORSEO_USERNAME", "")
		t.Setenv("DATAFORSEO_PASSWORD", "")

		cfg, err := Load("")
		if !assertions.Nil(err, "failed to load configuration") {
			return
		}

		assertions.Equal("https://api.dataforseo.com", cfg.SEO.BaseURL)
		assertions.Equal("writer", cfg.Share.Role)
		assertions.Empty(cfg.SEO.Username, "credentials must not have defaults")
		assertions.Empty(cfg.Ads.ClientSecret, "credentials must not have defaults")
		assertions.Len(cfg.SEO.SERPKeywords, 4)
	})
	t.Run("File and environment", func(t *testing.T) {
		assertions := assert.New(t)

		file := filepath.Join(t.TempDir(), "config.yaml")
		err := os.WriteFile(file, []byte(`
seo:
  target: example.com
  username: from-file
  serp-keywords: ["one"]
share:
  email: file@example.com
  role: reader
`), 0o600)
		if !assertions.Nil(err, "failed to write config") {
			return
		}

		t.Setenv("DATAFORSEO_USERNAME", "from-env")
		t.Setenv("SHARE_ROLE", "")
		t.Setenv("ARCHIVE_S3_USE_SSL", "true")

		cfg, err := Load(file)
		if !assertions.Nil(err, "failed to load configuration") {
			return
		}

		assertions.Equal("example.com", cfg.SEO.Target)
		assertions.Equal("from-env", cfg.SEO.Username, "environment wins over file")
		assertions.Equal([]string{"one"}, cfg.SEO.SERPKeywords)
		assertions.Equal("file@example.com", cfg.Share.Email)
		assertions.Equal("reader", cfg.Share.Role)
		assertions.True(cfg.S3.UseSSL)
		assertions.Equal("English", cfg.SEO.Language, "defaults survive partial files")
	})
	t.Run("Missing file", func(t *testing.T) {
		assertions := assert.New(t)

		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		assertions.NotNil(err)
	})
}

func Test_SEO_Validate(t *testing.T) {
	assertions := assert.New(t)

	err := (&SEO{Username: "user"}).Validate()
	assertions.ErrorIs(err, ErrMissingCredentials)
	assertions.Contains(err.Error(), "DATAFORSEO_PASSWORD")
	assertions.NotContains(err.Error(), "DATAFORSEO_USERNAME")

	assertions.Nil((&SEO{Username: "user", Password: "pass"}).Validate())
}

func Test_LoadDotEnv(t *testing.T) {
	assertions := assert.New(t)

	file := filepath.Join(t.TempDir(), ".env")
	err := os.WriteFile(file, []byte("CONFIG_TEST_DOTENV=loaded\n"), 0o600)
	if !assertions.Nil(err, "failed to write env file") {
		return
	}
	t.Setenv("CONFIG_TEST_DOTENV", "")
	os.Unsetenv("CONFIG_TEST_DOTENV")

	err = LoadDotEnv(file, filepath.Join(t.TempDir(), "missing.env"))
	if !assertions.Nil(err, "missing files must be ignored") {
		return
	}
	assertions.Equal("loaded", os.Getenv("CONFIG_TEST_DOTENV"))
}

func Test_getEnvFloat(t *testing.T) {
	assertions := assert.New(t)

	t.Setenv("TEST_FLOAT_VAR", "2.5")
	assertions.Equal(2.5, getEnvFloat("TEST_FLOAT_VAR", 1))

	t.Setenv("TEST_FLOAT_VAR", "invalid")
	assertions.Equal(1.0, getEnvFloat("TEST_FLOAT_VAR", 1))
}
