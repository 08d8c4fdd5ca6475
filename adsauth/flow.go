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

package adsauth

import (
	"bufio"
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// Scope of the Google Ads API.
const Scope = "https://www.googleapis.com/auth/adwords"

const CredentialsConsoleURL = "https://console.cloud.google.com/apis/credentials"

var (
	ErrMissingClient = errors.New("missing OAuth client credentials")
	ErrEmptyCode     = errors.New("empty authorization code")
	ErrExchange      = errors.New("failed to exchange authorization code")
)

var placeholders = []string{"your_client_id", "your_client_secret", "<", "changeme"}

func isPlaceholder(s string) (placeholder bool) {
	if strings.TrimSpace(s) == "" {
		return true
	}
	lower := strings.ToLower(s)
	for _, p := range placeholders {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

type Flow struct {
	Config *oauth2.Config
	Out    io.Writer
}

func NewFlow(clientID, clientSecret, redirectURL string, out io.Writer) (f *Flow, err error) {
	if isPlaceholder(clientID) || isPlaceholder(clientSecret) {
		return nil, fmt.Errorf("%w: set GOOGLE_ADS_CLIENT_ID and GOOGLE_ADS_CLIENT_SECRET, get them from %s", ErrMissingClient, CredentialsConsoleURL)
	}
	return &Flow{
		Config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     google.Endpoint,
			Scopes:       []string{Scope},
		},
		Out: out,
	}, nil
}

// AuthURL asks for offline access and forces the consent screen so Google always
// returns a refresh token.
func (f *Flow) AuthURL(state string) (url string) {
	return f.Config.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

// ReadCode reads a single line holding the authorization code.
func ReadCode(r io.Reader) (code string, err error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read code: %w", err)
	}
	code = strings.TrimSpace(line)
	if code == "" {
		return "", ErrEmptyCode
	}
	return code, nil
}

func (f *Flow) Exchange(ctx context.Context, code string) (token *oauth2.Token, err error) {
	token, err = f.Config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExchange, err)
	}
	return token, nil
}

type Credentials struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
	AccessToken  string
}

func (f *Flow) credentials(token *oauth2.Token) (creds *Credentials) {
	return &Credentials{
		ClientID:     f.Config.ClientID,
		ClientSecret: f.Config.ClientSecret,
		RefreshToken: token.RefreshToken,
		AccessToken:  token.AccessToken,
	}
}

// Env returns the variables expected by the Google Ads tooling.
func (c *Credentials) Env(includeAccessToken bool) (env map[string]string) {
	env = map[string]string{
		"GOOGLE_ADS_CLIENT_ID":     c.ClientID,
		"GOOGLE_ADS_CLIENT_SECRET": c.ClientSecret,
		"GOOGLE_ADS_REFRESH_TOKEN": c.RefreshToken,
	}
	if includeAccessToken {
		env["GOOGLE_ADS_ACCESS_TOKEN"] = c.AccessToken
	}
	return env
}

func (c *Credentials) Print(w io.Writer, includeAccessToken bool) {
	env := c.Env(includeAccessToken)
	keys := make([]string, 0, len(env))
	for key := range env {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	fmt.Fprintln(w, strings.Repeat("=", 60))
	for _, key := range keys {
		fmt.Fprintf(w, "%s=%q\n", key, env[key])
	}
	fmt.Fprintln(w, strings.Repeat("=", 60))
	if c.RefreshToken == "" {
		fmt.Fprintln(w, "Warning: no refresh token returned. Revoke the app access and run again with consent.")
	}
}

// Save writes the credentials as a dotenv file.
func (c *Credentials) Save(file string, includeAccessToken bool) (err error) {
	err = godotenv.Write(c.Env(includeAccessToken), file)
	if err != nil {
		return fmt.Errorf("failed to write file: %s: %w", file, err)
	}
	return nil
}

func PrintRemediation(w io.Writer, err error) {
	fmt.Fprintf(w, "\nError getting tokens: %v\n", err)
	fmt.Fprintln(w, "\nTry running the command again and make sure to:")
	fmt.Fprintln(w, "   1. Use the authorization code immediately")
	fmt.Fprintln(w, "   2. Copy the entire code (it might be long)")
	fmt.Fprintln(w, "   3. Don't use the same code twice")
}

// RunManual prints the authorization URL, waits for the code to be pasted on in and
// exchanges it. Exchange failures are terminal.
func (f *Flow) RunManual(ctx context.Context, in io.Reader) (creds *Credentials, err error) {
	fmt.Fprintln(f.Out, "\nSTEP 1: Open this URL in your browser:")
	fmt.Fprintf(f.Out, "\n%s\n\n", f.AuthURL("state-token"))
	fmt.Fprintln(f.Out, "STEP 2: After authorization, copy the code parameter from the redirected URL and paste it here.")
	fmt.Fprint(f.Out, "Enter the authorization code: ")

	code, err := ReadCode(in)
	if err != nil {
		PrintRemediation(f.Out, err)
		return nil, err
	}

	return f.finish(ctx, code)
}

func (f *Flow) finish(ctx context.Context, code string) (creds *Credentials, err error) {
	fmt.Fprintln(f.Out, "\nGetting tokens...")
	token, err := f.Exchange(ctx, code)
	if err != nil {
		PrintRemediation(f.Out, err)
		return nil, err
	}

	creds = f.credentials(token)
	fmt.Fprintln(f.Out, "\nSUCCESS! Here are your Google Ads API credentials:")
	return creds, nil
}

// NewState returns a random value for the OAuth state parameter.
func NewState() (state string, err error) {
	buf := make([]byte, 32)
	_, err = rand.Read(buf)
	if err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
