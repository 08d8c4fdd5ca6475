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

package seo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/lac5q/creative-ads-repository/ioutils"
	"golang.org/x/time/rate"
)

const DefaultBaseURL = "https://api.dataforseo.com"

var ErrInvalidJSON = errors.New("failed to parse JSON")

// Archiver receives every raw response body the client reads.
type Archiver interface {
	Archive(ctx context.Context, endpoint string, body []byte)
}

type Client struct {
	BaseURL    string
	Username   string
	Password   string
	Location   string
	Language   string
	HTTPClient *http.Client
	Limiter    *rate.Limiter
	Archiver   Archiver
}

type Option func(c *Client)

func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.BaseURL = strings.TrimSuffix(baseURL, "/") }
}

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) { c.HTTPClient = client }
}

// Throttle outgoing requests. A non positive rate disables throttling.
func WithRateLimit(requestsPerSecond float64, burst int) Option {
	return func(c *Client) {
		if requestsPerSecond <= 0 {
			c.Limiter = nil
			return
		}
		c.Limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), max(burst, 1))
	}
}

func WithLocale(location, language string) Option {
	return func(c *Client) {
		c.Location = location
		c.Language = language
	}
}

func WithArchiver(archiver Archiver) Option {
	return func(c *Client) { c.Archiver = archiver }
}

func New(username, password string, opts ...Option) (c *Client) {
	c = &Client{
		BaseURL:  DefaultBaseURL,
		Username: username,
		Password: password,
		Location: "United States",
		Language: "English",
		HTTPClient: &http.Client{
			Transport: ioutils.NewRetryTransport(http.DefaultTransport, 5, time.Second),
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do issues a single request against endpoint and decodes the JSON body into out.
// A nil payload sends a GET, anything else is marshalled and POSTed.
func (c *Client) Do(ctx context.Context, endpoint string, payload any, out any) (err error) {
	var method = http.MethodGet
	var body io.Reader
	if payload != nil {
		contents, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal payload: %w", err)
		}
		method = http.MethodPost
		body = bytes.NewReader(contents)
	}

	if c.Limiter != nil {
		err = c.Limiter.Wait(ctx)
		if err != nil {
			return fmt.Errorf("failed to wait for rate limiter: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+endpoint, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(c.Username, c.Password)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer res.Body.Close()

	contents, err := ioutils.ReadAll(ctx, res.Body)
	if err != nil {
		return fmt.Errorf("failed to read body: %w", err)
	}

	if c.Archiver != nil {
		c.Archiver.Archive(ctx, endpoint, contents)
	}

	err = json.Unmarshal(contents, out)
	if err != nil {
		return fmt.Errorf("%w: received %s (HTTP %d): %v", ErrInvalidJSON, mimetype.Detect(contents), res.StatusCode, err)
	}
	return nil
}
