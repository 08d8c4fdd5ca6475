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

package ioutils

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// RetryTransport retries requests answered with 429 Too Many Requests.
// Any other response, successful or not, is returned to the caller as is.
type RetryTransport struct {
	once        sync.Once
	Parent      http.RoundTripper
	MaxAttempts int
	MinSleep    time.Duration
}

func NewRetryTransport(parent http.RoundTripper, maxAttempts int, minSleep time.Duration) (rt *RetryTransport) {
	return &RetryTransport{
		Parent:      parent,
		MaxAttempts: maxAttempts,
		MinSleep:    minSleep,
	}
}

// Delay before the next attempt. Retry-After wins when the server sends it in seconds.
func (r *RetryTransport) delay(attempt int, res *http.Response) (d time.Duration) {
	if seconds, err := strconv.Atoi(res.Header.Get("Retry-After")); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}
	return (1 + time.Duration(attempt)) * r.MinSleep
}

func (r *RetryTransport) RoundTrip(req *http.Request) (res *http.Response, err error) {
	r.once.Do(func() {
		if r.Parent == nil {
			r.Parent = http.DefaultTransport
		}
	})

	for attempt := range r.MaxAttempts {
		if attempt > 0 && req.GetBody != nil {
			body, err := req.GetBody()
			if err != nil {
				return nil, fmt.Errorf("failed to rewind request body: %w", err)
			}
			req = req.Clone(req.Context())
			req.Body = body
		}

		res, err = r.Parent.RoundTrip(req)
		if err != nil {
			return nil, fmt.Errorf("failed to execute request: %w", err)
		}

		if res.StatusCode != http.StatusTooManyRequests || attempt+1 == r.MaxAttempts {
			return res, nil
		}

		wait := r.delay(attempt, res)
		io.Copy(io.Discard, res.Body)
		res.Body.Close()

		select {
		case <-req.Context().Done():
			return nil, req.Context().Err()
		case <-time.After(wait):
		}
	}
	return nil, errors.New("max attempts exceeded")
}

var _ http.RoundTripper = (*RetryTransport)(nil)
