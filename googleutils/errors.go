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

package googleutils

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
)

func statusCode(err error) (code int) {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) && retrieveErr.Response != nil {
		return retrieveErr.Response.StatusCode
	}
	return 0
}

func IsNotFound(err error) (ok bool) {
	return statusCode(err) == http.StatusNotFound
}

func IsForbidden(err error) (ok bool) {
	return statusCode(err) == http.StatusForbidden
}

func IsUnauthorized(err error) (ok bool) {
	return statusCode(err) == http.StatusUnauthorized
}

func IsRateLimited(err error) (ok bool) {
	return statusCode(err) == http.StatusTooManyRequests
}

// IsInvalidGrant reports token endpoint rejections of the service account assertion.
func IsInvalidGrant(err error) (ok bool) {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) && retrieveErr.ErrorCode == "invalid_grant" {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "invalid_grant")
}

// Hint returns the remediation line for per-file API failures, empty when none applies.
func Hint(err error) (hint string) {
	switch {
	case IsNotFound(err):
		return "The file was not found or service account lacks access."
	case IsForbidden(err):
		return "Permission denied. Check service account credentials."
	default:
		return ""
	}
}

// PrintFatalHint explains errors that stop a whole run.
func PrintFatalHint(w io.Writer, err error) {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		fmt.Fprintln(w, "\nThis usually means the service account file was not found.")
		fmt.Fprintln(w, "Please check the file path and ensure it exists.")
	case IsInvalidGrant(err):
		fmt.Fprintln(w, "\nThis usually means the service account credentials are invalid or expired.")
		fmt.Fprintln(w, "Please verify your service account JSON file is correct.")
	}
}
