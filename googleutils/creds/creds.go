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

package creds

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
)

var ErrNotFound = errors.New("service account file not found")

// Locations probed, relative to each search directory.
var CandidateFiles = []string{
	"service-account.json",
	"credentials.json",
	filepath.Join("google-ads-mcp", "service-account.json"),
	filepath.Join("google-ads-mcp", "credentials.json"),
}

// SearchDirs returns the working directory and its parent.
func SearchDirs() (dirs []string, err error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return []string{wd, filepath.Dir(wd)}, nil
}

// Find returns the first candidate file that exists, searching dirs in order.
func Find(dirs ...string) (file string, err error) {
	for _, dir := range dirs {
		for _, candidate := range CandidateFiles {
			file = filepath.Join(dir, candidate)
			info, err := os.Stat(file)
			if err == nil && !info.IsDir() {
				return file, nil
			}
		}
	}
	return "", ErrNotFound
}

// Resolve prefers an explicit file (flag or GOOGLE_APPLICATION_CREDENTIALS) over discovery.
func Resolve(explicit string, dirs ...string) (file string, err error) {
	if explicit != "" {
		return explicit, nil
	}
	return Find(dirs...)
}

func PrintCandidates(w io.Writer) {
	fmt.Fprintln(w, "Service account JSON file not found.")
	fmt.Fprintln(w, "Please place your service account JSON file in one of these locations:")
	for _, candidate := range CandidateFiles {
		fmt.Fprintf(w, "  - %s\n", candidate)
	}
	fmt.Fprintln(w, "  - Or pass --creds / set GOOGLE_APPLICATION_CREDENTIALS")
}

// ConfigFromFile loads a service account key. A non empty subject impersonates that user.
func ConfigFromFile(file, subject string, scopes ...string) (conf *jwt.Config, err error) {
	contents, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %s: %w", file, err)
	}

	conf, err = google.JWTConfigFromJSON(contents, scopes...)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration from file: %w", err)
	}
	conf.Subject = subject
	return conf, nil
}
