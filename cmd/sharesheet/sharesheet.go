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

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/lac5q/creative-ads-repository/config"
	"github.com/lac5q/creative-ads-repository/googleutils"
	"github.com/lac5q/creative-ads-repository/googleutils/creds"
	"github.com/lac5q/creative-ads-repository/googleutils/driveutils"
	"github.com/lac5q/creative-ads-repository/googleutils/sheetsutils"
	"github.com/lac5q/creative-ads-repository/logging"
	"github.com/urfave/cli/v3"
	"google.golang.org/api/drive/v3"
)

var ErrNoSpreadsheets = errors.New("no spreadsheets found")

type Result struct {
	Listed  int
	Shared  int
	Failed  int
	Results map[string]*driveutils.ShareResult
}

func printSheet(ctx context.Context, w io.Writer, svcs *googleutils.Services, index int, file *drive.File, logger *slog.Logger) {
	fmt.Fprintf(w, "%d. %s\n", index+1, file.Name)
	fmt.Fprintf(w, "   ID: %s\n", file.Id)
	fmt.Fprintf(w, "   Created: %s\n", driveutils.Date(file.CreatedTime))
	fmt.Fprintf(w, "   Modified: %s\n", driveutils.Date(file.ModifiedTime))
	fmt.Fprintf(w, "   Link: %s\n", file.WebViewLink)
	if svcs.Sheets != nil {
		titles, err := sheetsutils.TabTitles(ctx, svcs.Sheets, file.Id)
		if err != nil {
			logger.Debug("failed to get tab titles", "file-id", file.Id, "error-msg", err)
		} else if len(titles) > 0 {
			fmt.Fprintf(w, "   Tabs: %d (%s)\n", len(titles), joinTitles(titles, 5))
		}
	}
	fmt.Fprintln(w)
}

func joinTitles(titles []string, limit int) (s string) {
	for index, title := range titles {
		if index == limit {
			return s + ", ..."
		}
		if index > 0 {
			s += ", "
		}
		s += title
	}
	return s
}

func shareSheet(ctx context.Context, w io.Writer, svc *drive.Service, file *drive.File, s *Settings) (result *driveutils.ShareResult, err error) {
	fmt.Fprintf(w, "Sharing %q with %s...\n", file.Name, s.Email)

	result, err = driveutils.Share(ctx, svc, file.Id, s.Email, driveutils.ShareOptions{
		Role:                  s.Role,
		SendNotificationEmail: s.SendNotificationEmail,
		EmailMessage:          s.message(file.Name),
	})
	if err != nil {
		return nil, err
	}

	switch result.Outcome {
	case driveutils.Updated:
		fmt.Fprintf(w, "   User already has %s access\n", result.PreviousRole)
		fmt.Fprintf(w, "   Updated access from %s to %s\n", result.PreviousRole, s.Role)
	case driveutils.Unchanged:
		fmt.Fprintf(w, "   User already has %s access\n", result.PreviousRole)
	case driveutils.Created:
		fmt.Fprintf(w, "   Successfully shared with %s access\n", s.Role)
	}

	link, err := driveutils.WebViewLink(ctx, svc, file.Id)
	if err != nil {
		link = file.WebViewLink
	}
	fmt.Fprintf(w, "   Sheet: %q\n", file.Name)
	fmt.Fprintf(w, "   Link: %s\n", link)
	fmt.Fprintf(w, "   Shared with: %s (%s access)\n", s.Email, s.Role)
	fmt.Fprintln(w)
	return result, nil
}

// Share lists the spreadsheets visible to the service account and shares the most recent
// one, or all of them. Per sheet failures are reported and the loop continues.
func Share(ctx context.Context, w io.Writer, svcs *googleutils.Services, s *Settings, logger *slog.Logger) (res *Result, err error) {
	if s.Email == "" {
		return nil, fmt.Errorf("%w: pass --email or set SHARE_EMAIL", driveutils.ErrEmptyEmail)
	}

	fmt.Fprintln(w, "Searching for Google Sheets...")
	files, err := driveutils.ListSpreadsheets(ctx, svcs.Drive)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		fmt.Fprintln(w, "No Google Sheets found in this service account.")
		fmt.Fprintln(w, "Make sure the service account has created or has access to Google Sheets.")
		return nil, ErrNoSpreadsheets
	}

	fmt.Fprintf(w, "\nFound %d Google Sheet(s):\n\n", len(files))
	for index, file := range files {
		printSheet(ctx, w, svcs, index, file, logger)
	}

	targets := files[:1]
	if s.All {
		targets = files
	}

	res = &Result{Listed: len(files), Results: map[string]*driveutils.ShareResult{}}
	for _, file := range targets {
		logger := logger.With("file-id", file.Id, "email", s.Email)

		result, err := shareSheet(ctx, w, svcs.Drive, file, s)
		if err != nil {
			res.Failed++
			logger.Debug("failed to share", "error-msg", err)
			fmt.Fprintf(w, "   Error sharing %q: %v\n", file.Name, err)
			if hint := googleutils.Hint(err); hint != "" {
				fmt.Fprintf(w, "   %s\n", hint)
			}
			fmt.Fprintln(w)
			continue
		}
		res.Shared++
		res.Results[file.Id] = result
		logger.Debug("Shared", "outcome", result.Outcome.String())
	}

	fmt.Fprintln(w, "Sharing process completed!")
	if s.SendNotificationEmail && res.Shared > 0 {
		fmt.Fprintf(w, "\n%s should receive email notification(s) about the shared sheet(s).\n", s.Email)
	}
	return res, nil
}

var ShareSheet = cli.Command{
	Name:  "sharesheet",
	Usage: "Share Google Sheets owned by a service account",
	UsageText: `sharesheet [options]

Examples:
   sharesheet --email john@example.com
   sharesheet --email john@example.com --role reader
   sharesheet --all --role writer`,
	Flags: flags(),
	Action: func(ctx context.Context, c *cli.Command) (err error) {
		logger := logging.Setup(c.Bool(logging.VerboseFlag))
		out := c.Root().Writer

		cfg, err := config.Load(c.String(ConfigFlag))
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		settings := ResolveSettings(c, cfg.Share, out)
		if anySet(c, EmailFlag, RoleFlag, AllFlag) {
			settings.Print(out)
		}

		fmt.Fprintln(out, "Initializing Google Sheet sharing...")
		fmt.Fprintln(out)

		dirs, err := creds.SearchDirs()
		if err != nil {
			return err
		}
		accountFile, err := creds.Resolve(settings.AccountFile, dirs...)
		if errors.Is(err, creds.ErrNotFound) {
			creds.PrintCandidates(out)
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Using service account: %s\n\n", accountFile)

		fatal := func(err error) error {
			fmt.Fprintf(out, "Fatal error: %v\n", err)
			googleutils.PrintFatalHint(out, err)
			return err
		}

		conf, err := creds.ConfigFromFile(accountFile, settings.Subject, googleutils.Scopes...)
		if err != nil {
			return fatal(err)
		}

		svcs, err := googleutils.NewServicesFromConfig(ctx, conf)
		if err != nil {
			return fatal(err)
		}

		_, err = Share(ctx, out, svcs, &settings, logger)
		if errors.Is(err, ErrNoSpreadsheets) {
			return nil
		}
		if err != nil {
			return fatal(err)
		}
		return nil
	},
}
