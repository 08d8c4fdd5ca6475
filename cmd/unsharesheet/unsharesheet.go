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
	"log/slog"
	"sync/atomic"

	"github.com/lac5q/creative-ads-repository/config"
	"github.com/lac5q/creative-ads-repository/googleutils"
	"github.com/lac5q/creative-ads-repository/googleutils/creds"
	"github.com/lac5q/creative-ads-repository/googleutils/driveutils"
	"github.com/lac5q/creative-ads-repository/logging"
	"github.com/lac5q/creative-ads-repository/syncutils"
	"github.com/urfave/cli/v3"
	"google.golang.org/api/drive/v3"
)

const (
	ConfigFlag      = "config"
	CredentialsFlag = "creds"
	SubjectFlag     = "subject"
	EmailFlag       = "email"
	EveryoneFlag    = "everyone"
	WorkersFlag     = "workers"
)

// UnshareFiles revokes access on every file using a bounded worker pool. With an empty
// email every non owner permission is removed.
func UnshareFiles(ctx context.Context, svc *drive.Service, files []*drive.File, email string, workers int, logger *slog.Logger) (removed int64, err error) {
	pool := syncutils.NewWorkers(workers)

	var total atomic.Int64
	for _, file := range files {
		logger := logger.With("file-id", file.Id, "filename", file.Name)

		pool.Go(func() (err error) {
			var count int
			if email == "" {
				count, err = driveutils.UnshareAll(ctx, svc, file.Id)
			} else {
				count, err = driveutils.UnshareEmail(ctx, svc, file.Id, email)
			}
			if err != nil {
				logger.Error("failed to unshare file", "error-msg", err)
				return fmt.Errorf("failed to unshare file: %s: %w", file.Name, err)
			}
			if count > 0 {
				logger.Info("Removed permissions", "count", count)
			} else {
				logger.Debug("Nothing to remove")
			}
			total.Add(int64(count))
			return nil
		})
	}

	err = pool.Wait()
	return total.Load(), err
}

var UnshareSheet = cli.Command{
	Name:  "unsharesheet",
	Usage: "Revoke access to Google Sheets owned by a service account",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     EmailFlag,
			Usage:    "Email address whose access is revoked, defaults to SHARE_EMAIL",
			OnlyOnce: true,
		},
		&cli.BoolFlag{
			Name:  EveryoneFlag,
			Usage: "Remove every non owner permission instead of a single address",
		},
		&cli.IntFlag{
			Name:  WorkersFlag,
			Usage: "Number of files processed concurrently",
			Value: 10,
		},
		&cli.StringFlag{
			Name:     CredentialsFlag,
			Usage:    "Service account JSON credentials file",
			OnlyOnce: true,
		},
		&cli.StringFlag{
			Name:     SubjectFlag,
			Usage:    "User to impersonate with domain wide delegation",
			OnlyOnce: true,
		},
		&cli.StringFlag{
			Name:     ConfigFlag,
			Usage:    "Optional YAML configuration file",
			OnlyOnce: true,
		},
		logging.Verbose,
	},
	Action: func(ctx context.Context, c *cli.Command) (err error) {
		logger := logging.Setup(c.Bool(logging.VerboseFlag))

		cfg, err := config.Load(c.String(ConfigFlag))
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		email := cfg.Share.Email
		if c.IsSet(EmailFlag) {
			email = c.String(EmailFlag)
		}
		if c.Bool(EveryoneFlag) {
			email = ""
		} else if email == "" {
			return fmt.Errorf("%w: pass --email, --everyone or set SHARE_EMAIL", driveutils.ErrEmptyEmail)
		}

		explicit := cfg.Share.AccountFile
		if file := c.String(CredentialsFlag); file != "" {
			explicit = file
		}
		subject := cfg.Share.Subject
		if s := c.String(SubjectFlag); s != "" {
			subject = s
		}

		dirs, err := creds.SearchDirs()
		if err != nil {
			return err
		}
		accountFile, err := creds.Resolve(explicit, dirs...)
		if errors.Is(err, creds.ErrNotFound) {
			creds.PrintCandidates(c.Root().Writer)
			return nil
		}
		if err != nil {
			return err
		}

		conf, err := creds.ConfigFromFile(accountFile, subject, googleutils.Scopes...)
		if err != nil {
			googleutils.PrintFatalHint(c.Root().Writer, err)
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		svcs, err := googleutils.NewServicesFromConfig(ctx, conf)
		if err != nil {
			return err
		}

		files, err := driveutils.ListSpreadsheets(ctx, svcs.Drive)
		if err != nil {
			googleutils.PrintFatalHint(c.Root().Writer, err)
			return err
		}
		logger.Info("Found spreadsheets", "count", len(files))

		removed, err := UnshareFiles(ctx, svcs.Drive, files, email, int(c.Int(WorkersFlag)), logger)
		logger.Info("Finished", "removed", removed)
		if err != nil {
			return fmt.Errorf("failed to unshare files: %w", err)
		}
		return nil
	},
}
