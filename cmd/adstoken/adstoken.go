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
	"fmt"
	"time"

	"github.com/lac5q/creative-ads-repository/adsauth"
	"github.com/lac5q/creative-ads-repository/config"
	"github.com/lac5q/creative-ads-repository/logging"
	"github.com/urfave/cli/v3"
)

const (
	ConfigFlag          = "config"
	ClientIDFlag        = "client-id"
	ClientSecretFlag    = "client-secret"
	LoopbackFlag        = "loopback"
	PortFlag            = "port"
	TimeoutFlag         = "timeout"
	OpenFlag            = "open"
	OutFlag             = "out"
	ShowAccessTokenFlag = "show-access-token"
)

var AdsToken = cli.Command{
	Name:  "adstoken",
	Usage: "Generate a Google Ads API refresh token",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     ConfigFlag,
			Usage:    "Optional YAML configuration file",
			OnlyOnce: true,
		},
		&cli.StringFlag{
			Name:     ClientIDFlag,
			Usage:    "OAuth client ID, defaults to GOOGLE_ADS_CLIENT_ID",
			OnlyOnce: true,
		},
		&cli.StringFlag{
			Name:     ClientSecretFlag,
			Usage:    "OAuth client secret, defaults to GOOGLE_ADS_CLIENT_SECRET",
			OnlyOnce: true,
		},
		&cli.BoolFlag{
			Name:  LoopbackFlag,
			Usage: "Receive the authorization code on a local callback server instead of pasting it",
		},
		&cli.IntFlag{
			Name:  PortFlag,
			Usage: "Callback server port, 0 picks a free one",
		},
		&cli.DurationFlag{
			Name:  TimeoutFlag,
			Usage: "How long to wait for the authorization redirect",
			Value: 5 * time.Minute,
		},
		&cli.BoolFlag{
			Name:  OpenFlag,
			Usage: "Open the authorization URL in the default browser",
		},
		&cli.StringFlag{
			Name:     OutFlag,
			Usage:    "Also write the credentials to this dotenv file",
			OnlyOnce: true,
		},
		&cli.BoolFlag{
			Name:  ShowAccessTokenFlag,
			Usage: "Include the short lived access token in the output",
		},
		logging.Verbose,
	},
	Action: func(ctx context.Context, c *cli.Command) (err error) {
		logger := logging.Setup(c.Bool(logging.VerboseFlag))
		out := c.Root().Writer

		cfg, err := config.Load(c.String(ConfigFlag))
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if c.IsSet(ClientIDFlag) {
			cfg.Ads.ClientID = c.String(ClientIDFlag)
		}
		if c.IsSet(ClientSecretFlag) {
			cfg.Ads.ClientSecret = c.String(ClientSecretFlag)
		}

		fmt.Fprintln(out, "Google Ads API Token Generator")
		fmt.Fprintln(out, "==============================")

		flow, err := adsauth.NewFlow(cfg.Ads.ClientID, cfg.Ads.ClientSecret, cfg.Ads.RedirectURL, out)
		if err != nil {
			return err
		}

		var creds *adsauth.Credentials
		if c.Bool(LoopbackFlag) {
			creds, err = flow.RunLoopback(ctx, int(c.Int(PortFlag)), c.Duration(TimeoutFlag), c.Bool(OpenFlag))
		} else {
			creds, err = flow.RunManual(ctx, c.Root().Reader)
		}
		if err != nil {
			return err
		}

		includeAccess := c.Bool(ShowAccessTokenFlag)
		creds.Print(out, includeAccess)

		if file := c.String(OutFlag); file != "" {
			err = creds.Save(file, includeAccess)
			if err != nil {
				return err
			}
			logger.Info("Saved credentials", "file", file)
		}
		return nil
	},
}
