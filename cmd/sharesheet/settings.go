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
	"fmt"
	"io"
	"strings"

	"github.com/lac5q/creative-ads-repository/config"
	"github.com/lac5q/creative-ads-repository/googleutils/driveutils"
	"github.com/lac5q/creative-ads-repository/logging"
	"github.com/urfave/cli/v3"
)

const (
	ConfigFlag      = "config"
	CredentialsFlag = "creds"
	SubjectFlag     = "subject"
	EmailFlag       = "email"
	RoleFlag        = "role"
	AllFlag         = "all"
)

func flags() (list []cli.Flag) {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     EmailFlag,
			Usage:    "Email address to share with, defaults to SHARE_EMAIL",
			OnlyOnce: true,
		},
		&cli.StringFlag{
			Name:     RoleFlag,
			Usage:    "Access role: " + strings.Join(driveutils.Roles, ", "),
			OnlyOnce: true,
		},
		&cli.BoolFlag{
			Name:  AllFlag,
			Usage: "Share all sheets found instead of only the most recent one",
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
	}
}

type Settings struct {
	Email                 string
	Role                  string
	All                   bool
	AccountFile           string
	Subject               string
	SendNotificationEmail bool
	EmailMessage          string
}

// ResolveSettings layers the command line over the configured defaults. An unknown role
// is reported on warn and the default role is kept.
func ResolveSettings(c *cli.Command, defaults config.Share, warn io.Writer) (s Settings) {
	s = Settings{
		Email:                 defaults.Email,
		Role:                  defaults.Role,
		AccountFile:           defaults.AccountFile,
		Subject:               defaults.Subject,
		SendNotificationEmail: defaults.SendNotificationEmail,
		EmailMessage:          defaults.EmailMessage,
	}
	if !driveutils.ValidRole(s.Role) {
		fmt.Fprintf(warn, "Warning: configured role %q is not one of %s, using %s\n", s.Role, strings.Join(driveutils.Roles, ", "), driveutils.RoleWriter)
		s.Role = driveutils.RoleWriter
	}

	if email := strings.TrimSpace(c.String(EmailFlag)); email != "" {
		s.Email = email
	}
	if c.IsSet(RoleFlag) {
		role := c.String(RoleFlag)
		if driveutils.ValidRole(role) {
			s.Role = role
		} else {
			fmt.Fprintf(warn, "Warning: ignoring unknown role %q, expecting one of %s\n", role, strings.Join(driveutils.Roles, ", "))
		}
	}
	if c.Bool(AllFlag) {
		s.All = true
	}
	if file := c.String(CredentialsFlag); file != "" {
		s.AccountFile = file
	}
	if subject := c.String(SubjectFlag); subject != "" {
		s.Subject = subject
	}
	return s
}

func anySet(c *cli.Command, names ...string) (set bool) {
	for _, name := range names {
		if c.IsSet(name) {
			return true
		}
	}
	return false
}

func (s *Settings) Print(w io.Writer) {
	fmt.Fprintln(w, "Using configuration:")
	fmt.Fprintf(w, "   Email: %s\n", s.Email)
	fmt.Fprintf(w, "   Role: %s\n", s.Role)
	fmt.Fprintf(w, "   Share all: %t\n", s.All)
	fmt.Fprintln(w)
}

func (s *Settings) message(sheetName string) (message string) {
	message = fmt.Sprintf("You now have access to the Google Sheet: %q.", sheetName)
	if s.EmailMessage != "" {
		message += " " + s.EmailMessage
	}
	return message
}
