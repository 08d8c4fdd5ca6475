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

	"github.com/lac5q/creative-ads-repository/logging"
	"github.com/lac5q/creative-ads-repository/playbook"
	"github.com/urfave/cli/v3"
)

const (
	FileFlag   = "file"
	DomainFlag = "domain"
	NicheFlag  = "niche"
)

var SEMPlaybook = cli.Command{
	Name:  "semplaybook",
	Usage: "Print the SEM research prompts for a domain",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     FileFlag,
			Usage:    "YAML playbook to use instead of the built in one",
			OnlyOnce: true,
		},
		&cli.StringFlag{
			Name:     DomainFlag,
			Usage:    "Domain the prompts are written for",
			Sources:  cli.EnvVars("SEO_TARGET"),
			OnlyOnce: true,
		},
		&cli.StringFlag{
			Name:     NicheFlag,
			Usage:    "Niche description used by the prompts",
			OnlyOnce: true,
		},
		logging.Verbose,
	},
	Action: func(ctx context.Context, c *cli.Command) (err error) {
		logger := logging.Setup(c.Bool(logging.VerboseFlag))

		p, err := playbook.Load(c.String(FileFlag))
		if err != nil {
			return fmt.Errorf("failed to load playbook: %w", err)
		}
		if domain := c.String(DomainFlag); domain != "" {
			p.Domain = domain
		}
		if niche := c.String(NicheFlag); niche != "" {
			p.Niche = niche
		}
		logger.Debug("Printing playbook", "domain", p.Domain)

		err = p.Print(c.Root().Writer)
		if err != nil {
			return fmt.Errorf("failed to print playbook: %w", err)
		}
		return nil
	},
}
