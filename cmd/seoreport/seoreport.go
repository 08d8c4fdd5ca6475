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
	"io"
	"log/slog"

	"github.com/lac5q/creative-ads-repository/config"
	"github.com/lac5q/creative-ads-repository/logging"
	"github.com/lac5q/creative-ads-repository/seo"
	"github.com/lac5q/creative-ads-repository/seo/archive"
	"github.com/lac5q/creative-ads-repository/seo/report"
	"github.com/urfave/cli/v3"
)

const (
	ConfigFlag  = "config"
	TargetFlag  = "target"
	KeywordFlag = "keyword"
	SeedFlag    = "seed"
	ArchiveFlag = "archive"
)

// Apply the command line overrides on top of the loaded configuration.
func applyFlags(c *cli.Command, cfg *config.Config) {
	if c.IsSet(TargetFlag) {
		cfg.SEO.Target = c.String(TargetFlag)
	}
	if c.IsSet(KeywordFlag) {
		cfg.SEO.SERPKeywords = c.StringSlice(KeywordFlag)
	}
	if c.IsSet(SeedFlag) {
		cfg.SEO.SuggestionSeed = c.String(SeedFlag)
	}
}

func newClient(ctx context.Context, cfg *config.Config, archiveEnabled bool, logger *slog.Logger) (client *seo.Client, err error) {
	opts := []seo.Option{
		seo.WithBaseURL(cfg.SEO.BaseURL),
		seo.WithLocale(cfg.SEO.Location, cfg.SEO.Language),
		seo.WithRateLimit(cfg.SEO.RequestsPerSecond, 1),
	}

	if archiveEnabled {
		if !cfg.S3.Enabled() {
			return nil, fmt.Errorf("archive requested but ARCHIVE_S3_ENDPOINT or ARCHIVE_S3_BUCKET is not set")
		}
		s3Client, err := cfg.S3.Client()
		if err != nil {
			return nil, fmt.Errorf("failed to prepare s3 client: %w", err)
		}
		payloads, err := archive.Open(ctx, s3Client, cfg.S3.Bucket, cfg.S3.Prefix, cfg.SEO.Target, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open archive: %w", err)
		}
		opts = append(opts, seo.WithArchiver(payloads))
	}

	return seo.New(cfg.SEO.Username, cfg.SEO.Password, opts...), nil
}

func run(ctx context.Context, out io.Writer, source report.Source, cfg *config.Config, logger *slog.Logger) (summary report.Summary) {
	analysis := report.Analysis{
		Source:         source,
		Target:         cfg.SEO.Target,
		SERPKeywords:   cfg.SEO.SERPKeywords,
		SuggestionSeed: cfg.SEO.SuggestionSeed,
		Out:            out,
		Logger:         logger,
	}
	return analysis.Run(ctx)
}

var SEOReport = cli.Command{
	Name:  "seoreport",
	Usage: "Print a DataForSEO analysis of a domain",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     ConfigFlag,
			Usage:    "Optional YAML configuration file",
			OnlyOnce: true,
		},
		&cli.StringFlag{
			Name:     TargetFlag,
			Usage:    "Domain to analyze",
			OnlyOnce: true,
		},
		&cli.StringSliceFlag{
			Name:  KeywordFlag,
			Usage: "Keyword to check in the SERP analysis, repeatable",
		},
		&cli.StringFlag{
			Name:     SeedFlag,
			Usage:    "Seed keyword for the keyword opportunities",
			OnlyOnce: true,
		},
		&cli.BoolFlag{
			Name:  ArchiveFlag,
			Usage: "Store the raw API payloads in the configured S3 bucket",
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
		applyFlags(c, cfg)

		err = cfg.SEO.Validate()
		if err != nil {
			report.MissingCredentials(out, err)
			return nil
		}

		client, err := newClient(ctx, cfg, c.Bool(ArchiveFlag), logger)
		if err != nil {
			return err
		}

		summary := run(ctx, out, client, cfg, logger)
		logger.Debug("Analysis finished", "sections", summary.Sections, "failed", summary.Failed)
		return nil
	},
}
