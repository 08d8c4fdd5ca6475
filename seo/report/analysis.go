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

package report

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/lac5q/creative-ads-repository/seo"
)

// Source is the subset of the DataForSEO client the analysis needs.
type Source interface {
	DomainOverview(ctx context.Context, target string) (*seo.Response[seo.DomainOverview], error)
	OrganicKeywords(ctx context.Context, target string, limit int) (*seo.Response[seo.Items[seo.Keyword]], error)
	Competitors(ctx context.Context, target string, limit int) (*seo.Response[seo.Items[seo.Competitor]], error)
	BacklinksSummary(ctx context.Context, target string, limit int) (*seo.Response[seo.BacklinksSummary], error)
	SERPOrganic(ctx context.Context, keyword string) (*seo.Response[seo.Items[seo.SERPItem]], error)
	KeywordSuggestions(ctx context.Context, keyword string, limit int) (*seo.Response[seo.Items[seo.KeywordSuggestion]], error)
}

var _ Source = (*seo.Client)(nil)

type Analysis struct {
	Source         Source
	Target         string
	SERPKeywords   []string
	SuggestionSeed string
	Out            io.Writer
	Logger         *slog.Logger
}

type Summary struct {
	Sections int
	Failed   int
}

type section struct {
	title string
	run   func(ctx context.Context, r *Reporter) (failed int)
}

func (a *Analysis) sections() (sections []section) {
	single := func(f func(ctx context.Context, r *Reporter) error) func(ctx context.Context, r *Reporter) int {
		return func(ctx context.Context, r *Reporter) (failed int) {
			err := f(ctx, r)
			if err != nil {
				r.Error(err)
				return 1
			}
			return 0
		}
	}

	return []section{
		{"Domain Analytics Overview", single(func(ctx context.Context, r *Reporter) error {
			res, err := a.Source.DomainOverview(ctx, a.Target)
			if err == nil {
				r.DomainOverview(res)
			}
			return err
		})},
		{"Organic Keywords Analysis", single(func(ctx context.Context, r *Reporter) error {
			res, err := a.Source.OrganicKeywords(ctx, a.Target, 20)
			if err == nil {
				r.OrganicKeywords(res)
			}
			return err
		})},
		{"Competitor Analysis", single(func(ctx context.Context, r *Reporter) error {
			res, err := a.Source.Competitors(ctx, a.Target, 10)
			if err == nil {
				r.Competitors(res)
			}
			return err
		})},
		{"Backlink Profile Analysis", single(func(ctx context.Context, r *Reporter) error {
			res, err := a.Source.BacklinksSummary(ctx, a.Target, 20)
			if err == nil {
				r.Backlinks(res)
			}
			return err
		})},
		{"SERP Analysis for Key Terms", func(ctx context.Context, r *Reporter) (failed int) {
			for _, keyword := range a.SERPKeywords {
				res, err := a.Source.SERPOrganic(ctx, keyword)
				if err != nil {
					r.printf("Error analyzing %q: %v", keyword, err)
					failed++
					continue
				}
				r.SERP(keyword, a.Target, res)
				r.println()
			}
			return failed
		}},
		{"Keyword Opportunities", single(func(ctx context.Context, r *Reporter) error {
			res, err := a.Source.KeywordSuggestions(ctx, a.SuggestionSeed, 20)
			if err == nil {
				r.KeywordSuggestions(res)
			}
			return err
		})},
	}
}

// Run prints every section in order. A failing section prints its error and the
// run carries on with the next one.
func (a *Analysis) Run(ctx context.Context) (summary Summary) {
	logger := a.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("target", a.Target)

	r := New(a.Out)
	r.printf("Starting comprehensive SEM analysis for %s...", a.Target)
	r.println()

	for index, section := range a.sections() {
		logger := logger.With("section", section.title)
		logger.Debug("Running section")

		r.Header(fmt.Sprintf("%d. %s", index+1, section.title))
		failed := section.run(ctx, r)
		r.println()

		summary.Sections++
		if failed > 0 {
			summary.Failed++
			logger.Debug("Section failed", "errors", failed)
		}
	}

	r.Header("Analysis Complete!")
	if summary.Failed > 0 {
		r.printf("%d of %d sections reported errors", summary.Failed, summary.Sections)
	}
	r.println("Check your DataForSEO dashboard for API usage")
	r.println("Run this command anytime for updated data")
	return summary
}

// MissingCredentials prints the guidance shown when the API login is not configured.
func MissingCredentials(w io.Writer, err error) {
	r := New(w)
	r.printf("Error: DataForSEO credentials not found: %v", err)
	r.println("Make sure your environment or .env file contains:")
	r.println(strings.Join([]string{"DATAFORSEO_USERNAME=<login>", "DATAFORSEO_PASSWORD=<api password>"}, "\n"))
}
