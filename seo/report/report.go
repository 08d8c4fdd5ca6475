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
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lac5q/creative-ads-repository/seo"
)

const NotAvailable = "N/A"

// Number of entries printed from list sections.
const TopEntries = 10

// Reporter formats DataForSEO responses as console lines.
type Reporter struct {
	w io.Writer
}

func New(w io.Writer) (r *Reporter) {
	return &Reporter{w: w}
}

func (r *Reporter) println(a ...any) {
	fmt.Fprintln(r.w, a...)
}

func (r *Reporter) printf(format string, a ...any) {
	fmt.Fprintf(r.w, format+"\n", a...)
}

// Header prints a section title underlined with dashes.
func (r *Reporter) Header(title string) {
	r.println(title)
	r.println(strings.Repeat("-", len(title)))
}

func (r *Reporter) Error(err error) {
	r.printf("Error: %v", err)
}

func (r *Reporter) DomainOverview(res *seo.Response[seo.DomainOverview]) {
	data, found := res.First()
	if !res.OK() || !found {
		r.println("No domain analytics data available")
		return
	}

	r.printf("Domain: %s", orNA(data.Target))
	r.printf("Organic Traffic: %s", number(data.OrganicETV))
	r.printf("Organic Keywords: %s", number(data.OrganicCount))
	r.printf("Paid Traffic: %s", number(data.PaidETV))
	r.printf("Paid Keywords: %s", number(data.PaidCount))
	r.printf("Domain Rank: %s", number(data.Rank))
}

func (r *Reporter) OrganicKeywords(res *seo.Response[seo.Items[seo.Keyword]]) {
	keywords, found := seo.FirstItems(res)
	if !res.OK() || !found {
		r.println("No organic keywords data available")
		return
	}

	r.printf("Found %d top organic keywords:", len(keywords))
	for index, kw := range head(keywords, TopEntries) {
		r.printf("%d. %q - Position: %s - Volume: %s", index+1, kw.Keyword, number(kw.RankGroup), number(kw.SearchVolume))
	}
}

func (r *Reporter) Competitors(res *seo.Response[seo.Items[seo.Competitor]]) {
	competitors, found := seo.FirstItems(res)
	if !res.OK() || !found {
		r.println("No competitor data available")
		return
	}

	r.printf("Found %d main competitors:", len(competitors))
	for index, comp := range competitors {
		if comp == nil {
			continue
		}
		r.printf("%d. %s - Similarity: %s", index+1, orNA(comp.Domain), percent(comp.AvgPosition))
	}
}

func (r *Reporter) Backlinks(res *seo.Response[seo.BacklinksSummary]) {
	data, found := res.First()
	if !res.OK() || !found {
		r.println("No backlink data available")
		return
	}

	r.println("Backlink Summary:")
	r.printf("Total Backlinks: %s", number(data.Backlinks))
	r.printf("Referring Domains: %s", number(data.ReferringDomains))
	r.printf("Domain Rank: %s", number(data.Rank))
	r.printf("Referring IPs: %s", number(data.ReferringIPs))
}

// SERP prints where target ranks for keyword followed by the first three organic results.
func (r *Reporter) SERP(keyword, target string, res *seo.Response[seo.Items[seo.SERPItem]]) {
	r.printf("Analyzing: %q", keyword)

	items, found := seo.FirstItems(res)
	if !res.OK() || !found {
		r.println("No SERP data available")
		return
	}

	var match *seo.SERPItem
	var organic []*seo.SERPItem
	for _, item := range items {
		if item == nil {
			continue
		}
		if match == nil && item.Domain != "" && strings.Contains(item.Domain, target) {
			match = item
		}
		if item.Type == "organic" {
			organic = append(organic, item)
		}
	}

	if match != nil {
		r.printf("%s found at position %s", target, number(match.RankGroup))
		r.printf("   URL: %s", orNA(match.URL))
		r.printf("   Title: %s", truncate(match.Title, 60))
	} else {
		r.printf("%s not found in top %d results", target, len(items))
	}

	r.println("   Top 3 results:")
	for index, item := range head(organic, 3) {
		r.printf("   %d. %s - %s", index+1, orNA(item.Domain), truncate(item.Title, 40))
	}
}

func (r *Reporter) KeywordSuggestions(res *seo.Response[seo.Items[seo.KeywordSuggestion]]) {
	suggestions, found := seo.FirstItems(res)
	if !res.OK() || !found {
		r.println("No keyword suggestions available")
		return
	}

	r.printf("Found %d keyword opportunities:", len(suggestions))
	for index, kw := range head(suggestions, TopEntries) {
		r.printf("%d. %q - Volume: %s - CPC: $%s", index+1, kw.Keyword, number(kw.SearchVolume), number(kw.CPC))
	}
}

// head returns the first n non nil entries.
func head[T any](entries []*T, n int) (out []*T) {
	out = make([]*T, 0, min(n, len(entries)))
	for _, entry := range entries {
		if len(out) == n {
			break
		}
		if entry != nil {
			out = append(out, entry)
		}
	}
	return out
}

func number(v *float64) (s string) {
	if v == nil {
		return NotAvailable
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func percent(v *float64) (s string) {
	if v == nil {
		return NotAvailable
	}
	return strconv.FormatFloat(*v*100, 'f', 1, 64) + "%"
}

func orNA(s string) string {
	if s == "" {
		return NotAvailable
	}
	return s
}

func truncate(s string, n int) (out string) {
	if s == "" {
		return NotAvailable
	}
	runes := []rune(s)
	if len(runes) > n {
		runes = runes[:n]
	}
	return string(runes) + "..."
}
