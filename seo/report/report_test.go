package report_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/lac5q/creative-ads-repository/seo"
	"github.com/lac5q/creative-ads-repository/seo/report"
	"github.com/stretchr/testify/assert"
)

func decode[T any](t *testing.T, payload string) (res *seo.Response[T]) {
	res = new(seo.Response[T])
	err := json.Unmarshal([]byte(payload), res)
	if err != nil {
		t.Fatalf("failed to unmarshal payload: %v", err)
	}
	return res
}

func Test_Reporter_DomainOverview(t *testing.T) {
	t.Run("Succeed", func(t *testing.T) {
		assertions := assert.New(t)

		var buf bytes.Buffer
		report.New(&buf).DomainOverview(decode[seo.DomainOverview](t, `{
			"status_code": 20000,
			"tasks": [{"result": [{"target": "example.com", "organic_etv": 1520.5, "organic_count": 310, "paid_count": 0, "rank": 77}]}]
		}`))

		out := buf.String()
		assertions.Contains(out, "Domain: example.com")
		assertions.Contains(out, "Organic Traffic: 1520.5")
		assertions.Contains(out, "Organic Keywords: 310")
		assertions.Contains(out, "Paid Traffic: N/A")
		assertions.Contains(out, "Paid Keywords: 0")
		assertions.Contains(out, "Domain Rank: 77")
	})
	t.Run("No data", func(t *testing.T) {
		var payloads = []string{
			`{"status_code": 40100, "tasks": [{"result": [{"target": "example.com"}]}]}`,
			`{"status_code": 20000, "tasks": [{"result": null}]}`,
			`{"status_code": 20000}`,
		}
		for _, payload := range payloads {
			assertions := assert.New(t)

			var buf bytes.Buffer
			assertions.NotPanics(func() {
				report.New(&buf).DomainOverview(decode[seo.DomainOverview](t, payload))
			})
			assertions.Equal("No domain analytics data available\n", buf.String(), payload)
		}
	})
	t.Run("Nil response", func(t *testing.T) {
		assertions := assert.New(t)

		var buf bytes.Buffer
		report.New(&buf).Backlinks(nil)
		assertions.Equal("No backlink data available\n", buf.String())
	})
}

func Test_Reporter_OrganicKeywords(t *testing.T) {
	t.Run("Succeed", func(t *testing.T) {
		assertions := assert.New(t)

		var items = make([]map[string]any, 0, 12)
		for i := range 12 {
			items = append(items, map[string]any{"keyword": "kw" + string(rune('a'+i)), "rank_group": i + 1, "search_volume": 1000 - i})
		}
		payload, _ := json.Marshal(map[string]any{
			"status_code": 20000,
			"tasks":       []any{map[string]any{"result": []any{map[string]any{"items": items}}}},
		})

		var buf bytes.Buffer
		report.New(&buf).OrganicKeywords(decode[seo.Items[seo.Keyword]](t, string(payload)))

		out := buf.String()
		assertions.Contains(out, "Found 12 top organic keywords:")
		assertions.Contains(out, `1. "kwa" - Position: 1 - Volume: 1000`)
		assertions.Contains(out, `10. "kwj" - Position: 10 - Volume: 991`)
		assertions.NotContains(out, `"kwk"`, "only the first ten are printed")
	})
	t.Run("Missing items", func(t *testing.T) {
		assertions := assert.New(t)

		var buf bytes.Buffer
		report.New(&buf).OrganicKeywords(decode[seo.Items[seo.Keyword]](t, `{"status_code":20000,"tasks":[{"result":[{"total_count":3}]}]}`))
		assertions.Equal("No organic keywords data available\n", buf.String())
	})
}

func Test_Reporter_Competitors(t *testing.T) {
	assertions := assert.New(t)

	var buf bytes.Buffer
	report.New(&buf).Competitors(decode[seo.Items[seo.Competitor]](t, `{
		"status_code": 20000,
		"tasks": [{"result": [{"items": [{"domain": "rival.com", "avg_position": 0.4567}, {"domain": "other.com"}]}]}]
	}`))

	out := buf.String()
	assertions.Contains(out, "Found 2 main competitors:")
	assertions.Contains(out, "1. rival.com - Similarity: 45.7%")
	assertions.Contains(out, "2. other.com - Similarity: N/A")
}

func Test_Reporter_Backlinks(t *testing.T) {
	assertions := assert.New(t)

	var buf bytes.Buffer
	report.New(&buf).Backlinks(decode[seo.BacklinksSummary](t, `{
		"status_code": 20000,
		"tasks": [{"result": [{"backlinks": 12000, "referring_domains": 340, "rank": 51, "referring_ips": 290}]}]
	}`))

	out := buf.String()
	assertions.Contains(out, "Total Backlinks: 12000")
	assertions.Contains(out, "Referring Domains: 340")
	assertions.Contains(out, "Domain Rank: 51")
	assertions.Contains(out, "Referring IPs: 290")
}

func Test_Reporter_SERP(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		assertions := assert.New(t)

		var buf bytes.Buffer
		report.New(&buf).SERP("custom portrait", "example.com", decode[seo.Items[seo.SERPItem]](t, `{
			"status_code": 20000,
			"tasks": [{"result": [{"items": [
				{"type": "paid", "domain": "ads.com", "title": "Ad"},
				{"type": "organic", "domain": "first.com", "rank_group": 1, "title": "First result with a rather long title that keeps going"},
				{"type": "organic", "domain": "www.example.com", "rank_group": 2, "url": "https://www.example.com/p", "title": "Example"},
				{"type": "organic", "domain": "third.com", "rank_group": 3, "title": "Third"},
				{"type": "organic", "domain": "fourth.com", "rank_group": 4, "title": "Fourth"}
			]}]}]
		}`))

		out := buf.String()
		assertions.Contains(out, `Analyzing: "custom portrait"`)
		assertions.Contains(out, "example.com found at position 2")
		assertions.Contains(out, "URL: https://www.example.com/p")
		assertions.Contains(out, "Title: Example...")
		assertions.Contains(out, "1. first.com - First result with a rather long title th...")
		assertions.Contains(out, "3. third.com - Third...")
		assertions.NotContains(out, "fourth.com")
		assertions.NotContains(out, "ads.com")
	})
	t.Run("Not found", func(t *testing.T) {
		assertions := assert.New(t)

		var buf bytes.Buffer
		report.New(&buf).SERP("kw", "example.com", decode[seo.Items[seo.SERPItem]](t, `{
			"status_code": 20000,
			"tasks": [{"result": [{"items": [{"type": "organic", "domain": "first.com", "title": "First"}]}]}]
		}`))

		assertions.Contains(buf.String(), "example.com not found in top 1 results")
		assertions.Contains(buf.String(), "1. first.com - First...")
	})
	t.Run("No data", func(t *testing.T) {
		assertions := assert.New(t)

		var buf bytes.Buffer
		report.New(&buf).SERP("kw", "example.com", decode[seo.Items[seo.SERPItem]](t, `{"status_code": 20000, "tasks": []}`))
		assertions.Contains(buf.String(), "No SERP data available")
	})
}

func Test_Reporter_KeywordSuggestions(t *testing.T) {
	t.Run("Succeed", func(t *testing.T) {
		assertions := assert.New(t)

		var buf bytes.Buffer
		report.New(&buf).KeywordSuggestions(decode[seo.Items[seo.KeywordSuggestion]](t, `{
			"status_code": 20000,
			"tasks": [{"result": [{"items": [{"keyword": "cartoon portrait", "search_volume": 2400, "cpc": 1.35}, {"keyword": "no volume"}]}]}]
		}`))

		out := buf.String()
		assertions.Contains(out, "Found 2 keyword opportunities:")
		assertions.Contains(out, `1. "cartoon portrait" - Volume: 2400 - CPC: $1.35`)
		assertions.Contains(out, `2. "no volume" - Volume: N/A - CPC: $N/A`)
	})
	t.Run("No data", func(t *testing.T) {
		assertions := assert.New(t)

		var buf bytes.Buffer
		report.New(&buf).KeywordSuggestions(decode[seo.Items[seo.KeywordSuggestion]](t, `{"status_code": 50000}`))
		assertions.Equal("No keyword suggestions available\n", buf.String())
	})
}
