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

package seo

// Status code DataForSEO reports for a successful call, both on the envelope and on each task.
const StatusOK = 20000

type (
	Response[T any] struct {
		Version       string    `json:"version"`
		StatusCode    int       `json:"status_code"`
		StatusMessage string    `json:"status_message"`
		Time          string    `json:"time"`
		Cost          float64   `json:"cost"`
		TasksCount    int       `json:"tasks_count"`
		TasksError    int       `json:"tasks_error"`
		Tasks         []Task[T] `json:"tasks"`
	}
	Task[T any] struct {
		ID            string `json:"id"`
		StatusCode    int    `json:"status_code"`
		StatusMessage string `json:"status_message"`
		Result        []*T   `json:"result"`
	}
	// Items wraps the list shaped results.
	Items[T any] struct {
		Target     string   `json:"target"`
		Keyword    string   `json:"keyword"`
		TotalCount *float64 `json:"total_count"`
		ItemsCount int      `json:"items_count"`
		Items      []*T     `json:"items"`
	}
)

func (r *Response[T]) OK() (ok bool) {
	return r != nil && r.StatusCode == StatusOK
}

// First returns tasks[0].result[0], reporting false when any level is missing.
func (r *Response[T]) First() (v *T, found bool) {
	if r == nil || len(r.Tasks) == 0 || len(r.Tasks[0].Result) == 0 {
		return nil, false
	}
	v = r.Tasks[0].Result[0]
	return v, v != nil
}

// FirstItems is First for list results that must also carry an items array.
// An empty array is data, a missing or null one is not.
func FirstItems[T any](r *Response[Items[T]]) (items []*T, found bool) {
	result, found := r.First()
	if !found || result.Items == nil {
		return nil, false
	}
	return result.Items, true
}

type (
	DomainOverview struct {
		Target       string   `json:"target"`
		OrganicETV   *float64 `json:"organic_etv"`
		OrganicCount *float64 `json:"organic_count"`
		PaidETV      *float64 `json:"paid_etv"`
		PaidCount    *float64 `json:"paid_count"`
		Rank         *float64 `json:"rank"`
	}
	Keyword struct {
		Keyword      string   `json:"keyword"`
		RankGroup    *float64 `json:"rank_group"`
		SearchVolume *float64 `json:"search_volume"`
	}
	Competitor struct {
		Domain        string   `json:"domain"`
		AvgPosition   *float64 `json:"avg_position"`
		Intersections *float64 `json:"intersections"`
	}
	BacklinksSummary struct {
		Target           string   `json:"target"`
		Backlinks        *float64 `json:"backlinks"`
		ReferringDomains *float64 `json:"referring_domains"`
		Rank             *float64 `json:"rank"`
		ReferringIPs     *float64 `json:"referring_ips"`
	}
	SERPItem struct {
		Type         string   `json:"type"`
		RankGroup    *float64 `json:"rank_group"`
		RankAbsolute *float64 `json:"rank_absolute"`
		Domain       string   `json:"domain"`
		URL          string   `json:"url"`
		Title        string   `json:"title"`
	}
	KeywordSuggestion struct {
		Keyword      string   `json:"keyword"`
		SearchVolume *float64 `json:"search_volume"`
		CPC          *float64 `json:"cpc"`
	}
)
