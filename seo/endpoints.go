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

import (
	"context"
	"fmt"
)

const (
	EndpointDomainOverview     = "/v3/domain_analytics/overview/live"
	EndpointOrganicKeywords    = "/v3/domain_analytics/keywords/live"
	EndpointCompetitors        = "/v3/domain_analytics/competitors/live"
	EndpointBacklinksSummary   = "/v3/backlinks/summary/live"
	EndpointSERPOrganic        = "/v3/serp/google/organic/live/advanced"
	EndpointKeywordSuggestions = "/v3/keywords_data/google_ads/suggestions/live"
)

// TaskRequest is a single task posted to a live endpoint. The API expects a JSON
// array of tasks, even for one.
type TaskRequest struct {
	Target       string   `json:"target,omitempty"`
	Keyword      string   `json:"keyword,omitempty"`
	LocationName string   `json:"location_name,omitempty"`
	LanguageName string   `json:"language_name,omitempty"`
	Limit        int      `json:"limit,omitempty"`
	OrderBy      []string `json:"order_by,omitempty"`
	Device       string   `json:"device,omitempty"`
	OS           string   `json:"os,omitempty"`
}

func post[T any](ctx context.Context, c *Client, endpoint string, task TaskRequest) (res *Response[T], err error) {
	res = new(Response[T])
	err = c.Do(ctx, endpoint, []TaskRequest{task}, res)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Client) DomainOverview(ctx context.Context, target string) (res *Response[DomainOverview], err error) {
	res, err = post[DomainOverview](ctx, c, EndpointDomainOverview, TaskRequest{
		Target:       target,
		LocationName: c.Location,
		LanguageName: c.Language,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query domain overview: %w", err)
	}
	return res, nil
}

func (c *Client) OrganicKeywords(ctx context.Context, target string, limit int) (res *Response[Items[Keyword]], err error) {
	res, err = post[Items[Keyword]](ctx, c, EndpointOrganicKeywords, TaskRequest{
		Target:       target,
		LocationName: c.Location,
		LanguageName: c.Language,
		Limit:        limit,
		OrderBy:      []string{"search_volume,desc"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query organic keywords: %w", err)
	}
	return res, nil
}

func (c *Client) Competitors(ctx context.Context, target string, limit int) (res *Response[Items[Competitor]], err error) {
	res, err = post[Items[Competitor]](ctx, c, EndpointCompetitors, TaskRequest{
		Target:       target,
		LocationName: c.Location,
		LanguageName: c.Language,
		Limit:        limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query competitors: %w", err)
	}
	return res, nil
}

func (c *Client) BacklinksSummary(ctx context.Context, target string, limit int) (res *Response[BacklinksSummary], err error) {
	res, err = post[BacklinksSummary](ctx, c, EndpointBacklinksSummary, TaskRequest{
		Target:  target,
		Limit:   limit,
		OrderBy: []string{"rank,desc"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query backlinks summary: %w", err)
	}
	return res, nil
}

func (c *Client) SERPOrganic(ctx context.Context, keyword string) (res *Response[Items[SERPItem]], err error) {
	res, err = post[Items[SERPItem]](ctx, c, EndpointSERPOrganic, TaskRequest{
		Keyword:      keyword,
		LocationName: c.Location,
		LanguageName: c.Language,
		Device:       "desktop",
		OS:           "windows",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query organic SERP: %w", err)
	}
	return res, nil
}

func (c *Client) KeywordSuggestions(ctx context.Context, keyword string, limit int) (res *Response[Items[KeywordSuggestion]], err error) {
	res, err = post[Items[KeywordSuggestion]](ctx, c, EndpointKeywordSuggestions, TaskRequest{
		Keyword:      keyword,
		LocationName: c.Location,
		LanguageName: c.Language,
		Limit:        limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query keyword suggestions: %w", err)
	}
	return res, nil
}
