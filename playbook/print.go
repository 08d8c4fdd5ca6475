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

package playbook

import (
	"fmt"
	"io"
	"strings"
)

func title(w io.Writer, s string) {
	fmt.Fprintf(w, "%s\n%s\n\n", s, strings.Repeat("=", len(s)))
}

func numbered(w io.Writer, entries []string) {
	for index, entry := range entries {
		fmt.Fprintf(w, "%d. %s\n", index+1, entry)
	}
}

func indented(w io.Writer, entries []string) {
	for _, entry := range entries {
		fmt.Fprintf(w, "   %s\n", entry)
	}
}

// Print renders the playbook and writes it to w. Empty sections are skipped.
func (p *Playbook) Print(w io.Writer) (err error) {
	r, err := p.Render()
	if err != nil {
		return fmt.Errorf("failed to render playbook: %w", err)
	}

	title(w, "SEM Analysis for "+r.Domain)
	fmt.Fprintf(w, "Target: %s\n", r.Domain)
	for _, field := range [][2]string{{"Focus", r.Focus}, {"Niche", r.Niche}, {"Goal", r.Goal}} {
		if field[1] != "" {
			fmt.Fprintf(w, "%s: %s\n", field[0], field[1])
		}
	}
	fmt.Fprintln(w)

	title(w, "PRIMARY SEM ANALYSIS PROMPT:")
	fmt.Fprintf(w, "\"%s\"\n\n", r.PrimaryPrompt)

	if len(r.FocusAreas) > 0 {
		title(w, "SPECIFIC SEM FOCUS AREAS:")
		for index, area := range r.FocusAreas {
			fmt.Fprintf(w, "%d. %s\n", index+1, area.Area)
			fmt.Fprintf(w, "   Goal: %s\n", area.Goal)
			fmt.Fprintf(w, "   Prompt: \"%s\"\n\n", area.Prompt)
		}
	}

	sections := []struct {
		title    string
		entries  []string
		numbered bool
	}{
		{"QUICK START COMMANDS:", r.QuickStart, true},
		{"SEM STRATEGY WORKFLOW FOR " + strings.ToUpper(r.Domain) + ":", r.Workflow, true},
		{"SUCCESS METRICS TO TRACK:", r.Metrics, false},
		{"KEYWORD CATEGORIES:", r.KeywordCategories, false},
		{"SEASONAL CAMPAIGN OPPORTUNITIES:", r.SeasonalCampaigns, false},
		{"PPC CAMPAIGN KEYWORDS:", r.PPCKeywords, false},
		{"NEXT STEPS FOR " + strings.ToUpper(r.Domain) + ":", r.NextSteps, true},
	}
	for _, section := range sections {
		if len(section.entries) == 0 {
			continue
		}
		title(w, section.title)
		if section.numbered {
			numbered(w, section.entries)
		} else {
			indented(w, section.entries)
		}
		fmt.Fprintln(w)
	}
	return nil
}
