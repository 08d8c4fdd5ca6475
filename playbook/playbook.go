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
	_ "embed"
	"fmt"
	"os"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultPlaybook []byte

type (
	FocusArea struct {
		Area   string `yaml:"area"`
		Prompt string `yaml:"prompt"`
		Goal   string `yaml:"goal"`
	}
	// Playbook is a set of SEM research prompts and campaign notes for one domain.
	// Every text field may use {{.Domain}}, {{.Niche}}, {{.Focus}} and {{.Goal}}.
	Playbook struct {
		Domain            string      `yaml:"domain"`
		Focus             string      `yaml:"focus"`
		Niche             string      `yaml:"niche"`
		Goal              string      `yaml:"goal"`
		PrimaryPrompt     string      `yaml:"primary-prompt"`
		FocusAreas        []FocusArea `yaml:"focus-areas"`
		QuickStart        []string    `yaml:"quick-start"`
		Workflow          []string    `yaml:"workflow"`
		Metrics           []string    `yaml:"metrics"`
		KeywordCategories []string    `yaml:"keyword-categories"`
		SeasonalCampaigns []string    `yaml:"seasonal-campaigns"`
		PPCKeywords       []string    `yaml:"ppc-keywords"`
		NextSteps         []string    `yaml:"next-steps"`
	}
)

func Parse(contents []byte) (p *Playbook, err error) {
	p = new(Playbook)
	err = yaml.Unmarshal(contents, p)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal contents: %w", err)
	}
	if p.Domain == "" {
		return nil, fmt.Errorf("playbook has no domain")
	}
	return p, nil
}

func Default() (p *Playbook, err error) {
	return Parse(defaultPlaybook)
}

// Load the playbook at file, or the embedded one when file is empty.
func Load(file string) (p *Playbook, err error) {
	if file == "" {
		return Default()
	}
	contents, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return Parse(contents)
}

type renderer struct {
	data map[string]string
	err  error
}

func (r *renderer) text(s string) (out string) {
	if r.err != nil || !strings.Contains(s, "{{") {
		return s
	}
	tmpl, err := template.New("playbook").Option("missingkey=error").Parse(s)
	if err != nil {
		r.err = fmt.Errorf("failed to parse template: %w", err)
		return s
	}
	var sb strings.Builder
	err = tmpl.Execute(&sb, r.data)
	if err != nil {
		r.err = fmt.Errorf("failed to render template: %w", err)
		return s
	}
	return sb.String()
}

func (r *renderer) list(entries []string) (out []string) {
	out = make([]string, 0, len(entries))
	for _, entry := range entries {
		out = append(out, r.text(entry))
	}
	return out
}

// Render returns a copy with every template expanded.
func (p *Playbook) Render() (rendered *Playbook, err error) {
	r := &renderer{data: map[string]string{
		"Domain": p.Domain,
		"Focus":  p.Focus,
		"Niche":  p.Niche,
		"Goal":   p.Goal,
	}}

	rendered = &Playbook{
		Domain:            p.Domain,
		Focus:             r.text(p.Focus),
		Niche:             r.text(p.Niche),
		Goal:              r.text(p.Goal),
		PrimaryPrompt:     r.text(p.PrimaryPrompt),
		QuickStart:        r.list(p.QuickStart),
		Workflow:          r.list(p.Workflow),
		Metrics:           r.list(p.Metrics),
		KeywordCategories: r.list(p.KeywordCategories),
		SeasonalCampaigns: r.list(p.SeasonalCampaigns),
		PPCKeywords:       r.list(p.PPCKeywords),
		NextSteps:         r.list(p.NextSteps),
	}
	for _, area := range p.FocusAreas {
		rendered.FocusAreas = append(rendered.FocusAreas, FocusArea{
			Area:   r.text(area.Area),
			Prompt: r.text(area.Prompt),
			Goal:   r.text(area.Goal),
		})
	}
	if r.err != nil {
		return nil, r.err
	}
	return rendered, nil
}
