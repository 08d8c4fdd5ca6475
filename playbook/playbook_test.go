package playbook_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lac5q/creative-ads-repository/playbook"
	"github.com/stretchr/testify/assert"
)

func Test_Default(t *testing.T) {
	t.Run("Succeed", func(t *testing.T) {
		assertions := assert.New(t)

		p, err := playbook.Default()
		if !assertions.Nil(err, "failed to load default playbook") {
			return
		}

		assertions.Equal("makemejedi.com", p.Domain)
		assertions.Len(p.FocusAreas, 8)
		assertions.NotEmpty(p.Workflow)
	})
	t.Run("Domain override", func(t *testing.T) {
		assertions := assert.New(t)

		p, err := playbook.Default()
		if !assertions.Nil(err, "failed to load default playbook") {
			return
		}
		p.Domain = "example.com"

		var buf bytes.Buffer
		err = p.Print(&buf)
		if !assertions.Nil(err, "failed to print playbook") {
			return
		}

		out := buf.String()
		assertions.Contains(out, "SEM Analysis for example.com")
		assertions.Contains(out, "comprehensive SEM analysis of example.com focusing on")
		assertions.Contains(out, "1. Star Wars Keyword Gap Discovery")
		assertions.Contains(out, "SEM STRATEGY WORKFLOW FOR EXAMPLE.COM:")
		assertions.NotContains(out, "makemejedi.com")
		assertions.NotContains(out, "{{")
	})
}

func Test_Load(t *testing.T) {
	t.Run("File", func(t *testing.T) {
		assertions := assert.New(t)

		file := filepath.Join(t.TempDir(), "playbook.yaml")
		err := os.WriteFile(file, []byte(`
domain: shop.test
niche: Handmade mugs
primary-prompt: "Analyze {{.Domain}} in the {{.Niche}} niche"
workflow: ["Start"]
`), 0o600)
		if !assertions.Nil(err, "failed to write playbook") {
			return
		}

		p, err := playbook.Load(file)
		if !assertions.Nil(err, "failed to load playbook") {
			return
		}

		var buf bytes.Buffer
		err = p.Print(&buf)
		if !assertions.Nil(err, "failed to print playbook") {
			return
		}

		out := buf.String()
		assertions.Contains(out, `"Analyze shop.test in the Handmade mugs niche"`)
		assertions.Contains(out, "1. Start")
		assertions.NotContains(out, "SPECIFIC SEM FOCUS AREAS:", "empty sections are skipped")
		assertions.NotContains(out, "PPC CAMPAIGN KEYWORDS:", "empty sections are skipped")
	})
	t.Run("Missing domain", func(t *testing.T) {
		assertions := assert.New(t)

		_, err := playbook.Parse([]byte("niche: nothing"))
		assertions.NotNil(err)
	})
	t.Run("Unknown template field", func(t *testing.T) {
		assertions := assert.New(t)

		p, err := playbook.Parse([]byte(`{domain: a.test, primary-prompt: "{{.Budget}}"}`))
		if !assertions.Nil(err, "failed to parse playbook") {
			return
		}

		var buf bytes.Buffer
		err = p.Print(&buf)
		assertions.NotNil(err)
		assertions.True(strings.Contains(err.Error(), "render"))
	})
}
