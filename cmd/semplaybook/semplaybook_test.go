package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_SEMPlaybook(t *testing.T) {
	assertions := assert.New(t)

	t.Setenv("SEO_TARGET", "")

	var out bytes.Buffer
	SEMPlaybook.Writer = &out
	err := SEMPlaybook.Run(context.TODO(), []string{"semplaybook", "--domain", "shop.example", "--niche", "Custom mugs"})
	if !assertions.Nil(err, "failed to run command") {
		return
	}

	assertions.Contains(out.String(), "SEM Analysis for shop.example")
	assertions.NotContains(out.String(), "makemejedi.com")
	assertions.NotContains(out.String(), "{{")
}
