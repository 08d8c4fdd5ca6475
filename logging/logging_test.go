package logging_test

import (
	"bytes"
	"testing"

	"github.com/lac5q/creative-ads-repository/logging"
	"github.com/stretchr/testify/assert"
)

func Test_New(t *testing.T) {
	t.Run("Verbose", func(t *testing.T) {
		assertions := assert.New(t)

		var buf bytes.Buffer
		logger := logging.New(&buf, true)
		logger.Debug("Visible", "key", "value")

		assertions.Contains(buf.String(), "msg=Visible")
		assertions.Contains(buf.String(), "key=value")
	})
	t.Run("Quiet", func(t *testing.T) {
		assertions := assert.New(t)

		var buf bytes.Buffer
		logger := logging.New(&buf, false)
		logger.Debug("Hidden")
		logger.Info("Shown")

		assertions.NotContains(buf.String(), "Hidden")
		assertions.Contains(buf.String(), "Shown")
	})
}
