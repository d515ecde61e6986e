package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLogLevelAndFormat(t *testing.T) {
	t.Cleanup(func() { _ = InitLog("", "info", FormatText) })

	require.NoError(t, InitLog("", "warn", FormatJSON))
	var buf bytes.Buffer
	SetOutput(&buf)

	Info("[Test] hidden %d", 1)
	Warn("[Test] shown %d", 2)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"[Test] shown 2"`)
}

func TestInitLogRejectsBadInput(t *testing.T) {
	t.Cleanup(func() { _ = InitLog("", "info", FormatText) })

	assert.Error(t, InitLog("", "loud", FormatText))
	assert.Error(t, InitLog("", "info", "xml"))
}

func TestInitLogFileSink(t *testing.T) {
	t.Cleanup(func() { _ = InitLog("", "info", FormatText) })

	path := filepath.Join(t.TempDir(), "logs", "minimax.log")
	require.NoError(t, InitLog(path, "debug", FormatText))
	Debug("[Test] to file")
	FlushLog()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[Test] to file")
}
