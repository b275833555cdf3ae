package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func capture(t *testing.T, verbose bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(verbose)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})
	return &buf
}

func TestSetVerbose(t *testing.T) {
	capture(t, false)
	assert.False(t, IsVerbose())

	SetVerbose(true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestDebug_WhenVerbose(t *testing.T) {
	buf := capture(t, true)

	Debug("test message %s", "arg")

	assert.Contains(t, buf.String(), "[DEBUG] test message arg")
}

func TestDebug_WhenNotVerbose(t *testing.T) {
	buf := capture(t, false)

	Debug("test message")
	Info("info message")

	assert.Empty(t, buf.String())
}

func TestWarnAndError_AlwaysWritten(t *testing.T) {
	buf := capture(t, false)

	Warn("careful %d", 1)
	Error("broken %s", "store")

	assert.Contains(t, buf.String(), "careful 1")
	assert.Contains(t, buf.String(), "[ERROR] broken store")
}

func TestWith_Fields(t *testing.T) {
	buf := capture(t, true)

	With(Fields{"run": "abc"}).Infof("run %s", "started")

	assert.Contains(t, buf.String(), "run started")
	assert.Contains(t, buf.String(), "abc")
}

func TestSection(t *testing.T) {
	buf := capture(t, true)

	Section("Lesson")

	assert.Equal(t, "\n=== Lesson ===\n", buf.String())
}

func TestSection_WhenNotVerbose(t *testing.T) {
	buf := capture(t, false)

	Section("Lesson")

	assert.Empty(t, buf.String())
}
