package cli

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/crhp-archive/internal/adapters/driven/storage/memory"
)

func TestRootCmd_RegistersCommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{"version", "lesson", "interview", "clip", "term", "collection", "snapshot", "serve", "mcp"} {
		assert.True(t, names[want], "missing command %q", want)
	}
}

func TestLessonCmd_Subcommands(t *testing.T) {
	var names []string
	for _, c := range lessonCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"show", "watch", "tui"}, names)
}

func TestServeCmd_Defaults(t *testing.T) {
	addr := serveCmd.Flags().Lookup("addr")
	if assert.NotNil(t, addr) {
		assert.Equal(t, "127.0.0.1:8080", addr.DefValue)
	}
	assert.NotNil(t, serveCmd.Flags().Lookup("cors-origin"))
}

func TestMCPServeCmd_PortFlag(t *testing.T) {
	port := mcpServeCmd.Flags().Lookup("port")
	if assert.NotNil(t, port) {
		assert.Equal(t, "p", port.Shorthand)
		assert.Equal(t, "0", port.DefValue)
	}
}

func TestGinMode(t *testing.T) {
	tests := []struct {
		name    string
		values  map[string]any
		verbose bool
		want    string
	}{
		{"default", nil, false, gin.ReleaseMode},
		{"verbose", nil, true, gin.DebugMode},
		{"config", map[string]any{keyServeDebug: true}, false, gin.DebugMode},
		{"config off", map[string]any{keyServeDebug: false}, false, gin.ReleaseMode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ginMode(memory.NewConfigStore(tt.values), tt.verbose))
		})
	}
}
