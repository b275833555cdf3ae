package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/crhp-archive/internal/adapters/driven/config/file"
	"github.com/custodia-labs/crhp-archive/internal/collections"
	"github.com/custodia-labs/crhp-archive/internal/core/services"
)

func writeConfig(t *testing.T, dir, collection string) {
	t.Helper()
	content := "[archive]\ncollection = \"" + collection + "\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))
}

func TestWatchConfig_CollectionChange(t *testing.T) {
	t.Setenv(services.EnvCollection, "")
	dir := t.TempDir()
	writeConfig(t, dir, string(collections.Legacy))

	cfg, err := file.NewConfigStore(dir)
	require.NoError(t, err)
	resolver, err := services.NewConfigResolver(cfg)
	require.NoError(t, err)
	rt := &runtime{config: cfg, resolver: resolver}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 1)
	done := make(chan error, 1)
	go func() {
		done <- watchConfig(ctx, rt, func() {
			select {
			case changed <- struct{}{}:
			default:
			}
		})
	}()

	// Give the watcher time to register.
	time.Sleep(100 * time.Millisecond)
	writeConfig(t, dir, string(collections.V2))

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("collection change was not reported")
	}
	assert.Equal(t, collections.V2, resolver.Active())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watchConfig did not stop")
	}
}

func TestWatchConfig_NoPathBlocksUntilCancel(t *testing.T) {
	useRuntime(t, seededStore())
	rt, err := newRuntime(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	assert.NoError(t, watchConfig(ctx, rt, func() { t.Error("unexpected change") }))
}
