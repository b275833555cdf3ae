package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/crhp-archive/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/crhp-archive/internal/collections"
	"github.com/custodia-labs/crhp-archive/internal/core/domain"
	"github.com/custodia-labs/crhp-archive/internal/core/services"
)

func testContent() domain.LessonContent {
	return domain.LessonContent{
		Title:   "Little Rock",
		Prompts: []string{"What did the Nine face on the first day?"},
		Terms:   []string{"segregation"},
		Sources: []domain.SourceRef{
			{InterviewID: "Little Rock Nine", ClipID: "segment_12", Note: "Arrival at Central High"},
		},
	}
}

func seededStore() *memory.DocumentStore {
	store := memory.NewDocumentStore()
	v2, _ := collections.Lookup(collections.V2)

	store.Put(domain.DocumentRef{Collection: collections.DefaultGlossaryCollection, ID: "segregation"},
		map[string]any{"eventTopic": "Segregation", "description": "Separation by race."})
	store.Put(v2.InterviewRef("Little Rock Nine"),
		map[string]any{"documentName": "Minnijean Brown Trickey", "role": "Student"})
	store.Put(v2.ClipRef("Little Rock Nine", "segment_12"),
		map[string]any{"topic": "First day", "timestamp": "00:12:04", "summary": "Turned away by the Guard."})
	return store
}

// useRuntime makes commands run against store with the V2 collection.
func useRuntime(t *testing.T, store *memory.DocumentStore) *memory.ConfigStore {
	t.Helper()
	t.Setenv(services.EnvCollection, "")

	cfg := memory.NewConfigStore(map[string]any{
		services.ConfigKeyCollection: string(collections.V2),
	})
	resolver, err := services.NewConfigResolver(cfg)
	require.NoError(t, err)

	original := newRuntime
	newRuntime = func(context.Context) (*runtime, error) {
		return &runtime{
			config:   cfg,
			resolver: resolver,
			store:    store,
			archive:  services.NewArchiveService(store, resolver, ""),
			content:  testContent(),
		}, nil
	}
	t.Cleanup(func() { newRuntime = original })
	return cfg
}

// execute runs the root command with args and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		jsonOutput = false
		normalizeFor = ""
	})

	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}
