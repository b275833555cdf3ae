package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/crhp-archive/internal/core/domain"
)

var interviewRef = domain.DocumentRef{Collection: "interviewsV2", ID: "little_rock_nine"}

func TestNewDocumentStore(t *testing.T) {
	store := NewDocumentStore()
	require.NotNil(t, store)
	assert.NotNil(t, store.documents)
	assert.NotNil(t, store.failures)
	assert.Equal(t, 0, store.Len())
}

func TestDocumentStore_Get_Exists(t *testing.T) {
	store := NewDocumentStore()
	store.Put(interviewRef, map[string]any{"documentName": "Name"})

	raw, err := store.Get(context.Background(), interviewRef)
	require.NoError(t, err)
	assert.True(t, raw.Exists)
	assert.Equal(t, "little_rock_nine", raw.ID)
	assert.Equal(t, interviewRef, raw.Ref)
	assert.Equal(t, "Name", raw.Fields["documentName"])
}

func TestDocumentStore_Get_Missing(t *testing.T) {
	store := NewDocumentStore()

	raw, err := store.Get(context.Background(), interviewRef)
	require.NoError(t, err)
	assert.False(t, raw.Exists)
	assert.Equal(t, "little_rock_nine", raw.ID)
}

func TestDocumentStore_Get_Nested(t *testing.T) {
	store := NewDocumentStore()
	clipRef := interviewRef.Child("subSummaries", "segment_12")
	store.Put(clipRef, map[string]any{"timestamp": "00:12:04"})

	raw, err := store.Get(context.Background(), clipRef)
	require.NoError(t, err)
	assert.True(t, raw.Exists)

	parent, err := store.Get(context.Background(), interviewRef)
	require.NoError(t, err)
	assert.False(t, parent.Exists)
}

func TestDocumentStore_FailOn(t *testing.T) {
	store := NewDocumentStore()
	store.Put(interviewRef, map[string]any{})
	boom := errors.New("permission denied")

	store.FailOn(interviewRef, boom)
	_, err := store.Get(context.Background(), interviewRef)
	assert.ErrorIs(t, err, boom)

	store.FailOn(interviewRef, nil)
	raw, err := store.Get(context.Background(), interviewRef)
	require.NoError(t, err)
	assert.True(t, raw.Exists)
}

func TestDocumentStore_Get_CancelledContext(t *testing.T) {
	store := NewDocumentStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Get(ctx, interviewRef)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDocumentStore_CopiesFields(t *testing.T) {
	store := NewDocumentStore()
	fields := map[string]any{"documentName": "Original"}
	store.Put(interviewRef, fields)
	fields["documentName"] = "Changed"

	raw, err := store.Get(context.Background(), interviewRef)
	require.NoError(t, err)
	raw.Fields["documentName"] = "Mutated"

	again, err := store.Get(context.Background(), interviewRef)
	require.NoError(t, err)
	assert.Equal(t, "Original", again.Fields["documentName"])
}

func TestDocumentStore_ConcurrentAccess(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			store.Put(domain.DocumentRef{Collection: "c", ID: string(rune('a' + i%26))}, map[string]any{"i": i})
		}(i)
		go func() {
			defer wg.Done()
			_, _ = store.Get(ctx, interviewRef)
		}()
	}
	wg.Wait()
	assert.LessOrEqual(t, store.Len(), 26)
}
