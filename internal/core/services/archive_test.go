package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/crhp-archive/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/crhp-archive/internal/collections"
	"github.com/custodia-labs/crhp-archive/internal/core/domain"
)

func newArchive(t *testing.T, c domain.Collection) (*ArchiveService, *memory.DocumentStore) {
	t.Helper()
	resolver, err := NewStaticResolver(c)
	require.NoError(t, err)
	store := memory.NewDocumentStore()
	return NewArchiveService(store, resolver, ""), store
}

func TestArchiveService_Interview(t *testing.T) {
	svc, store := newArchive(t, collections.V2)
	store.Put(domain.DocumentRef{Collection: "interviewsV2", ID: "fannie_lou_hamer"}, map[string]any{
		"documentName": "Fannie Lou Hamer",
		"role":         "Organizer, SNCC",
	})

	rec, err := svc.Interview(context.Background(), "Fannie Lou Hamer")

	require.NoError(t, err)
	assert.Equal(t, "fannie_lou_hamer", rec.ID)
	assert.Equal(t, "Fannie Lou Hamer", domain.StringOr(rec.DocumentName, ""))
	assert.Equal(t, "Organizer, SNCC", domain.StringOr(rec.Role, ""))
	assert.Nil(t, rec.VideoURL)
	assert.Equal(t, collections.V2, svc.Collection())
}

func TestArchiveService_InterviewNotFound(t *testing.T) {
	svc, _ := newArchive(t, collections.V2)

	_, err := svc.Interview(context.Background(), "nobody")

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NotErrorIs(t, err, domain.ErrFetchFailed)
}

func TestArchiveService_Clip(t *testing.T) {
	svc, store := newArchive(t, collections.Legacy)
	ref := domain.DocumentRef{Collection: "interviewSummaries", ID: "Little_Rock_Nine"}.
		Child("subSummaries", "segment_12")
	store.Put(ref, map[string]any{
		"title":     "Central High",
		"startTime": "00:12:04",
	})

	rec, err := svc.Clip(context.Background(), "Little_Rock_Nine", "segment_12")

	require.NoError(t, err)
	assert.Equal(t, "segment_12", rec.ID)
	assert.Equal(t, "Little_Rock_Nine", rec.InterviewID)
	assert.Equal(t, "Central High", domain.StringOr(rec.Topic, ""))
	assert.Equal(t, "00:12:04", domain.StringOr(rec.Timestamp, ""))
}

func TestArchiveService_Term(t *testing.T) {
	svc, store := newArchive(t, collections.V2)
	store.Put(domain.DocumentRef{Collection: collections.DefaultGlossaryCollection, ID: "segregation"}, map[string]any{
		"eventTopic": "Segregation",
	})

	rec, err := svc.Term(context.Background(), "segregation")

	require.NoError(t, err)
	assert.Equal(t, "Segregation", domain.StringOr(rec.EventTopic, ""))
	assert.Nil(t, rec.Description)
}

func TestArchiveService_StoreFailure(t *testing.T) {
	svc, store := newArchive(t, collections.V2)
	ref := domain.DocumentRef{Collection: collections.DefaultGlossaryCollection, ID: "segregation"}
	store.FailOn(ref, errors.New("permission denied"))

	_, err := svc.Term(context.Background(), "segregation")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrFetchFailed)
	var fetchErr *domain.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, ref.Path(), fetchErr.Ref.Path())
}
