package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/crhp-archive/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/crhp-archive/internal/collections"
	"github.com/custodia-labs/crhp-archive/internal/core/domain"
)

type putRecorder struct {
	mu   sync.Mutex
	docs map[string]map[string]any
	err  error
}

func (r *putRecorder) Put(_ context.Context, ref domain.DocumentRef, fields map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	if r.docs == nil {
		r.docs = make(map[string]map[string]any)
	}
	r.docs[ref.Path()] = fields
	return nil
}

func TestLessonRefs(t *testing.T) {
	content := domain.LessonContent{
		Terms: []string{"segregation"},
		Sources: []domain.SourceRef{
			{InterviewID: "Little_Rock_Nine", ClipID: "segment_12"},
			{InterviewID: "little rock nine", ClipID: "segment_13"},
		},
	}

	refs, err := LessonRefs(content, collections.V2, "")
	require.NoError(t, err)

	var paths []string
	for _, r := range refs {
		paths = append(paths, r.Path())
	}
	assert.Equal(t, []string{
		"events_and_topics/segregation",
		"interviewsV2/little_rock_nine",
		"interviewsV2/little_rock_nine/subSummaries/segment_12",
		"interviewsV2/little_rock_nine/subSummaries/segment_13",
	}, paths)
}

func TestLessonRefs_UnknownCollection(t *testing.T) {
	_, err := LessonRefs(testLesson(), "interviewsV9", "")
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}

func TestCopyLesson(t *testing.T) {
	src := memory.NewDocumentStore()
	src.Put(domain.DocumentRef{Collection: "events_and_topics", ID: "segregation"},
		map[string]any{"eventTopic": "Segregation"})
	src.Put(domain.DocumentRef{Collection: "interviewsV2", ID: "little_rock_nine"}.Child("subSummaries", "segment_12"),
		map[string]any{"timestamp": "00:12:04"})
	dst := &putRecorder{}

	res, err := CopyLesson(context.Background(), testLesson(), collections.V2, "", src, dst)

	require.NoError(t, err)
	assert.Equal(t, SnapshotResult{Copied: 2, Missing: 4}, res)
	assert.Equal(t, "00:12:04", dst.docs["interviewsV2/little_rock_nine/subSummaries/segment_12"]["timestamp"])
}

func TestCopyLesson_ReadFailureWritesNothing(t *testing.T) {
	src := memory.NewDocumentStore()
	src.Put(domain.DocumentRef{Collection: "events_and_topics", ID: "segregation"},
		map[string]any{"eventTopic": "Segregation"})
	src.FailOn(domain.DocumentRef{Collection: "interviewsV2", ID: "fannie_lou_hamer"}, errors.New("unavailable"))
	dst := &putRecorder{}

	_, err := CopyLesson(context.Background(), testLesson(), collections.V2, "", src, dst)

	assert.ErrorIs(t, err, domain.ErrFetchFailed)
	assert.Empty(t, dst.docs)
}

func TestCopyLesson_WriteFailure(t *testing.T) {
	src := memory.NewDocumentStore()
	src.Put(domain.DocumentRef{Collection: "events_and_topics", ID: "segregation"}, map[string]any{})
	dst := &putRecorder{err: errors.New("disk full")}

	_, err := CopyLesson(context.Background(), testLesson(), collections.V2, "", src, dst)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}
