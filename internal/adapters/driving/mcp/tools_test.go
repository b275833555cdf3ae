package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/crhp-archive/internal/core/domain"
)

func strPtr(s string) *string { return &s }

func TestServer_handleLessonPlan(t *testing.T) {
	ctx := context.Background()

	t.Run("returns composite view", func(t *testing.T) {
		view := domain.NewCompositeView()
		view.Terms["segregation"] = &domain.GlossaryTerm{ID: "segregation", EventTopic: strPtr("Segregation")}
		view.Clips["Little_Rock_Nine::segment_12"] = domain.ClipPair{
			Clip: &domain.Clip{ID: "segment_12", Timestamp: strPtr("00:12:04")},
		}
		lesson := &mockLessonService{
			content: domain.LessonContent{Title: "Little Rock"},
			state:   domain.LoadState{View: view, Generation: 1, Collection: "interviewsV2"},
		}
		server, err := NewServer(&Ports{Archive: &mockArchiveService{}, Lesson: lesson})
		require.NoError(t, err)

		_, output, err := server.handleLessonPlan(ctx, nil, LessonPlanInput{})

		require.NoError(t, err)
		assert.Equal(t, 1, lesson.runs)
		assert.Equal(t, "Little Rock", output.Title)
		assert.Equal(t, "interviewsV2", output.Collection)
		assert.Equal(t, "Segregation", *output.Terms["segregation"].EventTopic)
		assert.Nil(t, output.Clips["Little_Rock_Nine::segment_12"].Interview)
	})

	t.Run("returns error when content unavailable", func(t *testing.T) {
		failure := &domain.FetchError{
			Ref: domain.DocumentRef{Collection: "events_and_topics", ID: "segregation"},
			Err: errors.New("permission denied"),
		}
		lesson := &mockLessonService{state: domain.LoadState{Err: failure}}
		server, err := NewServer(&Ports{Archive: &mockArchiveService{}, Lesson: lesson})
		require.NoError(t, err)

		_, _, err = server.handleLessonPlan(ctx, nil, LessonPlanInput{})

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrContentUnavailable)
		assert.Contains(t, err.Error(), "permission denied")
	})
}

func TestServer_handleInterview(t *testing.T) {
	ctx := context.Background()

	t.Run("returns interview", func(t *testing.T) {
		archive := &mockArchiveService{
			interview: &domain.Interview{ID: "little_rock_nine", DocumentName: strPtr("Little Rock Nine")},
		}
		server, err := NewServer(&Ports{Archive: archive})
		require.NoError(t, err)

		_, output, err := server.handleInterview(ctx, nil, InterviewInput{InterviewID: "Little_Rock_Nine"})

		require.NoError(t, err)
		assert.Equal(t, "Little_Rock_Nine", archive.lastInterviewID)
		assert.Equal(t, "little_rock_nine", output.ID)
	})

	t.Run("returns not found", func(t *testing.T) {
		server, err := NewServer(&Ports{Archive: &mockArchiveService{err: domain.ErrNotFound}})
		require.NoError(t, err)

		_, _, err = server.handleInterview(ctx, nil, InterviewInput{InterviewID: "nobody"})

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestServer_handleClip(t *testing.T) {
	archive := &mockArchiveService{
		clip: &domain.Clip{ID: "segment_12", Topic: strPtr("Central High")},
	}
	server, err := NewServer(&Ports{Archive: archive})
	require.NoError(t, err)

	_, output, err := server.handleClip(context.Background(), nil, ClipInput{
		InterviewID: "Little_Rock_Nine",
		ClipID:      "segment_12",
	})

	require.NoError(t, err)
	assert.Equal(t, "segment_12", archive.lastClipID)
	assert.Equal(t, "Central High", *output.Topic)
}

func TestServer_handleTerm(t *testing.T) {
	archive := &mockArchiveService{
		term: &domain.GlossaryTerm{ID: "nonviolence", Description: strPtr("Protest without violence.")},
	}
	server, err := NewServer(&Ports{Archive: archive})
	require.NoError(t, err)

	_, output, err := server.handleTerm(context.Background(), nil, TermInput{TermID: "nonviolence"})

	require.NoError(t, err)
	assert.Equal(t, "nonviolence", output.ID)
	assert.Nil(t, output.EventTopic)
}
