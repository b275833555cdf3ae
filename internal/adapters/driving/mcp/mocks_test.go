package mcp

import (
	"context"

	"github.com/custodia-labs/crhp-archive/internal/core/domain"
)

// mockArchiveService is a mock implementation of driving.ArchiveService.
type mockArchiveService struct {
	interview *domain.Interview
	clip      *domain.Clip
	term      *domain.GlossaryTerm
	err       error

	lastInterviewID string
	lastClipID      string
}

func (m *mockArchiveService) Collection() domain.Collection {
	return "interviewsV2"
}

func (m *mockArchiveService) Interview(_ context.Context, id string) (*domain.Interview, error) {
	m.lastInterviewID = id
	return m.interview, m.err
}

func (m *mockArchiveService) Clip(_ context.Context, interviewID, clipID string) (*domain.Clip, error) {
	m.lastInterviewID = interviewID
	m.lastClipID = clipID
	return m.clip, m.err
}

func (m *mockArchiveService) Term(_ context.Context, _ string) (*domain.GlossaryTerm, error) {
	return m.term, m.err
}

// mockLessonService is a mock implementation of driving.LessonPlanService.
type mockLessonService struct {
	content domain.LessonContent
	state   domain.LoadState
	runs    int
}

func (m *mockLessonService) Content() domain.LessonContent { return m.content }

func (m *mockLessonService) Run(_ context.Context) domain.LoadState {
	m.runs++
	return m.state
}

func (m *mockLessonService) Trigger(_ context.Context) uint64 { return m.state.Generation }

func (m *mockLessonService) State() domain.LoadState { return m.state }

func (m *mockLessonService) Close() {}
