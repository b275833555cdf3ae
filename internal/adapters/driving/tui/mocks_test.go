package tui

import (
	"context"

	"github.com/custodia-labs/crhp-archive/internal/core/domain"
)

// MockLessonService is a mock implementation of driving.LessonPlanService.
type MockLessonService struct {
	content domain.LessonContent
	state   domain.LoadState
	next    domain.LoadState
	runs    int
}

func (m *MockLessonService) Content() domain.LessonContent { return m.content }

func (m *MockLessonService) Run(_ context.Context) domain.LoadState {
	m.runs++
	m.state = m.next
	return m.state
}

func (m *MockLessonService) Trigger(_ context.Context) uint64 { return 0 }

func (m *MockLessonService) State() domain.LoadState { return m.state }

func (m *MockLessonService) Close() {}
