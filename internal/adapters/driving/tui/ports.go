// Package tui provides an interactive terminal view of the lesson plan.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/crhp-archive/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the TUI.
type Ports struct {
	// Lesson aggregates the lesson plan.
	Lesson driving.LessonPlanService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Lesson == nil {
		return ErrMissingLessonService
	}
	return nil
}
