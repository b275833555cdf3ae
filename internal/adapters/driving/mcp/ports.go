package mcp

import (
	"github.com/custodia-labs/crhp-archive/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
type Ports struct {
	// Archive reads single records.
	Archive driving.ArchiveService

	// Lesson aggregates the configured lesson. Optional; without it the
	// lesson_plan tool and lesson resource are not registered.
	Lesson driving.LessonPlanService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Archive == nil {
		return ErrMissingArchiveService
	}
	return nil
}
