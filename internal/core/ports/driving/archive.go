package driving

import (
	"context"

	"github.com/custodia-labs/crhp-archive/internal/core/domain"
)

// ArchiveService reads single canonical records from the archive.
type ArchiveService interface {
	// Collection returns the active collection version.
	Collection() domain.Collection

	// Interview returns the interview with the given logical id.
	Interview(ctx context.Context, interviewID string) (*domain.Interview, error)

	// Clip returns a clip nested under an interview.
	Clip(ctx context.Context, interviewID, clipID string) (*domain.Clip, error)

	// Term returns a glossary term.
	Term(ctx context.Context, termID string) (*domain.GlossaryTerm, error)
}
