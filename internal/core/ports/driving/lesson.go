package driving

import (
	"context"

	"github.com/custodia-labs/crhp-archive/internal/core/domain"
)

// LessonPlanService assembles the lesson plan composite view.
//
// State moves idle -> loading -> {done, error}. A new run always starts a
// fresh loading cycle; there is no partial terminal state.
type LessonPlanService interface {
	// Content returns the lesson descriptor the service was built with.
	Content() domain.LessonContent

	// Run performs one aggregation run and returns the state it produced.
	// If a newer run started meanwhile, the returned state is the newer
	// run's current state and this run's result is discarded. After Close
	// the returned state carries ErrClosed.
	Run(ctx context.Context) domain.LoadState

	// Trigger starts a run in the background and returns its generation.
	Trigger(ctx context.Context) uint64

	// State returns a snapshot of the current load state.
	State() domain.LoadState

	// Close tears the consumer down. No state changes are observable after it.
	Close()
}
