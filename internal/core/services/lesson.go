package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/crhp-archive/internal/collections"
	"github.com/custodia-labs/crhp-archive/internal/core/domain"
	"github.com/custodia-labs/crhp-archive/internal/core/ports/driven"
	"github.com/custodia-labs/crhp-archive/internal/core/ports/driving"
	"github.com/custodia-labs/crhp-archive/internal/logger"
	"github.com/custodia-labs/crhp-archive/internal/mapping"
)

// DefaultConcurrency bounds the number of in-flight store reads per run.
const DefaultConcurrency = 8

// Ensure LessonPlanService implements the interface.
var _ driving.LessonPlanService = (*LessonPlanService)(nil)

// LessonOption configures a LessonPlanService.
type LessonOption func(*LessonPlanService)

// WithConcurrency sets the maximum number of concurrent reads.
// Values below one run fetches sequentially.
func WithConcurrency(n int) LessonOption {
	return func(s *LessonPlanService) {
		if n < 1 {
			n = 1
		}
		s.concurrency = n
	}
}

// WithOnChange registers a callback invoked on every state transition.
// Callbacks are delivered one at a time in publication order. A callback may
// call Run or Trigger; states those publish are delivered after it returns.
// It must not call Close.
func WithOnChange(fn func(domain.LoadState)) LessonOption {
	return func(s *LessonPlanService) {
		s.onChange = fn
	}
}

// WithGlossaryCollection overrides the collection holding glossary terms.
func WithGlossaryCollection(name string) LessonOption {
	return func(s *LessonPlanService) {
		if name != "" {
			s.glossary = name
		}
	}
}

// LessonPlanService aggregates the records referenced by a lesson into a
// composite view. Runs are numbered; only the latest run may publish state,
// and nothing is published once the service is closed.
type LessonPlanService struct {
	content     domain.LessonContent
	resolver    driven.CollectionResolver
	store       driven.DocumentStore
	glossary    string
	concurrency int
	onChange    func(domain.LoadState)

	mu          sync.Mutex
	state       domain.LoadState
	generation  uint64
	closed      bool
	pending     []domain.LoadState
	dispatching bool

	// notifyMu serialises callbacks so Close can wait for one in flight.
	notifyMu sync.Mutex
}

// NewLessonPlanService creates the orchestrator for one lesson.
func NewLessonPlanService(
	content domain.LessonContent,
	resolver driven.CollectionResolver,
	store driven.DocumentStore,
	opts ...LessonOption,
) (*LessonPlanService, error) {
	if resolver == nil || store == nil {
		return nil, fmt.Errorf("lesson plan: resolver and store are required: %w", domain.ErrInvalidInput)
	}
	if err := content.Validate(); err != nil {
		return nil, err
	}

	s := &LessonPlanService{
		content:     content,
		resolver:    resolver,
		store:       store,
		glossary:    collections.DefaultGlossaryCollection,
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Content returns the lesson content the service aggregates.
func (s *LessonPlanService) Content() domain.LessonContent {
	return s.content
}

// Run performs one aggregation and blocks until it settles.
// It returns the state current when the run ends, which belongs to a newer
// run if this one was superseded. After Close it returns a state whose Err
// is ErrClosed; the stored state is left untouched.
func (s *LessonPlanService) Run(ctx context.Context) domain.LoadState {
	gen, collection, prev, ok := s.begin()
	if !ok {
		return closedState(s.State())
	}
	return s.execute(ctx, gen, collection, prev)
}

// Trigger starts a run in the background and returns its generation.
// It returns zero when the service is closed.
func (s *LessonPlanService) Trigger(ctx context.Context) uint64 {
	gen, collection, prev, ok := s.begin()
	if !ok {
		return 0
	}
	go s.execute(ctx, gen, collection, prev)
	return gen
}

// State returns a snapshot of the current load state.
func (s *LessonPlanService) State() domain.LoadState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Close stops all future state updates. Runs still in flight finish
// without publishing.
func (s *LessonPlanService) Close() {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

func closedState(last domain.LoadState) domain.LoadState {
	return domain.LoadState{
		Err:        fmt.Errorf("lesson plan: %w", domain.ErrClosed),
		Generation: last.Generation,
		Collection: last.Collection,
	}
}

// begin claims a new generation and publishes the loading state.
// It also returns the state the run replaced.
func (s *LessonPlanService) begin() (uint64, domain.Collection, domain.LoadState, bool) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return 0, "", domain.LoadState{}, false
	}
	prev := s.state
	s.generation++
	gen := s.generation
	collection := s.resolver.Active()
	s.state = domain.LoadState{
		Loading:    true,
		Generation: gen,
		Collection: collection,
	}
	snapshot := s.state
	s.mu.Unlock()

	s.notify(snapshot)
	return gen, collection, prev, true
}

func (s *LessonPlanService) execute(
	ctx context.Context,
	gen uint64,
	collection domain.Collection,
	prev domain.LoadState,
) domain.LoadState {
	log := logger.With(logger.Fields{
		"run":        uuid.NewString(),
		"generation": gen,
		"collection": collection.String(),
	})
	log.Debugf("lesson plan run started: %d terms, %d sources", len(s.content.Terms), len(s.content.Sources))

	view, err := s.aggregate(ctx, collection)
	if err != nil && ctx.Err() != nil {
		// Cancelled by the caller, not a store failure.
		log.Debugf("lesson plan run cancelled: %v", ctx.Err())
		return s.abandon(gen, collection, prev, ctx.Err())
	}
	if err != nil {
		var fetchErr *domain.FetchError
		if errors.As(err, &fetchErr) {
			log.Errorf("lesson plan run failed reading %s: %v", fetchErr.Ref.Path(), fetchErr.Err)
		} else {
			log.Errorf("lesson plan run failed: %v", err)
		}
	}

	return s.finish(gen, collection, view, err, log)
}

// finish publishes the result of run gen unless it went stale.
func (s *LessonPlanService) finish(
	gen uint64,
	collection domain.Collection,
	view *domain.CompositeView,
	err error,
	log logger.Entry,
) domain.LoadState {
	s.mu.Lock()
	if s.closed || gen != s.generation {
		current, closed := s.state, s.closed
		s.mu.Unlock()
		log.Debugf("lesson plan run discarded (closed=%t, latest=%d)", closed, current.Generation)
		if closed {
			return closedState(current)
		}
		return current
	}

	if err != nil {
		s.state = domain.LoadState{Err: err, Generation: gen, Collection: collection}
	} else {
		s.state = domain.LoadState{View: view, Generation: gen, Collection: collection}
	}
	snapshot := s.state
	s.mu.Unlock()

	s.notify(snapshot)
	return snapshot
}

// abandon reverts a cancelled run to the state it replaced, renumbered so
// consumers see it as current. The caller gets the cancellation error.
func (s *LessonPlanService) abandon(
	gen uint64,
	collection domain.Collection,
	prev domain.LoadState,
	cause error,
) domain.LoadState {
	s.mu.Lock()
	if !s.closed && gen == s.generation {
		prev.Generation = gen
		s.state = prev
		s.mu.Unlock()
		s.notify(prev)
	} else {
		s.mu.Unlock()
	}
	return domain.LoadState{
		Err:        fmt.Errorf("lesson plan run cancelled: %w", cause),
		Generation: gen,
		Collection: collection,
	}
}

// notify queues state for the callback. The goroutine that finds the queue
// idle drains it; reentrant calls from a callback only enqueue.
func (s *LessonPlanService) notify(state domain.LoadState) {
	if s.onChange == nil {
		return
	}

	s.mu.Lock()
	s.pending = append(s.pending, state)
	if s.dispatching {
		s.mu.Unlock()
		return
	}
	s.dispatching = true
	s.mu.Unlock()

	for {
		s.mu.Lock()
		if len(s.pending) == 0 {
			s.dispatching = false
			s.mu.Unlock()
			return
		}
		next := s.pending[0]
		s.pending = s.pending[1:]
		s.mu.Unlock()

		s.deliver(next)
	}
}

// deliver runs the callback unless state went stale. Holding notifyMu lets
// Close wait for a callback in flight.
func (s *LessonPlanService) deliver(state domain.LoadState) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	stale := s.closed || state.Generation != s.generation
	s.mu.Unlock()
	if !stale {
		s.onChange(state)
	}
}

// aggregate fetches every term, interview and clip the lesson references.
// The first store failure cancels the remaining reads and no view is built.
func (s *LessonPlanService) aggregate(ctx context.Context, collection domain.Collection) (*domain.CompositeView, error) {
	strategy, ok := collections.Lookup(collection)
	if !ok {
		return nil, fmt.Errorf("collection %q: %w", collection, domain.ErrUnsupportedType)
	}

	terms := make([]*domain.GlossaryTerm, len(s.content.Terms))
	interviews := make([]*domain.Interview, len(s.content.Sources))
	clips := make([]*domain.Clip, len(s.content.Sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, id := range s.content.Terms {
		g.Go(func() error {
			raw, err := fetch(gctx, s.store, domain.DocumentRef{Collection: s.glossary, ID: id})
			if err != nil || !raw.Exists {
				return err
			}
			term := mapping.MapGlossaryTerm(raw)
			terms[i] = &term
			return nil
		})
	}

	for i, src := range s.content.Sources {
		g.Go(func() error {
			raw, err := fetch(gctx, s.store, strategy.InterviewRef(src.InterviewID))
			if err != nil || !raw.Exists {
				return err
			}
			rec := mapping.MapInterview(raw, collection)
			interviews[i] = &rec
			return nil
		})
		g.Go(func() error {
			raw, err := fetch(gctx, s.store, strategy.ClipRef(src.InterviewID, src.ClipID))
			if err != nil || !raw.Exists {
				return err
			}
			rec := mapping.MapClip(raw, collection)
			clips[i] = &rec
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	view := domain.NewCompositeView()
	for i, id := range s.content.Terms {
		view.Terms[id] = terms[i]
	}
	for i, src := range s.content.Sources {
		view.Clips[src.Key()] = domain.ClipPair{Interview: interviews[i], Clip: clips[i]}
	}
	return view, nil
}
