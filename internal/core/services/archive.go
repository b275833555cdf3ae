package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/crhp-archive/internal/collections"
	"github.com/custodia-labs/crhp-archive/internal/core/domain"
	"github.com/custodia-labs/crhp-archive/internal/core/ports/driven"
	"github.com/custodia-labs/crhp-archive/internal/core/ports/driving"
	"github.com/custodia-labs/crhp-archive/internal/mapping"
)

// Ensure ArchiveService implements the interface.
var _ driving.ArchiveService = (*ArchiveService)(nil)

// ArchiveService reads single canonical records.
type ArchiveService struct {
	store    driven.DocumentStore
	resolver driven.CollectionResolver
	glossary string
}

// NewArchiveService creates a new archive service.
// An empty glossary collection falls back to the default.
func NewArchiveService(
	store driven.DocumentStore,
	resolver driven.CollectionResolver,
	glossaryCollection string,
) *ArchiveService {
	if glossaryCollection == "" {
		glossaryCollection = collections.DefaultGlossaryCollection
	}
	return &ArchiveService{
		store:    store,
		resolver: resolver,
		glossary: glossaryCollection,
	}
}

// Collection returns the active collection version.
func (s *ArchiveService) Collection() domain.Collection {
	return s.resolver.Active()
}

// Interview returns the interview with the given logical id.
func (s *ArchiveService) Interview(ctx context.Context, interviewID string) (*domain.Interview, error) {
	c, strategy, err := s.strategy()
	if err != nil {
		return nil, err
	}

	raw, err := s.read(ctx, strategy.InterviewRef(interviewID))
	if err != nil {
		return nil, err
	}
	rec := mapping.MapInterview(raw, c)
	return &rec, nil
}

// Clip returns a clip nested under an interview.
func (s *ArchiveService) Clip(ctx context.Context, interviewID, clipID string) (*domain.Clip, error) {
	c, strategy, err := s.strategy()
	if err != nil {
		return nil, err
	}

	raw, err := s.read(ctx, strategy.ClipRef(interviewID, clipID))
	if err != nil {
		return nil, err
	}
	rec := mapping.MapClip(raw, c)
	return &rec, nil
}

// Term returns a glossary term.
func (s *ArchiveService) Term(ctx context.Context, termID string) (*domain.GlossaryTerm, error) {
	raw, err := s.read(ctx, domain.DocumentRef{Collection: s.glossary, ID: termID})
	if err != nil {
		return nil, err
	}
	rec := mapping.MapGlossaryTerm(raw)
	return &rec, nil
}

func (s *ArchiveService) strategy() (domain.Collection, collections.Strategy, error) {
	c := s.resolver.Active()
	strategy, ok := collections.Lookup(c)
	if !ok {
		return c, collections.Strategy{}, fmt.Errorf("collection %q: %w", c, domain.ErrUnsupportedType)
	}
	return c, strategy, nil
}

func (s *ArchiveService) read(ctx context.Context, ref domain.DocumentRef) (*domain.RawDocument, error) {
	raw, err := fetch(ctx, s.store, ref)
	if err != nil {
		return nil, err
	}
	if !raw.Exists {
		return nil, fmt.Errorf("%s: %w", ref.Path(), domain.ErrNotFound)
	}
	return raw, nil
}
