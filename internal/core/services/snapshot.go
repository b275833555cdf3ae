package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/crhp-archive/internal/collections"
	"github.com/custodia-labs/crhp-archive/internal/core/domain"
	"github.com/custodia-labs/crhp-archive/internal/core/ports/driven"
	"github.com/custodia-labs/crhp-archive/internal/logger"
)

// SnapshotResult counts the documents handled by CopyLesson.
type SnapshotResult struct {
	Copied  int
	Missing int
}

// LessonRefs lists the store addresses a lesson reads under collection,
// without duplicates. Terms come first, then interview and clip per source.
func LessonRefs(content domain.LessonContent, collection domain.Collection, glossary string) ([]domain.DocumentRef, error) {
	strategy, ok := collections.Lookup(collection)
	if !ok {
		return nil, fmt.Errorf("collection %q: %w", collection, domain.ErrUnsupportedType)
	}
	if glossary == "" {
		glossary = collections.DefaultGlossaryCollection
	}

	seen := make(map[string]struct{})
	var refs []domain.DocumentRef
	add := func(ref domain.DocumentRef) {
		if _, dup := seen[ref.Path()]; dup {
			return
		}
		seen[ref.Path()] = struct{}{}
		refs = append(refs, ref)
	}

	for _, id := range content.Terms {
		add(domain.DocumentRef{Collection: glossary, ID: id})
	}
	for _, src := range content.Sources {
		add(strategy.InterviewRef(src.InterviewID))
		add(strategy.ClipRef(src.InterviewID, src.ClipID))
	}
	return refs, nil
}

// CopyLesson reads every document the lesson needs from src and writes the
// ones that exist to dst. Any read or write failure aborts the copy.
func CopyLesson(
	ctx context.Context,
	content domain.LessonContent,
	collection domain.Collection,
	glossary string,
	src driven.DocumentStore,
	dst driven.SnapshotWriter,
) (SnapshotResult, error) {
	refs, err := LessonRefs(content, collection, glossary)
	if err != nil {
		return SnapshotResult{}, err
	}

	docs := make([]*domain.RawDocument, len(refs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(DefaultConcurrency)
	for i, ref := range refs {
		g.Go(func() error {
			raw, err := fetch(gctx, src, ref)
			docs[i] = raw
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return SnapshotResult{}, err
	}

	var res SnapshotResult
	for _, raw := range docs {
		if !raw.Exists {
			logger.Debug("snapshot: %s not in archive", raw.Ref.Path())
			res.Missing++
			continue
		}
		if err := dst.Put(ctx, raw.Ref, raw.Fields); err != nil {
			return res, fmt.Errorf("snapshot %s: %w", raw.Ref.Path(), err)
		}
		res.Copied++
	}
	return res, nil
}
