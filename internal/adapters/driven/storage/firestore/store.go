// Package firestore serves the archive from Cloud Firestore, the store the
// archive is hosted on. Document refs map one to one onto Firestore paths.
package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
	"google.golang.org/genproto/googleapis/type/latlng"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/custodia-labs/crhp-archive/internal/core/domain"
	"github.com/custodia-labs/crhp-archive/internal/core/ports/driven"
)

// Ensure Store implements the interfaces.
var (
	_ driven.DocumentStore = (*Store)(nil)
	_ driven.Closer        = (*Store)(nil)
)

// Config holds connection settings.
type Config struct {
	// ProjectID is the Google Cloud project hosting the database.
	ProjectID string

	// CredentialsFile is an optional service account key. When empty,
	// application default credentials are used.
	CredentialsFile string
}

// Store reads archive documents from Firestore.
type Store struct {
	client *firestore.Client
}

// New creates a Firestore client for cfg.
func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.ProjectID == "" {
		return nil, fmt.Errorf("firestore project: %w", domain.ErrInvalidInput)
	}

	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := firestore.NewClient(ctx, cfg.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}
	return &Store{client: client}, nil
}

// Close releases the client.
func (s *Store) Close() error {
	return s.client.Close()
}

// Get reads one document.
func (s *Store) Get(ctx context.Context, ref domain.DocumentRef) (*domain.RawDocument, error) {
	snap, err := s.client.Doc(ref.Path()).Get(ctx)
	if isNotFound(err) {
		return domain.Missing(ref), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", ref.Path(), err)
	}
	if !snap.Exists() {
		return domain.Missing(ref), nil
	}

	return &domain.RawDocument{
		Ref:    ref,
		ID:     snap.Ref.ID,
		Exists: true,
		Fields: plainMap(snap.Data()),
	}, nil
}

func isNotFound(err error) bool {
	return err != nil && status.Code(err) == codes.NotFound
}

func plainMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = plain(v)
	}
	return out
}

// plain converts Firestore specific values into strings and plain containers.
func plain(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return plainMap(t)
	case []any:
		list := make([]any, len(t))
		for i, e := range t {
			list[i] = plain(e)
		}
		return list
	case time.Time:
		return t.UTC().Format(time.RFC3339)
	case *firestore.DocumentRef:
		if t == nil {
			return nil
		}
		return t.Path
	case *latlng.LatLng:
		if t == nil {
			return nil
		}
		return fmt.Sprintf("%g,%g", t.GetLatitude(), t.GetLongitude())
	default:
		return v
	}
}
