// Package mongo serves the archive from MongoDB.
//
// Top-level collections map to MongoDB collections of the same name with the
// document id in _id. Sub-collection documents live in a collection named
// after the sub-collection, keyed by _key and scoped by the parent path
// stored in _parent.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/custodia-labs/crhp-archive/internal/core/domain"
	"github.com/custodia-labs/crhp-archive/internal/core/ports/driven"
)

// Reserved field names.
const (
	FieldID     = "_id"
	FieldKey    = "_key"
	FieldParent = "_parent"
)

// DefaultDatabase is used when no database name is configured.
const DefaultDatabase = "crhp"

const connectTimeout = 10 * time.Second

// Ensure Store implements the interfaces.
var (
	_ driven.DocumentStore = (*Store)(nil)
	_ driven.Closer        = (*Store)(nil)
)

// Store reads archive documents from a MongoDB database.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect dials uri and verifies the connection.
func Connect(ctx context.Context, uri, database string) (*Store, error) {
	if uri == "" {
		return nil, fmt.Errorf("mongo uri: %w", domain.ErrInvalidInput)
	}
	if database == "" {
		database = DefaultDatabase
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("pinging mongo: %w", err)
	}

	return &Store{client: client, db: client.Database(database)}, nil
}

// Close disconnects the client.
func (s *Store) Close() error {
	return s.client.Disconnect(context.Background())
}

// Get reads one document.
func (s *Store) Get(ctx context.Context, ref domain.DocumentRef) (*domain.RawDocument, error) {
	var doc bson.M
	err := s.db.Collection(ref.Collection).FindOne(ctx, filterFor(ref)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Missing(ref), nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding %s: %w", ref.Path(), err)
	}

	return &domain.RawDocument{
		Ref:    ref,
		ID:     ref.ID,
		Exists: true,
		Fields: fieldsOf(doc),
	}, nil
}

// filterFor builds the lookup filter for ref.
func filterFor(ref domain.DocumentRef) bson.D {
	if ref.Parent == nil {
		return bson.D{{Key: FieldID, Value: ref.ID}}
	}
	return bson.D{
		{Key: FieldParent, Value: ref.Parent.Path()},
		{Key: FieldKey, Value: ref.ID},
	}
}

// fieldsOf strips reserved fields and converts BSON values to plain Go values.
func fieldsOf(doc bson.M) map[string]any {
	out := make(map[string]any, len(doc))
	for k, v := range doc {
		switch k {
		case FieldID, FieldKey, FieldParent:
			continue
		}
		out[k] = plain(v)
	}
	return out
}

func plain(v any) any {
	switch t := v.(type) {
	case primitive.M:
		m := make(map[string]any, len(t))
		for k, e := range t {
			m[k] = plain(e)
		}
		return m
	case primitive.D:
		m := make(map[string]any, len(t))
		for _, e := range t {
			m[e.Key] = plain(e.Value)
		}
		return m
	case primitive.A:
		list := make([]any, len(t))
		for i, e := range t {
			list[i] = plain(e)
		}
		return list
	case primitive.DateTime:
		return t.Time().UTC().Format(time.RFC3339)
	case primitive.ObjectID:
		return t.Hex()
	case primitive.Decimal128:
		return t.String()
	default:
		return v
	}
}
