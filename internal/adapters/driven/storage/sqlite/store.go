package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/crhp-archive/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/crhp-archive/internal/core/domain"
	"github.com/custodia-labs/crhp-archive/internal/core/ports/driven"
)

// Ensure Store implements the interfaces.
var (
	_ driven.DocumentStore  = (*Store)(nil)
	_ driven.Closer         = (*Store)(nil)
	_ driven.SnapshotWriter = (*Store)(nil)
)

// Store is a SQLite-backed archive snapshot.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (or creates) the snapshot in dataDir.
// If dataDir is empty, defaults to ~/.crhp/data.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".crhp", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "archive.db")

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(context.Background(), migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Get reads one document from the snapshot.
func (s *Store) Get(ctx context.Context, ref domain.DocumentRef) (*domain.RawDocument, error) {
	row := s.db.QueryRowContext(ctx, `SELECT fields FROM documents WHERE path = ?`, ref.Path())

	var fieldsJSON string
	if err := row.Scan(&fieldsJSON); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Missing(ref), nil
		}
		return nil, fmt.Errorf("scanning document: %w", err)
	}

	fields := make(map[string]any)
	if err := json.Unmarshal([]byte(fieldsJSON), &fields); err != nil {
		return nil, fmt.Errorf("unmarshalling fields of %s: %w", ref.Path(), err)
	}

	return &domain.RawDocument{
		Ref:    ref,
		ID:     ref.ID,
		Exists: true,
		Fields: fields,
	}, nil
}

// Put stores or replaces a document in the snapshot.
func (s *Store) Put(ctx context.Context, ref domain.DocumentRef, fields map[string]any) error {
	if fields == nil {
		fields = map[string]any{}
	}
	fieldsJSON, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("marshalling fields: %w", err)
	}

	var parent sql.NullString
	if ref.Parent != nil {
		parent = sql.NullString{String: ref.Parent.Path(), Valid: true}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO documents (path, collection, id, parent_path, fields, updated_at)
		VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(path) DO UPDATE SET
			fields = excluded.fields,
			updated_at = excluded.updated_at
	`, ref.Path(), ref.CollectionPath(), ref.ID, parent, string(fieldsJSON))
	if err != nil {
		return fmt.Errorf("saving document: %w", err)
	}
	return nil
}

// Count returns the number of documents in a collection path.
func (s *Store) Count(ctx context.Context, collectionPath string) (int, error) {
	var n int
	row := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents WHERE collection = ?`, collectionPath)
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("counting documents: %w", err)
	}
	return n, nil
}

// migration is one numbered *.up.sql file.
type migration struct {
	version int
	name    string
}

// pendingMigrations lists the up migrations in fsys newer than current.
func pendingMigrations(fsys fs.FS, current int) ([]migration, error) {
	names, err := fs.Glob(fsys, "*.up.sql")
	if err != nil {
		return nil, err
	}

	var pending []migration
	for _, name := range names {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			return nil, fmt.Errorf("migration %s: missing version prefix", name)
		}
		if version > current {
			pending = append(pending, migration{version: version, name: name})
		}
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].version < pending[j].version })
	return pending, nil
}

// migrate applies pending migrations, each in its own transaction.
func (s *Store) migrate(ctx context.Context, fsys fs.FS) error {
	if _, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`); err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var current int
	if err := s.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&current); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}

	pending, err := pendingMigrations(fsys, current)
	if err != nil {
		return err
	}

	for _, m := range pending {
		script, err := fs.ReadFile(fsys, m.name)
		if err != nil {
			return err
		}
		if err := s.apply(ctx, m, string(script)); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) apply(ctx context.Context, m migration, script string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, script); err != nil {
		return fmt.Errorf("executing migration %s: %w", m.name, err)
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES (?)`, m.version); err != nil {
		return fmt.Errorf("recording migration %s: %w", m.name, err)
	}
	return tx.Commit()
}
