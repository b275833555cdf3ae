package services

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/custodia-labs/crhp-archive/internal/collections"
	"github.com/custodia-labs/crhp-archive/internal/core/domain"
	"github.com/custodia-labs/crhp-archive/internal/core/ports/driven"
)

const (
	// ConfigKeyCollection is the config key naming the active collection.
	ConfigKeyCollection = "archive.collection"

	// EnvCollection overrides ConfigKeyCollection when set.
	EnvCollection = "CRHP_COLLECTION"
)

// Ensure resolvers implement the interface.
var (
	_ driven.CollectionResolver = (*StaticResolver)(nil)
	_ driven.CollectionResolver = (*ConfigResolver)(nil)
)

// StaticResolver always resolves to one collection.
type StaticResolver struct {
	collection domain.Collection
}

// NewStaticResolver creates a resolver for a registered collection.
func NewStaticResolver(c domain.Collection) (*StaticResolver, error) {
	if err := checkCollection(c); err != nil {
		return nil, err
	}
	return &StaticResolver{collection: c}, nil
}

// Active returns the configured collection.
func (r *StaticResolver) Active() domain.Collection {
	return r.collection
}

// ConfigResolver resolves the active collection from configuration.
// The environment variable CRHP_COLLECTION takes precedence over the
// archive.collection key.
type ConfigResolver struct {
	mu     sync.RWMutex
	store  driven.ConfigStore
	active domain.Collection
}

// NewConfigResolver resolves the collection once and fails fast when it is
// missing or unknown.
func NewConfigResolver(store driven.ConfigStore) (*ConfigResolver, error) {
	if store == nil {
		return nil, fmt.Errorf("config store: %w", domain.ErrInvalidInput)
	}
	c, err := resolveCollection(store)
	if err != nil {
		return nil, err
	}
	return &ConfigResolver{store: store, active: c}, nil
}

// Active returns the resolved collection.
func (r *ConfigResolver) Active() domain.Collection {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.active
}

// Reload re-resolves from the config store and reports whether the active
// collection changed. On error the previous collection stays active.
func (r *ConfigResolver) Reload() (bool, error) {
	c, err := resolveCollection(r.store)
	if err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	changed := c != r.active
	r.active = c
	return changed, nil
}

func resolveCollection(store driven.ConfigStore) (domain.Collection, error) {
	name := strings.TrimSpace(os.Getenv(EnvCollection))
	if name == "" {
		name = strings.TrimSpace(store.GetString(ConfigKeyCollection))
	}
	if name == "" {
		return "", fmt.Errorf("set %s or %s: %w", ConfigKeyCollection, EnvCollection, domain.ErrCollectionUnresolved)
	}

	c := domain.Collection(name)
	if err := checkCollection(c); err != nil {
		return "", err
	}
	return c, nil
}

func checkCollection(c domain.Collection) error {
	if c == "" {
		return domain.ErrCollectionUnresolved
	}
	if _, ok := collections.Lookup(c); !ok {
		return fmt.Errorf("collection %q: %w", c, domain.ErrUnsupportedType)
	}
	return nil
}
