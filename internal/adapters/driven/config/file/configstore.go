package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/crhp-archive/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore keeps config.toml in memory as dotted keys. Tables are
// flattened on load and rebuilt on write.
type ConfigStore struct {
	mu       sync.RWMutex
	filePath string
	data     map[string]any
}

// NewConfigStore opens configDir/config.toml, creating configDir if needed.
// An empty configDir means ~/.crhp.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		configDir = filepath.Join(home, ".crhp")
	}
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	s := &ConfigStore{
		filePath: filepath.Join(configDir, "config.toml"),
		data:     make(map[string]any),
	}
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Get retrieves a configuration value by dotted key.
func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	val, ok := s.data[key]
	return val, ok
}

// GetString retrieves a string configuration value.
func (s *ConfigStore) GetString(key string) string {
	str, _ := valueAs[string](s, key)
	return str
}

// GetInt retrieves an integer configuration value.
func (s *ConfigStore) GetInt(key string) int {
	return int(s.GetFloat(key))
}

// GetFloat retrieves a numeric configuration value.
// TOML integers decode as int64 and are widened.
func (s *ConfigStore) GetFloat(key string) float64 {
	val, ok := s.Get(key)
	if !ok {
		return 0
	}
	switch v := val.(type) {
	case int64:
		return float64(v)
	case int:
		return float64(v)
	case float64:
		return v
	}
	return 0
}

// GetBool retrieves a boolean configuration value.
func (s *ConfigStore) GetBool(key string) bool {
	b, _ := valueAs[bool](s, key)
	return b
}

func valueAs[T any](s *ConfigStore, key string) (T, bool) {
	val, ok := s.Get(key)
	if !ok {
		var zero T
		return zero, false
	}
	v, ok := val.(T)
	return v, ok
}

// Set stores a value under a dotted key and rewrites the file.
func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = value

	data, err := toml.Marshal(nest(s.data))
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(s.filePath, data, 0600)
}

// Load re-reads the file. A missing file yields an empty config.
// On a parse error the previous values are kept.
func (s *ConfigStore) Load() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	loaded := make(map[string]any)
	if len(data) > 0 {
		var tables map[string]any
		if err := toml.Unmarshal(data, &tables); err != nil {
			return fmt.Errorf("parse %s: %w", s.filePath, err)
		}
		flatten(tables, "", loaded)
	}

	s.mu.Lock()
	s.data = loaded
	s.mu.Unlock()
	return nil
}

// flatten copies nested tables into out under dotted keys:
// {"store": {"backend": "mongo"}} becomes {"store.backend": "mongo"}.
func flatten(m map[string]any, prefix string, out map[string]any) {
	for key, value := range m {
		if prefix != "" {
			key = prefix + "." + key
		}
		if table, ok := value.(map[string]any); ok {
			flatten(table, key, out)
			continue
		}
		out[key] = value
	}
}

// nest is the inverse of flatten.
func nest(flat map[string]any) map[string]any {
	root := make(map[string]any)
	for key, value := range flat {
		parts := strings.Split(key, ".")
		table := root
		for _, part := range parts[:len(parts)-1] {
			next, ok := table[part].(map[string]any)
			if !ok {
				next = make(map[string]any)
				table[part] = next
			}
			table = next
		}
		table[parts[len(parts)-1]] = value
	}
	return root
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}
