package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/custodia-labs/crhp-archive/internal/adapters/driven/config/file"
	"github.com/custodia-labs/crhp-archive/internal/adapters/driven/storage/firestore"
	"github.com/custodia-labs/crhp-archive/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/crhp-archive/internal/adapters/driven/storage/mongo"
	"github.com/custodia-labs/crhp-archive/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/crhp-archive/internal/adapters/driven/storage/throttle"
	"github.com/custodia-labs/crhp-archive/internal/core/domain"
	"github.com/custodia-labs/crhp-archive/internal/core/ports/driven"
	"github.com/custodia-labs/crhp-archive/internal/core/services"
	"github.com/custodia-labs/crhp-archive/internal/logger"
)

// Config keys.
const (
	keyGlossaryCollection   = "archive.glossary_collection"
	keyStoreBackend         = "store.backend"
	keySQLiteDir            = "store.sqlite_dir"
	keyMongoURI             = "store.mongo_uri"
	keyMongoDatabase        = "store.mongo_database"
	keyFirestoreProject     = "store.firestore_project"
	keyFirestoreCredentials = "store.firestore_credentials"
	keyRatePerSecond        = "store.rate_per_second"
	keyLessonPath           = "lesson.path"
	keyLessonConcurrency    = "lesson.concurrency"
	keyServeDebug           = "serve.debug"
)

// envConfigDir overrides the default config directory.
const envConfigDir = "CRHP_CONFIG_DIR"

// Store backends.
const (
	backendFirestore = "firestore"
	backendMongo     = "mongo"
	backendSQLite    = "sqlite"
	backendMemory    = "memory"
)

// runtime holds the services wired for one command invocation.
type runtime struct {
	config   driven.ConfigStore
	resolver *services.ConfigResolver
	store    driven.DocumentStore
	archive  *services.ArchiveService
	content  domain.LessonContent
	closers  []func() error
}

// newRuntime builds the runtime. Tests replace it.
var newRuntime = openRuntime

func openRuntime(ctx context.Context) (*runtime, error) {
	dir := configDir
	if dir == "" {
		dir = os.Getenv(envConfigDir)
	}

	cfg, err := file.NewConfigStore(dir)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	resolver, err := services.NewConfigResolver(cfg)
	if err != nil {
		return nil, err
	}

	content, err := file.LoadLesson(cfg.GetString(keyLessonPath))
	if err != nil {
		return nil, fmt.Errorf("loading lesson: %w", err)
	}

	store, closer, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	rt := &runtime{
		config:   cfg,
		resolver: resolver,
		store:    store,
		archive:  services.NewArchiveService(store, resolver, cfg.GetString(keyGlossaryCollection)),
		content:  content,
	}
	if closer != nil {
		rt.closers = append(rt.closers, closer.Close)
	}

	logger.Section("runtime")
	logger.Debug("runtime ready: collection=%s backend=%s config=%s",
		resolver.Active(), backendName(cfg), cfg.Path())
	return rt, nil
}

func backendName(cfg driven.ConfigStore) string {
	if b := cfg.GetString(keyStoreBackend); b != "" {
		return b
	}
	return backendFirestore
}

// openStore selects the document store named by store.backend.
func openStore(ctx context.Context, cfg driven.ConfigStore) (driven.DocumentStore, driven.Closer, error) {
	var (
		store  driven.DocumentStore
		closer driven.Closer
	)

	switch backend := backendName(cfg); backend {
	case backendFirestore:
		s, err := firestore.New(ctx, firestore.Config{
			ProjectID:       cfg.GetString(keyFirestoreProject),
			CredentialsFile: cfg.GetString(keyFirestoreCredentials),
		})
		if err != nil {
			return nil, nil, err
		}
		store, closer = s, s
	case backendMongo:
		s, err := mongo.Connect(ctx, cfg.GetString(keyMongoURI), cfg.GetString(keyMongoDatabase))
		if err != nil {
			return nil, nil, err
		}
		store, closer = s, s
	case backendSQLite:
		s, err := sqlite.NewStore(cfg.GetString(keySQLiteDir))
		if err != nil {
			return nil, nil, err
		}
		store, closer = s, s
	case backendMemory:
		store = memory.NewDocumentStore()
	default:
		return nil, nil, fmt.Errorf("store backend %q: %w", backend, domain.ErrUnsupportedType)
	}

	if rate := cfg.GetFloat(keyRatePerSecond); rate > 0 {
		store = throttle.New(store, rate, throttle.DefaultBurst)
	}
	return store, closer, nil
}

// lessonService creates the orchestrator with config-driven options.
func (r *runtime) lessonService(opts ...services.LessonOption) (*services.LessonPlanService, error) {
	base := []services.LessonOption{
		services.WithGlossaryCollection(r.config.GetString(keyGlossaryCollection)),
	}
	if n := r.config.GetInt(keyLessonConcurrency); n > 0 {
		base = append(base, services.WithConcurrency(n))
	}
	return services.NewLessonPlanService(r.content, r.resolver, r.store, append(base, opts...)...)
}

// reloadConfig re-reads the config file and reports whether the active
// collection changed.
func (r *runtime) reloadConfig() (bool, error) {
	if err := r.config.Load(); err != nil {
		return false, fmt.Errorf("reloading config: %w", err)
	}
	return r.resolver.Reload()
}

// Close releases store connections.
func (r *runtime) Close() {
	for _, c := range r.closers {
		if err := c(); err != nil {
			logger.Warn("closing store: %v", err)
		}
	}
}
