package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/bnema/dockpop/internal/application/port"
	"github.com/bnema/dockpop/internal/domain/entity"
	"github.com/bnema/dockpop/internal/domain/repository"
	"github.com/bnema/dockpop/internal/logging"
)

// LazyDB implements port.DatabaseProvider with lazy initialization.
// The connection is created on first access, so CLI commands that never
// hand off a layout skip the WASM compilation and migrations.
type LazyDB struct {
	dbPath string
	db     *sql.DB
	err    error
	once   sync.Once
	mu     sync.RWMutex
}

var _ port.DatabaseProvider = (*LazyDB)(nil)

// NewLazyDB creates a new lazy database provider.
func NewLazyDB(dbPath string) *LazyDB {
	return &LazyDB{dbPath: dbPath}
}

// DB returns the database connection, initializing it if necessary.
func (l *LazyDB) DB(ctx context.Context) (*sql.DB, error) {
	l.once.Do(func() {
		log := logging.FromContext(ctx)
		log.Debug().Str("path", l.dbPath).Msg("lazy database initialization starting")

		db, err := NewConnection(ctx, l.dbPath)
		l.mu.Lock()
		l.db, l.err = db, err
		l.mu.Unlock()
		if err != nil {
			log.Error().Err(err).Msg("lazy database initialization failed")
		}
	})

	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.err != nil {
		return nil, fmt.Errorf("database initialization failed: %w", l.err)
	}
	return l.db, nil
}

// Close closes the database connection if it was initialized.
func (l *LazyDB) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.db != nil {
		return l.db.Close()
	}
	return nil
}

// IsInitialized returns true if the database has been initialized.
func (l *LazyDB) IsInitialized() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.db != nil
}

// Path returns the database path.
func (l *LazyDB) Path() string {
	return l.dbPath
}

// LazyHandoffRepository opens the database on the first repository call.
type LazyHandoffRepository struct {
	provider port.DatabaseProvider
	repo     repository.HandoffRepository
	once     sync.Once
	initErr  error
}

// NewLazyHandoffRepository creates a lazy-loading handoff repository.
func NewLazyHandoffRepository(provider port.DatabaseProvider) repository.HandoffRepository {
	return &LazyHandoffRepository{provider: provider}
}

func (r *LazyHandoffRepository) init(ctx context.Context) error {
	r.once.Do(func() {
		db, err := r.provider.DB(ctx)
		if err != nil {
			r.initErr = err
			return
		}
		r.repo = NewHandoffRepository(db)
	})
	return r.initErr
}

func (r *LazyHandoffRepository) Save(ctx context.Context, payload *entity.HandoffPayload) error {
	if err := r.init(ctx); err != nil {
		return err
	}
	return r.repo.Save(ctx, payload)
}

func (r *LazyHandoffRepository) Get(ctx context.Context, key string) (*entity.HandoffPayload, error) {
	if err := r.init(ctx); err != nil {
		return nil, err
	}
	return r.repo.Get(ctx, key)
}

func (r *LazyHandoffRepository) Delete(ctx context.Context, key string) error {
	if err := r.init(ctx); err != nil {
		return err
	}
	return r.repo.Delete(ctx, key)
}

func (r *LazyHandoffRepository) List(ctx context.Context) ([]*entity.HandoffPayload, error) {
	if err := r.init(ctx); err != nil {
		return nil, err
	}
	return r.repo.List(ctx)
}

func (r *LazyHandoffRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	if err := r.init(ctx); err != nil {
		return 0, err
	}
	return r.repo.DeleteOlderThan(ctx, cutoff)
}
