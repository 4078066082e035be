package cmd

import (
	"context"
	"fmt"

	"github.com/carlsonrocha-octa/softtek-backend/internal/adapters/out/memory"
	"github.com/carlsonrocha-octa/softtek-backend/internal/adapters/out/postgres"
	"github.com/carlsonrocha-octa/softtek-backend/internal/adapters/out/postgres/orderrepo"
	"github.com/carlsonrocha-octa/softtek-backend/internal/adapters/out/sqlite"
	"github.com/carlsonrocha-octa/softtek-backend/internal/core/ports"
)

// Storage is the order store selected by STORAGE_DRIVER.
type Storage struct {
	driver     string
	uowFactory func() ports.UnitOfWork
	repository ports.OrderRepository
	migrate    func(context.Context) error
	close      func() error
}

// OpenStorage connects to the configured store. Migrations are not applied.
func OpenStorage(ctx context.Context, cfg Config) (*Storage, error) {
	switch cfg.StorageDriver {
	case StorageDriverPostgres:
		db, err := postgres.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			return nil, err
		}
		factory := postgres.NewGormUnitOfWorkFactory(db)
		return &Storage{
			driver:     cfg.StorageDriver,
			uowFactory: factory.Create,
			repository: orderrepo.NewGormOrderRepository(db),
			migrate:    func(ctx context.Context) error { return postgres.Migrate(ctx, db) },
			close:      func() error { return postgres.Close(db) },
		}, nil

	case StorageDriverSQLite:
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		factory := sqlite.NewUnitOfWorkFactory(db)
		return &Storage{
			driver:     cfg.StorageDriver,
			uowFactory: factory.Create,
			repository: sqlite.NewOrderRepository(db),
			migrate:    db.Migrate,
			close:      db.Close,
		}, nil

	case StorageDriverMemory:
		store := memory.NewStore()
		factory := memory.NewUnitOfWorkFactory(store)
		return &Storage{
			driver:     cfg.StorageDriver,
			uowFactory: factory.Create,
			repository: store.OrderRepository(),
			migrate:    func(context.Context) error { return nil },
			close:      func() error { return nil },
		}, nil

	default:
		return nil, fmt.Errorf("storage driver %q is not supported", cfg.StorageDriver)
	}
}

// Driver returns the name of the backing store.
func (s *Storage) Driver() string {
	return s.driver
}

// Migrate brings the schema up to date. It is a no-op for the memory store.
func (s *Storage) Migrate(ctx context.Context) error {
	if err := s.migrate(ctx); err != nil {
		return fmt.Errorf("migrating %s store: %w", s.driver, err)
	}
	return nil
}

// Close releases the underlying connections.
func (s *Storage) Close() error {
	return s.close()
}
