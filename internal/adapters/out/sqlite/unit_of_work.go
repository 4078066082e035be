package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/carlsonrocha-octa/softtek-backend/internal/core/ports"
)

// ErrNoTransaction is returned by Commit and Rollback when Begin was not called.
var ErrNoTransaction = errors.New("no active transaction")

// UnitOfWorkFactory creates UnitOfWork instances over one database handle.
type UnitOfWorkFactory struct {
	db *DB
}

func NewUnitOfWorkFactory(db *DB) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{db: db}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{db: f.db}
}

// UnitOfWork wraps a *sql.Tx. While a transaction is open it holds the only
// pooled connection, so callers must not read through another handle until
// Commit or Rollback.
type UnitOfWork struct {
	db *DB
	tx *sql.Tx
}

func (uow *UnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx, err := uow.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	uow.tx = tx
	return nil
}

func (uow *UnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return ErrNoTransaction
	}

	err := uow.tx.Commit()
	uow.tx = nil
	return err
}

func (uow *UnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return ErrNoTransaction
	}

	err := uow.tx.Rollback()
	uow.tx = nil
	return err
}

func (uow *UnitOfWork) OrderRepository() ports.OrderRepository {
	if uow.tx != nil {
		return &OrderRepository{q: uow.tx}
	}
	return &OrderRepository{q: uow.db.DB}
}
