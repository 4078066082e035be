package memory

import (
	"context"
	"errors"

	"github.com/carlsonrocha-octa/softtek-backend/internal/core/domain/model/kernel"
	"github.com/carlsonrocha-octa/softtek-backend/internal/core/domain/model/order"
	"github.com/carlsonrocha-octa/softtek-backend/internal/core/ports"
	"github.com/carlsonrocha-octa/softtek-backend/internal/pkg/errs"
)

// ErrNoTransaction is returned by Commit and Rollback when Begin was not called.
var ErrNoTransaction = errors.New("no active transaction")

type UnitOfWorkFactory struct {
	store *Store
}

func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store}
}

// UnitOfWork buffers writes and applies them to the store in one step on Commit.
type UnitOfWork struct {
	store *Store
	tx    *pending
}

type pending struct {
	inserts []record
	updates []record
}

func (p *pending) find(id kernel.UUID) (record, bool) {
	for i := len(p.updates) - 1; i >= 0; i-- {
		if p.updates[i].id.IsEqual(id) {
			return p.updates[i], true
		}
	}
	for i := len(p.inserts) - 1; i >= 0; i-- {
		if p.inserts[i].id.IsEqual(id) {
			return p.inserts[i], true
		}
	}
	return record{}, false
}

func (uow *UnitOfWork) Begin(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if uow.tx == nil {
		uow.tx = &pending{}
	}
	return nil
}

func (uow *UnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return ErrNoTransaction
	}
	tx := uow.tx
	uow.tx = nil
	if err := ctx.Err(); err != nil {
		return err
	}
	return uow.store.apply(tx.inserts, tx.updates)
}

func (uow *UnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return ErrNoTransaction
	}
	uow.tx = nil
	return nil
}

func (uow *UnitOfWork) OrderRepository() ports.OrderRepository {
	if uow.tx == nil {
		return uow.store.OrderRepository()
	}
	return &txOrderRepository{store: uow.store, tx: uow.tx}
}

type txOrderRepository struct {
	store *Store
	tx    *pending
}

func (r *txOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if _, ok := r.lookup(aggregate.ID()); ok {
		return errs.NewPersistenceError("add order", ErrDuplicateOrder)
	}
	r.tx.inserts = append(r.tx.inserts, toRecord(aggregate))
	return nil
}

func (r *txOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if _, ok := r.lookup(aggregate.ID()); !ok {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}
	r.tx.updates = append(r.tx.updates, toRecord(aggregate))
	return nil
}

func (r *txOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := id.Validate(); err != nil {
		return nil, err
	}
	rec, ok := r.lookup(id)
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return rec.restore()
}

func (r *txOrderRepository) GetAll(ctx context.Context) ([]*order.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return restoreAll(r.merged())
}

func (r *txOrderRepository) CountByStatus(ctx context.Context) (map[order.Status]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	counts := make(map[order.Status]int)
	for _, rec := range r.merged() {
		counts[rec.status]++
	}
	return counts, nil
}

func (r *txOrderRepository) lookup(id kernel.UUID) (record, bool) {
	if rec, ok := r.tx.find(id); ok {
		if base, inStore := r.store.lookup(id); inStore {
			base.status = rec.status
			return base, true
		}
		return rec, true
	}
	return r.store.lookup(id)
}

func (r *txOrderRepository) merged() []record {
	byID := make(map[kernel.UUID]record)
	for _, rec := range r.store.snapshot() {
		byID[rec.id] = rec
	}
	for _, rec := range r.tx.inserts {
		byID[rec.id] = rec
	}
	for _, rec := range r.tx.updates {
		base := byID[rec.id]
		base.status = rec.status
		byID[rec.id] = base
	}
	out := make([]record, 0, len(byID))
	for _, rec := range byID {
		out = append(out, rec)
	}
	return out
}

var _ ports.OrderRepository = (*txOrderRepository)(nil)
