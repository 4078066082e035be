// Package memory keeps orders in process memory. It backs tests and the
// "memory" storage driver; nothing survives a restart.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/carlsonrocha-octa/softtek-backend/internal/core/domain/model/kernel"
	"github.com/carlsonrocha-octa/softtek-backend/internal/core/domain/model/order"
	"github.com/carlsonrocha-octa/softtek-backend/internal/core/ports"
	"github.com/carlsonrocha-octa/softtek-backend/internal/pkg/errs"
)

// ErrDuplicateOrder is the cause reported when an order ID is added twice.
var ErrDuplicateOrder = errors.New("order already exists")

type record struct {
	id        kernel.UUID
	branchID  string
	itemID    string
	quantity  int
	createdAt time.Time
	status    order.Status
}

func toRecord(o *order.Order) record {
	return record{
		id:        o.ID(),
		branchID:  o.BranchID(),
		itemID:    o.ItemID(),
		quantity:  o.Quantity(),
		createdAt: o.CreatedAt(),
		status:    o.Status(),
	}
}

func (r record) restore() (*order.Order, error) {
	return order.RestoreOrder(r.id, r.branchID, r.itemID, r.quantity, r.createdAt, r.status)
}

// Store is a goroutine-safe order table. Readers get fresh aggregates, never
// shared pointers.
type Store struct {
	mu     sync.RWMutex
	orders map[kernel.UUID]record
}

func NewStore() *Store {
	return &Store{orders: make(map[kernel.UUID]record)}
}

// OrderRepository returns a repository that writes straight to the store.
func (s *Store) OrderRepository() ports.OrderRepository {
	return &orderRepository{store: s}
}

func (s *Store) lookup(id kernel.UUID) (record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.orders[id]
	return r, ok
}

func (s *Store) snapshot() []record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]record, 0, len(s.orders))
	for _, r := range s.orders {
		out = append(out, r)
	}
	return out
}

// apply writes a batch atomically: every insert must be new and every update
// must hit an existing row, otherwise nothing changes.
func (s *Store) apply(inserts, updates []record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	inserted := make(map[kernel.UUID]struct{}, len(inserts))
	for _, r := range inserts {
		if _, ok := s.orders[r.id]; ok {
			return errs.NewPersistenceError("add order", ErrDuplicateOrder)
		}
		inserted[r.id] = struct{}{}
	}
	for _, r := range updates {
		_, exists := s.orders[r.id]
		_, pending := inserted[r.id]
		if !exists && !pending {
			return errs.NewObjectNotFoundError("order", r.id.String())
		}
	}

	for _, r := range inserts {
		s.orders[r.id] = r
	}
	for _, r := range updates {
		existing := s.orders[r.id]
		existing.status = r.status
		s.orders[r.id] = existing
	}
	return nil
}

type orderRepository struct {
	store *Store
}

func (r *orderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := aggregate.Validate(); err != nil {
		return err
	}
	return r.store.apply([]record{toRecord(aggregate)}, nil)
}

func (r *orderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := aggregate.Validate(); err != nil {
		return err
	}
	return r.store.apply(nil, []record{toRecord(aggregate)})
}

func (r *orderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := id.Validate(); err != nil {
		return nil, err
	}
	rec, ok := r.store.lookup(id)
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return rec.restore()
}

func (r *orderRepository) GetAll(ctx context.Context) ([]*order.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return restoreAll(r.store.snapshot())
}

func (r *orderRepository) CountByStatus(ctx context.Context) (map[order.Status]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	counts := make(map[order.Status]int)
	for _, rec := range r.store.snapshot() {
		counts[rec.status]++
	}
	return counts, nil
}

func restoreAll(records []record) ([]*order.Order, error) {
	sort.Slice(records, func(i, j int) bool {
		if !records[i].createdAt.Equal(records[j].createdAt) {
			return records[i].createdAt.After(records[j].createdAt)
		}
		return records[i].id.String() < records[j].id.String()
	})

	orders := make([]*order.Order, 0, len(records))
	for _, rec := range records {
		o, err := rec.restore()
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

var _ ports.OrderRepository = (*orderRepository)(nil)
