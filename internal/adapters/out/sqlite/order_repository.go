package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/carlsonrocha-octa/softtek-backend/internal/core/domain/model/kernel"
	"github.com/carlsonrocha-octa/softtek-backend/internal/core/domain/model/order"
	"github.com/carlsonrocha-octa/softtek-backend/internal/core/ports"
	"github.com/carlsonrocha-octa/softtek-backend/internal/pkg/errs"
)

// timeLayout is fixed width so lexical order on created_at matches time order.
const timeLayout = "2006-01-02T15:04:05.000000Z"

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// OrderRepository implements ports.OrderRepository with plain SQL.
type OrderRepository struct {
	q querier
}

// NewOrderRepository returns a repository that reads and writes outside any transaction.
func NewOrderRepository(db *DB) *OrderRepository {
	return &OrderRepository{q: db.DB}
}

type scanner interface {
	Scan(dest ...any) error
}

func (r *OrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	_, err := r.q.ExecContext(ctx, `
		INSERT INTO orders (id, branch_id, item_id, quantity, created_at, status)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		aggregate.ID().String(),
		aggregate.BranchID(),
		aggregate.ItemID(),
		aggregate.Quantity(),
		aggregate.CreatedAt().UTC().Format(timeLayout),
		aggregate.Status().String(),
	)
	if err != nil {
		return errs.NewPersistenceError("add order", err)
	}

	return nil
}

func (r *OrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result, err := r.q.ExecContext(ctx, `UPDATE orders SET status = ? WHERE id = ?`,
		aggregate.Status().String(), aggregate.ID().String())
	if err != nil {
		return errs.NewPersistenceError("update order", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errs.NewPersistenceError("update order", err)
	}
	if affected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	return nil
}

func (r *OrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	row := r.q.QueryRowContext(ctx, `
		SELECT id, branch_id, item_id, quantity, created_at, status
		FROM orders WHERE id = ?
	`, id.String())

	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	if err != nil {
		return nil, errs.NewPersistenceError("get order", err)
	}

	return o, nil
}

func (r *OrderRepository) GetAll(ctx context.Context) ([]*order.Order, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT id, branch_id, item_id, quantity, created_at, status
		FROM orders
		ORDER BY created_at DESC, id
	`)
	if err != nil {
		return nil, errs.NewPersistenceError("list orders", err)
	}
	defer rows.Close()

	orders := make([]*order.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, errs.NewPersistenceError("list orders", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.NewPersistenceError("list orders", err)
	}

	return orders, nil
}

func (r *OrderRepository) CountByStatus(ctx context.Context) (map[order.Status]int, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT status, COUNT(*) FROM orders GROUP BY status`)
	if err != nil {
		return nil, errs.NewPersistenceError("count orders", err)
	}
	defer rows.Close()

	counts := make(map[order.Status]int)
	for rows.Next() {
		var (
			name  string
			total int
		)
		if err := rows.Scan(&name, &total); err != nil {
			return nil, errs.NewPersistenceError("count orders", err)
		}
		status, err := order.ParseStatus(name)
		if err != nil {
			return nil, err
		}
		counts[status] = total
	}
	if err := rows.Err(); err != nil {
		return nil, errs.NewPersistenceError("count orders", err)
	}

	return counts, nil
}

func scanOrder(s scanner) (*order.Order, error) {
	var (
		rawID, branchID, itemID, rawCreatedAt, rawStatus string
		quantity                                         int
	)
	if err := s.Scan(&rawID, &branchID, &itemID, &quantity, &rawCreatedAt, &rawStatus); err != nil {
		return nil, err
	}

	id, err := kernel.UUIDFromString(rawID)
	if err != nil {
		return nil, err
	}

	createdAt, err := time.Parse(timeLayout, rawCreatedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}

	status, err := order.ParseStatus(rawStatus)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(id, branchID, itemID, quantity, createdAt, status)
}

var _ ports.OrderRepository = (*OrderRepository)(nil)
