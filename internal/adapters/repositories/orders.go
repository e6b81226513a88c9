package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"logistics-backoffice/internal/domain"
	"logistics-backoffice/internal/platform/obs"
	"logistics-backoffice/internal/ports"
)

const orderColumns = `
	id,
	order_id,
	order_name,
	product_id,
	destination,
	customer_name,
	status,
	fleet_id
`

func (s *Store) ListOrders(ctx context.Context, page ports.Page) (_ []*domain.Order, err error) {
	defer obs.Time(ctx, s.Log, "orders.List")(&err)

	if err := s.ready(); err != nil {
		return nil, err
	}
	page = normalizePage(page)

	rows, err := s.query(ctx, `
	SELECT`+orderColumns+`
	FROM orders
	ORDER BY id
	LIMIT ? OFFSET ?;
	`, page.Limit, page.Skip)
	if err != nil {
		return nil, fmt.Errorf("list orders: query orders table: %w", err)
	}
	defer rows.Close()

	orders := make([]*domain.Order, 0, page.Limit)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("list orders: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list orders: row iteration: %w", err)
	}

	return orders, nil
}

// Insert an order; the status defaults to pending.
func (s *Store) CreateOrder(ctx context.Context, o *domain.Order) (_ *domain.Order, err error) {
	defer obs.Time(ctx, s.Log, "orders.Create")(&err)

	if err := s.ready(); err != nil {
		return nil, err
	}

	out := *o
	if out.Status == "" {
		out.Status = domain.StatusPending
	}

	err = s.queryRow(ctx, `
	INSERT INTO orders (
		order_id,
		order_name,
		product_id,
		destination,
		customer_name,
		status,
		fleet_id
	)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	RETURNING id;
	`,
		out.OrderID,
		out.OrderName,
		out.ProductID,
		out.Destination,
		out.CustomerName,
		out.Status,
		nullInt(out.FleetID),
	).Scan(&out.ID)
	if err != nil {
		return nil, fmt.Errorf("create order order_id=%q: %w", out.OrderID, classify(err))
	}
	return &out, nil
}

func (s *Store) GetOrder(ctx context.Context, orderID string) (_ *domain.Order, err error) {
	defer obs.Time(ctx, s.Log, "orders.Get")(&err)

	if err := s.ready(); err != nil {
		return nil, err
	}

	row := s.queryRow(ctx, `
	SELECT`+orderColumns+`
	FROM orders
	WHERE order_id = ?;
	`, orderID)

	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get order %q: %w", orderID, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get order %q: %w", orderID, err)
	}
	return o, nil
}

// Persist status and fleet assignment for an existing order.
func (s *Store) UpdateOrder(ctx context.Context, o *domain.Order) (err error) {
	defer obs.Time(ctx, s.Log, "orders.Update")(&err)

	if err := s.ready(); err != nil {
		return err
	}

	res, err := s.exec(ctx, `
	UPDATE orders
	SET status = ?, fleet_id = ?
	WHERE order_id = ?;
	`, o.Status, nullInt(o.FleetID), o.OrderID)
	if err != nil {
		return fmt.Errorf("update order %q: %w", o.OrderID, classify(err))
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update order %q: rows affected: %w", o.OrderID, err)
	}
	if n == 0 {
		return fmt.Errorf("update order %q: %w", o.OrderID, domain.ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var (
		o       domain.Order
		fleetID sql.NullInt64
	)
	err := row.Scan(
		&o.ID,
		&o.OrderID,
		&o.OrderName,
		&o.ProductID,
		&o.Destination,
		&o.CustomerName,
		&o.Status,
		&fleetID,
	)
	if err != nil {
		return nil, err
	}
	o.FleetID = intPtr(fleetID)
	return &o, nil
}
