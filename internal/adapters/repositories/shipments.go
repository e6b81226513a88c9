package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"logistics-backoffice/internal/domain"
	"logistics-backoffice/internal/platform/obs"
	"logistics-backoffice/internal/ports"
	"time"
)

const shipmentColumns = `
	s.id,
	s.tracking_id,
	s.customer_name,
	s.route_id,
	r.name,
	s.status,
	s.revenue,
	s.shipped_at,
	s.created_at
`

// Return every shipment with its route name; rows whose route is missing
// come back with a nil RouteName.
func (s *Store) ListShipments(ctx context.Context) (_ []*domain.Shipment, err error) {
	defer obs.Time(ctx, s.Log, "shipments.List")(&err)

	if err := s.ready(); err != nil {
		return nil, err
	}

	q := `
	SELECT` + shipmentColumns + `
	FROM shipments s
	LEFT JOIN routes r ON r.id = s.route_id
	ORDER BY s.shipped_at, s.id;
	`
	rows, err := s.query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list shipments: query shipments table: %w", err)
	}
	defer rows.Close()

	return scanShipments(rows)
}

// Return a page of shipments, newest first.
func (s *Store) ListShipmentsPage(ctx context.Context, page ports.Page) (_ []*domain.Shipment, err error) {
	defer obs.Time(ctx, s.Log, "shipments.ListPage")(&err)

	if err := s.ready(); err != nil {
		return nil, err
	}
	page = normalizePage(page)

	q := `
	SELECT` + shipmentColumns + `
	FROM shipments s
	LEFT JOIN routes r ON r.id = s.route_id
	ORDER BY s.created_at DESC, s.id DESC
	LIMIT ? OFFSET ?;
	`
	rows, err := s.query(ctx, q, page.Limit, page.Skip)
	if err != nil {
		return nil, fmt.Errorf("list shipments page: query shipments table: %w", err)
	}
	defer rows.Close()

	return scanShipments(rows)
}

// Insert a shipment. CreatedAt is stamped here when zero.
func (s *Store) CreateShipment(ctx context.Context, sh *domain.Shipment) (_ *domain.Shipment, err error) {
	defer obs.Time(ctx, s.Log, "shipments.Create")(&err)

	if err := s.ready(); err != nil {
		return nil, err
	}

	out := *sh
	if out.CreatedAt.IsZero() {
		out.CreatedAt = time.Now()
	}
	out.CreatedAt = out.CreatedAt.UTC()

	var shippedAt sql.NullTime
	if out.ShippedAt != nil {
		shippedAt = sql.NullTime{Time: out.ShippedAt.UTC(), Valid: true}
	}

	q := `
	INSERT INTO shipments (
		tracking_id,
		customer_name,
		route_id,
		status,
		revenue,
		shipped_at,
		created_at
	)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	RETURNING id;
	`
	err = s.queryRow(ctx, q,
		out.TrackingID,
		out.CustomerName,
		nullInt(out.RouteID),
		out.Status,
		out.Revenue,
		shippedAt,
		out.CreatedAt,
	).Scan(&out.ID)
	if err != nil {
		return nil, fmt.Errorf("create shipment tracking_id=%q: %w", out.TrackingID, classify(err))
	}

	if out.RouteID != nil {
		var name string
		err := s.queryRow(ctx, `SELECT name FROM routes WHERE id = ?;`, *out.RouteID).Scan(&name)
		if err != nil {
			return nil, fmt.Errorf("create shipment: resolve route %d: %w", *out.RouteID, err)
		}
		out.RouteName = &name
	}

	return &out, nil
}

func scanShipments(rows *sql.Rows) ([]*domain.Shipment, error) {
	shipments := make([]*domain.Shipment, 0, 64)
	for rows.Next() {
		var (
			sh        domain.Shipment
			routeID   sql.NullInt64
			routeName sql.NullString
			revenue   sql.NullFloat64
			shippedAt sql.NullTime
		)
		err := rows.Scan(
			&sh.ID,
			&sh.TrackingID,
			&sh.CustomerName,
			&routeID,
			&routeName,
			&sh.Status,
			&revenue,
			&shippedAt,
			&sh.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan shipment row: %w", err)
		}

		sh.RouteID = intPtr(routeID)
		sh.RouteName = strPtr(routeName)
		if revenue.Valid {
			sh.Revenue = revenue.Float64
		}
		if shippedAt.Valid {
			t := shippedAt.Time.UTC()
			sh.ShippedAt = &t
		}
		sh.CreatedAt = sh.CreatedAt.UTC()

		shipments = append(shipments, &sh)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("shipment row iteration: %w", err)
	}

	return shipments, nil
}
