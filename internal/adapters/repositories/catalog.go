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

func (s *Store) ListProducts(ctx context.Context, page ports.Page) (_ []*domain.Product, err error) {
	defer obs.Time(ctx, s.Log, "products.List")(&err)

	if err := s.ready(); err != nil {
		return nil, err
	}
	page = normalizePage(page)

	rows, err := s.query(ctx, `
	SELECT id, name, quantity
	FROM products
	ORDER BY id
	LIMIT ? OFFSET ?;
	`, page.Limit, page.Skip)
	if err != nil {
		return nil, fmt.Errorf("list products: query products table: %w", err)
	}
	defer rows.Close()

	products := make([]*domain.Product, 0, page.Limit)
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Quantity); err != nil {
			return nil, fmt.Errorf("list products: scan row: %w", err)
		}
		products = append(products, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list products: row iteration: %w", err)
	}

	return products, nil
}

func (s *Store) CreateProduct(ctx context.Context, p *domain.Product) (_ *domain.Product, err error) {
	defer obs.Time(ctx, s.Log, "products.Create")(&err)

	if err := s.ready(); err != nil {
		return nil, err
	}

	out := *p
	err = s.queryRow(ctx, `
	INSERT INTO products (name, quantity)
	VALUES (?, ?)
	RETURNING id;
	`, out.Name, out.Quantity).Scan(&out.ID)
	if err != nil {
		return nil, fmt.Errorf("create product name=%q: %w", out.Name, classify(err))
	}
	return &out, nil
}

func (s *Store) ListDrivers(ctx context.Context, page ports.Page) (_ []*domain.Driver, err error) {
	defer obs.Time(ctx, s.Log, "drivers.List")(&err)

	if err := s.ready(); err != nil {
		return nil, err
	}
	page = normalizePage(page)

	rows, err := s.query(ctx, `
	SELECT id, name
	FROM drivers
	ORDER BY id
	LIMIT ? OFFSET ?;
	`, page.Limit, page.Skip)
	if err != nil {
		return nil, fmt.Errorf("list drivers: query drivers table: %w", err)
	}
	defer rows.Close()

	drivers := make([]*domain.Driver, 0, page.Limit)
	for rows.Next() {
		var d domain.Driver
		if err := rows.Scan(&d.ID, &d.Name); err != nil {
			return nil, fmt.Errorf("list drivers: scan row: %w", err)
		}
		drivers = append(drivers, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list drivers: row iteration: %w", err)
	}

	return drivers, nil
}

func (s *Store) CreateDriver(ctx context.Context, d *domain.Driver) (_ *domain.Driver, err error) {
	defer obs.Time(ctx, s.Log, "drivers.Create")(&err)

	if err := s.ready(); err != nil {
		return nil, err
	}

	out := *d
	err = s.queryRow(ctx, `INSERT INTO drivers (name) VALUES (?) RETURNING id;`, out.Name).Scan(&out.ID)
	if err != nil {
		return nil, fmt.Errorf("create driver name=%q: %w", out.Name, classify(err))
	}
	return &out, nil
}

// Fleets are joined against drivers so the listing carries driver_name.
func (s *Store) ListFleets(ctx context.Context, page ports.Page) (_ []*domain.Fleet, err error) {
	defer obs.Time(ctx, s.Log, "fleets.List")(&err)

	if err := s.ready(); err != nil {
		return nil, err
	}
	page = normalizePage(page)

	rows, err := s.query(ctx, `
	SELECT
		f.id,
		f.name,
		f.driver_id,
		d.name,
		f.status,
		f.last_maintenance
	FROM fleets f
	LEFT JOIN drivers d ON d.id = f.driver_id
	ORDER BY f.id
	LIMIT ? OFFSET ?;
	`, page.Limit, page.Skip)
	if err != nil {
		return nil, fmt.Errorf("list fleets: query fleets table: %w", err)
	}
	defer rows.Close()

	fleets := make([]*domain.Fleet, 0, page.Limit)
	for rows.Next() {
		var (
			f           domain.Fleet
			driverName  sql.NullString
			maintenance sql.NullString
		)
		if err := rows.Scan(&f.ID, &f.Name, &f.DriverID, &driverName, &f.Status, &maintenance); err != nil {
			return nil, fmt.Errorf("list fleets: scan row: %w", err)
		}
		f.DriverName = driverName.String
		f.LastMaintenance = strPtr(maintenance)
		fleets = append(fleets, &f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list fleets: row iteration: %w", err)
	}

	return fleets, nil
}

// Insert a fleet; domain.ErrInvalidArgument when the driver does not exist.
func (s *Store) CreateFleet(ctx context.Context, f *domain.Fleet) (_ *domain.Fleet, err error) {
	defer obs.Time(ctx, s.Log, "fleets.Create")(&err)

	if err := s.ready(); err != nil {
		return nil, err
	}

	out := *f
	if out.Status == "" {
		out.Status = domain.FleetActive
	}

	var maintenance sql.NullString
	if out.LastMaintenance != nil {
		maintenance = sql.NullString{String: *out.LastMaintenance, Valid: true}
	}

	err = s.queryRow(ctx, `
	INSERT INTO fleets (name, driver_id, status, last_maintenance)
	VALUES (?, ?, ?, ?)
	RETURNING id;
	`, out.Name, out.DriverID, out.Status, maintenance).Scan(&out.ID)
	if err != nil {
		return nil, fmt.Errorf("create fleet name=%q: %w", out.Name, classify(err))
	}

	var driverName sql.NullString
	if err := s.queryRow(ctx, `SELECT name FROM drivers WHERE id = ?;`, out.DriverID).Scan(&driverName); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("create fleet: resolve driver %d: %w", out.DriverID, err)
	}
	out.DriverName = driverName.String

	return &out, nil
}
