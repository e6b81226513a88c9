package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"logistics-backoffice/internal/platform/db"
	"strings"
)

// InitSchema creates all tables and indexes if they do not exist yet.
func InitSchema(ctx context.Context, conn *sql.DB, driver string) error {
	if conn == nil {
		return errors.New("init schema: DB is nil")
	}

	// Column types differ only in identity and timestamp spelling.
	pk := "INTEGER PRIMARY KEY AUTOINCREMENT"
	ts := "TIMESTAMP"
	if driver == db.DriverPostgres {
		pk = "SERIAL PRIMARY KEY"
		ts = "TIMESTAMPTZ"
	}

	statements := []string{
		`
		CREATE TABLE IF NOT EXISTS drivers (
			id {pk},
			name TEXT NOT NULL
		);
		`,
		`
		CREATE TABLE IF NOT EXISTS fleets (
			id {pk},
			name TEXT NOT NULL,
			driver_id INTEGER NOT NULL REFERENCES drivers(id),
			status TEXT NOT NULL DEFAULT 'active',
			last_maintenance TEXT
		);
		`,
		`
		CREATE TABLE IF NOT EXISTS products (
			id {pk},
			name TEXT NOT NULL,
			quantity INTEGER NOT NULL DEFAULT 0
		);
		`,
		`
		CREATE TABLE IF NOT EXISTS orders (
			id {pk},
			order_id TEXT NOT NULL UNIQUE,
			order_name TEXT NOT NULL DEFAULT '',
			product_id INTEGER NOT NULL REFERENCES products(id),
			destination TEXT NOT NULL DEFAULT '',
			customer_name TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'pending',
			fleet_id INTEGER REFERENCES fleets(id)
		);
		`,
		`
		CREATE TABLE IF NOT EXISTS reports (
			id {pk},
			title TEXT NOT NULL,
			content TEXT NOT NULL DEFAULT '',
			created_at {ts} NOT NULL
		);
		`,
		`
		CREATE TABLE IF NOT EXISTS routes (
			id {pk},
			name TEXT NOT NULL UNIQUE
		);
		`,
		`
		CREATE TABLE IF NOT EXISTS shipments (
			id {pk},
			tracking_id TEXT NOT NULL UNIQUE,
			customer_name TEXT NOT NULL DEFAULT '',
			route_id INTEGER REFERENCES routes(id) ON DELETE SET NULL,
			status TEXT NOT NULL DEFAULT 'pending',
			revenue DOUBLE PRECISION CHECK (revenue IS NULL OR revenue >= 0),
			shipped_at {ts},
			created_at {ts} NOT NULL
		);
		`,
		`
		CREATE INDEX IF NOT EXISTS idx_shipments_created_at
		ON shipments(created_at);
		`,
		`
		CREATE INDEX IF NOT EXISTS idx_orders_fleet_id
		ON orders(fleet_id);
		`,
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	r := strings.NewReplacer("{pk}", pk, "{ts}", ts)
	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, r.Replace(stmt)); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
