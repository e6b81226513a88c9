package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"logistics-backoffice/internal/domain"
	"logistics-backoffice/internal/platform/db"
	"logistics-backoffice/internal/platform/logger"
	"logistics-backoffice/internal/ports"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store is the SQL-backed implementation of every repository port.
// Queries are written with '?' placeholders and rebound per driver.
type Store struct {
	DB     *sql.DB
	Driver string
	Log    *logger.Logger

	q querier
}

var (
	_ ports.ShipmentRepository = (*Store)(nil)
	_ ports.RouteRepository    = (*Store)(nil)
	_ ports.ProductRepository  = (*Store)(nil)
	_ ports.DriverRepository   = (*Store)(nil)
	_ ports.FleetRepository    = (*Store)(nil)
	_ ports.OrderRepository    = (*Store)(nil)
	_ ports.ReportRepository   = (*Store)(nil)
)

func NewStore(conn *sql.DB, driver string, log *logger.Logger) *Store {
	return &Store{DB: conn, Driver: driver, Log: log, q: conn}
}

// WithTx runs fn against a Store bound to a single transaction.
// The transaction commits only when fn returns nil.
func (s *Store) WithTx(ctx context.Context, fn func(tx *Store) error) error {
	if s.DB == nil {
		return errors.New("sql store: DB is nil")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sql store: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(&Store{DB: s.DB, Driver: s.Driver, Log: s.Log, q: tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sql store: commit tx: %w", err)
	}
	return nil
}

// Ping checks connectivity for health checks.
func (s *Store) Ping(ctx context.Context) error {
	if s.DB == nil {
		return errors.New("sql store: DB is nil")
	}
	return s.DB.PingContext(ctx)
}

func (s *Store) ready() error {
	if s.q == nil {
		return errors.New("sql store: DB is nil")
	}
	return nil
}

func (s *Store) rebind(query string) string {
	return db.Rebind(s.Driver, query)
}

func (s *Store) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return s.q.ExecContext(ctx, s.rebind(query), args...)
}

func (s *Store) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return s.q.QueryContext(ctx, s.rebind(query), args...)
}

func (s *Store) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return s.q.QueryRowContext(ctx, s.rebind(query), args...)
}

// classify maps driver constraint errors onto domain error kinds.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return fmt.Errorf("%w: %s", domain.ErrConflict, pgErr.Message)
		case "23503", "23514", "23502":
			return fmt.Errorf("%w: %s", domain.ErrInvalidArgument, pgErr.Message)
		}
		return err
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return fmt.Errorf("%w: %s", domain.ErrConflict, liteErr.Error())
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY, sqlite3.SQLITE_CONSTRAINT_CHECK, sqlite3.SQLITE_CONSTRAINT_NOTNULL:
			return fmt.Errorf("%w: %s", domain.ErrInvalidArgument, liteErr.Error())
		case sqlite3.SQLITE_CONSTRAINT:
			if strings.Contains(liteErr.Error(), "UNIQUE") {
				return fmt.Errorf("%w: %s", domain.ErrConflict, liteErr.Error())
			}
			return fmt.Errorf("%w: %s", domain.ErrInvalidArgument, liteErr.Error())
		}
	}
	return err
}

func normalizePage(p ports.Page) ports.Page {
	if p.Skip < 0 {
		p.Skip = 0
	}
	if p.Limit <= 0 {
		p.Limit = 100
	}
	return p
}

func nullInt(p *int) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*p), Valid: true}
}

func intPtr(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}

func strPtr(n sql.NullString) *string {
	if !n.Valid {
		return nil
	}
	v := n.String
	return &v
}
