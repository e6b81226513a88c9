package repositories

import (
	"context"
	"fmt"
	"logistics-backoffice/internal/domain"
	"logistics-backoffice/internal/platform/obs"
	"logistics-backoffice/internal/ports"
)

func (s *Store) ListRoutes(ctx context.Context, page ports.Page) (_ []*domain.Route, err error) {
	defer obs.Time(ctx, s.Log, "routes.List")(&err)

	if err := s.ready(); err != nil {
		return nil, err
	}
	page = normalizePage(page)

	rows, err := s.query(ctx, `
	SELECT id, name
	FROM routes
	ORDER BY id
	LIMIT ? OFFSET ?;
	`, page.Limit, page.Skip)
	if err != nil {
		return nil, fmt.Errorf("list routes: query routes table: %w", err)
	}
	defer rows.Close()

	routes := make([]*domain.Route, 0, page.Limit)
	for rows.Next() {
		var r domain.Route
		if err := rows.Scan(&r.ID, &r.Name); err != nil {
			return nil, fmt.Errorf("list routes: scan row: %w", err)
		}
		routes = append(routes, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list routes: row iteration: %w", err)
	}

	return routes, nil
}

// Insert a route; domain.ErrConflict when the name is taken.
func (s *Store) CreateRoute(ctx context.Context, name string) (_ *domain.Route, err error) {
	defer obs.Time(ctx, s.Log, "routes.Create")(&err)

	if err := s.ready(); err != nil {
		return nil, err
	}

	r := &domain.Route{Name: name}
	err = s.queryRow(ctx, `INSERT INTO routes (name) VALUES (?) RETURNING id;`, name).Scan(&r.ID)
	if err != nil {
		return nil, fmt.Errorf("create route name=%q: %w", name, classify(err))
	}
	return r, nil
}
