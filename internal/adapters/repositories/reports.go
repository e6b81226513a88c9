package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"logistics-backoffice/internal/domain"
	"logistics-backoffice/internal/platform/obs"
	"logistics-backoffice/internal/ports"
	"time"
)

func (s *Store) ListReports(ctx context.Context, page ports.Page) (_ []*domain.Report, err error) {
	defer obs.Time(ctx, s.Log, "reports.List")(&err)

	if err := s.ready(); err != nil {
		return nil, err
	}
	page = normalizePage(page)

	rows, err := s.query(ctx, `
	SELECT id, title, content, created_at
	FROM reports
	ORDER BY id
	LIMIT ? OFFSET ?;
	`, page.Limit, page.Skip)
	if err != nil {
		return nil, fmt.Errorf("list reports: query reports table: %w", err)
	}
	defer rows.Close()

	reports := make([]*domain.Report, 0, page.Limit)
	for rows.Next() {
		var r domain.Report
		if err := rows.Scan(&r.ID, &r.Title, &r.Content, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("list reports: scan row: %w", err)
		}
		r.CreatedAt = r.CreatedAt.UTC()
		reports = append(reports, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list reports: row iteration: %w", err)
	}

	return reports, nil
}

func (s *Store) CreateReport(ctx context.Context, r *domain.Report) (_ *domain.Report, err error) {
	defer obs.Time(ctx, s.Log, "reports.Create")(&err)

	if err := s.ready(); err != nil {
		return nil, err
	}

	out := *r
	if out.CreatedAt.IsZero() {
		out.CreatedAt = time.Now()
	}
	out.CreatedAt = out.CreatedAt.UTC()

	err = s.queryRow(ctx, `
	INSERT INTO reports (title, content, created_at)
	VALUES (?, ?, ?)
	RETURNING id;
	`, out.Title, out.Content, out.CreatedAt).Scan(&out.ID)
	if err != nil {
		return nil, fmt.Errorf("create report title=%q: %w", out.Title, classify(err))
	}
	return &out, nil
}

func (s *Store) GetReport(ctx context.Context, id int) (_ *domain.Report, err error) {
	defer obs.Time(ctx, s.Log, "reports.Get")(&err)

	if err := s.ready(); err != nil {
		return nil, err
	}

	var r domain.Report
	err = s.queryRow(ctx, `
	SELECT id, title, content, created_at
	FROM reports
	WHERE id = ?;
	`, id).Scan(&r.ID, &r.Title, &r.Content, &r.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get report %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get report %d: %w", id, err)
	}
	r.CreatedAt = r.CreatedAt.UTC()
	return &r, nil
}

func (s *Store) DeleteReport(ctx context.Context, id int) (err error) {
	defer obs.Time(ctx, s.Log, "reports.Delete")(&err)

	if err := s.ready(); err != nil {
		return err
	}

	res, err := s.exec(ctx, `DELETE FROM reports WHERE id = ?;`, id)
	if err != nil {
		return fmt.Errorf("delete report %d: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete report %d: rows affected: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("delete report %d: %w", id, domain.ErrNotFound)
	}
	return nil
}
