package services

import (
	"context"
	"fmt"
	"logistics-backoffice/internal/domain"
	"logistics-backoffice/internal/platform/logger"
	"logistics-backoffice/internal/platform/obs"
	"logistics-backoffice/internal/ports"
	"math"
	"slices"
	"time"
)

const (
	DefaultMonthsCount  = 6
	RecentShipmentLimit = 8
	TopRouteLimit       = 6
)

// AggregateDashboard computes KPIs, the trailing month series and the summary
// tables from a shipment snapshot. It never mutates its input.
func AggregateDashboard(shipments []*domain.Shipment, now time.Time, monthsCount int) (*domain.Dashboard, error) {
	window, err := MonthWindow(now, monthsCount)
	if err != nil {
		return nil, fmt.Errorf("aggregate dashboard: %w", err)
	}

	var kpis domain.KPIs
	var statusCounts [2]int
	revenue := 0.0

	kpis.TotalOrders = len(shipments)
	for _, s := range shipments {
		switch {
		case s.HasStatus(domain.StatusDelivered):
			kpis.Deliveries++
			statusCounts[0]++
		case s.HasStatus(domain.StatusPending):
			kpis.Pending++
		case s.HasStatus(domain.StatusDelayed):
			statusCounts[1]++
		}
		revenue += s.Revenue
	}
	kpis.Revenue = roundCents(revenue)

	perMonth := make(map[monthKey]int, len(window))
	for _, s := range shipments {
		if s.ShippedAt == nil {
			continue
		}
		perMonth[keyOf(*s.ShippedAt)]++
	}

	labels := make([]string, 0, len(window))
	counts := make([]int, 0, len(window))
	for _, m := range window {
		labels = append(labels, m.Format(MonthLabelLayout))
		counts = append(counts, perMonth[keyOf(m)])
	}

	return &domain.Dashboard{
		KPIs: kpis,
		Charts: domain.Charts{
			Months:            labels,
			ShipmentsPerMonth: counts,
			StatusCounts:      statusCounts,
		},
		Tables: domain.Tables{
			RecentShipments: RecentShipments(shipments, RecentShipmentLimit),
			TopRoutes:       TopRoutes(shipments, TopRouteLimit),
		},
	}, nil
}

// RecentShipments returns up to limit shipments ordered by creation time,
// newest first. Equal timestamps keep their input order.
func RecentShipments(shipments []*domain.Shipment, limit int) []*domain.Shipment {
	sorted := slices.Clone(shipments)
	slices.SortStableFunc(sorted, func(a, b *domain.Shipment) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	if limit >= 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	if sorted == nil {
		sorted = []*domain.Shipment{}
	}
	return sorted
}

// TopRoutes ranks route names by shipment count, descending. Ties keep the
// order in which the route was first seen. Unroutable shipments count toward
// domain.UnknownRoute.
func TopRoutes(shipments []*domain.Shipment, limit int) []domain.RouteCount {
	index := make(map[string]int)
	out := []domain.RouteCount{}

	for _, s := range shipments {
		name := s.RouteLabel()
		if i, ok := index[name]; ok {
			out[i].Count++
			continue
		}
		index[name] = len(out)
		out = append(out, domain.RouteCount{Route: name, Count: 1})
	}

	slices.SortStableFunc(out, func(a, b domain.RouteCount) int {
		return b.Count - a.Count
	})

	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func roundCents(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}

// DashboardService fetches the shipment snapshot and aggregates it.
type DashboardService struct {
	Repo ports.ShipmentRepository
	Log  *logger.Logger
	// Now defaults to time.Now when nil.
	Now func() time.Time
}

func NewDashboardService(repo ports.ShipmentRepository, log *logger.Logger) *DashboardService {
	return &DashboardService{Repo: repo, Log: log, Now: time.Now}
}

func (s *DashboardService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// Compute returns the dashboard for the current moment. Fetch failures are
// wrapped and returned unchanged otherwise.
func (s *DashboardService) Compute(ctx context.Context, monthsCount int) (_ *domain.Dashboard, err error) {
	defer obs.Time(ctx, s.Log, "dashboard.Compute")(&err)

	if monthsCount < 1 {
		return nil, fmt.Errorf("compute dashboard: months count must be positive, got %d: %w", monthsCount, domain.ErrInvalidArgument)
	}
	if monthsCount > MaxMonthsCount {
		return nil, fmt.Errorf("compute dashboard: months count must be at most %d, got %d: %w", MaxMonthsCount, monthsCount, domain.ErrInvalidArgument)
	}

	shipments, err := s.Repo.ListShipments(ctx)
	if err != nil {
		return nil, fmt.Errorf("compute dashboard: list shipments: %w", err)
	}

	return AggregateDashboard(shipments, s.now(), monthsCount)
}

// Recent returns the newest shipments by creation time.
func (s *DashboardService) Recent(ctx context.Context, limit int) (_ []*domain.Shipment, err error) {
	defer obs.Time(ctx, s.Log, "dashboard.Recent")(&err)

	if limit < 1 {
		return nil, fmt.Errorf("recent shipments: limit must be positive, got %d: %w", limit, domain.ErrInvalidArgument)
	}

	shipments, err := s.Repo.ListShipments(ctx)
	if err != nil {
		return nil, fmt.Errorf("recent shipments: list shipments: %w", err)
	}
	return RecentShipments(shipments, limit), nil
}

// TopRoutes returns the busiest routes by shipment count.
func (s *DashboardService) TopRoutes(ctx context.Context, limit int) (_ []domain.RouteCount, err error) {
	defer obs.Time(ctx, s.Log, "dashboard.TopRoutes")(&err)

	if limit < 1 {
		return nil, fmt.Errorf("top routes: limit must be positive, got %d: %w", limit, domain.ErrInvalidArgument)
	}

	shipments, err := s.Repo.ListShipments(ctx)
	if err != nil {
		return nil, fmt.Errorf("top routes: list shipments: %w", err)
	}
	return TopRoutes(shipments, limit), nil
}
