package services

import (
	"context"
	"errors"
	"fmt"
	"logistics-backoffice/internal/domain"
	"logistics-backoffice/internal/platform/logger"
	"logistics-backoffice/internal/platform/obs"
	"logistics-backoffice/internal/ports"
	"strings"
)

// OrderService applies single-row order state changes.
type OrderService struct {
	Repo ports.OrderRepository
	Log  *logger.Logger
}

func NewOrderService(repo ports.OrderRepository, log *logger.Logger) *OrderService {
	return &OrderService{Repo: repo, Log: log}
}

// AssignFleet attaches a fleet to the order and marks it assigned.
func (s *OrderService) AssignFleet(ctx context.Context, orderID string, fleetID int) (err error) {
	defer obs.Time(ctx, s.Log, "orders.AssignFleet")(&err)

	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return fmt.Errorf("assign fleet: order_id must be non-empty: %w", domain.ErrInvalidArgument)
	}
	if fleetID < 1 {
		return fmt.Errorf("assign fleet: fleet_id must be positive, got %d: %w", fleetID, domain.ErrInvalidArgument)
	}

	order, err := s.Repo.GetOrder(ctx, orderID)
	if err != nil {
		return fmt.Errorf("assign fleet: order %q: %w", orderID, err)
	}

	order.FleetID = &fleetID
	order.Status = domain.OrderAssigned
	if err := s.Repo.UpdateOrder(ctx, order); err != nil {
		return fmt.Errorf("assign fleet: update order %q: %w", orderID, err)
	}
	return nil
}

// UpdateStatus overwrites the order status with the normalized value.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID string, status string) (err error) {
	defer obs.Time(ctx, s.Log, "orders.UpdateStatus")(&err)

	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return fmt.Errorf("update status: order_id must be non-empty: %w", domain.ErrInvalidArgument)
	}
	status = strings.ToLower(strings.TrimSpace(status))
	if status == "" {
		return fmt.Errorf("update status: status must be non-empty: %w", domain.ErrInvalidArgument)
	}

	order, err := s.Repo.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.Log.Info("status update for unknown order", "order_id", orderID)
		}
		return fmt.Errorf("update status: order %q: %w", orderID, err)
	}

	order.Status = status
	if err := s.Repo.UpdateOrder(ctx, order); err != nil {
		return fmt.Errorf("update status: update order %q: %w", orderID, err)
	}
	return nil
}
