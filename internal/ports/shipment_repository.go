package ports

import (
	"context"
	"logistics-backoffice/internal/domain"
)

// Port: a boundary for reading and writing shipments and their routes.
type ShipmentRepository interface {
	// Retrieve every shipment with its route name resolved (nil when unresolvable).
	ListShipments(ctx context.Context) ([]*domain.Shipment, error)
	// Retrieve a page of shipments, newest first.
	ListShipmentsPage(ctx context.Context, page Page) ([]*domain.Shipment, error)
	CreateShipment(ctx context.Context, s *domain.Shipment) (*domain.Shipment, error)
}

type RouteRepository interface {
	ListRoutes(ctx context.Context, page Page) ([]*domain.Route, error)
	CreateRoute(ctx context.Context, name string) (*domain.Route, error)
}
