package ports

import (
	"context"
	"logistics-backoffice/internal/domain"
)

type ProductRepository interface {
	ListProducts(ctx context.Context, page Page) ([]*domain.Product, error)
	CreateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error)
}

type DriverRepository interface {
	ListDrivers(ctx context.Context, page Page) ([]*domain.Driver, error)
	CreateDriver(ctx context.Context, d *domain.Driver) (*domain.Driver, error)
}

// Fleet listings resolve DriverName from the driver table.
type FleetRepository interface {
	ListFleets(ctx context.Context, page Page) ([]*domain.Fleet, error)
	CreateFleet(ctx context.Context, f *domain.Fleet) (*domain.Fleet, error)
}

type OrderRepository interface {
	ListOrders(ctx context.Context, page Page) ([]*domain.Order, error)
	CreateOrder(ctx context.Context, o *domain.Order) (*domain.Order, error)
	// Look up by the external order id; domain.ErrNotFound when missing.
	GetOrder(ctx context.Context, orderID string) (*domain.Order, error)
	UpdateOrder(ctx context.Context, o *domain.Order) error
}

type ReportRepository interface {
	ListReports(ctx context.Context, page Page) ([]*domain.Report, error)
	CreateReport(ctx context.Context, r *domain.Report) (*domain.Report, error)
	// domain.ErrNotFound when missing.
	GetReport(ctx context.Context, id int) (*domain.Report, error)
	DeleteReport(ctx context.Context, id int) error
}
