package api

import (
	"logistics-backoffice/internal/api/handlers"
	"logistics-backoffice/internal/platform/logger"
	"logistics-backoffice/internal/ports"
	"logistics-backoffice/internal/services"
	"net/http"
	"strings"
)

// Store is everything the HTTP layer needs from persistence.
type Store interface {
	handlers.Pinger
	ports.ProductRepository
	ports.DriverRepository
	ports.FleetRepository
	ports.OrderRepository
	ports.ReportRepository
	ports.RouteRepository
	ports.ShipmentRepository
}

type Deps struct {
	Store       Store
	Log         *logger.Logger
	MonthsCount int
	CORSOrigins []string
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(d Deps) http.Handler {
	log := d.Log
	if log == nil {
		log = logger.Nop()
	}

	dashboard := services.NewDashboardService(d.Store, log)
	orders := services.NewOrderService(d.Store, log)

	health := &handlers.HealthHandler{DB: d.Store, Log: log}
	products := &handlers.ProductHandler{Repo: d.Store, Log: log}
	drivers := &handlers.DriverHandler{Repo: d.Store, Log: log}
	fleets := &handlers.FleetHandler{Repo: d.Store, Log: log}
	orderHandler := &handlers.OrderHandler{Repo: d.Store, Service: orders, Log: log}
	reports := &handlers.ReportHandler{Repo: d.Store, Log: log}
	routes := &handlers.RouteHandler{Repo: d.Store, Dashboard: dashboard, Log: log}
	shipments := &handlers.ShipmentHandler{Repo: d.Store, Dashboard: dashboard, Log: log}
	dash := &handlers.DashboardHandler{Service: dashboard, Log: log, MonthsCount: d.MonthsCount}

	mux := http.NewServeMux()
	handle := func(method, path string, h http.HandlerFunc) {
		for _, p := range withAndWithoutSlash(path) {
			mux.HandleFunc(method+" "+p, h)
		}
	}

	handle("GET", "/health", health.Health)

	handle("POST", "/api/products", products.Create)
	handle("GET", "/api/products", products.List)

	handle("POST", "/api/orders/webhook", orderHandler.Webhook)
	handle("GET", "/api/orders", orderHandler.List)
	handle("POST", "/api/assign_fleet", orderHandler.AssignFleet)
	handle("POST", "/api/update_status", orderHandler.UpdateStatus)

	handle("POST", "/api/fleets", fleets.Create)
	handle("GET", "/api/fleets", fleets.List)

	handle("POST", "/api/drivers", drivers.Create)
	handle("GET", "/api/drivers", drivers.List)

	handle("POST", "/api/reports", reports.Create)
	handle("GET", "/api/reports", reports.List)
	handle("GET", "/api/reports/{id}", reports.Get)
	handle("DELETE", "/api/reports/{id}", reports.Delete)

	handle("POST", "/api/routes", routes.Create)
	handle("GET", "/api/routes", routes.List)
	handle("GET", "/api/routes/top", routes.Top)

	handle("POST", "/api/shipments", shipments.Create)
	handle("GET", "/api/shipments", shipments.List)
	handle("GET", "/api/shipments/recent", shipments.Recent)

	handle("GET", "/api/dashboard", dash.Dashboard)

	var h http.Handler = mux
	h = corsMiddleware(d.CORSOrigins, h)
	h = recoverMiddleware(log, h)
	h = loggingMiddleware(log, h)
	h = requestIDMiddleware(h)
	return h
}

// withAndWithoutSlash returns the exact-match patterns for path and path/.
// A bare trailing slash would register a subtree in ServeMux, hence {$}.
func withAndWithoutSlash(path string) []string {
	path = strings.TrimSuffix(path, "/")
	return []string{path, path + "/{$}"}
}
