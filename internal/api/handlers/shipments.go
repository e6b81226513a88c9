package handlers

import (
	"logistics-backoffice/internal/api/dto"
	"logistics-backoffice/internal/domain"
	"logistics-backoffice/internal/platform/logger"
	"logistics-backoffice/internal/ports"
	"logistics-backoffice/internal/services"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

type ShipmentHandler struct {
	Repo      ports.ShipmentRepository
	Dashboard *services.DashboardService
	Log       *logger.Logger
	// Now defaults to time.Now when nil.
	Now func() time.Time
}

func (h *ShipmentHandler) now() time.Time {
	if h.Now == nil {
		return time.Now().UTC()
	}
	return h.Now().UTC()
}

func (h *ShipmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.ShipmentCreate
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, h.Log, "create shipment", err)
		return
	}

	sh := &domain.Shipment{
		TrackingID:   strings.TrimSpace(req.TrackingID),
		CustomerName: req.CustomerName,
		RouteID:      req.RouteID,
		Status:       strings.ToLower(strings.TrimSpace(req.Status)),
		ShippedAt:    req.ShippedAt,
	}
	if sh.TrackingID == "" {
		sh.TrackingID = NewTrackingID()
	}
	if sh.Status == "" {
		sh.Status = domain.StatusPending
	}
	if req.Revenue != nil {
		sh.Revenue = *req.Revenue
	}
	if sh.ShippedAt == nil && sh.Status != domain.StatusPending {
		now := h.now()
		sh.ShippedAt = &now
	}

	created, err := h.Repo.CreateShipment(r.Context(), sh)
	if err != nil {
		writeServiceError(w, r, h.Log, "create shipment", err)
		return
	}
	writeJSON(w, r, h.Log, http.StatusOK, shipmentView(created))
}

func (h *ShipmentHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := pageFromQuery(r)
	if err != nil {
		writeServiceError(w, r, h.Log, "list shipments", err)
		return
	}

	shipments, err := h.Repo.ListShipmentsPage(r.Context(), page)
	if err != nil {
		writeServiceError(w, r, h.Log, "list shipments", err)
		return
	}
	writeJSON(w, r, h.Log, http.StatusOK, shipmentViews(shipments))
}

func (h *ShipmentHandler) Recent(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", services.RecentShipmentLimit)
	if err != nil {
		writeServiceError(w, r, h.Log, "recent shipments", err)
		return
	}

	shipments, err := h.Dashboard.Recent(r.Context(), limit)
	if err != nil {
		writeServiceError(w, r, h.Log, "recent shipments", err)
		return
	}
	writeJSON(w, r, h.Log, http.StatusOK, shipmentViews(shipments))
}

// NewTrackingID returns an identifier of the form TRK-1A2B3C4D.
func NewTrackingID() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "TRK-" + strings.ToUpper(id[:8])
}

func shipmentView(s *domain.Shipment) dto.ShipmentView {
	return dto.ShipmentView{
		ID:           s.ID,
		TrackingID:   s.TrackingID,
		CustomerName: s.CustomerName,
		RouteID:      s.RouteID,
		Route:        s.RouteName,
		Status:       s.Status,
		Revenue:      s.Revenue,
		ShippedAt:    s.ShippedAt,
		CreatedAt:    s.CreatedAt,
	}
}

func shipmentViews(shipments []*domain.Shipment) []dto.ShipmentView {
	out := make([]dto.ShipmentView, 0, len(shipments))
	for _, s := range shipments {
		out = append(out, shipmentView(s))
	}
	return out
}

type RouteHandler struct {
	Repo      ports.RouteRepository
	Dashboard *services.DashboardService
	Log       *logger.Logger
}

func (h *RouteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.RouteCreate
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, h.Log, "create route", err)
		return
	}

	route, err := h.Repo.CreateRoute(r.Context(), strings.TrimSpace(req.Name))
	if err != nil {
		writeServiceError(w, r, h.Log, "create route", err)
		return
	}
	writeJSON(w, r, h.Log, http.StatusOK, dto.RouteResponse{ID: route.ID, Name: route.Name})
}

func (h *RouteHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := pageFromQuery(r)
	if err != nil {
		writeServiceError(w, r, h.Log, "list routes", err)
		return
	}

	routes, err := h.Repo.ListRoutes(r.Context(), page)
	if err != nil {
		writeServiceError(w, r, h.Log, "list routes", err)
		return
	}

	res := make([]dto.RouteResponse, 0, len(routes))
	for _, rt := range routes {
		res = append(res, dto.RouteResponse{ID: rt.ID, Name: rt.Name})
	}
	writeJSON(w, r, h.Log, http.StatusOK, res)
}

func (h *RouteHandler) Top(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", services.TopRouteLimit)
	if err != nil {
		writeServiceError(w, r, h.Log, "top routes", err)
		return
	}

	top, err := h.Dashboard.TopRoutes(r.Context(), limit)
	if err != nil {
		writeServiceError(w, r, h.Log, "top routes", err)
		return
	}
	writeJSON(w, r, h.Log, http.StatusOK, topRoutes(top))
}

func topRoutes(counts []domain.RouteCount) []dto.TopRoute {
	out := make([]dto.TopRoute, 0, len(counts))
	for _, c := range counts {
		out = append(out, dto.TopRoute{Route: c.Route, Count: c.Count})
	}
	return out
}
