package handlers

import (
	"logistics-backoffice/internal/api/dto"
	"logistics-backoffice/internal/domain"
	"logistics-backoffice/internal/platform/logger"
	"logistics-backoffice/internal/ports"
	"logistics-backoffice/internal/services"
	"net/http"
	"strings"
)

type OrderHandler struct {
	Repo    ports.OrderRepository
	Service *services.OrderService
	Log     *logger.Logger
}

// Webhook stores an order pushed by an upstream storefront.
func (h *OrderHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	var req dto.OrderCreate
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, h.Log, "create order", err)
		return
	}

	o, err := h.Repo.CreateOrder(r.Context(), &domain.Order{
		OrderID:      strings.TrimSpace(req.OrderID),
		OrderName:    req.OrderName,
		ProductID:    req.ProductID,
		Destination:  req.Destination,
		CustomerName: req.CustomerName,
		Status:       strings.ToLower(strings.TrimSpace(req.Status)),
	})
	if err != nil {
		writeServiceError(w, r, h.Log, "create order", err)
		return
	}

	writeJSON(w, r, h.Log, http.StatusOK, orderResponse(o))
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := pageFromQuery(r)
	if err != nil {
		writeServiceError(w, r, h.Log, "list orders", err)
		return
	}

	orders, err := h.Repo.ListOrders(r.Context(), page)
	if err != nil {
		writeServiceError(w, r, h.Log, "list orders", err)
		return
	}

	res := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		res = append(res, orderResponse(o))
	}
	writeJSON(w, r, h.Log, http.StatusOK, res)
}

// AssignFleet reads order_id and fleet_id from the query string.
func (h *OrderHandler) AssignFleet(w http.ResponseWriter, r *http.Request) {
	fleetID, err := queryInt(r, "fleet_id", 0)
	if err != nil {
		writeServiceError(w, r, h.Log, "assign fleet", err)
		return
	}

	if err := h.Service.AssignFleet(r.Context(), r.URL.Query().Get("order_id"), fleetID); err != nil {
		writeServiceError(w, r, h.Log, "assign fleet", err)
		return
	}
	writeJSON(w, r, h.Log, http.StatusOK, dto.MessageResponse{Message: "Order assigned to fleet successfully"})
}

// UpdateStatus reads order_id and status from the query string.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if err := h.Service.UpdateStatus(r.Context(), q.Get("order_id"), q.Get("status")); err != nil {
		writeServiceError(w, r, h.Log, "update status", err)
		return
	}
	writeJSON(w, r, h.Log, http.StatusOK, dto.MessageResponse{Message: "Order status updated successfully"})
}

func orderResponse(o *domain.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID:           o.ID,
		OrderID:      o.OrderID,
		OrderName:    o.OrderName,
		ProductID:    o.ProductID,
		Destination:  o.Destination,
		CustomerName: o.CustomerName,
		Status:       o.Status,
		FleetID:      o.FleetID,
	}
}
