package handlers

import (
	"logistics-backoffice/internal/api/dto"
	"logistics-backoffice/internal/domain"
	"logistics-backoffice/internal/platform/logger"
	"logistics-backoffice/internal/ports"
	"net/http"
	"strings"
)

// ProductHandler exposes product create/list endpoints.
type ProductHandler struct {
	Repo ports.ProductRepository
	Log  *logger.Logger
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.ProductCreate
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, h.Log, "create product", err)
		return
	}

	p, err := h.Repo.CreateProduct(r.Context(), &domain.Product{
		Name:     strings.TrimSpace(req.Name),
		Quantity: req.Quantity,
	})
	if err != nil {
		writeServiceError(w, r, h.Log, "create product", err)
		return
	}

	writeJSON(w, r, h.Log, http.StatusOK, productResponse(p))
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := pageFromQuery(r)
	if err != nil {
		writeServiceError(w, r, h.Log, "list products", err)
		return
	}

	products, err := h.Repo.ListProducts(r.Context(), page)
	if err != nil {
		writeServiceError(w, r, h.Log, "list products", err)
		return
	}

	res := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		res = append(res, productResponse(p))
	}
	writeJSON(w, r, h.Log, http.StatusOK, res)
}

func productResponse(p *domain.Product) dto.ProductResponse {
	return dto.ProductResponse{ID: p.ID, Name: p.Name, Quantity: p.Quantity}
}

// DriverHandler exposes driver create/list endpoints.
type DriverHandler struct {
	Repo ports.DriverRepository
	Log  *logger.Logger
}

func (h *DriverHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.DriverCreate
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, h.Log, "create driver", err)
		return
	}

	d, err := h.Repo.CreateDriver(r.Context(), &domain.Driver{Name: strings.TrimSpace(req.Name)})
	if err != nil {
		writeServiceError(w, r, h.Log, "create driver", err)
		return
	}

	writeJSON(w, r, h.Log, http.StatusOK, dto.DriverResponse{ID: d.ID, Name: d.Name})
}

func (h *DriverHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := pageFromQuery(r)
	if err != nil {
		writeServiceError(w, r, h.Log, "list drivers", err)
		return
	}

	drivers, err := h.Repo.ListDrivers(r.Context(), page)
	if err != nil {
		writeServiceError(w, r, h.Log, "list drivers", err)
		return
	}

	res := make([]dto.DriverResponse, 0, len(drivers))
	for _, d := range drivers {
		res = append(res, dto.DriverResponse{ID: d.ID, Name: d.Name})
	}
	writeJSON(w, r, h.Log, http.StatusOK, res)
}

// FleetHandler exposes fleet create/list endpoints. Listings carry driver_name.
type FleetHandler struct {
	Repo ports.FleetRepository
	Log  *logger.Logger
}

func (h *FleetHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.FleetCreate
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, h.Log, "create fleet", err)
		return
	}

	f, err := h.Repo.CreateFleet(r.Context(), &domain.Fleet{
		Name:            strings.TrimSpace(req.Name),
		DriverID:        req.DriverID,
		Status:          req.Status,
		LastMaintenance: req.LastMaintenance,
	})
	if err != nil {
		writeServiceError(w, r, h.Log, "create fleet", err)
		return
	}

	writeJSON(w, r, h.Log, http.StatusOK, fleetResponse(f))
}

func (h *FleetHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := pageFromQuery(r)
	if err != nil {
		writeServiceError(w, r, h.Log, "list fleets", err)
		return
	}

	fleets, err := h.Repo.ListFleets(r.Context(), page)
	if err != nil {
		writeServiceError(w, r, h.Log, "list fleets", err)
		return
	}

	res := make([]dto.FleetResponse, 0, len(fleets))
	for _, f := range fleets {
		res = append(res, fleetResponse(f))
	}
	writeJSON(w, r, h.Log, http.StatusOK, res)
}

func fleetResponse(f *domain.Fleet) dto.FleetResponse {
	return dto.FleetResponse{
		ID:              f.ID,
		Name:            f.Name,
		DriverID:        f.DriverID,
		DriverName:      f.DriverName,
		Status:          f.Status,
		LastMaintenance: f.LastMaintenance,
	}
}

// ReportHandler exposes report CRUD.
type ReportHandler struct {
	Repo ports.ReportRepository
	Log  *logger.Logger
}

func (h *ReportHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.ReportCreate
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, h.Log, "create report", err)
		return
	}

	rep, err := h.Repo.CreateReport(r.Context(), &domain.Report{
		Title:   strings.TrimSpace(req.Title),
		Content: req.Content,
	})
	if err != nil {
		writeServiceError(w, r, h.Log, "create report", err)
		return
	}

	writeJSON(w, r, h.Log, http.StatusOK, reportResponse(rep))
}

func (h *ReportHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := pageFromQuery(r)
	if err != nil {
		writeServiceError(w, r, h.Log, "list reports", err)
		return
	}

	reports, err := h.Repo.ListReports(r.Context(), page)
	if err != nil {
		writeServiceError(w, r, h.Log, "list reports", err)
		return
	}

	res := make([]dto.ReportResponse, 0, len(reports))
	for _, rep := range reports {
		res = append(res, reportResponse(rep))
	}
	writeJSON(w, r, h.Log, http.StatusOK, res)
}

func (h *ReportHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeServiceError(w, r, h.Log, "get report", err)
		return
	}

	rep, err := h.Repo.GetReport(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, h.Log, "get report", err)
		return
	}
	writeJSON(w, r, h.Log, http.StatusOK, reportResponse(rep))
}

func (h *ReportHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeServiceError(w, r, h.Log, "delete report", err)
		return
	}

	if err := h.Repo.DeleteReport(r.Context(), id); err != nil {
		writeServiceError(w, r, h.Log, "delete report", err)
		return
	}
	writeJSON(w, r, h.Log, http.StatusOK, dto.MessageResponse{Message: "Report deleted successfully"})
}

func reportResponse(r *domain.Report) dto.ReportResponse {
	return dto.ReportResponse{ID: r.ID, Title: r.Title, Content: r.Content, CreatedAt: r.CreatedAt}
}
