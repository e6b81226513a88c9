package handlers

import (
	"logistics-backoffice/internal/api/dto"
	"logistics-backoffice/internal/domain"
	"logistics-backoffice/internal/platform/logger"
	"logistics-backoffice/internal/services"
	"net/http"
)

type DashboardHandler struct {
	Service *services.DashboardService
	Log     *logger.Logger
	// MonthsCount is used when the request omits months_count.
	MonthsCount int
}

// Dashboard serves GET /api/dashboard?months_count=N.
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	fallback := h.MonthsCount
	if fallback < 1 {
		fallback = services.DefaultMonthsCount
	}

	months, err := queryInt(r, "months_count", fallback)
	if err != nil {
		writeServiceError(w, r, h.Log, "dashboard", err)
		return
	}

	d, err := h.Service.Compute(r.Context(), months)
	if err != nil {
		writeServiceError(w, r, h.Log, "dashboard", err)
		return
	}
	writeJSON(w, r, h.Log, http.StatusOK, dashboardResponse(d))
}

func dashboardResponse(d *domain.Dashboard) dto.DashboardResponse {
	return dto.DashboardResponse{
		KPIs: dto.DashboardKPIs{
			TotalOrders: d.KPIs.TotalOrders,
			Deliveries:  d.KPIs.Deliveries,
			Pending:     d.KPIs.Pending,
			Revenue:     d.KPIs.Revenue,
		},
		Charts: dto.DashboardCharts{
			Months:            d.Charts.Months,
			ShipmentsPerMonth: d.Charts.ShipmentsPerMonth,
			StatusCounts:      d.Charts.StatusCounts[:],
		},
		Tables: dto.DashboardTables{
			RecentShipments: shipmentViews(d.Tables.RecentShipments),
			TopRoutes:       topRoutes(d.Tables.TopRoutes),
		},
	}
}
