package dto

type DashboardResponse struct {
	KPIs   DashboardKPIs   `json:"kpis"`
	Charts DashboardCharts `json:"charts"`
	Tables DashboardTables `json:"tables"`
}

type DashboardKPIs struct {
	TotalOrders int     `json:"totalOrders"`
	Deliveries  int     `json:"deliveries"`
	Pending     int     `json:"pending"`
	Revenue     float64 `json:"revenue"`
}

type DashboardCharts struct {
	Months            []string `json:"months"`
	ShipmentsPerMonth []int    `json:"shipmentsPerMonth"`
	StatusCounts      []int    `json:"statusCounts"`
}

type DashboardTables struct {
	RecentShipments []ShipmentView `json:"recentShipments"`
	TopRoutes       []TopRoute     `json:"topRoutes"`
}
