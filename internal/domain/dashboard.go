package domain

// Dashboard is the derived, read-only view computed from a shipment snapshot.
type Dashboard struct {
	KPIs   KPIs
	Charts Charts
	Tables Tables
}

type KPIs struct {
	TotalOrders int
	Deliveries  int
	Pending     int
	Revenue     float64
}

// Charts holds the trailing month window and its per-month shipment counts.
// Months and ShipmentsPerMonth always have the same length.
type Charts struct {
	Months            []string
	ShipmentsPerMonth []int
	// [delivered, delayed] over the full snapshot, not the month window.
	StatusCounts [2]int
}

type Tables struct {
	RecentShipments []*Shipment
	TopRoutes       []RouteCount
}

// Number of shipments attributed to a route name.
type RouteCount struct {
	Route string
	Count int
}
