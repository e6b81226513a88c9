package domain

import (
	"strings"
	"time"
)

// Known shipment statuses. The set is open: any other string is stored as-is
// and simply does not count toward the status-specific KPIs.
const (
	StatusPending   = "pending"
	StatusShipped   = "shipped"
	StatusDelivered = "delivered"
	StatusDelayed   = "delayed"
)

// UnknownRoute is the bucket name used for shipments without a resolvable route.
const UnknownRoute = "Unknown"

// Represents a single tracked consignment moving along a route.
// ShippedAt stays nil until the shipment is dispatched; CreatedAt is set on
// insertion and never changes.
type Shipment struct {
	ID           int
	TrackingID   string
	CustomerName string
	RouteID      *int
	RouteName    *string
	Status       string
	Revenue      float64
	ShippedAt    *time.Time
	CreatedAt    time.Time
}

// HasStatus compares the shipment status case-insensitively.
func (s *Shipment) HasStatus(status string) bool {
	return strings.EqualFold(s.Status, status)
}

// RouteLabel returns the resolved route name or UnknownRoute.
func (s *Shipment) RouteLabel() string {
	if s.RouteName == nil || *s.RouteName == "" {
		return UnknownRoute
	}
	return *s.RouteName
}

// Named corridor (origin → destination) shipments travel along.
type Route struct {
	ID   int
	Name string
}
