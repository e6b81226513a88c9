package dto

import "time"

type RouteCreate struct {
	Name string `json:"name" validate:"required,notblank,max=200"`
}

type RouteResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type ShipmentCreate struct {
	TrackingID   string     `json:"tracking_id" validate:"omitempty,max=100"`
	CustomerName string     `json:"customer_name" validate:"max=200"`
	RouteID      *int       `json:"route_id" validate:"omitempty,gt=0"`
	Status       string     `json:"status" validate:"omitempty,max=50"`
	Revenue      *float64   `json:"revenue" validate:"omitempty,gte=0"`
	ShippedAt    *time.Time `json:"shipped_at"`
}

// ShipmentView is the public shape of a shipment, with the route name resolved.
type ShipmentView struct {
	ID           int        `json:"id"`
	TrackingID   string     `json:"tracking_id"`
	CustomerName string     `json:"customer_name"`
	RouteID      *int       `json:"route_id"`
	Route        *string    `json:"route"`
	Status       string     `json:"status"`
	Revenue      float64    `json:"revenue"`
	ShippedAt    *time.Time `json:"shipped_at"`
	CreatedAt    time.Time  `json:"created_at"`
}

type TopRoute struct {
	Route string `json:"route"`
	Count int    `json:"count"`
}
