package dto

import "time"

type ProductCreate struct {
	Name     string `json:"name" validate:"required,notblank,max=200"`
	Quantity int    `json:"quantity" validate:"gte=0"`
}

type ProductResponse struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type DriverCreate struct {
	Name string `json:"name" validate:"required,notblank,max=200"`
}

type DriverResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type FleetCreate struct {
	Name            string  `json:"name" validate:"required,notblank,max=200"`
	DriverID        int     `json:"driver_id" validate:"required,gt=0"`
	Status          string  `json:"status" validate:"omitempty,oneof=active maintenance inactive"`
	LastMaintenance *string `json:"last_maintenance" validate:"omitempty,datetime=2006-01-02"`
}

type FleetResponse struct {
	ID              int     `json:"id"`
	Name            string  `json:"name"`
	DriverID        int     `json:"driver_id"`
	DriverName      string  `json:"driver_name"`
	Status          string  `json:"status"`
	LastMaintenance *string `json:"last_maintenance"`
}

type OrderCreate struct {
	OrderID      string `json:"order_id" validate:"required,notblank,max=100"`
	OrderName    string `json:"order_name" validate:"max=200"`
	ProductID    int    `json:"product_id" validate:"required,gt=0"`
	Destination  string `json:"destination" validate:"max=200"`
	CustomerName string `json:"customer_name" validate:"max=200"`
	Status       string `json:"status" validate:"omitempty,max=50"`
}

type OrderResponse struct {
	ID           int    `json:"id"`
	OrderID      string `json:"order_id"`
	OrderName    string `json:"order_name"`
	ProductID    int    `json:"product_id"`
	Destination  string `json:"destination"`
	CustomerName string `json:"customer_name"`
	Status       string `json:"status"`
	FleetID      *int   `json:"fleet_id"`
}

type ReportCreate struct {
	Title   string `json:"title" validate:"required,notblank,max=200"`
	Content string `json:"content"`
}

type ReportResponse struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
