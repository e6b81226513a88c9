package domain

import "time"

// Stock-keeping item that orders reference.
type Product struct {
	ID       int
	Name     string
	Quantity int
}

type Driver struct {
	ID   int
	Name string
}

// Fleet statuses used by the seeder and accepted on create.
const (
	FleetActive      = "active"
	FleetMaintenance = "maintenance"
	FleetInactive    = "inactive"
)

// Vehicle group operated by a single driver.
// DriverName is resolved on read and is empty when the driver row is missing.
type Fleet struct {
	ID              int
	Name            string
	DriverID        int
	DriverName      string
	Status          string
	LastMaintenance *string
}

// OrderAssigned is the status an order takes once a fleet is attached.
const OrderAssigned = "assigned"

// Customer order received through the webhook.
// FleetID stays nil until the order is assigned.
type Order struct {
	ID           int
	OrderID      string
	OrderName    string
	ProductID    int
	Destination  string
	CustomerName string
	Status       string
	FleetID      *int
}

type Report struct {
	ID        int
	Title     string
	Content   string
	CreatedAt time.Time
}
