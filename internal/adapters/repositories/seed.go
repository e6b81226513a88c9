package repositories

import (
	"context"
	"fmt"
	"logistics-backoffice/internal/domain"
	"math"
	"math/rand/v2"
	"time"
)

// SeedOptions controls how much demo data Seed generates.
type SeedOptions struct {
	Fleets    int
	Orders    int
	Shipments int
	// Shipment dates spread over this many months ending at Now.
	Months int
	Now    time.Time
}

func DefaultSeedOptions() SeedOptions {
	return SeedOptions{Fleets: 3, Orders: 5, Shipments: 60, Months: 8, Now: time.Now()}
}

var (
	seedDrivers   = []string{"John Doe", "Jane Smith", "Michael Johnson", "Alice Brown"}
	seedProducts  = []string{"Laptop", "Phone", "Tablet", "Headphones"}
	seedCities    = []string{"New York", "Los Angeles", "Chicago", "Houston"}
	seedCustomers = []string{"Killerman Sage", "Oluchi Nwankwo", "Tunde Benedicta", "Grace Miller"}
	seedStatuses  = []string{
		domain.StatusPending,
		domain.StatusShipped,
		domain.StatusDelivered,
		domain.StatusDelayed,
	}
	seedFleetStatuses = []string{domain.FleetActive, domain.FleetMaintenance, domain.FleetInactive}
)

// Seed wipes the demo tables and repopulates them with randomized data in a
// single transaction. Reports are left untouched.
func Seed(ctx context.Context, store *Store, rng *rand.Rand, opts SeedOptions) error {
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	if opts.Months < 1 {
		opts.Months = 1
	}

	return store.WithTx(ctx, func(tx *Store) error {
		for _, table := range []string{"shipments", "orders", "fleets", "routes", "products", "drivers"} {
			if _, err := tx.exec(ctx, "DELETE FROM "+table+";"); err != nil {
				return fmt.Errorf("seed: clear %s: %w", table, err)
			}
		}

		drivers := make([]*domain.Driver, 0, len(seedDrivers))
		for _, name := range seedDrivers {
			d, err := tx.CreateDriver(ctx, &domain.Driver{Name: name})
			if err != nil {
				return fmt.Errorf("seed: %w", err)
			}
			drivers = append(drivers, d)
		}

		maintenance := opts.Now.AddDate(0, -2, 0).UTC().Format("2006-01-02")
		fleets := make([]*domain.Fleet, 0, opts.Fleets)
		for i := 0; i < opts.Fleets; i++ {
			f, err := tx.CreateFleet(ctx, &domain.Fleet{
				Name:            fmt.Sprintf("Fleet %d", i+1),
				DriverID:        pick(rng, drivers).ID,
				Status:          pick(rng, seedFleetStatuses),
				LastMaintenance: &maintenance,
			})
			if err != nil {
				return fmt.Errorf("seed: %w", err)
			}
			fleets = append(fleets, f)
		}

		products := make([]*domain.Product, 0, len(seedProducts))
		for _, name := range seedProducts {
			p, err := tx.CreateProduct(ctx, &domain.Product{Name: name, Quantity: 5 + rng.IntN(16)})
			if err != nil {
				return fmt.Errorf("seed: %w", err)
			}
			products = append(products, p)
		}

		for i := 0; i < opts.Orders; i++ {
			order := &domain.Order{
				OrderID:      fmt.Sprintf("ORD-%04d", i+1),
				OrderName:    fmt.Sprintf("Order %d", i+1),
				ProductID:    pick(rng, products).ID,
				Destination:  pick(rng, seedCities),
				CustomerName: pick(rng, seedCustomers),
				Status:       pick(rng, seedStatuses[:3]),
			}
			if len(fleets) > 0 {
				order.FleetID = &pick(rng, fleets).ID
			}
			if _, err := tx.CreateOrder(ctx, order); err != nil {
				return fmt.Errorf("seed: %w", err)
			}
		}

		routes := make([]*domain.Route, 0, len(seedCities)*(len(seedCities)-1))
		for _, from := range seedCities {
			for _, to := range seedCities {
				if from == to {
					continue
				}
				r, err := tx.CreateRoute(ctx, from+" → "+to)
				if err != nil {
					return fmt.Errorf("seed: %w", err)
				}
				routes = append(routes, r)
			}
		}

		span := opts.Now.Sub(opts.Now.AddDate(0, -opts.Months, 0))
		for i := 0; i < opts.Shipments; i++ {
			status := pick(rng, seedStatuses)
			created := opts.Now.Add(-time.Duration(rng.Int64N(int64(span))))

			sh := &domain.Shipment{
				TrackingID:   fmt.Sprintf("TRK-%05d", i+1),
				CustomerName: pick(rng, seedCustomers),
				Status:       status,
				Revenue:      math.Round((50+rng.Float64()*1450)*100) / 100,
				CreatedAt:    created,
			}
			// Roughly one in ten shipments has no route on record.
			if rng.IntN(10) > 0 {
				sh.RouteID = &pick(rng, routes).ID
			}
			if status != domain.StatusPending {
				shipped := created.Add(time.Duration(1+rng.IntN(48)) * time.Hour)
				if shipped.After(opts.Now) {
					shipped = opts.Now
				}
				sh.ShippedAt = &shipped
			}

			if _, err := tx.CreateShipment(ctx, sh); err != nil {
				return fmt.Errorf("seed: %w", err)
			}
		}

		return nil
	})
}

func pick[T any](rng *rand.Rand, items []T) T {
	return items[rng.IntN(len(items))]
}
