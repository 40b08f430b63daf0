// Package mockdata provides the synthetic dataset served when the backend is
// unreachable, and mock implementations of the per-domain sources backed by
// in-memory stores.
//
// The fixed dataset is deterministic for a given reference time: the same
// identifiers, statuses and cross references on every start. Every delivery's
// person id exists in the person list and every delivery's order id exists in
// the order list.
package mockdata

import (
	"time"

	"restaurantops/internal/core/domain/model/delivery"
	"restaurantops/internal/core/domain/model/kernel"
	"restaurantops/internal/core/domain/model/order"
	"restaurantops/internal/core/domain/model/reservation"

	"github.com/shopspring/decimal"
)

// Dataset is a consistent snapshot of every mock collection.
type Dataset struct {
	Orders       []order.Order             `json:"orders"`
	Deliveries   []delivery.Assignment     `json:"deliveries"`
	Persons      []delivery.Person         `json:"persons"`
	Reservations []reservation.Reservation `json:"reservations"`
	Tables       []reservation.Table       `json:"tables"`
}

// Fixed returns the deterministic dataset anchored at now.
// It holds three deliveries, three persons, three orders, three reservations
// and four tables.
func Fixed(now time.Time, taxRate decimal.Decimal) Dataset {
	now = now.Truncate(time.Minute)
	at := func(d time.Duration) *time.Time { return kernel.TimePtr(now.Add(d)) }

	return Dataset{
		Orders:       fixedOrders(now, taxRate),
		Deliveries:   fixedDeliveries(now, at),
		Persons:      fixedPersons(now),
		Reservations: fixedReservations(now),
		Tables: []reservation.Table{
			{ID: "t-1", Name: "Window 1", Capacity: 2, IsActive: true},
			{ID: "t-2", Name: "Booth 2", Capacity: 4, IsActive: true},
			{ID: "t-3", Name: "Family 3", Capacity: 8, IsActive: true},
			{ID: "t-4", Name: "Patio 4", Capacity: 6, IsActive: false},
		},
	}
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func fixedOrders(now time.Time, taxRate decimal.Decimal) []order.Order {
	mk := func(id, customerID, name string, typ order.Type, status order.Status, age time.Duration,
		tip string, items ...order.LineItem) order.Order {
		o := order.Order{
			ID:           id,
			CustomerID:   customerID,
			CustomerName: name,
			Type:         typ,
			Items:        items,
			Tip:          money(tip),
		}
		o.Recalculate(taxRate)
		o.Init(id, now.Add(-age))
		o.Status = status
		if status == order.Completed {
			o.CompletedAt = kernel.TimePtr(now.Add(-age / 2))
		}
		return o
	}

	return []order.Order{
		mk("1001", "c-1", "John Smith", order.Delivery, order.Preparing, 15*time.Minute, "3.00",
			order.LineItem{MenuItemID: "m-1", Name: "Margherita Pizza", Quantity: 2, UnitPrice: money("12.99")}),
		mk("1002", "c-2", "Emily Davis", order.Delivery, order.Ready, 35*time.Minute, "5.00",
			order.LineItem{MenuItemID: "m-2", Name: "Caesar Salad", Quantity: 1, UnitPrice: money("9.50")},
			order.LineItem{MenuItemID: "m-3", Name: "Garlic Bread", Quantity: 2, UnitPrice: money("4.25")}),
		mk("1003", "c-3", "Robert Brown", order.Delivery, order.Completed, 90*time.Minute, "4.00",
			order.LineItem{MenuItemID: "m-4", Name: "Beef Burger", Quantity: 1, UnitPrice: money("14.75")}),
	}
}

func fixedDeliveries(now time.Time, at func(time.Duration) *time.Time) []delivery.Assignment {
	return []delivery.Assignment{
		{
			ID:                    "1",
			OrderID:               "1001",
			Status:                delivery.Pending,
			Priority:              delivery.High,
			CustomerName:          "John Smith",
			CustomerPhone:         "+1-555-0101",
			DeliveryAddress:       "123 Main St, Apt 4B",
			EstimatedDeliveryTime: at(45 * time.Minute),
			Notes:                 "Ring doorbell twice",
			CreatedAt:             now.Add(-15 * time.Minute),
			UpdatedAt:             now.Add(-15 * time.Minute),
		},
		{
			ID:                    "2",
			OrderID:               "1002",
			DeliveryPersonID:      kernel.StringPtr("2"),
			Status:                delivery.Assigned,
			Priority:              delivery.Normal,
			CustomerName:          "Emily Davis",
			CustomerPhone:         "+1-555-0102",
			DeliveryAddress:       "456 Oak Ave",
			EstimatedDeliveryTime: at(30 * time.Minute),
			AssignedAt:            at(-5 * time.Minute),
			CreatedAt:             now.Add(-35 * time.Minute),
			UpdatedAt:             now.Add(-5 * time.Minute),
		},
		{
			ID:                    "3",
			OrderID:               "1003",
			DeliveryPersonID:      kernel.StringPtr("1"),
			Status:                delivery.Delivered,
			Priority:              delivery.Normal,
			CustomerName:          "Robert Brown",
			CustomerPhone:         "+1-555-0103",
			DeliveryAddress:       "789 Pine Rd",
			EstimatedDeliveryTime: at(-40 * time.Minute),
			AssignedAt:            at(-80 * time.Minute),
			PickedUpAt:            at(-70 * time.Minute),
			ActualDeliveryTime:    at(-45 * time.Minute),
			Notes:                 "Left at front desk",
			CreatedAt:             now.Add(-90 * time.Minute),
			UpdatedAt:             now.Add(-45 * time.Minute),
		},
	}
}

func fixedPersons(now time.Time) []delivery.Person {
	joined := now.AddDate(0, -6, 0)
	return []delivery.Person{
		{
			ID:                  "1",
			Name:                "Mike Johnson",
			Phone:               "+1-555-0201",
			Email:               "mike.johnson@example.com",
			Status:              delivery.Available,
			VehicleType:         delivery.Motorcycle,
			MaxConcurrentOrders: 3,
			Rating:              4.8,
			TotalDeliveries:     150,
			IsActive:            true,
			Location:            &kernel.Location{Latitude: 40.7128, Longitude: -74.0060},
			CreatedAt:           joined,
			UpdatedAt:           now,
		},
		{
			ID:                  "2",
			Name:                "Sarah Williams",
			Phone:               "+1-555-0202",
			Email:               "sarah.williams@example.com",
			Status:              delivery.Busy,
			VehicleType:         delivery.Car,
			MaxConcurrentOrders: 4,
			Rating:              4.9,
			TotalDeliveries:     203,
			IsActive:            true,
			Location:            &kernel.Location{Latitude: 40.7580, Longitude: -73.9855},
			CreatedAt:           joined,
			UpdatedAt:           now,
		},
		{
			ID:                  "3",
			Name:                "David Chen",
			Phone:               "+1-555-0203",
			Email:               "david.chen@example.com",
			Status:              delivery.Available,
			VehicleType:         delivery.Bicycle,
			MaxConcurrentOrders: 2,
			Rating:              4.6,
			TotalDeliveries:     89,
			IsActive:            true,
			CreatedAt:           joined,
			UpdatedAt:           now,
		},
	}
}

func fixedReservations(now time.Time) []reservation.Reservation {
	tomorrow := now.Truncate(24*time.Hour).AddDate(0, 0, 1).Add(19 * time.Hour)
	return []reservation.Reservation{
		{
			ID:              "42",
			CustomerID:      "c-4",
			CustomerName:    "Alice Martin",
			CustomerEmail:   "alice.martin@example.com",
			CustomerPhone:   "+1-555-0301",
			ReservationTime: tomorrow,
			PartySize:       4,
			Status:          reservation.Pending,
			SpecialRequests: "Window seat if possible",
			CreatedAt:       now.Add(-2 * time.Hour),
			UpdatedAt:       now.Add(-2 * time.Hour),
		},
		{
			ID:                "43",
			CustomerID:        "c-5",
			CustomerName:      "Brian Lee",
			CustomerEmail:     "brian.lee@example.com",
			ReservationTime:   tomorrow.Add(30 * time.Minute),
			PartySize:         2,
			TableID:           kernel.StringPtr("t-1"),
			Status:            reservation.Confirmed,
			CreatedAt:         now.Add(-26 * time.Hour),
			UpdatedAt:         now.Add(-20 * time.Hour),
			ConfirmedAt:       kernel.TimePtr(now.Add(-20 * time.Hour)),
			ConfirmedByUserID: kernel.StringPtr("admin"),
		},
		{
			ID:              "44",
			CustomerName:    "Carla Gomez",
			ReservationTime: tomorrow.Add(time.Hour),
			PartySize:       12,
			Status:          reservation.Denied,
			DenialReason:    "No table for parties above 8 on weekdays",
			CreatedAt:       now.Add(-30 * time.Hour),
			UpdatedAt:       now.Add(-28 * time.Hour),
			DeniedByUserID:  kernel.StringPtr("admin"),
		},
	}
}
