package mockdata

import (
	"math/rand"
	"time"

	"restaurantops/internal/core/domain/model/delivery"
	"restaurantops/internal/core/domain/model/kernel"
	"restaurantops/internal/core/domain/model/order"
	"restaurantops/internal/core/domain/model/reservation"

	"github.com/jaswdr/faker"
	"github.com/lucsky/cuid"
	"github.com/shopspring/decimal"
)

var (
	vehicles   = []delivery.VehicleType{delivery.Bicycle, delivery.Motorcycle, delivery.Car, delivery.Scooter}
	priorities = []delivery.Priority{delivery.Low, delivery.Normal, delivery.High, delivery.Urgent}
	// Generated deliveries stay out of delivered so they never need actual times.
	openStatuses = []delivery.Status{
		delivery.Preparing, delivery.ReadyForPickup, delivery.Assigned, delivery.PickedUp, delivery.InTransit,
	}
	requests = []string{"", "", "Window seat", "High chair needed", "Birthday celebration", "Quiet corner"}
	menu     = []order.LineItem{
		{MenuItemID: "m-1", Name: "Margherita Pizza", UnitPrice: decimal.RequireFromString("12.99")},
		{MenuItemID: "m-2", Name: "Caesar Salad", UnitPrice: decimal.RequireFromString("9.50")},
		{MenuItemID: "m-3", Name: "Garlic Bread", UnitPrice: decimal.RequireFromString("4.25")},
		{MenuItemID: "m-4", Name: "Beef Burger", UnitPrice: decimal.RequireFromString("14.75")},
		{MenuItemID: "m-5", Name: "Tiramisu", UnitPrice: decimal.RequireFromString("6.80")},
	}
)

// Generator extends the fixed dataset with randomized entities. The contact
// data and amounts are reproducible for a given seed; identifiers come from
// cuid and differ on every run.
type Generator struct {
	fake    faker.Faker
	now     time.Time
	taxRate decimal.Decimal
	newID   func() string
}

// NewGenerator creates a generator seeded with seed and anchored at now.
func NewGenerator(seed int64, now time.Time, taxRate decimal.Decimal) *Generator {
	return &Generator{
		fake:    faker.NewWithSeed(rand.NewSource(seed)),
		now:     now.Truncate(time.Minute),
		taxRate: taxRate,
		newID:   cuid.New,
	}
}

// Generate returns the fixed dataset plus size generated persons, orders,
// deliveries and reservations. Every generated delivery references a
// generated order and, when its status requires one, a generated person.
func (g *Generator) Generate(size int) Dataset {
	ds := Fixed(g.now, g.taxRate)

	for range size {
		p := g.person()
		o := g.order()
		ds.Persons = append(ds.Persons, p)
		ds.Orders = append(ds.Orders, o)
		ds.Deliveries = append(ds.Deliveries, g.delivery(o, p))
		ds.Reservations = append(ds.Reservations, g.reservation())
	}
	return ds
}

func (g *Generator) person() delivery.Person {
	f := g.fake
	lat, lng := 40.70+f.Float64(4, 0, 1)/10, -74.02+f.Float64(4, 0, 1)/10
	return delivery.Person{
		ID:                  g.newID(),
		Name:                f.Person().Name(),
		Phone:               f.Phone().Number(),
		Email:               f.Internet().Email(),
		Status:              delivery.Available,
		VehicleType:         pick(f, vehicles),
		MaxConcurrentOrders: f.IntBetween(1, 4),
		Rating:              f.Float64(1, 3, 5),
		TotalDeliveries:     f.IntBetween(0, 500),
		IsActive:            f.IntBetween(0, 9) > 0,
		Location:            &kernel.Location{Latitude: lat, Longitude: lng},
		CreatedAt:           f.Time().TimeBetween(g.now.AddDate(-1, 0, 0), g.now),
		UpdatedAt:           g.now,
	}
}

func (g *Generator) order() order.Order {
	f := g.fake
	items := make([]order.LineItem, 0, 3)
	for range f.IntBetween(1, 3) {
		item := pick(f, menu)
		item.Quantity = f.IntBetween(1, 3)
		items = append(items, item)
	}

	o := order.Order{
		CustomerID:   g.newID(),
		CustomerName: f.Person().Name(),
		Type:         order.Delivery,
		Items:        items,
		Tip:          decimal.NewFromInt(int64(f.IntBetween(0, 8))),
	}
	o.Recalculate(g.taxRate)
	o.Init(g.newID(), g.now.Add(-time.Duration(f.IntBetween(5, 60))*time.Minute))
	o.Status = order.Preparing
	return o
}

func (g *Generator) delivery(o order.Order, p delivery.Person) delivery.Assignment {
	f := g.fake
	a := delivery.Assignment{
		ID:              g.newID(),
		OrderID:         o.ID,
		Status:          pick(f, openStatuses),
		Priority:        pick(f, priorities),
		CustomerName:    o.CustomerName,
		CustomerPhone:   f.Phone().Number(),
		DeliveryAddress: f.Address().Address(),
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.CreatedAt,
	}
	a.EstimatedDeliveryTime = kernel.TimePtr(o.CreatedAt.Add(45 * time.Minute))
	if delivery.RequiresPerson(a.Status) {
		a.DeliveryPersonID = kernel.StringPtr(p.ID)
		a.AssignedAt = kernel.TimePtr(o.CreatedAt.Add(10 * time.Minute))
	}
	if a.Status == delivery.PickedUp || a.Status == delivery.InTransit {
		a.PickedUpAt = kernel.TimePtr(o.CreatedAt.Add(20 * time.Minute))
	}
	return a
}

func (g *Generator) reservation() reservation.Reservation {
	f := g.fake
	day := g.now.Truncate(24*time.Hour).AddDate(0, 0, f.IntBetween(1, 14))
	slot := time.Duration(f.IntBetween(0, 8)) * 30 * time.Minute
	return reservation.Reservation{
		ID:              g.newID(),
		CustomerID:      g.newID(),
		CustomerName:    f.Person().Name(),
		CustomerEmail:   f.Internet().Email(),
		CustomerPhone:   f.Phone().Number(),
		ReservationTime: day.Add(18*time.Hour + slot),
		PartySize:       f.IntBetween(reservation.MinPartySize, 8),
		Status:          reservation.Pending,
		SpecialRequests: pick(f, requests),
		CreatedAt:       g.now,
		UpdatedAt:       g.now,
	}
}

func pick[T any](f faker.Faker, from []T) T {
	return from[f.IntBetween(0, len(from)-1)]
}
