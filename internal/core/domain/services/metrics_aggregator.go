package services

import (
	"math"

	"restaurantops/internal/core/domain/model/delivery"
)

// MetricsAggregator derives dispatch metrics from the current deliveries and
// persons. Nothing is cached: every call recomputes from its inputs.
type MetricsAggregator struct{}

// NewMetricsAggregator creates a new MetricsAggregator instance.
func NewMetricsAggregator() MetricsAggregator {
	return MetricsAggregator{}
}

// Compute returns the metrics for deliveries and persons.
//
// Definitions:
//   - TotalDeliveries: all assignments
//   - CompletedDeliveries: assignments in delivered
//   - AverageDeliveryTime: mean of ActualDeliveryTime - AssignedAt over
//     delivered assignments carrying both stamps, in minutes, rounded
//   - OnTimeDeliveryRate: percentage of delivered assignments that arrived no
//     later than their estimate, rounded to one decimal
//   - ActiveDeliveryPersons: persons available or busy
//   - PendingDeliveries: assignments in ready_for_pickup or assigned
//
// With zero delivered assignments both ratios are 0.
func (MetricsAggregator) Compute(deliveries []delivery.Assignment, persons []delivery.Person) delivery.Metrics {
	m := delivery.Metrics{TotalDeliveries: len(deliveries)}

	var (
		onTime   int
		timed    int
		duration float64
	)
	for i := range deliveries {
		a := &deliveries[i]
		if delivery.IsPending(a.Status) {
			m.PendingDeliveries++
		}
		if a.Status != delivery.Delivered {
			continue
		}
		m.CompletedDeliveries++
		if a.IsOnTime() {
			onTime++
		}
		if a.ActualDeliveryTime != nil && a.AssignedAt != nil {
			duration += a.ActualDeliveryTime.Sub(*a.AssignedAt).Minutes()
			timed++
		}
	}

	if timed > 0 {
		m.AverageDeliveryTime = int(math.Round(duration / float64(timed)))
	}
	if m.CompletedDeliveries > 0 {
		rate := float64(onTime) / float64(m.CompletedDeliveries) * 100
		m.OnTimeDeliveryRate = math.Round(rate*10) / 10
	}

	for i := range persons {
		if persons[i].IsWorking() {
			m.ActiveDeliveryPersons++
		}
	}
	return m
}
