package services_test

import (
	"testing"
	"time"

	"restaurantops/internal/adapters/out/memory"
	"restaurantops/internal/core/domain/model/delivery"
	"restaurantops/internal/core/domain/model/kernel"
	"restaurantops/internal/core/domain/services"
	"restaurantops/internal/core/domain/workflow"
	"restaurantops/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 5, 1, 18, 2, 0, 0, time.UTC)

func person(id string, status delivery.PersonStatus, active bool, rating float64, total int) delivery.Person {
	return delivery.Person{
		ID:              id,
		Name:            "Rider " + id,
		Status:          status,
		VehicleType:     delivery.Scooter,
		Rating:          rating,
		TotalDeliveries: total,
		IsActive:        active,
	}
}

func pool() []delivery.Person {
	return []delivery.Person{
		person("1", delivery.Available, true, 4.8, 150),
		person("2", delivery.Busy, true, 4.9, 200),
		person("3", delivery.Available, true, 4.8, 90),
		person("4", delivery.Available, false, 5.0, 10),
		person("5", delivery.Offline, true, 4.2, 40),
	}
}

func TestDeliveryMatcher_Select(t *testing.T) {
	matcher := services.NewDeliveryMatcher(kernel.FixedClock(now))

	t.Run("eligible keeps available and active persons", func(t *testing.T) {
		eligible := matcher.Eligible(pool())

		require.Len(t, eligible, 2)
		assert.Equal(t, "1", eligible[0].ID)
		assert.Equal(t, "3", eligible[1].ID)
	})

	t.Run("best is highest rating then fewest deliveries", func(t *testing.T) {
		best, err := matcher.Select(pool(), "")

		require.NoError(t, err)
		assert.Equal(t, "3", best.ID)
	})

	t.Run("requested eligible person", func(t *testing.T) {
		p, err := matcher.Select(pool(), "1")

		require.NoError(t, err)
		assert.Equal(t, "1", p.ID)
	})

	t.Run("requested person absent from pool", func(t *testing.T) {
		_, err := matcher.Select(pool(), "99")

		require.ErrorIs(t, err, services.ErrPersonNotFound)
	})

	t.Run("requested person not eligible", func(t *testing.T) {
		for _, id := range []string{"2", "4", "5"} {
			_, err := matcher.Select(pool(), id)

			require.ErrorIs(t, err, services.ErrNoEligiblePerson, id)
		}
	})

	t.Run("empty pool after filtering", func(t *testing.T) {
		_, err := matcher.Select([]delivery.Person{person("2", delivery.Busy, true, 5, 1)}, "")
		require.ErrorIs(t, err, services.ErrNoEligiblePerson)

		_, err = matcher.Select(nil, "")
		require.ErrorIs(t, err, services.ErrNoEligiblePerson)
	})
}

func TestDeliveryMatcher_EstimateDelivery(t *testing.T) {
	matcher := services.NewDeliveryMatcher(kernel.FixedClock(now))
	at := func(d time.Duration) *time.Time { return kernel.TimePtr(now.Add(d)) }

	tests := []struct {
		name      string
		requested *time.Time
		want      time.Time
		wantErr   bool
	}{
		{name: "nil uses earliest rounded up", requested: nil, want: time.Date(2025, 5, 1, 18, 35, 0, 0, time.UTC)},
		{name: "exactly lead time rounds up to stay above it", requested: at(30 * time.Minute), want: time.Date(2025, 5, 1, 18, 35, 0, 0, time.UTC)},
		{name: "rounds down to nearest boundary", requested: at(40 * time.Minute), want: time.Date(2025, 5, 1, 18, 40, 0, 0, time.UTC)},
		{name: "rounds up to nearest boundary", requested: at(46 * time.Minute), want: time.Date(2025, 5, 1, 18, 50, 0, 0, time.UTC)},
		{name: "boundary stays", requested: at(58 * time.Minute), want: time.Date(2025, 5, 1, 19, 0, 0, 0, time.UTC)},
		{name: "earlier than lead time", requested: at(29 * time.Minute), wantErr: true},
		{name: "in the past", requested: at(-time.Hour), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := matcher.EstimateDelivery(tt.requested, now)

			if tt.wantErr {
				require.ErrorIs(t, err, errs.ErrValueIsInvalid)
				assert.True(t, errs.IsValidation(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Zero(t, got.Minute()%5)
			assert.False(t, got.Before(now.Add(matcher.LeadTime())))
		})
	}
}

func TestDeliveryMatcher_Assign(t *testing.T) {
	newStore := func(t *testing.T, status delivery.Status) *memory.Store[delivery.Assignment, *delivery.Assignment] {
		t.Helper()
		store := memory.NewStore[delivery.Assignment](delivery.Flow, memory.WithClock(kernel.FixedClock(now)))
		_, err := store.Put(delivery.Assignment{
			ID:       "d-1",
			OrderID:  "o-1",
			Status:   status,
			Priority: delivery.High,
		})
		require.NoError(t, err)
		return store
	}
	matcher := services.NewDeliveryMatcher(kernel.FixedClock(now))

	t.Run("pending delivery gets the requested person", func(t *testing.T) {
		store := newStore(t, delivery.Pending)

		assigned, err := matcher.Assign(t.Context(), store, "d-1", pool(),
			delivery.NewAssignRequest("1", nil, "leave at door"))

		require.NoError(t, err)
		assert.Equal(t, delivery.Assigned, assigned.Status)
		assert.Equal(t, "1", *assigned.DeliveryPersonID)
		assert.Equal(t, now, *assigned.AssignedAt)
		assert.Equal(t, time.Date(2025, 5, 1, 18, 35, 0, 0, time.UTC), *assigned.EstimatedDeliveryTime)
		assert.Equal(t, "leave at door", assigned.Notes)
	})

	t.Run("automatic selection from the pool", func(t *testing.T) {
		store := newStore(t, delivery.ReadyForPickup)

		assigned, err := matcher.Assign(t.Context(), store, "d-1", pool(), delivery.NewAssignRequest("", nil, ""))

		require.NoError(t, err)
		assert.Equal(t, "3", *assigned.DeliveryPersonID)
	})

	t.Run("requested time is stored rounded", func(t *testing.T) {
		store := newStore(t, delivery.Preparing)
		requested := now.Add(47 * time.Minute)

		assigned, err := matcher.Assign(t.Context(), store, "d-1", pool(), delivery.NewAssignRequest("1", &requested, ""))

		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 5, 1, 18, 50, 0, 0, time.UTC), *assigned.EstimatedDeliveryTime)
	})

	t.Run("lead time violation leaves the delivery untouched", func(t *testing.T) {
		store := newStore(t, delivery.Preparing)
		requested := now.Add(10 * time.Minute)

		_, err := matcher.Assign(t.Context(), store, "d-1", pool(), delivery.NewAssignRequest("1", &requested, ""))

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		got, _ := store.Get("d-1")
		assert.Equal(t, delivery.Preparing, got.Status)
		assert.Nil(t, got.DeliveryPersonID)
	})

	t.Run("matcher errors propagate", func(t *testing.T) {
		store := newStore(t, delivery.Preparing)

		_, err := matcher.Assign(t.Context(), store, "d-1", pool(), delivery.NewAssignRequest("99", nil, ""))
		require.ErrorIs(t, err, services.ErrPersonNotFound)

		_, err = matcher.Assign(t.Context(), store, "d-1", nil, delivery.NewAssignRequest("", nil, ""))
		require.ErrorIs(t, err, services.ErrNoEligiblePerson)
	})

	t.Run("already assigned deliveries are rejected", func(t *testing.T) {
		store := newStore(t, delivery.Pending)
		_, err := matcher.Assign(t.Context(), store, "d-1", pool(), delivery.NewAssignRequest("1", nil, ""))
		require.NoError(t, err)

		_, err = matcher.Assign(t.Context(), store, "d-1", pool(), delivery.NewAssignRequest("3", nil, ""))

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		got, _ := store.Get("d-1")
		assert.Equal(t, "1", *got.DeliveryPersonID)
	})

	t.Run("terminal deliveries are rejected", func(t *testing.T) {
		store := newStore(t, delivery.Cancelled)

		_, err := matcher.Assign(t.Context(), store, "d-1", pool(), delivery.NewAssignRequest("1", nil, ""))

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("unknown delivery", func(t *testing.T) {
		store := newStore(t, delivery.Pending)

		_, err := matcher.Assign(t.Context(), store, "nope", pool(), delivery.NewAssignRequest("1", nil, ""))

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("request must be constructed", func(t *testing.T) {
		store := newStore(t, delivery.Pending)

		_, err := matcher.Assign(t.Context(), store, "d-1", pool(), delivery.AssignRequest{})

		require.ErrorIs(t, err, delivery.ErrAssignRequestIsNotConstructed)
	})
}

func TestTransitions(t *testing.T) {
	assert.True(t, services.Transitions.IsValidTransition(workflow.KindOrder, "PENDING", "CONFIRMED"))
	assert.False(t, services.Transitions.IsValidTransition(workflow.KindDelivery, "preparing", "delivered"))
	assert.True(t, services.Transitions.IsValidTransition(workflow.KindPerson, "busy", "offline"))
	assert.True(t, services.Transitions.IsValidTransition(workflow.KindReservation, "PENDING", "DENIED"))

	next, ok, err := services.Transitions.NextStep(workflow.KindDelivery, "picked_up")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, delivery.InTransit, next)

	_, ok, err = services.Transitions.NextStep(workflow.KindOrder, "CANCELLED")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Len(t, services.Transitions.Kinds(), 4)
}
