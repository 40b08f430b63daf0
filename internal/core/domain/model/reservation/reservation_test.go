package reservation_test

import (
	"testing"
	"time"

	"restaurantops/internal/core/domain/model/kernel"
	"restaurantops/internal/core/domain/model/reservation"
	"restaurantops/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var dinner = time.Date(2025, 6, 20, 19, 30, 0, 0, time.UTC)

func newReservation(t *testing.T) *reservation.Reservation {
	t.Helper()
	r, err := reservation.NewReservation("u-7", "Alan Turing", "alan@example.com", "555-0101", dinner, 4, "window seat")
	require.NoError(t, err)
	r.Init("42", dinner.Add(-48*time.Hour))
	return &r
}

func TestNewReservation(t *testing.T) {
	t.Run("should start pending", func(t *testing.T) {
		r := newReservation(t)

		require.NoError(t, r.Validate())
		assert.Equal(t, reservation.Pending, r.State())
		assert.Equal(t, "42", r.Key())
		assert.Nil(t, r.ConfirmedAt)
	})

	t.Run("should reject party size out of range", func(t *testing.T) {
		_, err := reservation.NewReservation("", "Alan", "", "", dinner, 0, "")
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

		_, err = reservation.NewReservation("", "Alan", "", "", dinner, 21, "")
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should require name and time", func(t *testing.T) {
		_, err := reservation.NewReservation("", "", "", "", time.Time{}, 2, "")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "customerName")
		assert.Contains(t, err.Error(), "reservationTime")
	})
}

func TestReservation_Enter(t *testing.T) {
	r := newReservation(t)
	at := dinner.Add(-24 * time.Hour)

	r.Enter(reservation.Confirmed, at)

	assert.Equal(t, reservation.Confirmed, r.Status)
	require.NotNil(t, r.ConfirmedAt)
	assert.Equal(t, at, *r.ConfirmedAt)
}

func TestReservation_Validate(t *testing.T) {
	t.Run("denied requires a reason", func(t *testing.T) {
		r := newReservation(t)
		r.Status = reservation.Denied

		err := r.Validate()
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.True(t, errs.IsValidation(err))

		r.DenialReason = "fully booked"
		require.NoError(t, r.Validate())
	})

	t.Run("unknown status", func(t *testing.T) {
		r := newReservation(t)
		r.Status = "WAITLISTED"

		require.ErrorIs(t, r.Validate(), errs.ErrUnknownState)
	})
}

func TestReservation_Overlaps(t *testing.T) {
	a := newReservation(t)
	b := newReservation(t)

	b.ReservationTime = dinner.Add(time.Hour + 59*time.Minute)
	assert.True(t, a.Overlaps(b))
	assert.True(t, b.Overlaps(a))

	b.ReservationTime = dinner.Add(2 * time.Hour)
	assert.False(t, a.Overlaps(b))

	b.ReservationTime = dinner.Add(-2 * time.Hour)
	assert.False(t, a.Overlaps(b))
}

func TestReservation_Holds(t *testing.T) {
	r := newReservation(t)
	assert.False(t, r.Holds())

	r.TableID = kernel.StringPtr("t-1")
	assert.False(t, r.Holds())

	r.Status = reservation.Confirmed
	assert.True(t, r.Holds())

	r.Status = reservation.Seated
	assert.True(t, r.Holds())

	r.Status = reservation.Cancelled
	assert.False(t, r.Holds())
}

func TestFlow(t *testing.T) {
	tests := []struct {
		from, to reservation.Status
		valid    bool
	}{
		{reservation.Pending, reservation.Confirmed, true},
		{reservation.Pending, reservation.Denied, true},
		{reservation.Pending, reservation.Cancelled, true},
		{reservation.Confirmed, reservation.Seated, true},
		{reservation.Confirmed, reservation.Cancelled, true},
		{reservation.Confirmed, reservation.NoShow, true},
		{reservation.Seated, reservation.Completed, true},
		{reservation.Pending, reservation.Seated, false},
		{reservation.Pending, reservation.NoShow, false},
		{reservation.Seated, reservation.Cancelled, false},
		{reservation.Denied, reservation.Confirmed, false},
		{reservation.NoShow, reservation.Seated, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.valid, reservation.Flow.IsValid(tt.from, tt.to))
		})
	}
}

func TestTable(t *testing.T) {
	table := reservation.Table{ID: "t-1", Name: "Window 1", Capacity: 4, IsActive: true}

	require.NoError(t, table.Validate())
	assert.True(t, table.Fits(4))
	assert.False(t, table.Fits(5))

	table.IsActive = false
	assert.False(t, table.Fits(2))

	require.ErrorIs(t, reservation.Table{ID: "t-2"}.Validate(), errs.ErrValueIsInvalid)
	require.ErrorIs(t, reservation.Table{Capacity: 2}.Validate(), errs.ErrValueIsRequired)
}
