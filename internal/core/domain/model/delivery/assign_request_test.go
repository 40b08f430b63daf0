package delivery_test

import (
	"testing"
	"time"

	"restaurantops/internal/core/domain/model/delivery"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAssignRequest(t *testing.T) {
	t.Run("copies the requested time", func(t *testing.T) {
		at := now.Add(time.Hour)

		r := delivery.NewAssignRequest(" 1 ", &at, "ring twice")
		at = at.Add(time.Hour)

		require.NoError(t, r.Validate())
		assert.Equal(t, "1", r.PersonID())
		assert.Equal(t, now.Add(time.Hour), *r.EstimatedDeliveryTime())
		assert.Equal(t, "ring twice", r.Notes())
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var r delivery.AssignRequest

		require.ErrorIs(t, r.Validate(), delivery.ErrAssignRequestIsNotConstructed)
	})
}
