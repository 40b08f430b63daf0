package reservation_test

import (
	"testing"

	"restaurantops/internal/core/domain/model/reservation"
	"restaurantops/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewApproval(t *testing.T) {
	t.Run("with table", func(t *testing.T) {
		a, err := reservation.NewApproval("admin-1", " t-4 ", "birthday")

		require.NoError(t, err)
		require.NoError(t, a.Validate())
		assert.Equal(t, "admin-1", a.ApproverID())
		require.NotNil(t, a.TableID())
		assert.Equal(t, "t-4", *a.TableID())
		assert.Equal(t, "birthday", a.AdminNotes())
	})

	t.Run("without table", func(t *testing.T) {
		a, err := reservation.NewApproval("admin-1", "", "")

		require.NoError(t, err)
		assert.Nil(t, a.TableID())
	})

	t.Run("approver is required", func(t *testing.T) {
		_, err := reservation.NewApproval("", "t-4", "")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var a reservation.Approval

		require.ErrorIs(t, a.Validate(), reservation.ErrApprovalIsNotConstructed)
	})
}
