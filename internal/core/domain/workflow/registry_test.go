package workflow_test

import (
	"testing"

	"restaurantops/internal/core/domain/workflow"
	"restaurantops/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	registry := workflow.NewRegistry(kitchenTable(t))

	t.Run("is_valid_transition_delegates_to_the_kind_table", func(t *testing.T) {
		assert.True(t, registry.IsValidTransition("ticket", queued, cooking))
		assert.False(t, registry.IsValidTransition("ticket", queued, served))
	})

	t.Run("next_step_returns_null_for_terminal_states", func(t *testing.T) {
		next, ok, err := registry.NextStep("ticket", plated)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, served, next)

		_, ok, err = registry.NextStep("ticket", served)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("unknown_kind_is_an_unknown_state", func(t *testing.T) {
		err := registry.Check("invoice", queued, cooking)
		require.ErrorIs(t, err, errs.ErrUnknownState)

		_, _, err = registry.NextStep("invoice", queued)
		require.ErrorIs(t, err, errs.ErrUnknownState)

		assert.False(t, registry.IsValidTransition("invoice", queued, cooking))
	})

	t.Run("lists_registered_kinds", func(t *testing.T) {
		assert.Equal(t, []workflow.Kind{"ticket"}, registry.Kinds())
	})
}
