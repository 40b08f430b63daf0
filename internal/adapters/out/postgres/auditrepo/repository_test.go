package auditrepo_test

import (
	"context"
	"testing"
	"time"

	"restaurantops/internal/adapters/out/postgres"
	"restaurantops/internal/adapters/out/postgres/auditrepo"
	"restaurantops/internal/core/domain/workflow"
	"restaurantops/internal/core/ports"
	"restaurantops/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 5, 1, 18, 0, 0, 0, time.UTC)

func setupLog(t *testing.T) *auditrepo.GormTransitionLog {
	t.Helper()
	db, err := postgres.Open(postgres.DriverSQLite, postgres.MemoryDSN)
	require.NoError(t, err)
	t.Cleanup(func() { _ = postgres.Close(db) })

	log := auditrepo.NewGormTransitionLog(db)
	require.NoError(t, log.Migrate(context.Background()))
	return log
}

func record(id string, from, to workflow.State, at time.Time) ports.TransitionRecord {
	return ports.TransitionRecord{
		Kind:     workflow.KindDelivery,
		EntityID: id,
		From:     from,
		To:       to,
		Source:   "mock",
		At:       at,
	}
}

func TestGormTransitionLog_History(t *testing.T) {
	ctx := context.Background()
	log := setupLog(t)

	require.NoError(t, log.Observe(ctx, record("1", "preparing", "ready_for_pickup", now.Add(2*time.Minute))))
	require.NoError(t, log.Observe(ctx, record("1", "pending", "preparing", now)))
	require.NoError(t, log.Observe(ctx, record("2", "assigned", "picked_up", now)))

	history, err := log.History(ctx, workflow.KindDelivery, "1")

	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, record("1", "pending", "preparing", now), history[0])
	assert.Equal(t, workflow.State("ready_for_pickup"), history[1].To)
}

func TestGormTransitionLog_HistoryIsScopedByKind(t *testing.T) {
	ctx := context.Background()
	log := setupLog(t)

	r := record("42", "PENDING", "CONFIRMED", now)
	r.Kind = workflow.KindReservation
	require.NoError(t, log.Observe(ctx, r))

	history, err := log.History(ctx, workflow.KindDelivery, "42")
	require.NoError(t, err)
	assert.Empty(t, history)

	history, err = log.History(ctx, workflow.KindReservation, "42")
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestGormTransitionLog_Observe_Invalid(t *testing.T) {
	ctx := context.Background()
	log := setupLog(t)

	tests := []struct {
		name   string
		mutate func(*ports.TransitionRecord)
	}{
		{name: "missing kind", mutate: func(r *ports.TransitionRecord) { r.Kind = "" }},
		{name: "missing entity", mutate: func(r *ports.TransitionRecord) { r.EntityID = " " }},
		{name: "missing target", mutate: func(r *ports.TransitionRecord) { r.To = "" }},
		{name: "missing time", mutate: func(r *ports.TransitionRecord) { r.At = time.Time{} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := record("1", "pending", "preparing", now)
			tt.mutate(&r)

			err := log.Observe(ctx, r)

			assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		})
	}

	n, err := log.Count(ctx, "")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestGormTransitionLog_ObserveAll(t *testing.T) {
	ctx := context.Background()
	log := setupLog(t)

	t.Run("rejects the whole batch", func(t *testing.T) {
		err := log.ObserveAll(ctx, []ports.TransitionRecord{
			record("1", "pending", "preparing", now),
			record("", "preparing", "ready_for_pickup", now),
		})

		require.Error(t, err)
		n, err := log.Count(ctx, workflow.KindDelivery)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("writes every record", func(t *testing.T) {
		err := log.ObserveAll(ctx, []ports.TransitionRecord{
			record("1", "pending", "preparing", now),
			record("1", "preparing", "ready_for_pickup", now.Add(time.Minute)),
		})

		require.NoError(t, err)
		n, err := log.Count(ctx, workflow.KindDelivery)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)
	})
}

func TestGormTransitionLog_History_Invalid(t *testing.T) {
	log := setupLog(t)

	_, err := log.History(context.Background(), workflow.KindOrder, "")

	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := postgres.Open("oracle", "dsn")

	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
