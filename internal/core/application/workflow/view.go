package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"restaurantops/internal/core/domain/model/delivery"
	"restaurantops/internal/core/domain/model/order"
	"restaurantops/internal/core/domain/model/reservation"
	"restaurantops/internal/core/domain/services"
	domain "restaurantops/internal/core/domain/workflow"
	"restaurantops/internal/pkg/errs"
)

// ErrorView is an error rendered for people.
type ErrorView struct {
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions,omitempty"`
	Retryable   bool     `json:"retryable"`
}

// View is the state of one domain as seen by presentation code.
type View[T any] struct {
	Loading bool       `json:"loading"`
	Error   *ErrorView `json:"error,omitempty"`
	Data    T          `json:"data"`
}

// Snapshot holds the views of every domain at one instant.
type Snapshot struct {
	Mode         string                          `json:"mode"`
	Orders       View[[]order.Order]             `json:"orders"`
	Deliveries   View[[]delivery.Assignment]     `json:"deliveries"`
	Persons      View[[]delivery.Person]         `json:"persons"`
	Reservations View[[]reservation.Reservation] `json:"reservations"`
	Metrics      View[delivery.Metrics]          `json:"metrics"`
}

// Describe renders err for people. Only errors that come from the network,
// or from a deadline, are retryable; everything else has to be corrected.
func Describe(err error) *ErrorView {
	if err == nil {
		return nil
	}

	view := &ErrorView{Message: err.Error()}

	var (
		transition *errs.InvalidTransitionError
		unknown    *errs.UnknownStateError
	)
	switch {
	case errors.Is(err, errs.ErrNetwork),
		errors.Is(err, context.DeadlineExceeded):
		view.Retryable = true
		view.Suggestions = []string{"Check your connection", "Retry in a moment"}
	case errors.As(err, &transition):
		view.Suggestions = transitionSuggestions(transition)
	case errors.As(err, &unknown):
		view.Suggestions = knownStates(domain.Kind(unknown.Kind))
	case errors.Is(err, services.ErrNoEligiblePerson):
		view.Suggestions = []string{
			"Wait for a delivery person to become available",
			"Assign a different delivery person",
		}
	case errors.Is(err, services.ErrPersonNotFound):
		view.Suggestions = []string{"Reload the delivery persons and pick one from the list"}
	case errors.Is(err, errs.ErrObjectNotFound):
		view.Suggestions = []string{"Reload the list, the item may have been removed"}
	case errs.IsValidation(err):
		view.Suggestions = []string{"Correct the highlighted values and submit again"}
	default:
		view.Suggestions = []string{"Try again later"}
	}
	return view
}

func transitionSuggestions(e *errs.InvalidTransitionError) []string {
	table, err := services.Transitions.Table(domain.Kind(e.Kind))
	if err != nil {
		return nil
	}
	allowed := table.Allowed(domain.State(e.From))
	if len(allowed) == 0 {
		return []string{fmt.Sprintf("%s is final, no further status changes are possible", e.From)}
	}
	return []string{fmt.Sprintf("From %s you can move to: %s", e.From, joinStates(allowed))}
}

func knownStates(kind domain.Kind) []string {
	table, err := services.Transitions.Table(kind)
	if err != nil {
		return []string{fmt.Sprintf("Use one of: %s", joinKinds(services.Transitions.Kinds()))}
	}
	return []string{fmt.Sprintf("Use one of: %s", joinStates(table.States()))}
}

func joinStates(states []domain.State) string {
	out := make([]string, len(states))
	for i, s := range states {
		out[i] = string(s)
	}
	return strings.Join(out, ", ")
}

func joinKinds(kinds []domain.Kind) string {
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = string(k)
	}
	return strings.Join(out, ", ")
}
