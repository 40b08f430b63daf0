package services

import (
	"restaurantops/internal/core/domain/model/delivery"
	"restaurantops/internal/core/domain/model/order"
	"restaurantops/internal/core/domain/model/reservation"
	"restaurantops/internal/core/domain/workflow"
)

// Transitions answers transition questions for every entity kind.
//
// Example:
//
//	services.Transitions.IsValidTransition(workflow.KindDelivery, "preparing", "delivered") // false
//	next, ok, _ := services.Transitions.NextStep(workflow.KindOrder, "READY")            // "COMPLETED", true
var Transitions = workflow.NewRegistry(
	order.Flow,
	delivery.Flow,
	delivery.PersonFlow,
	reservation.Flow,
)
