// Package delivery contains the dispatch side of the restaurant: delivery
// assignments and the delivery persons who carry them.
//
// Assignment lifecycle (see Flow):
//
//	pending ──> preparing ──> ready_for_pickup ──> assigned ──> picked_up ──> in_transit ──> delivered
//	   │            │                                 ▲
//	   └────────────┴─────────── early dispatch ──────┘
//
// Every non-terminal status may also move to cancelled. delivered and
// cancelled are terminal.
//
// Invariants:
//   - ActualDeliveryTime is set if and only if the status is delivered
//   - a delivery person is required for every status after ready_for_pickup
//
// Persons move freely between available, busy and offline (see PersonFlow).
// Only available and active persons are eligible for new assignments.
package delivery
