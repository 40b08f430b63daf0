// Package services provides the domain services that span several entities of
// the restaurant workflow.
//
// The package includes:
//   - Transitions: the registry of every entity kind's transition table
//   - DeliveryMatcher: selects and assigns delivery persons to deliveries
//   - ReservationMatcher: approves reservations onto tables and denies them
//   - MetricsAggregator: derives dispatch metrics from deliveries and persons
//
// Matchers only read the resource pools they are given and write back through
// a ports.Store; they never keep references to persons, tables or entities.
package services
