// Package order contains the Order aggregate: a customer's ticket with its line
// items, money breakdown and kitchen lifecycle.
//
// Lifecycle (see Flow):
//
//	PENDING ──> CONFIRMED ──> PREPARING ──> READY ──> COMPLETED
//	   │            │             │           │
//	   └────────────┴─────────────┴───────────┴──> CANCELLED
//
// COMPLETED and CANCELLED are terminal. The total is always derived from the
// line items, tax and tip by Recalculate and is never set independently.
package order
