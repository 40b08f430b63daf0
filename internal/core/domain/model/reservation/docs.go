// Package reservation contains table reservations and the table pool they draw from.
//
// Lifecycle (see Flow):
//
//	PENDING ──> CONFIRMED ──> SEATED ──> COMPLETED
//	   │  │         │  │
//	   │  │         │  └──> NO_SHOW
//	   │  └─────────┴─────> CANCELLED
//	   └──> DENIED
//
// DENIED, CANCELLED, COMPLETED and NO_SHOW are terminal. A DENIED reservation
// always carries a denial reason; entering CONFIRMED stamps ConfirmedAt.
package reservation
