// Package workflow implements the transition tables shared by every stateful
// entity kind in the restaurant: orders, delivery assignments, delivery persons
// and reservations.
//
// A Table is built once from a Definition (canonical happy path, extra edges,
// terminal states) and is read-only afterwards, so it is safe for concurrent use.
// A Registry groups tables by Kind and answers the two questions the rest of
// the system asks:
//
//   - may an entity of this kind move from one state to another (IsValidTransition, Check)
//   - what is the next step on the happy path (NextStep)
//
// Moving to the current state is a no-op and always valid, including on terminal
// states. Any other move out of a terminal state fails with an
// errs.InvalidTransitionError. States the table does not know fail with an
// errs.UnknownStateError.
package workflow
