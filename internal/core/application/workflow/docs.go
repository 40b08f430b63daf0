// Package workflow is the single entry point for presentation code.
//
// A Facade wraps every data-source call for orders, deliveries, delivery
// persons, reservations and metrics. For each of them it exposes a View: whether
// a call is in flight, the last error rendered for people, and the cached data.
// Before a mutation reaches a source, the facade runs the same checks the mock
// stores would run (transition tables, matcher rules) against its cache, so
// invalid requests fail identically in live and mock mode.
//
// Cache rules:
//   - A load replaces the cached list; concurrent loads resolve last write wins
//   - A mutation upserts the returned entity into the cached list
//   - A delete removes the entity from the cached list
//   - A successful call clears the error of its view; a failed call sets it
package workflow
