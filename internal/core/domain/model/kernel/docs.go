// Package kernel provides the value objects shared by every restaurant entity.
//
// The package includes:
//   - NewID: string identifiers backed by random UUIDs
//   - Location: a static latitude/longitude snapshot
//   - Money helpers: cent rounding and the default tax rate, on shopspring/decimal
//   - Clock: an injectable time source
//
// Identifiers are opaque strings because the backend may hand out numeric ids
// ("42") while locally created entities receive UUIDs.
package kernel
