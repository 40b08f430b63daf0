// Package errs provides the error taxonomy shared by the workflow engine.
//
// Each error kind follows the same pattern:
//   - a sentinel error variable (e.g. ErrInvalidTransition)
//   - a struct type carrying the details of the failure
//   - constructor functions with and without a cause
//   - Error() for formatting and Unwrap() returning the sentinel
//
// Validation errors (ErrValueIsInvalid, ErrValueIsRequired, ErrValueIsOutOfRange)
// are correctable by the caller. ErrInvalidTransition and ErrUnknownState report
// state machine violations. ErrObjectNotFound reports an unknown identifier.
// ErrNetwork marks transport failures; the data-source gateway intercepts it and
// serves synthetic data instead of surfacing it.
package errs
