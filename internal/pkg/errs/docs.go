// Package errs provides the typed errors shared by the order service.
//
// Validation errors:
//   - ValueIsRequiredError: a required value is missing or blank
//   - ValueIsInvalidError: a value is malformed or not allowed in the current state
//   - ValueIsOutOfRangeError: a number falls outside its bounds
//
// Use IsValidation to test for any of the three.
//
// Other errors:
//   - ObjectNotFoundError: no object exists for the given identifier
//   - PersistenceError: the store failed while performing an operation
//   - ExternalSubmissionError: the resource planning system did not accept an order
//
// Every type pairs a sentinel (e.g. ErrPersistence) with a struct carrying the
// details, so callers can branch with errors.Is and inspect with errors.As.
package errs
