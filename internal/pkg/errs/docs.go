// Package errs provides standardized error types for the application.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping used throughout the codebase.
//
// The package includes error types for the common failure scenarios:
//   - ObjectNotFoundError: an object cannot be found by its identifier
//   - ValueIsInvalidError: a value failed validation
//   - ValueIsOutOfRangeError: a value lies outside its permitted bounds
//   - ValueIsRequiredError: a required value is missing
//
// Each error type follows the same pattern:
//   - A sentinel error variable (e.g. ErrObjectNotFound)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() for formatting and Unwrap() for errors.Is classification
package errs
