// Package kernel contains shared value objects used across the domain model:
// delivery locations and normalized phone numbers. All value objects are
// immutable, constructor-guarded, and validate their own invariants.
package kernel
