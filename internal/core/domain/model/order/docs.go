// Package order provides the Order aggregate root and its lifecycle state
// machine for the delivery coordination system.
//
// The package includes:
//   - Order: the aggregate root tracking a confirmed cart from checkout to
//     delivery or cancellation
//   - Status: a state machine enforcing the Pending -> Published -> Accepted
//     -> Delivered workflow, with cancellation from any non-terminal state
//   - Item, Payment, MessageBinding, ProposedEdit: value objects carried by
//     the aggregate
//
// Key business rules:
//   - Status moves only along the defined edges; Delivered and Canceled are
//     terminal
//   - A courier is assigned on Accept and cleared on Return; returns are
//     counted on the order
//   - Delivery confirmation is gated on the order's one-time code whenever
//     courier-side verification is required
//   - A staged item edit never changes status by itself; only explicit
//     customer approval merges it
//
// The package follows Domain-Driven Design principles: private fields,
// validated constructors, and rich domain behavior on the aggregate.
package order
