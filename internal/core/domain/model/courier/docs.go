// Package courier contains the Courier aggregate: the roster of chat users
// allowed to take orders from the dispatch channel, and the per-courier
// earnings ledger credited on every delivery.
package courier
