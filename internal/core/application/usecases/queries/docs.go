// Package queries contains read-only operations returning lightweight
// response models straight from the database, bypassing the aggregates.
package queries
