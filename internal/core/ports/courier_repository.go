package ports

import (
	"context"

	"foodbot/internal/core/domain/model/courier"
)

// CourierRepository defines the persistence contract for the courier roster
// and the per-courier earnings ledgers.
type CourierRepository interface {
	// Add enrolls a new courier on the roster.
	Add(ctx context.Context, aggregate *courier.Courier) error

	// Update persists changes to an existing courier, including the ledger.
	Update(ctx context.Context, aggregate *courier.Courier) error

	// Get retrieves a courier by their chat actor id.
	Get(ctx context.Context, chatID int64) (*courier.Courier, error)

	// Exists reports whether a chat actor is on the courier roster.
	Exists(ctx context.Context, chatID int64) (bool, error)
}
