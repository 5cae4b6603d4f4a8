package ports

import (
	"context"

	"foodbot/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing, retrieving, and querying order entities
// based on their status and assignment state.
type OrderRepository interface {
	// NextNumber allocates the next unique order number.
	NextNumber(ctx context.Context) (int, error)

	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its order number.
	Get(ctx context.Context, number int) (*order.Order, error)

	// GetAllInPendingStatus retrieves all orders still inside the
	// cancellation window. Used on startup to reconcile missed publishes.
	GetAllInPendingStatus(ctx context.Context) ([]*order.Order, error)

	// GetAllInPublishedStatus retrieves all orders currently offered to
	// couriers in the dispatch channel.
	GetAllInPublishedStatus(ctx context.Context) ([]*order.Order, error)

	// GetAllAcceptedBy retrieves the courier's in-flight orders.
	GetAllAcceptedBy(ctx context.Context, courierID int64) ([]*order.Order, error)
}
