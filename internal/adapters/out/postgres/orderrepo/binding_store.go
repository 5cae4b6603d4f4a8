package orderrepo

import (
	"context"

	"gorm.io/gorm"

	"foodbot/internal/core/domain/model/order"
)

// BindingStore persists message binding changes outside a business
// transaction. The synchronizer saves bindings after every reconciliation;
// nothing else on the order row is touched.
type BindingStore struct {
	db *gorm.DB
}

// NewBindingStore creates a binding store on the shared connection.
func NewBindingStore(db *gorm.DB) *BindingStore {
	return &BindingStore{db: db}
}

// SaveBindings writes the order's current bindings column.
func (s *BindingStore) SaveBindings(ctx context.Context, o *order.Order) error {
	return s.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("number = ?", o.Number()).
		Update("bindings", bindingsFromDomain(o)).Error
}
