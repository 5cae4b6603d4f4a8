package queries

import (
	"errors"

	"foodbot/internal/pkg/guard"
)

var ErrGetActiveOrdersQueryIsNotConstructed = errors.New(
	"GetActiveOrdersQuery must be created via NewGetActiveOrdersQuery constructor",
)

// GetActiveOrdersQuery retrieves all orders that are not yet delivered or
// canceled, for the operations view.
type GetActiveOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetActiveOrdersQuery creates a query for the in-flight orders.
func NewGetActiveOrdersQuery() GetActiveOrdersQuery {
	return GetActiveOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetActiveOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveOrdersQueryIsNotConstructed)
}

// GetActiveOrdersQueryResponse is one in-flight order row.
type GetActiveOrdersQueryResponse struct {
	Number        int    `json:"number"`
	UserID        int64  `json:"userId"`
	Status        string `json:"status"`
	Total         int    `json:"total"`
	Payment       string `json:"payment"`
	CourierID     *int64 `json:"courierId,omitempty"`
	ReturnedCount int    `json:"returnedCount"`
}
