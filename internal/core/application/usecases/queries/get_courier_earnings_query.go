package queries

import (
	"errors"

	"foodbot/internal/pkg/errs"
	"foodbot/internal/pkg/guard"
)

var ErrGetCourierEarningsQueryIsNotConstructed = errors.New(
	"GetCourierEarningsQuery must be created via NewGetCourierEarningsQuery constructor",
)

// GetCourierEarningsQuery retrieves a courier's accumulated earnings and
// their current in-flight orders.
type GetCourierEarningsQuery struct {
	courierID int64

	guard guard.ConstructorGuard
}

// NewGetCourierEarningsQuery creates a query for one courier's earnings.
func NewGetCourierEarningsQuery(courierID int64) (GetCourierEarningsQuery, error) {
	if courierID == 0 {
		return GetCourierEarningsQuery{}, errs.NewValueIsRequiredError("courier id")
	}
	return GetCourierEarningsQuery{
		courierID: courierID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCourierEarningsQuery) Validate() error {
	return q.guard.Validate(ErrGetCourierEarningsQueryIsNotConstructed)
}

// CourierID returns the courier being queried.
func (q GetCourierEarningsQuery) CourierID() int64 {
	return q.courierID
}

// GetCourierEarningsQueryResponse is a courier's earnings summary.
type GetCourierEarningsQueryResponse struct {
	CourierID      int64  `json:"courierId"`
	Name           string `json:"name"`
	Total          int    `json:"total"`
	DeliveredCount int    `json:"deliveredCount"`
	InFlightCount  int    `json:"inFlightCount"`
}
