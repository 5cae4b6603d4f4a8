package queries

import (
	"errors"
	"time"

	"foodbot/internal/pkg/errs"
	"foodbot/internal/pkg/guard"
)

var ErrGetOrderStatsQueryIsNotConstructed = errors.New(
	"GetOrderStatsQuery must be created via NewGetOrderStatsQuery constructor",
)

// GetOrderStatsQuery aggregates order counts and revenue since a point in
// time. Feeds the periodic audit digest.
type GetOrderStatsQuery struct {
	since time.Time

	guard guard.ConstructorGuard
}

// NewGetOrderStatsQuery creates a stats query covering orders placed at or
// after the given time.
func NewGetOrderStatsQuery(since time.Time) (GetOrderStatsQuery, error) {
	if since.IsZero() {
		return GetOrderStatsQuery{}, errs.NewValueIsRequiredError("since")
	}
	return GetOrderStatsQuery{
		since: since,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderStatsQueryIsNotConstructed)
}

// Since returns the window start.
func (q GetOrderStatsQuery) Since() time.Time {
	return q.since
}

// GetOrderStatsQueryResponse aggregates one status bucket.
type GetOrderStatsQueryResponse struct {
	Status  string `json:"status"`
	Count   int    `json:"count"`
	Revenue int    `json:"revenue"`
}
