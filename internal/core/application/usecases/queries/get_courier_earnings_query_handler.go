package queries

import (
	"context"

	"gorm.io/gorm"

	"foodbot/internal/core/domain/model/order"
	"foodbot/internal/pkg/errs"
)

// GetCourierEarningsQueryHandler reads a courier's earnings summary.
type GetCourierEarningsQueryHandler struct {
	db *gorm.DB
}

// NewGetCourierEarningsQueryHandler creates a handler for earnings queries.
func NewGetCourierEarningsQueryHandler(db *gorm.DB) GetCourierEarningsQueryHandler {
	return GetCourierEarningsQueryHandler{db: db}
}

// Handle returns the courier's lifetime total, delivery count and the number
// of orders they currently carry.
func (h GetCourierEarningsQueryHandler) Handle(
	ctx context.Context,
	query GetCourierEarningsQuery,
) (GetCourierEarningsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCourierEarningsQueryResponse{}, err
	}

	var resp GetCourierEarningsQueryResponse

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			c.chat_id,
			c.name,
			c.ledger_total,
			(SELECT COUNT(*) FROM orders o WHERE o.courier_id = c.chat_id AND o.status = ?),
			(SELECT COUNT(*) FROM orders o WHERE o.courier_id = c.chat_id AND o.status = ?)
		FROM couriers c
		WHERE c.chat_id = ?
	`, order.Delivered, order.Accepted, query.CourierID()).Row()

	if err := row.Scan(
		&resp.CourierID,
		&resp.Name,
		&resp.Total,
		&resp.DeliveredCount,
		&resp.InFlightCount,
	); err != nil {
		return GetCourierEarningsQueryResponse{}, errs.NewObjectNotFoundErrorWithCause(
			"courier", query.CourierID(), err)
	}

	return resp, nil
}
