package queries

import (
	"context"

	"gorm.io/gorm"

	"foodbot/internal/core/domain/model/order"
)

// GetActiveOrdersQueryHandler lists in-flight orders straight from the
// database for monitoring. Bypasses the aggregates: the view needs columns,
// not behavior.
type GetActiveOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveOrdersQueryHandler creates a handler for the active orders view.
func NewGetActiveOrdersQueryHandler(db *gorm.DB) GetActiveOrdersQueryHandler {
	return GetActiveOrdersQueryHandler{db: db}
}

// Handle returns every order that is not delivered or canceled, oldest first.
func (h GetActiveOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetActiveOrdersQuery,
) ([]GetActiveOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetActiveOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			number,
			user_id,
			status,
			total,
			payment,
			courier_id,
			returned_count
		FROM orders
		WHERE status NOT IN (?, ?)
		ORDER BY number
	`, order.Delivered, order.Canceled).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetActiveOrdersQueryResponse
		var status order.Status

		if err = rows.Scan(
			&resp.Number,
			&resp.UserID,
			&status,
			&resp.Total,
			&resp.Payment,
			&resp.CourierID,
			&resp.ReturnedCount,
		); err != nil {
			return nil, err
		}

		resp.Status = status.String()
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
