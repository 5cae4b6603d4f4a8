package queries

import (
	"context"

	"gorm.io/gorm"

	"foodbot/internal/core/domain/model/order"
)

// GetOrderStatsQueryHandler aggregates per-status order counts and revenue.
type GetOrderStatsQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderStatsQueryHandler creates a handler for order statistics.
func NewGetOrderStatsQueryHandler(db *gorm.DB) GetOrderStatsQueryHandler {
	return GetOrderStatsQueryHandler{db: db}
}

// Handle returns one bucket per status present in the window.
func (h GetOrderStatsQueryHandler) Handle(
	ctx context.Context,
	query GetOrderStatsQuery,
) ([]GetOrderStatsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	stats := make([]GetOrderStatsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			COUNT(*),
			COALESCE(SUM(total), 0)
		FROM orders
		WHERE created_at >= ?
		GROUP BY status
		ORDER BY status
	`, query.Since()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetOrderStatsQueryResponse
		var status order.Status

		if err = rows.Scan(&status, &resp.Count, &resp.Revenue); err != nil {
			return nil, err
		}

		resp.Status = status.String()
		stats = append(stats, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return stats, nil
}
