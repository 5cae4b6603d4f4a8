// Package courierrepo provides data transfer objects and mapping functions for
// courier persistence. This package implements the repository pattern for the
// courier roster aggregate, handling the conversion between domain entities
// and database representations.
package courierrepo

import (
	"time"

	"foodbot/internal/core/domain/model/courier"
	"foodbot/internal/core/domain/model/kernel"
)

// CourierDTO represents the database structure for persisting courier
// aggregates. The earnings ledger total is a queryable column; the
// per-delivery history is a JSONB document.
type CourierDTO struct {
	ChatID       int64  `gorm:"primaryKey"`
	Name         string `gorm:"type:varchar(255);not null"`
	Phone        string
	RegisteredAt time.Time
	LedgerTotal  int           `gorm:"column:ledger_total"`
	Deliveries   []DeliveryDTO `gorm:"serializer:json;type:jsonb"`
}

// TableName specifies the database table name for courier entities.
func (CourierDTO) TableName() string {
	return "couriers"
}

// DeliveryDTO is one credited delivery inside the ledger document.
type DeliveryDTO struct {
	OrderNumber int       `json:"orderNumber"`
	Amount      int       `json:"amount"`
	DeliveredAt time.Time `json:"deliveredAt"`
}

// fromDomain converts a courier aggregate to its database representation.
func fromDomain(c *courier.Courier) CourierDTO {
	ledger := c.Ledger()
	deliveries := make([]DeliveryDTO, 0, len(ledger.Deliveries()))
	for _, d := range ledger.Deliveries() {
		deliveries = append(deliveries, DeliveryDTO{
			OrderNumber: d.OrderNumber,
			Amount:      d.Amount,
			DeliveredAt: d.DeliveredAt,
		})
	}

	return CourierDTO{
		ChatID:       c.ChatID(),
		Name:         c.Name(),
		Phone:        c.Phone().String(),
		RegisteredAt: c.RegisteredAt(),
		LedgerTotal:  ledger.Total(),
		Deliveries:   deliveries,
	}
}

// toDomain reconstructs the complete aggregate using RestoreCourier.
func toDomain(dto CourierDTO) (*courier.Courier, error) {
	phone, err := kernel.NewPhone(dto.Phone)
	if err != nil {
		return nil, err
	}

	deliveries := make([]courier.Delivery, 0, len(dto.Deliveries))
	for _, d := range dto.Deliveries {
		deliveries = append(deliveries, courier.Delivery{
			OrderNumber: d.OrderNumber,
			Amount:      d.Amount,
			DeliveredAt: d.DeliveredAt,
		})
	}

	return courier.RestoreCourier(
		dto.ChatID,
		dto.Name,
		phone,
		dto.RegisteredAt,
		courier.RestoreLedger(dto.LedgerTotal, deliveries),
	)
}
