// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. This package implements the repository pattern for the
// order aggregate, handling the conversion between domain entities and their
// database representation.
package orderrepo

import (
	"time"

	"foodbot/internal/core/domain/model/kernel"
	"foodbot/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for persisting order
// aggregates. Items, bindings and the staged edit are stored as JSONB
// documents; everything queried by status or courier lives in indexed
// columns.
type OrderDTO struct {
	Number        int       `gorm:"primaryKey"`
	UserID        int64     `gorm:"index"`
	Status        int       `gorm:"index"`
	Items         []ItemDTO `gorm:"serializer:json;type:jsonb"`
	Total         int
	Phone         string
	Location      string
	CreatedAt     time.Time
	Payment       int
	Paid          bool
	OTP           string `gorm:"column:otp"`
	CourierID     *int64 `gorm:"index"`
	ReturnedCount int
	Bindings      map[string]BindingDTO `gorm:"serializer:json;type:jsonb"`
	ProposedEdit  *EditDTO              `gorm:"serializer:json;type:jsonb"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO is one order line inside the items document.
type ItemDTO struct {
	Name string `json:"name"`
	Qty  int    `json:"qty"`
}

// BindingDTO is one live chat message reference inside the bindings document.
type BindingDTO struct {
	ChatID    int64 `json:"chatId"`
	MessageID int   `json:"messageId"`
}

// EditDTO is the staged item change document.
type EditDTO struct {
	Items      []ItemDTO `json:"items"`
	Total      int       `json:"total"`
	ProposedBy int64     `json:"proposedBy"`
}

func itemsFromDomain(items []order.Item) []ItemDTO {
	out := make([]ItemDTO, 0, len(items))
	for _, item := range items {
		out = append(out, ItemDTO{Name: item.Name(), Qty: item.Qty()})
	}
	return out
}

func itemsToDomain(dtos []ItemDTO) ([]order.Item, error) {
	out := make([]order.Item, 0, len(dtos))
	for _, dto := range dtos {
		item, err := order.NewItem(dto.Name, dto.Qty)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

// bindingsFromDomain flattens an order's live bindings for storage.
func bindingsFromDomain(o *order.Order) map[string]BindingDTO {
	bindings := o.Bindings()
	out := make(map[string]BindingDTO, len(bindings))
	for role, b := range bindings {
		out[string(role)] = BindingDTO{ChatID: b.ChatID(), MessageID: b.MessageID()}
	}
	return out
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(o *order.Order) OrderDTO {
	var edit *EditDTO
	if staged := o.ProposedEdit(); staged != nil {
		edit = &EditDTO{
			Items:      itemsFromDomain(staged.Items()),
			Total:      staged.Total(),
			ProposedBy: staged.ProposedBy(),
		}
	}

	return OrderDTO{
		Number:        o.Number(),
		UserID:        o.UserID(),
		Status:        int(o.Status()),
		Items:         itemsFromDomain(o.Items()),
		Total:         o.Total(),
		Phone:         o.Phone().String(),
		Location:      o.Location().String(),
		CreatedAt:     o.CreatedAt(),
		Payment:       int(o.Payment()),
		Paid:          o.Paid(),
		OTP:           o.OTP(),
		CourierID:     o.Courier(),
		ReturnedCount: o.ReturnedCount(),
		Bindings:      bindingsFromDomain(o),
		ProposedEdit:  edit,
	}
}

// toDomain reconstructs the complete aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	items, err := itemsToDomain(dto.Items)
	if err != nil {
		return nil, err
	}

	phone, err := kernel.NewPhone(dto.Phone)
	if err != nil {
		return nil, err
	}

	location, err := kernel.ParseLocation(dto.Location)
	if err != nil {
		return nil, err
	}

	bindings := make(map[order.Role]order.MessageBinding, len(dto.Bindings))
	for role, b := range dto.Bindings {
		binding, bindErr := order.NewMessageBinding(b.ChatID, b.MessageID)
		if bindErr != nil {
			return nil, bindErr
		}
		bindings[order.Role(role)] = binding
	}

	var edit *order.ProposedEdit
	if dto.ProposedEdit != nil {
		editItems, itemErr := itemsToDomain(dto.ProposedEdit.Items)
		if itemErr != nil {
			return nil, itemErr
		}
		staged, editErr := order.NewProposedEdit(editItems, dto.ProposedEdit.Total, dto.ProposedEdit.ProposedBy)
		if editErr != nil {
			return nil, editErr
		}
		edit = &staged
	}

	return order.RestoreOrder(
		dto.Number,
		dto.UserID,
		items,
		dto.Total,
		phone,
		location,
		order.Payment(dto.Payment),
		dto.OTP,
		dto.CreatedAt,
		order.Status(dto.Status),
		dto.Paid,
		dto.CourierID,
		dto.ReturnedCount,
		bindings,
		edit,
	)
}
