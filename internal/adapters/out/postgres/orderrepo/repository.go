package orderrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"foodbot/internal/core/domain/model/order"
	"foodbot/internal/pkg/errs"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// NextNumber allocates the next order number. Runs inside the caller's
// transaction, which serializes concurrent checkouts.
func (r *GormOrderRepository) NextNumber(ctx context.Context) (int, error) {
	var number int
	err := r.db.WithContext(ctx).
		Raw(`SELECT COALESCE(MAX(number), 0) + 1 FROM orders`).
		Scan(&number).Error
	if err != nil {
		return 0, err
	}
	return number, nil
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update saves an existing order to the database.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("number = ?", dto.Number).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.Number())
	}
	return nil
}

// Get retrieves an order by its number. Inside a transaction the row is
// locked FOR UPDATE, so concurrent transitions re-validate their guards
// against the latest committed status instead of racing Update calls.
func (r *GormOrderRepository) Get(ctx context.Context, number int) (*order.Order, error) {
	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "number = ?", number).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", number)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllInPendingStatus retrieves all orders inside the cancellation window.
func (r *GormOrderRepository) GetAllInPendingStatus(ctx context.Context) ([]*order.Order, error) {
	return r.findByStatus(ctx, order.Pending)
}

// GetAllInPublishedStatus retrieves all orders currently on offer.
func (r *GormOrderRepository) GetAllInPublishedStatus(ctx context.Context) ([]*order.Order, error) {
	return r.findByStatus(ctx, order.Published)
}

// GetAllAcceptedBy retrieves the courier's in-flight orders.
func (r *GormOrderRepository) GetAllAcceptedBy(ctx context.Context, courierID int64) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Find(&dtos, "status = ? AND courier_id = ?", order.Accepted, courierID).Error
	if err != nil {
		return nil, err
	}
	return r.toDomainAll(dtos)
}

func (r *GormOrderRepository) findByStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).Order("number").Find(&dtos, "status = ?", status).Error; err != nil {
		return nil, err
	}
	return r.toDomainAll(dtos)
}

func (r *GormOrderRepository) toDomainAll(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}
