package courierrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"foodbot/internal/core/domain/model/courier"
	"foodbot/internal/pkg/errs"
)

// GormCourierRepository implements CourierRepository using GORM.
type GormCourierRepository struct {
	db *gorm.DB
}

// NewGormCourierRepository creates a new GORM courier repository.
func NewGormCourierRepository(db *gorm.DB) *GormCourierRepository {
	return &GormCourierRepository{db: db}
}

// Add saves a newly enrolled courier to the database.
func (r *GormCourierRepository) Add(ctx context.Context, aggregate *courier.Courier) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update saves an existing courier to the database.
func (r *GormCourierRepository) Update(ctx context.Context, aggregate *courier.Courier) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&CourierDTO{}).
		Where("chat_id = ?", dto.ChatID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("courier", aggregate.ChatID())
	}
	return nil
}

// Get retrieves a courier by chat id. Inside a transaction the row is
// locked FOR UPDATE so concurrent ledger credits serialize.
func (r *GormCourierRepository) Get(ctx context.Context, chatID int64) (*courier.Courier, error) {
	var dto CourierDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "chat_id = ?", chatID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("courier", chatID)
		}
		return nil, err
	}

	return toDomain(dto)
}

// Exists reports whether a courier with the given chat id is enrolled.
func (r *GormCourierRepository) Exists(ctx context.Context, chatID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&CourierDTO{}).
		Where("chat_id = ?", chatID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
