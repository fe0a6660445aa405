package repository

import (
	"context"
	"errors"

	"readnwin/internal/domain/model"
	repo "readnwin/internal/repository"

	"gorm.io/gorm"
)

type ShippingMethodGormRepository struct {
	db *gorm.DB
}

func NewShippingMethodGormRepository(db *gorm.DB) *ShippingMethodGormRepository {
	return &ShippingMethodGormRepository{db: db}
}

func (r *ShippingMethodGormRepository) FindByID(ctx context.Context, id int64) (model.ShippingMethod, error) {
	var m model.ShippingMethod
	err := r.db.WithContext(ctx).Where("id = ? AND is_active = ?", id, true).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.ShippingMethod{}, repo.ErrNotFound
	}
	if err != nil {
		return model.ShippingMethod{}, err
	}
	return m, nil
}

func (r *ShippingMethodGormRepository) ListActive(ctx context.Context) ([]model.ShippingMethod, error) {
	var ms []model.ShippingMethod
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("base_cost asc").
		Find(&ms).Error
	if err != nil {
		return []model.ShippingMethod{}, err
	}
	return ms, nil
}
