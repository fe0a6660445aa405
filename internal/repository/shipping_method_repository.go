package repository

import (
	"context"

	"readnwin/internal/domain/model"
)

type ShippingMethodRepository interface {
	FindByID(ctx context.Context, id int64) (model.ShippingMethod, error)
	ListActive(ctx context.Context) ([]model.ShippingMethod, error)
}
