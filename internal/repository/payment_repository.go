package repository

import (
	"context"

	"readnwin/internal/domain/model"
)

type PaymentRepository interface {
	//新しい決済レコードを作るのはチェックアウトだけ
	Create(ctx context.Context, p model.Payment) (int64, error)
	FindByID(ctx context.Context, paymentID int64) (model.Payment, error)
	FindByOrderID(ctx context.Context, orderID int64) ([]model.Payment, error)
	FindByTransactionRef(ctx context.Context, ref string) (model.Payment, error)
	UpdateStatus(ctx context.Context, paymentID int64, status model.PaymentStatus, adminNotes string) error
	DeleteByOrderID(ctx context.Context, orderID int64) error
}
