package repository

import (
	"context"

	"readnwin/internal/domain/model"
)

type CartRepository interface {
	ListByUserID(ctx context.Context, userID int64) ([]model.CartItem, error)
	// 同一の本はプラス
	UpsertByUserAndBook(ctx context.Context, userID int64, bookID int64, addQty int64) error
	UpdateQuantity(ctx context.Context, cartItemID int64, qty int64) error
	DeleteByID(ctx context.Context, cartItemID int64) error
	FindByID(ctx context.Context, cartItemID int64) (model.CartItem, error)
	IsOwnedByUser(ctx context.Context, cartItemID int64, userID int64) (bool, error)

	//チェックアウト確定後にまとめて消す
	ClearByUserID(ctx context.Context, userID int64) error
}
