package repository

import (
	"context"

	"readnwin/internal/domain/model"
)

// 注文確認メールの宛先などに使う読み取り専用の約束。
type UserRepository interface {
	FindByID(ctx context.Context, userID int64) (model.User, error)
}
