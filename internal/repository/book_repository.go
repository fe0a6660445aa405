package repository

import (
	"context"
	"errors"

	"readnwin/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 一覧検索
type BookListQuery struct {
	Page     int
	Limit    int
	Q        string
	Format   string
	MinPrice *int64
	MaxPrice *int64
	Sort     string
}

// カタログの永続化（保存・取得）だけを約束。
type BookRepository interface {
	ListPublished(ctx context.Context, q BookListQuery) ([]model.Book, int64, error)
	FindByID(ctx context.Context, id int64) (model.Book, error)

	//公開中の本をidで引いてmapで返す（チェックアウトの突き合わせ用）
	FindPublishedByIDs(ctx context.Context, ids []int64) (map[int64]model.Book, error)

	Create(ctx context.Context, b model.Book) (model.Book, error)
	Update(ctx context.Context, b model.Book) error
	SoftDelete(ctx context.Context, id int64) error
}
