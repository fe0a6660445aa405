package model

import "time"

// カート明細。ユーザーごとの(book, quantity)の集合。
// 決済開始が成功した後にまとめて消える（失敗時は残してリトライ可能）。
type CartItem struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"not null;index;uniqueIndex:idx_cart_user_book" json:"user_id"`
	BookID    int64     `gorm:"not null;uniqueIndex:idx_cart_user_book" json:"book_id"`
	Quantity  int64     `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
