package model

import "time"

// 注文明細。価格・タイトル・形態は購入時点のスナップショットで、
// あとからカタログを編集しても過去の注文は変わらない。
type OrderItem struct {
	ID                 int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID            int64      `gorm:"not null;index" json:"order_id"`
	BookID             int64      `gorm:"not null;index" json:"book_id"`
	Quantity           int64      `gorm:"not null" json:"quantity"`
	PriceSnapshot      int64      `gorm:"not null" json:"price_snapshot"`
	TitleSnapshot      string     `gorm:"type:varchar(255);not null" json:"title_snapshot"`
	FormatSnapshot     BookFormat `gorm:"type:varchar(20);not null" json:"format_snapshot"`
	CreatedAt          time.Time  `gorm:"not null;autoCreateTime" json:"created_at"`
}
