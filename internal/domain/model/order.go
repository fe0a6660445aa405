package model

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
	OrderStatusRefunded   OrderStatus = "refunded"
)

// 管理APIが受け付ける値はこの集合で全部（それ以外は400）
func ValidOrderStatus(s string) bool {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCompleted,
		OrderStatusCancelled, OrderStatusRefunded:
		return true
	default:
		return false
	}
}

// 住所スナップショット（注文作成時に固定。後からユーザーの住所を変えても動かない）
type OrderAddress struct {
	Name    string `gorm:"type:varchar(255)" json:"name"`
	Phone   string `gorm:"type:varchar(30)" json:"phone"`
	Line1   string `gorm:"type:varchar(255)" json:"line1"`
	Line2   string `gorm:"type:varchar(255)" json:"line2"`
	City    string `gorm:"type:varchar(255)" json:"city"`
	State   string `gorm:"type:varchar(100)" json:"state"`
	Country string `gorm:"type:varchar(100)" json:"country"`
}

// 電子書籍のみの注文は実住所の代わりにこれを入れる
const DigitalDeliveryAddressLine = "Digital delivery"

type Order struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	//ゲスト注文はnull
	UserID      *int64      `gorm:"index" json:"user_id"`
	OrderNumber string      `gorm:"type:varchar(40);not null;uniqueIndex" json:"order_number"`
	Status      OrderStatus `gorm:"type:varchar(20);not null;index" json:"status"`

	//金額は全部最小通貨単位
	Subtotal     int64 `gorm:"not null" json:"subtotal"`
	ShippingCost int64 `gorm:"not null" json:"shipping_cost"`
	Tax          int64 `gorm:"not null" json:"tax"`
	TotalAmount  int64 `gorm:"not null" json:"total_amount"`

	PaymentMethod   string       `gorm:"type:varchar(30);not null" json:"payment_method"`
	ShippingAddress OrderAddress `gorm:"embedded;embeddedPrefix:shipping_" json:"shipping_address"`
	BillingAddress  OrderAddress `gorm:"embedded;embeddedPrefix:billing_" json:"billing_address"`
	TrackingNumber  string       `gorm:"type:varchar(100)" json:"tracking_number"`
	Notes           string       `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
