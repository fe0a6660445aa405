package model

import "time"

// 配送方法。送料 = base_cost + cost_per_item × 物理冊数。
// free_shipping_thresholdを超えたら0円（0なら無効）。
type ShippingMethod struct {
	ID                    int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name                  string    `gorm:"type:varchar(100);not null" json:"name"`
	BaseCost              int64     `gorm:"not null" json:"base_cost"`
	CostPerItem           int64     `gorm:"not null" json:"cost_per_item"`
	FreeShippingThreshold int64     `gorm:"not null;default:0" json:"free_shipping_threshold"`
	EstimatedDays         int       `gorm:"not null;default:0" json:"estimated_days"`
	IsActive              bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt             time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
