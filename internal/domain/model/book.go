package model

import (
	"time"

	"gorm.io/gorm"
)

type BookFormat string

const (
	BookFormatPhysical BookFormat = "physical"
	BookFormatEbook    BookFormat = "ebook"
	BookFormatBoth     BookFormat = "both"
)

// 物理在庫を持つ形態か（ebookのみは配送不要）
func (f BookFormat) IsPhysical() bool {
	return f == BookFormatPhysical || f == BookFormatBoth
}

type Book struct {
	ID          int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string     `gorm:"type:varchar(255);not null" json:"title"`
	Author      string     `gorm:"type:varchar(255);not null" json:"author"`
	Description string     `gorm:"type:text" json:"description"`
	//価格は最小通貨単位（kobo）
	Price            int64      `gorm:"not null" json:"price"`
	Format           BookFormat `gorm:"type:varchar(20);not null" json:"format"`
	StockQuantity    int64      `gorm:"not null;default:0" json:"stock_quantity"`
	//falseなら在庫管理しない（減算もしない）
	InventoryEnabled bool       `gorm:"not null;default:true" json:"inventory_enabled"`
	IsPublished      bool       `gorm:"not null;default:false" json:"is_published"`
	CreatedAt        time.Time  `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}
