package models

import "github.com/shopspring/decimal"

// Order ordering库的订单行，按batch聚合商品，只读
type Order struct {
	ID        uint `gorm:"primaryKey"`
	BatchID   uint `gorm:"index"`
	ProductID uint `gorm:"index"`
}

func (o *Order) TableName() string {
	return "order"
}

// Product ordering库的商品表，负价表示折扣行，只读
type Product struct {
	ID          uint            `gorm:"primaryKey"`
	Name        string          `gorm:"size:255"`
	Description string          `gorm:"size:500"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2)"`
}

func (p *Product) TableName() string {
	return "product"
}
