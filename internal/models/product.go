package models

import (
	"gorm.io/gorm"
)

type Category struct {
	gorm.Model
	Name        string `gorm:"uniqueIndex;not null" json:"name"`
	Description string `json:"description"`
}

type Product struct {
	gorm.Model
	Name         string  `gorm:"not null" json:"name"`
	Barcode      string  `gorm:"uniqueIndex" json:"barcode"`
	CategoryID   uint    `gorm:"index" json:"category_id"`
	CostPrice    float64 `json:"cost_price"`
	UnitPrice    float64 `gorm:"not null" json:"unit_price"`
	Quantity     int     `gorm:"default:0" json:"quantity"`
	ReorderLevel int     `gorm:"default:10" json:"reorder_level"`
	IsActive     bool    `gorm:"default:true" json:"is_active"`
}

// LowStock reports whether the product has fallen to or below its reorder level.
func (p *Product) LowStock() bool {
	return p.Quantity <= p.ReorderLevel
}

type StockChangeType string

const (
	StockChangeSale       StockChangeType = "Sale"
	StockChangeRefund     StockChangeType = "Refund"
	StockChangeRestock    StockChangeType = "Restock"
	StockChangeAdjustment StockChangeType = "Adjustment"
)

type StockLog struct {
	gorm.Model
	ProductID        uint            `gorm:"index" json:"product_id"`
	UserID           uint            `json:"user_id"`
	ChangeType       StockChangeType `gorm:"not null" json:"change_type"`
	QuantityChange   int             `json:"quantity_change"`
	PreviousQuantity int             `json:"previous_quantity"`
	NewQuantity      int             `json:"new_quantity"`
}
