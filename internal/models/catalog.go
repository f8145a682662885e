package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Category struct {
	BaseModel
	Name     string    `gorm:"uniqueIndex" json:"name"`
	Products []Product `json:"products,omitempty"`
}

type Product struct {
	BaseModel
	SKU         string          `gorm:"uniqueIndex" json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	CategoryID  *uuid.UUID      `gorm:"type:uuid;index" json:"category_id"`
	Category    *Category       `json:"category,omitempty"`
	ImageURL    string          `json:"image_url"`
	StockItems  []StockItem     `json:"stock_items,omitempty"`
}
