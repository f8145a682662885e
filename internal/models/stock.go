package models

import "github.com/google/uuid"

// StockItem is the on-hand quantity of one product at one warehouse.
type StockItem struct {
	BaseModel
	ProductID   uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_stock_product_warehouse,priority:1" json:"product_id"`
	WarehouseID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_stock_product_warehouse,priority:2;index" json:"warehouse_id"`
	Quantity    int        `gorm:"not null;default:0;check:quantity >= 0" json:"quantity"`
	Product     *Product   `json:"product,omitempty"`
	Warehouse   *Warehouse `json:"warehouse,omitempty"`
}
