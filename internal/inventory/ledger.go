// Package inventory keeps per-warehouse stock levels.
package inventory

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/example/quickcart/internal/models"
)

var (
	// ErrInsufficientStock means a decrement would take the quantity below zero,
	// or no stock row exists for the pair.
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrNegativeQuantity  = errors.New("quantity must not be negative")
)

// Ledger reads and mutates stock rows. Every mutation is a single statement
// so callers can compose them inside one transaction.
type Ledger struct {
	db *gorm.DB
}

func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

// WithTx returns a ledger bound to tx.
func (l *Ledger) WithTx(tx *gorm.DB) *Ledger {
	return &Ledger{db: tx}
}

// CheckAvailable reports whether at least qty units are on hand.
func (l *Ledger) CheckAvailable(ctx context.Context, productID, warehouseID uuid.UUID, qty int) (bool, error) {
	var item models.StockItem
	err := l.db.WithContext(ctx).
		Where("product_id = ? AND warehouse_id = ?", productID, warehouseID).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return item.Quantity >= qty, nil
}

// Decrement removes qty units. It never lets the quantity go negative.
func (l *Ledger) Decrement(ctx context.Context, productID, warehouseID uuid.UUID, qty int) error {
	if qty < 0 {
		return ErrNegativeQuantity
	}
	res := l.db.WithContext(ctx).
		Model(&models.StockItem{}).
		Where("product_id = ? AND warehouse_id = ? AND quantity >= ?", productID, warehouseID, qty).
		Update("quantity", gorm.Expr("quantity - ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInsufficientStock
	}
	return nil
}

// Increment adds qty units, creating the row when missing.
func (l *Ledger) Increment(ctx context.Context, productID, warehouseID uuid.UUID, qty int) error {
	if qty < 0 {
		return ErrNegativeQuantity
	}
	item := models.StockItem{ProductID: productID, WarehouseID: warehouseID, Quantity: qty}
	return l.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "product_id"}, {Name: "warehouse_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"quantity":   gorm.Expr("stock_items.quantity + ?", qty),
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(&item).Error
}

// SetAbsolute overwrites the on-hand quantity.
func (l *Ledger) SetAbsolute(ctx context.Context, productID, warehouseID uuid.UUID, qty int) (*models.StockItem, error) {
	if qty < 0 {
		return nil, ErrNegativeQuantity
	}
	item := models.StockItem{ProductID: productID, WarehouseID: warehouseID, Quantity: qty}
	err := l.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "product_id"}, {Name: "warehouse_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"quantity", "updated_at"}),
	}).Create(&item).Error
	if err != nil {
		return nil, err
	}

	var stored models.StockItem
	if err := l.db.WithContext(ctx).
		Where("product_id = ? AND warehouse_id = ?", productID, warehouseID).
		First(&stored).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

// ListByWarehouse returns every stock row at a warehouse with its product.
func (l *Ledger) ListByWarehouse(ctx context.Context, warehouseID uuid.UUID) ([]models.StockItem, error) {
	var items []models.StockItem
	err := l.db.WithContext(ctx).
		Preload("Product").
		Where("warehouse_id = ?", warehouseID).
		Order("quantity asc").
		Find(&items).Error
	return items, err
}

// LowStock returns rows at or below threshold across all warehouses.
func (l *Ledger) LowStock(ctx context.Context, threshold int) ([]models.StockItem, error) {
	var items []models.StockItem
	err := l.db.WithContext(ctx).
		Preload("Product").
		Preload("Warehouse").
		Where("quantity <= ?", threshold).
		Order("quantity asc").
		Find(&items).Error
	return items, err
}

// TotalForProduct sums a product's stock over all warehouses.
func (l *Ledger) TotalForProduct(ctx context.Context, productID uuid.UUID) (int, error) {
	var total int64
	err := l.db.WithContext(ctx).
		Model(&models.StockItem{}).
		Where("product_id = ?", productID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error
	return int(total), err
}

// QuantityAt returns the stock for one pair, zero when no row exists.
func (l *Ledger) QuantityAt(ctx context.Context, productID, warehouseID uuid.UUID) (int, error) {
	var item models.StockItem
	err := l.db.WithContext(ctx).
		Where("product_id = ? AND warehouse_id = ?", productID, warehouseID).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	return item.Quantity, err
}
