// Package testutil builds throwaway databases and fixtures for package tests.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/example/quickcart/internal/database"
	"github.com/example/quickcart/internal/models"
	"github.com/example/quickcart/internal/utils"
)

// NewDB opens a migrated SQLite database in the test's temp dir.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "quickcart.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

// Logger returns a logger that discards output.
func Logger() *zap.Logger {
	return zap.NewNop()
}

// Money parses a decimal literal.
func Money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// CreateUser inserts a user with the given role and wallet balance.
func CreateUser(t *testing.T, db *gorm.DB, role models.Role, balance string) *models.User {
	t.Helper()

	hash, err := utils.HashPassword("secret123")
	require.NoError(t, err)

	u := &models.User{
		Name:          string(role) + " user",
		Email:         uuid.NewString() + "@quickcart.test",
		PasswordHash:  hash,
		Role:          role,
		WalletBalance: Money(balance),
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

// CreateWarehouse inserts a dark store at the given coordinates.
func CreateWarehouse(t *testing.T, db *gorm.DB, name string, lat, lng float64) *models.Warehouse {
	t.Helper()

	w := &models.Warehouse{Name: name, Address: name + " street", Lat: lat, Lng: lng}
	require.NoError(t, db.Create(w).Error)
	return w
}

// CreateProduct inserts a product with a unique SKU.
func CreateProduct(t *testing.T, db *gorm.DB, name, price string) *models.Product {
	t.Helper()

	p := &models.Product{SKU: "SKU-" + uuid.NewString()[:8], Name: name, Price: Money(price)}
	require.NoError(t, db.Create(p).Error)
	return p
}

// SetStock writes an absolute stock level.
func SetStock(t *testing.T, db *gorm.DB, productID, warehouseID uuid.UUID, qty int) {
	t.Helper()

	item := &models.StockItem{ProductID: productID, WarehouseID: warehouseID, Quantity: qty}
	require.NoError(t, db.Create(item).Error)
}

// StockOf reads the stock level, returning -1 when no row exists.
func StockOf(t *testing.T, db *gorm.DB, productID, warehouseID uuid.UUID) int {
	t.Helper()

	var item models.StockItem
	err := db.Where("product_id = ? AND warehouse_id = ?", productID, warehouseID).First(&item).Error
	if err == gorm.ErrRecordNotFound {
		return -1
	}
	require.NoError(t, err)
	return item.Quantity
}

// CreateAddress inserts an address; lat/lng may be nil.
func CreateAddress(t *testing.T, db *gorm.DB, userID uuid.UUID, lat, lng *float64) *models.Address {
	t.Helper()

	a := &models.Address{UserID: userID, Label: "home", Street: "1 Test Road", City: "Jaipur", Zip: "302001", Lat: lat, Lng: lng}
	require.NoError(t, db.Create(a).Error)
	return a
}

// Float returns a pointer to f.
func Float(f float64) *float64 {
	return &f
}

// Balance reads a user's cached wallet balance.
func Balance(t *testing.T, db *gorm.DB, userID uuid.UUID) decimal.Decimal {
	t.Helper()

	var u models.User
	require.NoError(t, db.Select("wallet_balance").First(&u, "id = ?", userID).Error)
	return u.WalletBalance
}

// Count returns the number of rows of model matching the optional condition.
func Count(t *testing.T, db *gorm.DB, model any, conds ...any) int64 {
	t.Helper()

	q := db.Model(model)
	if len(conds) > 0 {
		q = q.Where(conds[0], conds[1:]...)
	}
	var n int64
	require.NoError(t, q.Count(&n).Error)
	return n
}
