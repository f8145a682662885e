package main

import (
	"context"
	"log"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/example/quickcart/internal/config"
	"github.com/example/quickcart/internal/database"
	"github.com/example/quickcart/internal/inventory"
	"github.com/example/quickcart/internal/logging"
	"github.com/example/quickcart/internal/models"
	"github.com/example/quickcart/internal/utils"
)

const (
	staffPassword = "admin123"
	initialStock  = 100
)

var staff = []struct {
	Email string
	Name  string
	Role  models.Role
}{
	{"admin@quickcart.com", "Admin User", models.RoleAdmin},
	{"driver@quickcart.com", "Speedy Driver", models.RoleDriver},
	{"packer@quickcart.com", "Warehouse Packer", models.RolePacker},
}

var catalog = map[string][]struct {
	SKU   string
	Name  string
	Price string
}{
	"Vegetables":   {{"VEG-SPIN", "Spinach 250g", "30"}, {"VEG-POTA", "Potatoes 1kg", "40"}},
	"Fruits":       {{"FRU-BANA", "Bananas (6 pcs)", "48"}, {"FRU-APPL", "Shimla Apples 1kg", "180"}},
	"Dairy & Eggs": {{"DAI-MILK", "Toned Milk 500ml", "27"}, {"DAI-EGGS", "Brown Eggs (6 pcs)", "72"}},
	"Bakery":       {{"BAK-BRED", "Whole Wheat Bread", "45"}},
	"Meat & Fish":  {{"MEA-CHKN", "Chicken Breast 500g", "260"}},
	"Beverages":    {{"BEV-COLA", "Cola 750ml", "40"}, {"BEV-TEA", "Assam Tea 250g", "140"}},
	"Snacks":       {{"SNK-CHIP", "Salted Chips 100g", "20"}},
	"Pantry":       {{"PAN-RICE", "Basmati Rice 1kg", "150"}, {"PAN-OIL", "Mustard Oil 1L", "190"}},
}

func main() {
	cfg := config.Load()

	logr, err := logging.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logr.Sync()

	db, err := database.Connect(cfg.DatabaseURL, logr)
	if err != nil {
		logr.Fatal("failed to connect to database", zap.Error(err))
	}

	ctx := context.Background()
	if err := seed(ctx, db, cfg, logr); err != nil {
		logr.Fatal("seeding failed", zap.Error(err))
	}
	logr.Info("seeding finished")
}

func seed(ctx context.Context, db *gorm.DB, cfg *config.Config, logr *zap.Logger) error {
	hash, err := utils.HashPassword(staffPassword)
	if err != nil {
		return err
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, s := range staff {
			user := models.User{Email: s.Email}
			if err := tx.Where(models.User{Email: s.Email}).
				Attrs(models.User{Name: s.Name, PasswordHash: hash, Role: s.Role}).
				FirstOrCreate(&user).Error; err != nil {
				return err
			}
			logr.Info("staff user ready", zap.String("email", user.Email), zap.String("role", string(user.Role)))
		}

		storeID, err := uuid.Parse(cfg.DefaultWarehouseID)
		if err != nil {
			return err
		}
		store := models.Warehouse{BaseModel: models.BaseModel{ID: storeID}}
		if err := tx.Where("id = ?", storeID).
			Attrs(models.Warehouse{Name: "Central Dark Store", Address: "MI Road, Jaipur", Lat: 26.9124, Lng: 75.7873}).
			FirstOrCreate(&store).Error; err != nil {
			return err
		}
		logr.Info("dark store ready", zap.String("name", store.Name), zap.String("id", store.ID.String()))

		stock := inventory.NewLedger(tx)
		for categoryName, products := range catalog {
			category := models.Category{Name: categoryName}
			if err := tx.Where(models.Category{Name: categoryName}).FirstOrCreate(&category).Error; err != nil {
				return err
			}

			for _, p := range products {
				product := models.Product{SKU: p.SKU}
				if err := tx.Where(models.Product{SKU: p.SKU}).
					Attrs(models.Product{Name: p.Name, Price: decimal.RequireFromString(p.Price), CategoryID: &category.ID}).
					FirstOrCreate(&product).Error; err != nil {
					return err
				}
				if _, err := stock.SetAbsolute(ctx, product.ID, store.ID, initialStock); err != nil {
					return err
				}
			}
			logr.Info("category ready", zap.String("name", categoryName), zap.Int("products", len(products)))
		}
		return nil
	})
}
