package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/quickcart/internal/apperrors"
	"github.com/example/quickcart/internal/inventory"
	"github.com/example/quickcart/internal/models"
)

// WarehouseHandler manages dark stores and their stock.
type WarehouseHandler struct {
	db    *gorm.DB
	stock *inventory.Ledger
}

// NewWarehouseHandler constructs WarehouseHandler.
func NewWarehouseHandler(db *gorm.DB, stock *inventory.Ledger) *WarehouseHandler {
	return &WarehouseHandler{db: db, stock: stock}
}

type warehouseView struct {
	models.Warehouse
	OrderCount int64 `json:"order_count"`
	StockLines int64 `json:"stock_lines"`
}

// List returns every dark store with order and stock line counts.
func (h *WarehouseHandler) List(c *fiber.Ctx) error {
	db := h.db.WithContext(c.UserContext())

	var stores []models.Warehouse
	if err := db.Order("name asc").Find(&stores).Error; err != nil {
		return err
	}

	views := make([]warehouseView, 0, len(stores))
	for _, w := range stores {
		v := warehouseView{Warehouse: w}
		if err := db.Model(&models.Order{}).Where("warehouse_id = ?", w.ID).Count(&v.OrderCount).Error; err != nil {
			return err
		}
		if err := db.Model(&models.StockItem{}).Where("warehouse_id = ?", w.ID).Count(&v.StockLines).Error; err != nil {
			return err
		}
		views = append(views, v)
	}
	return respond(c, views)
}

type warehouseRequest struct {
	Name    string   `json:"name"`
	Address string   `json:"address"`
	Lat     *float64 `json:"lat"`
	Lng     *float64 `json:"lng"`
}

// Create adds a dark store. It starts with no stock.
func (h *WarehouseHandler) Create(c *fiber.Ctx) error {
	var req warehouseRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Address) == "" || req.Lat == nil || req.Lng == nil {
		return apperrors.Validation("Please fill all fields")
	}
	if !validCoordinates(req.Lat, req.Lng) {
		return apperrors.Validation("invalid coordinates")
	}

	store := models.Warehouse{
		Name:    strings.TrimSpace(req.Name),
		Address: strings.TrimSpace(req.Address),
		Lat:     *req.Lat,
		Lng:     *req.Lng,
	}
	if err := h.db.WithContext(c.UserContext()).Create(&store).Error; err != nil {
		return err
	}
	return respondCreated(c, store)
}

func (h *WarehouseHandler) Get(c *fiber.Ctx) error {
	store, err := h.find(c)
	if err != nil {
		return err
	}
	return respond(c, store)
}

// Delete removes a dark store that has never received an order.
func (h *WarehouseHandler) Delete(c *fiber.Ctx) error {
	store, err := h.find(c)
	if err != nil {
		return err
	}

	err = h.db.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		var orders int64
		if err := tx.Model(&models.Order{}).Where("warehouse_id = ?", store.ID).Count(&orders).Error; err != nil {
			return err
		}
		if orders > 0 {
			return apperrors.New(apperrors.CodeBusinessRule, "Cannot delete a store that has orders")
		}
		if err := tx.Where("warehouse_id = ?", store.ID).Delete(&models.StockItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(store).Error
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "Store removed"})
}

// Stock lists the store's stock, lowest quantity first.
func (h *WarehouseHandler) Stock(c *fiber.Ctx) error {
	store, err := h.find(c)
	if err != nil {
		return err
	}
	items, err := h.stock.ListByWarehouse(c.UserContext(), store.ID)
	if err != nil {
		return err
	}
	return respond(c, items)
}

type setStockRequest struct {
	Quantity *int `json:"quantity"`
}

// SetStock overwrites the quantity of one product at the store.
func (h *WarehouseHandler) SetStock(c *fiber.Ctx) error {
	store, err := h.find(c)
	if err != nil {
		return err
	}
	productID, err := parseID(c, "productId")
	if err != nil {
		return err
	}

	var req setStockRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.Quantity == nil {
		return apperrors.Validation("quantity is required")
	}

	ctx := c.UserContext()
	var product models.Product
	if err := h.db.WithContext(ctx).Select("id").First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("Product")
		}
		return err
	}

	item, err := h.stock.SetAbsolute(ctx, productID, store.ID, *req.Quantity)
	if errors.Is(err, inventory.ErrNegativeQuantity) {
		return apperrors.Validation("quantity must not be negative")
	}
	if err != nil {
		return err
	}
	return respond(c, item)
}

func (h *WarehouseHandler) find(c *fiber.Ctx) (*models.Warehouse, error) {
	id, err := parseID(c, "id")
	if err != nil {
		return nil, err
	}
	return h.load(c, id)
}

func (h *WarehouseHandler) load(c *fiber.Ctx, id uuid.UUID) (*models.Warehouse, error) {
	var store models.Warehouse
	if err := h.db.WithContext(c.UserContext()).First(&store, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Store")
		}
		return nil, err
	}
	return &store, nil
}
