package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/example/quickcart/internal/apperrors"
	"github.com/example/quickcart/internal/inventory"
	"github.com/example/quickcart/internal/models"
	"github.com/example/quickcart/internal/utils"
)

// ProductHandler manages the product catalog.
type ProductHandler struct {
	db               *gorm.DB
	defaultWarehouse string
}

// NewProductHandler constructs ProductHandler. New products get their
// initial stock at defaultWarehouse.
func NewProductHandler(db *gorm.DB, defaultWarehouse string) *ProductHandler {
	return &ProductHandler{db: db, defaultWarehouse: defaultWarehouse}
}

type productView struct {
	models.Product
	Stock int `json:"stock"`
}

func newProductView(p models.Product) productView {
	total := 0
	for _, item := range p.StockItems {
		total += item.Quantity
	}
	p.StockItems = nil
	return productView{Product: p, Stock: total}
}

// stockScope limits preloaded stock rows to ?store= when given.
func stockScope(c *fiber.Ctx) (func(*gorm.DB) *gorm.DB, error) {
	store := c.Query("store")
	if store == "" {
		return func(db *gorm.DB) *gorm.DB { return db }, nil
	}
	id, err := uuid.Parse(store)
	if err != nil {
		return nil, apperrors.Validation("invalid store")
	}
	return func(db *gorm.DB) *gorm.DB { return db.Where("warehouse_id = ?", id) }, nil
}

// ListProducts returns paginated products with stock, either total or at ?store=.
func (h *ProductHandler) ListProducts(c *fiber.Ctx) error {
	scope, err := stockScope(c)
	if err != nil {
		return err
	}

	pg := utils.ParsePagination(c)
	query := h.db.WithContext(c.UserContext()).Model(&models.Product{})

	if v := c.Query("category_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return apperrors.Validation("invalid category_id")
		}
		query = query.Where("category_id = ?", id)
	}

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		q := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(sku) LIKE ?", q, q)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var products []models.Product
	if err := query.Preload("Category").
		Preload("StockItems", scope).
		Limit(pg.Limit).Offset(pg.Offset).
		Order("name asc").
		Find(&products).Error; err != nil {
		return err
	}

	views := make([]productView, 0, len(products))
	for _, p := range products {
		views = append(views, newProductView(p))
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"data":       views,
		"pagination": pg.Meta(total),
	})
}

// GetProduct loads one product with its stock.
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	scope, err := stockScope(c)
	if err != nil {
		return err
	}

	var product models.Product
	if err := h.db.WithContext(c.UserContext()).
		Preload("Category").
		Preload("StockItems", scope).
		First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("Product")
		}
		return err
	}

	return respond(c, newProductView(product))
}

type productRequest struct {
	Name        *string          `json:"name"`
	SKU         *string          `json:"sku"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	CategoryID  *string          `json:"category_id"`
	ImageURL    *string          `json:"image_url"`
	Stock       *int             `json:"stock"`
}

func (r productRequest) apply(p *models.Product) error {
	if r.Name != nil {
		p.Name = strings.TrimSpace(*r.Name)
	}
	if r.SKU != nil {
		p.SKU = strings.TrimSpace(*r.SKU)
	}
	if r.Description != nil {
		p.Description = *r.Description
	}
	if r.ImageURL != nil {
		p.ImageURL = *r.ImageURL
	}
	if r.Price != nil {
		if r.Price.IsNegative() {
			return apperrors.Validation("price must not be negative")
		}
		p.Price = *r.Price
	}
	if r.CategoryID != nil {
		id, err := uuid.Parse(*r.CategoryID)
		if err != nil {
			return apperrors.Validation("invalid category_id")
		}
		p.CategoryID = &id
	}
	if r.Stock != nil && *r.Stock < 0 {
		return apperrors.Validation("stock must not be negative")
	}
	return nil
}

// CreateProduct adds a product and sets its stock at the default store.
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	var product models.Product
	if err := req.apply(&product); err != nil {
		return err
	}
	if product.Name == "" || product.SKU == "" || req.Price == nil {
		return apperrors.Validation("Please provide all required fields")
	}

	ctx := c.UserContext()
	err := h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureUniqueSKU(tx, product.SKU, uuid.Nil); err != nil {
			return err
		}
		if err := tx.Create(&product).Error; err != nil {
			return err
		}
		return h.setDefaultStock(tx, product.ID, req.Stock, 0)
	})
	if err != nil {
		return err
	}

	return respondCreated(c, product)
}

// UpdateProduct patches product fields and optionally the default-store stock.
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	var product models.Product
	err = h.db.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&product, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("Product")
			}
			return err
		}
		if err := req.apply(&product); err != nil {
			return err
		}
		if product.Name == "" || product.SKU == "" {
			return apperrors.Validation("name and sku must not be empty")
		}
		if err := ensureUniqueSKU(tx, product.SKU, product.ID); err != nil {
			return err
		}
		if err := tx.Save(&product).Error; err != nil {
			return err
		}
		if req.Stock == nil {
			return nil
		}
		return h.setDefaultStock(tx, product.ID, req.Stock, 0)
	})
	if err != nil {
		return err
	}

	return respond(c, product)
}

// DeleteProduct removes a product that no order references.
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	err = h.db.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("Product")
			}
			return err
		}

		var used int64
		if err := tx.Model(&models.OrderItem{}).Where("product_id = ?", id).Count(&used).Error; err != nil {
			return err
		}
		if used > 0 {
			return apperrors.New(apperrors.CodeBusinessRule, "Product is part of existing orders")
		}

		if err := tx.Where("product_id = ?", id).Delete(&models.StockItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&product).Error
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "message": "Product removed"})
}

func (h *ProductHandler) setDefaultStock(tx *gorm.DB, productID uuid.UUID, qty *int, fallback int) error {
	warehouseID, err := uuid.Parse(h.defaultWarehouse)
	if err != nil {
		return nil
	}

	var exists int64
	if err := tx.Model(&models.Warehouse{}).Where("id = ?", warehouseID).Count(&exists).Error; err != nil {
		return err
	}
	if exists == 0 {
		return nil
	}

	quantity := fallback
	if qty != nil {
		quantity = *qty
	}
	_, err = inventory.NewLedger(tx).SetAbsolute(tx.Statement.Context, productID, warehouseID, quantity)
	return err
}

func ensureUniqueSKU(tx *gorm.DB, sku string, self uuid.UUID) error {
	var n int64
	if err := tx.Model(&models.Product{}).Where("sku = ? AND id <> ?", sku, self).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return apperrors.Validation("Product with this SKU already exists")
	}
	return nil
}
