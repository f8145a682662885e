package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/quickcart/internal/apperrors"
	"github.com/example/quickcart/internal/models"
	"github.com/example/quickcart/internal/utils"
)

// CatalogHandler manages categories and storefront banners.
type CatalogHandler struct {
	db *gorm.DB
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(db *gorm.DB) *CatalogHandler {
	return &CatalogHandler{db: db}
}

// ListCategories returns paginated categories.
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	db := h.db.WithContext(c.UserContext())

	var total int64
	if err := db.Model(&models.Category{}).Count(&total).Error; err != nil {
		return err
	}

	var categories []models.Category
	if err := db.Limit(pg.Limit).Offset(pg.Offset).Order("name asc").
		Find(&categories).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"data":       categories,
		"pagination": pg.Meta(total),
	})
}

type categoryRequest struct {
	Name string `json:"name"`
}

// CreateCategory persists a new category.
func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	var req categoryRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return apperrors.Validation("name is required")
	}

	db := h.db.WithContext(c.UserContext())
	var exists int64
	if err := db.Model(&models.Category{}).Where("name = ?", name).Count(&exists).Error; err != nil {
		return err
	}
	if exists > 0 {
		return apperrors.Validation("Category already exists")
	}

	category := models.Category{Name: name}
	if err := db.Create(&category).Error; err != nil {
		return err
	}
	return respondCreated(c, category)
}

// UpdateCategory renames a category.
func (h *CatalogHandler) UpdateCategory(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req categoryRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return apperrors.Validation("name is required")
	}

	db := h.db.WithContext(c.UserContext())
	var category models.Category
	if err := db.First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("Category")
		}
		return err
	}

	category.Name = name
	if err := db.Save(&category).Error; err != nil {
		return err
	}
	return respond(c, category)
}

// DeleteCategory removes a category and detaches its products.
func (h *CatalogHandler) DeleteCategory(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	err = h.db.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Product{}).Where("category_id = ?", id).
			Update("category_id", nil).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Category{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.NotFound("Category")
		}
		return nil
	})
	if err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListBanners returns active banners, newest first.
func (h *CatalogHandler) ListBanners(c *fiber.Ctx) error {
	var items []models.Banner
	if err := h.db.WithContext(c.UserContext()).
		Where("is_active = ?", true).
		Order("created_at desc").
		Find(&items).Error; err != nil {
		return err
	}
	return respond(c, items)
}

type bannerRequest struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	ImageURL string `json:"image_url"`
}

func (h *CatalogHandler) CreateBanner(c *fiber.Ctx) error {
	var req bannerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(req.ImageURL) == "" {
		return apperrors.Validation("Image URL is required")
	}

	item := models.Banner{Title: req.Title, Subtitle: req.Subtitle, ImageURL: req.ImageURL, IsActive: true}
	if err := h.db.WithContext(c.UserContext()).Create(&item).Error; err != nil {
		return err
	}
	return respondCreated(c, item)
}

func (h *CatalogHandler) DeleteBanner(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	res := h.db.WithContext(c.UserContext()).Delete(&models.Banner{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("Banner")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
