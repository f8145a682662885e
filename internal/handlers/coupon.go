package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/example/quickcart/internal/apperrors"
	"github.com/example/quickcart/internal/models"
	"github.com/example/quickcart/internal/services"
)

// CouponHandler validates coupon codes and lets admins manage them.
type CouponHandler struct {
	db      *gorm.DB
	coupons *services.CouponService
}

// NewCouponHandler constructs CouponHandler.
func NewCouponHandler(db *gorm.DB, coupons *services.CouponService) *CouponHandler {
	return &CouponHandler{db: db, coupons: coupons}
}

type validateCouponRequest struct {
	Code      string          `json:"code"`
	CartTotal decimal.Decimal `json:"cart_total"`
}

// Validate quotes the discount a code grants on the given cart total.
func (h *CouponHandler) Validate(c *fiber.Ctx) error {
	var req validateCouponRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	quote, err := h.coupons.Validate(c.UserContext(), req.Code, req.CartTotal)
	if err != nil {
		return err
	}
	return respond(c, quote)
}

// List returns every coupon for the admin panel.
func (h *CouponHandler) List(c *fiber.Ctx) error {
	var coupons []models.Coupon
	if err := h.db.WithContext(c.UserContext()).Order("created_at desc").Find(&coupons).Error; err != nil {
		return err
	}
	return respond(c, coupons)
}

type createCouponRequest struct {
	Code     string              `json:"code"`
	Discount decimal.Decimal     `json:"discount"`
	Type     models.DiscountType `json:"type"`
	MinOrder decimal.Decimal     `json:"min_order"`
	Expiry   time.Time           `json:"expiry"`
}

func (h *CouponHandler) Create(c *fiber.Ctx) error {
	var req createCouponRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))
	switch {
	case code == "":
		return apperrors.Validation("code is required")
	case !req.Discount.IsPositive():
		return apperrors.Validation("discount must be greater than zero")
	case req.Type != models.DiscountPercentage && req.Type != models.DiscountFlat:
		return apperrors.Validation("type must be percentage or flat")
	case req.Type == models.DiscountPercentage && req.Discount.GreaterThan(decimal.NewFromInt(100)):
		return apperrors.Validation("percentage discount cannot exceed 100")
	case req.MinOrder.IsNegative():
		return apperrors.Validation("min_order must not be negative")
	case req.Expiry.IsZero():
		return apperrors.Validation("expiry is required")
	}

	db := h.db.WithContext(c.UserContext())
	var exists int64
	if err := db.Model(&models.Coupon{}).Where("code = ?", code).Count(&exists).Error; err != nil {
		return err
	}
	if exists > 0 {
		return apperrors.Validation("Coupon code already exists")
	}

	coupon := models.Coupon{
		Code:     code,
		Discount: req.Discount,
		Type:     req.Type,
		MinOrder: req.MinOrder,
		Expiry:   req.Expiry,
		IsActive: true,
	}
	if err := db.Create(&coupon).Error; err != nil {
		return err
	}
	return respondCreated(c, coupon)
}

func (h *CouponHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	res := h.db.WithContext(c.UserContext()).Delete(&models.Coupon{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("Coupon")
	}
	return c.JSON(fiber.Map{"success": true, "message": "Coupon removed"})
}
