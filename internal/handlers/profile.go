package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/quickcart/internal/apperrors"
	"github.com/example/quickcart/internal/middleware"
	"github.com/example/quickcart/internal/models"
)

// ProfileHandler manages user profile endpoints.
type ProfileHandler struct {
	db *gorm.DB
}

// NewProfileHandler constructs ProfileHandler.
func NewProfileHandler(db *gorm.DB) *ProfileHandler {
	return &ProfileHandler{db: db}
}

// GetProfile returns authenticated user profile.
func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var user models.User
	if err := h.db.WithContext(c.UserContext()).Preload("Addresses").First(&user, "id = ?", userID).Error; err != nil {
		return err
	}

	return respond(c, fiber.Map{
		"id":             user.ID,
		"name":           user.Name,
		"email":          user.Email,
		"phone":          user.Phone,
		"role":           user.Role,
		"wallet_balance": user.WalletBalance,
		"addresses":      user.Addresses,
		"created_at":     user.CreatedAt,
		"updated_at":     user.UpdatedAt,
	})
}

type updateProfileRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// UpdateProfile updates user profile fields.
func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Phone != "" {
		updates["phone"] = req.Phone
	}
	if len(updates) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "no fields to update")
	}
	updates["updated_at"] = time.Now()

	if err := h.db.WithContext(c.UserContext()).Model(&models.User{}).Where("id = ?", userID).Updates(updates).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "message": "profile updated"})
}

// Address endpoints

// ListAddresses returns user addresses.
func (h *ProfileHandler) ListAddresses(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var addresses []models.Address
	if err := h.db.WithContext(c.UserContext()).Where("user_id = ?", userID).Order("created_at asc").Find(&addresses).Error; err != nil {
		return err
	}

	return respond(c, addresses)
}

type addressRequest struct {
	Label  *string  `json:"label"`
	Street *string  `json:"street"`
	City   *string  `json:"city"`
	Zip    *string  `json:"zip"`
	Lat    *float64 `json:"lat"`
	Lng    *float64 `json:"lng"`
}

func validCoordinates(lat, lng *float64) bool {
	if lat == nil && lng == nil {
		return true
	}
	if lat == nil || lng == nil {
		return false
	}
	return *lat >= -90 && *lat <= 90 && *lng >= -180 && *lng <= 180
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// CreateAddress creates an address for the user. Coordinates are optional;
// without them orders go to the default dark store.
func (h *ProfileHandler) CreateAddress(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req addressRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if deref(req.Street) == "" || deref(req.City) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "street and city are required")
	}
	if !validCoordinates(req.Lat, req.Lng) {
		return fiber.NewError(fiber.StatusBadRequest, "invalid coordinates")
	}

	address := models.Address{
		UserID: userID,
		Label:  deref(req.Label),
		Street: deref(req.Street),
		City:   deref(req.City),
		Zip:    deref(req.Zip),
		Lat:    req.Lat,
		Lng:    req.Lng,
	}
	if err := h.db.WithContext(c.UserContext()).Create(&address).Error; err != nil {
		return err
	}

	return respondCreated(c, address)
}

// UpdateAddress updates a user address.
func (h *ProfileHandler) UpdateAddress(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	addrID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req addressRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	updates := map[string]interface{}{}
	if req.Label != nil {
		updates["label"] = *req.Label
	}
	if req.Street != nil {
		updates["street"] = *req.Street
	}
	if req.City != nil {
		updates["city"] = *req.City
	}
	if req.Zip != nil {
		updates["zip"] = *req.Zip
	}
	if req.Lat != nil || req.Lng != nil {
		if !validCoordinates(req.Lat, req.Lng) {
			return fiber.NewError(fiber.StatusBadRequest, "invalid coordinates")
		}
		updates["lat"] = *req.Lat
		updates["lng"] = *req.Lng
	}
	if len(updates) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "no fields to update")
	}

	res := h.db.WithContext(c.UserContext()).Model(&models.Address{}).
		Where("id = ? AND user_id = ?", addrID, userID).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("address")
	}

	return c.JSON(fiber.Map{"success": true, "message": "address updated"})
}

// DeleteAddress removes a user address that no order refers to.
func (h *ProfileHandler) DeleteAddress(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	addrID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	db := h.db.WithContext(c.UserContext())

	var used int64
	if err := db.Model(&models.Order{}).Where("address_id = ?", addrID).Count(&used).Error; err != nil {
		return err
	}
	if used > 0 {
		return apperrors.New(apperrors.CodeBusinessRule, "Address is used by existing orders")
	}

	res := db.Where("id = ? AND user_id = ?", addrID, userID).Delete(&models.Address{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("address")
	}

	return c.JSON(fiber.Map{"success": true, "message": "address deleted"})
}
