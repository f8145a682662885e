package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/quickcart/internal/apperrors"
	"github.com/example/quickcart/internal/models"
	"github.com/example/quickcart/internal/utils"
)

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ChangePassword replaces the caller's password after checking the current one.
func (h *ProfileHandler) ChangePassword(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if len(req.NewPassword) < 6 {
		return apperrors.Validation("password must be at least 6 characters")
	}

	db := h.db.WithContext(c.UserContext())
	var user models.User
	if err := db.Select("id", "password_hash").First(&user, "id = ?", actor.UserID).Error; err != nil {
		return err
	}
	if !utils.CheckPassword(user.PasswordHash, req.CurrentPassword) {
		return apperrors.Validation("current password is incorrect")
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to hash password")
	}
	if err := db.Model(&models.User{}).Where("id = ?", actor.UserID).Update("password_hash", hash).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "message": "password updated"})
}
