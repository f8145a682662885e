package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/example/quickcart/internal/apperrors"
	"github.com/example/quickcart/internal/inventory"
	"github.com/example/quickcart/internal/models"
	"github.com/example/quickcart/internal/services"
	"github.com/example/quickcart/internal/utils"
)

// AdminHandler manages admin-only endpoints.
type AdminHandler struct {
	db                *gorm.DB
	stats             *services.StatsService
	stock             *inventory.Ledger
	lowStockThreshold int
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(db *gorm.DB, stats *services.StatsService, stock *inventory.Ledger, lowStockThreshold int) *AdminHandler {
	return &AdminHandler{db: db, stats: stats, stock: stock, lowStockThreshold: lowStockThreshold}
}

// Dashboard returns aggregate statistics for the admin dashboard.
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	dashboard, err := h.stats.Dashboard(c.UserContext(), h.lowStockThreshold)
	if err != nil {
		return err
	}
	return respond(c, dashboard)
}

// LowStock lists stock rows at or below ?threshold= across all stores.
func (h *AdminHandler) LowStock(c *fiber.Ctx) error {
	threshold := c.QueryInt("threshold", h.lowStockThreshold)
	if threshold < 0 {
		return apperrors.Validation("threshold must not be negative")
	}
	items, err := h.stock.LowStock(c.UserContext(), threshold)
	if err != nil {
		return err
	}
	return respond(c, fiber.Map{"threshold": threshold, "items": items})
}

// RecentOrders returns the five newest orders.
func (h *AdminHandler) RecentOrders(c *fiber.Ctx) error {
	var orders []models.Order
	if err := h.db.WithContext(c.UserContext()).
		Preload("Items").Preload("User").
		Order("created_at desc").
		Limit(5).
		Find(&orders).Error; err != nil {
		return err
	}
	return respond(c, orders)
}

// ListUsers returns users with their order count and spend.
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	db := h.db.WithContext(c.UserContext())
	query := db.Model(&models.User{})

	if role := models.Role(c.Query("role")); role != "" {
		if !role.IsValid() {
			return apperrors.Validation("invalid role")
		}
		query = query.Where("role = ?", role)
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		q := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR phone LIKE ?", q, q, q)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var users []models.User
	if err := query.Order("created_at desc").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&users).Error; err != nil {
		return err
	}

	type userStats struct {
		UserID     uuid.UUID
		OrderCount int64
		TotalSpent decimal.Decimal
	}
	var stats []userStats
	if err := db.Model(&models.Order{}).
		Select("user_id, COUNT(*) AS order_count, COALESCE(SUM(total_price), 0) AS total_spent").
		Where("status <> ?", models.StatusCancelled).
		Group("user_id").
		Scan(&stats).Error; err != nil {
		return err
	}
	byUser := make(map[uuid.UUID]userStats, len(stats))
	for _, s := range stats {
		byUser[s.UserID] = s
	}

	type userResponse struct {
		models.User
		OrderCount int64           `json:"order_count"`
		TotalSpent decimal.Decimal `json:"total_spent"`
	}
	result := make([]userResponse, len(users))
	for i, u := range users {
		result[i] = userResponse{User: u, TotalSpent: decimal.Zero}
		if s, ok := byUser[u.ID]; ok {
			result[i].OrderCount = s.OrderCount
			result[i].TotalSpent = s.TotalSpent
		}
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"data":       result,
		"pagination": pg.Meta(total),
	})
}

type updateRoleRequest struct {
	Role models.Role `json:"role"`
}

// UpdateUserRole promotes or demotes an account, e.g. to packer or driver.
func (h *AdminHandler) UpdateUserRole(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req updateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if !req.Role.IsValid() {
		return apperrors.Validation("invalid role")
	}

	db := h.db.WithContext(c.UserContext())
	res := db.Model(&models.User{}).Where("id = ?", id).Update("role", req.Role)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("User")
	}

	var user models.User
	if err := db.First(&user, "id = ?", id).Error; err != nil {
		return err
	}
	return respond(c, user)
}
