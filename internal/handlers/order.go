package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/example/quickcart/internal/apperrors"
	"github.com/example/quickcart/internal/models"
	"github.com/example/quickcart/internal/services"
	"github.com/example/quickcart/internal/utils"
)

// OrderHandler exposes checkout, order tracking and the admin order views.
type OrderHandler struct {
	orders *services.OrderService
	stats  *services.StatsService
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(orders *services.OrderService, stats *services.StatsService) *OrderHandler {
	return &OrderHandler{orders: orders, stats: stats}
}

type orderItemRequest struct {
	ProductID    string              `json:"product_id"`
	Quantity     int                 `json:"quantity"`
	Price        decimal.Decimal     `json:"price"`
	Substitution models.Substitution `json:"substitution"`
}

type createOrderRequest struct {
	Items         []orderItemRequest   `json:"items"`
	AddressID     string               `json:"address_id"`
	PaymentMethod models.PaymentMethod `json:"payment_method"`
	TotalPrice    decimal.Decimal      `json:"total_price"`
	CouponCode    string               `json:"coupon_code"`
}

func (r createOrderRequest) input(userID uuid.UUID) (services.PlaceOrderInput, error) {
	in := services.PlaceOrderInput{
		UserID:        userID,
		PaymentMethod: r.PaymentMethod,
		TotalPrice:    r.TotalPrice,
		CouponCode:    r.CouponCode,
	}

	addressID, err := uuid.Parse(r.AddressID)
	if err != nil {
		return in, apperrors.Validation("invalid address_id")
	}
	in.AddressID = addressID

	in.Items = make([]services.CartLine, 0, len(r.Items))
	for _, item := range r.Items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			return in, apperrors.Validation("invalid product_id")
		}
		in.Items = append(in.Items, services.CartLine{
			ProductID:    productID,
			Quantity:     item.Quantity,
			Price:        item.Price,
			Substitution: item.Substitution,
		})
	}
	return in, nil
}

// CreateOrder places an order for the caller.
func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	var req createOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	in, err := req.input(actor.UserID)
	if err != nil {
		return err
	}

	order, err := h.orders.PlaceOrder(c.UserContext(), in)
	if err != nil {
		return err
	}
	return respondCreated(c, order)
}

// MyOrders lists the caller's orders.
func (h *OrderHandler) MyOrders(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	pg := utils.ParsePagination(c)
	orders, total, err := h.orders.ListForUser(c.UserContext(), actor.UserID, pg.Limit, pg.Offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": orders, "pagination": pg.Meta(total)})
}

// ListOrders lists every order, optionally filtered by ?status=.
func (h *OrderHandler) ListOrders(c *fiber.Ctx) error {
	status := models.OrderStatus(c.Query("status"))
	if status != "" && !status.IsValid() {
		return apperrors.Validation("invalid status")
	}

	pg := utils.ParsePagination(c)
	orders, total, err := h.orders.ListAll(c.UserContext(), status, pg.Limit, pg.Offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": orders, "pagination": pg.Meta(total)})
}

// GetOrder returns one order to its owner or an admin.
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	return h.withOrder(c, h.orders.GetOrder)
}

// Pay confirms a pending order.
func (h *OrderHandler) Pay(c *fiber.Ctx) error {
	return h.withOrder(c, h.orders.ConfirmOrder)
}

// Cancel cancels an order, restoring stock and refunding prepaid orders.
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	return h.withOrder(c, h.orders.CancelOrder)
}

// Deliver lets an admin close an order as delivered.
func (h *OrderHandler) Deliver(c *fiber.Ctx) error {
	return h.withOrder(c, h.orders.CompleteDelivery)
}

type updateStatusRequest struct {
	Status models.OrderStatus `json:"status"`
}

// UpdateStatus is the admin status override.
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var req updateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	return h.withOrder(c, func(ctx context.Context, id uuid.UUID, actor services.Actor) (*models.Order, error) {
		return h.orders.UpdateStatus(ctx, id, req.Status, actor)
	})
}

func (h *OrderHandler) withOrder(c *fiber.Ctx, fn func(context.Context, uuid.UUID, services.Actor) (*models.Order, error)) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	order, err := fn(c.UserContext(), id, actor)
	if err != nil {
		return err
	}
	return respond(c, order)
}

// Revenue returns delivered revenue totals and the last seven days.
func (h *OrderHandler) Revenue(c *fiber.Ctx) error {
	summary, err := h.stats.Revenue(c.UserContext())
	if err != nil {
		return err
	}
	return respond(c, summary)
}

// Stats returns the delivered revenue series for ?period=.
func (h *OrderHandler) Stats(c *fiber.Ctx) error {
	period := services.ParsePeriod(c.Query("period"))
	series, err := h.stats.RevenueSeries(c.UserContext(), period)
	if err != nil {
		return err
	}
	return respond(c, fiber.Map{"period": period, "series": series})
}

// StatsCount returns the order count series for ?period=.
func (h *OrderHandler) StatsCount(c *fiber.Ctx) error {
	period := services.ParsePeriod(c.Query("period"))
	series, err := h.stats.CountSeries(c.UserContext(), period)
	if err != nil {
		return err
	}
	return respond(c, fiber.Map{"period": period, "series": series})
}
