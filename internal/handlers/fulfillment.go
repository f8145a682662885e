package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/quickcart/internal/services"
)

// PackerHandler serves the packing station queue.
type PackerHandler struct {
	orders *services.OrderService
}

// NewPackerHandler constructs PackerHandler.
func NewPackerHandler(orders *services.OrderService) *PackerHandler {
	return &PackerHandler{orders: orders}
}

// Orders lists orders waiting to be packed, oldest first.
func (h *PackerHandler) Orders(c *fiber.Ctx) error {
	orders, err := h.orders.OrdersToPack(c.UserContext())
	if err != nil {
		return err
	}
	return respond(c, orders)
}

func (h *PackerHandler) Start(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	order, err := h.orders.StartPacking(c.UserContext(), id)
	if err != nil {
		return err
	}
	return respond(c, order)
}

func (h *PackerHandler) Ready(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	order, err := h.orders.MarkReady(c.UserContext(), id)
	if err != nil {
		return err
	}
	return respond(c, order)
}

// DeliveryHandler serves the driver app.
type DeliveryHandler struct {
	orders *services.OrderService
	stats  *services.StatsService
}

// NewDeliveryHandler constructs DeliveryHandler.
func NewDeliveryHandler(orders *services.OrderService, stats *services.StatsService) *DeliveryHandler {
	return &DeliveryHandler{orders: orders, stats: stats}
}

// Available lists orders ready for pickup.
func (h *DeliveryHandler) Available(c *fiber.Ctx) error {
	orders, err := h.orders.AvailableForPickup(c.UserContext())
	if err != nil {
		return err
	}
	return respond(c, orders)
}

// MyDeliveries lists orders assigned to the calling driver.
func (h *DeliveryHandler) MyDeliveries(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	orders, err := h.orders.MyDeliveries(c.UserContext(), actor.UserID)
	if err != nil {
		return err
	}
	return respond(c, orders)
}

// Stats returns the calling driver's completed deliveries and earnings.
func (h *DeliveryHandler) Stats(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	stats, err := h.stats.DriverStats(c.UserContext(), actor.UserID)
	if err != nil {
		return err
	}
	return respond(c, stats)
}

// Accept assigns the order to the calling driver and dispatches it.
func (h *DeliveryHandler) Accept(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "orderId")
	if err != nil {
		return err
	}
	order, err := h.orders.AcceptDelivery(c.UserContext(), id, actor.UserID)
	if err != nil {
		return err
	}
	return respond(c, order)
}

// Complete marks the calling driver's delivery as delivered.
func (h *DeliveryHandler) Complete(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "orderId")
	if err != nil {
		return err
	}
	order, err := h.orders.CompleteDelivery(c.UserContext(), id, actor)
	if err != nil {
		return err
	}
	return respond(c, order)
}
