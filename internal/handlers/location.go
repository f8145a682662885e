package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/quickcart/internal/apperrors"
	"github.com/example/quickcart/internal/services"
)

// LocationHandler resolves customer locations against the delivery area.
type LocationHandler struct {
	geocoder *services.Geocoder
}

// NewLocationHandler constructs LocationHandler.
func NewLocationHandler(geocoder *services.Geocoder) *LocationHandler {
	return &LocationHandler{geocoder: geocoder}
}

type checkLocationRequest struct {
	Lat *float64 `json:"lat"`
	Lon *float64 `json:"lon"`
}

// Check reverse geocodes coordinates and rejects places outside the delivery area.
func (h *LocationHandler) Check(c *fiber.Ctx) error {
	var req checkLocationRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.Lat == nil || req.Lon == nil || !validCoordinates(req.Lat, req.Lon) {
		return apperrors.Validation("Latitude and longitude are required")
	}

	loc, err := h.geocoder.Reverse(c.UserContext(), *req.Lat, *req.Lon)
	if err != nil {
		return err
	}
	if !loc.Serviceable {
		return apperrors.Validation("Sorry, we don't deliver to your location yet.")
	}

	return respond(c, loc)
}

// Search looks up serviceable places by free text.
func (h *LocationHandler) Search(c *fiber.Ctx) error {
	results, err := h.geocoder.Search(c.UserContext(), c.Query("q"))
	if err != nil {
		return err
	}
	return respond(c, results)
}
