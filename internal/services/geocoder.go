package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/example/quickcart/internal/apperrors"
)

const (
	geocoderUserAgent = "QuickCartApp/1.0"
	geocoderTimeout   = 10 * time.Second
)

// Location is a geocoded place.
type Location struct {
	ID          int64   `json:"id,omitempty"`
	Name        string  `json:"name"`
	DisplayName string  `json:"display_name"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	City        string  `json:"city,omitempty"`
	Zip         string  `json:"zip,omitempty"`
	Serviceable bool    `json:"serviceable"`
}

type nominatimAddress struct {
	HouseNumber   string `json:"house_number"`
	Road          string `json:"road"`
	Neighbourhood string `json:"neighbourhood"`
	Suburb        string `json:"suburb"`
	City          string `json:"city"`
	Town          string `json:"town"`
	Village       string `json:"village"`
	Postcode      string `json:"postcode"`
}

type nominatimPlace struct {
	OsmID       int64             `json:"osm_id"`
	DisplayName string            `json:"display_name"`
	Lat         string            `json:"lat"`
	Lon         string            `json:"lon"`
	Address     *nominatimAddress `json:"address"`
}

// Geocoder talks to a Nominatim-compatible service. It only helps customers
// fill in addresses; order routing never depends on it.
type Geocoder struct {
	baseURL string
	city    string
}

func NewGeocoder(baseURL, serviceableCity string) *Geocoder {
	return &Geocoder{
		baseURL: strings.TrimRight(baseURL, "/"),
		city:    strings.ToLower(strings.TrimSpace(serviceableCity)),
	}
}

// Reverse resolves coordinates into a named, serviceability-checked location.
func (g *Geocoder) Reverse(ctx context.Context, lat, lng float64) (*Location, error) {
	q := url.Values{}
	q.Set("format", "json")
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lng, 'f', -1, 64))
	q.Set("zoom", "18")
	q.Set("addressdetails", "1")

	var place nominatimPlace
	if err := g.get(ctx, "/reverse", q, &place); err != nil {
		return nil, err
	}
	if place.DisplayName == "" {
		return nil, apperrors.New(apperrors.CodeNotFound, "Could not find address for this location")
	}

	loc := g.toLocation(place)
	loc.Lat, loc.Lng = lat, lng
	return &loc, nil
}

// Search returns up to five serviceable matches for a free-text query.
func (g *Geocoder) Search(ctx context.Context, query string) ([]Location, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperrors.Validation("Search query is required")
	}

	q := url.Values{}
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("limit", "5")
	q.Set("addressdetails", "1")

	var places []nominatimPlace
	if err := g.get(ctx, "/search", q, &places); err != nil {
		return nil, err
	}

	out := make([]Location, 0, len(places))
	for _, p := range places {
		loc := g.toLocation(p)
		if loc.Serviceable {
			out = append(out, loc)
		}
	}
	return out, nil
}

// Serviceable reports whether a display name falls in the delivery area.
func (g *Geocoder) Serviceable(displayName string) bool {
	if g.city == "" {
		return true
	}
	return strings.Contains(strings.ToLower(displayName), g.city)
}

func (g *Geocoder) toLocation(p nominatimPlace) Location {
	loc := Location{
		ID:          p.OsmID,
		Name:        p.DisplayName,
		DisplayName: p.DisplayName,
		Serviceable: g.Serviceable(p.DisplayName),
	}
	loc.Lat, _ = strconv.ParseFloat(p.Lat, 64)
	loc.Lng, _ = strconv.ParseFloat(p.Lon, 64)

	if a := p.Address; a != nil {
		loc.City = firstNonEmpty(a.City, a.Town, a.Village)
		loc.Zip = a.Postcode

		var parts []string
		for _, part := range []string{a.HouseNumber, a.Road, firstNonEmpty(a.Neighbourhood, a.Suburb), loc.City} {
			if part != "" {
				parts = append(parts, part)
			}
		}
		if len(parts) > 0 {
			loc.Name = strings.Join(parts, ", ")
		}
	}
	return loc
}

func (g *Geocoder) get(ctx context.Context, path string, q url.Values, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	agent := fiber.Get(g.baseURL + path + "?" + q.Encode())
	agent.Set(fiber.HeaderUserAgent, geocoderUserAgent)
	agent.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	agent.Timeout(geocoderTimeout)

	code, _, errs := agent.Struct(out)
	if len(errs) > 0 {
		return apperrors.Wrap(apperrors.CodeInternal, errs[0], "Failed to reach geocoding service")
	}
	if code != fiber.StatusOK {
		return apperrors.Wrap(apperrors.CodeInternal, fmt.Errorf("status %d", code), "Failed to reach geocoding service")
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
