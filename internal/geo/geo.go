package geo

import (
	"errors"
	"math"
)

// EarthRadiusKm is the mean Earth radius used by Distance.
const EarthRadiusKm = 6371.0

// ErrNoWarehouse is returned when there is nothing to route an order to.
var ErrNoWarehouse = errors.New("no warehouse available")

// Point is a latitude/longitude pair in degrees.
type Point struct {
	Lat float64
	Lng float64
}

// Site is a routable location.
type Site struct {
	ID    string
	Name  string
	Point Point
}

// Selection is the outcome of SelectNearest.
type Selection struct {
	ID         string
	Name       string
	DistanceKm float64
	Fallback   bool
}

// Distance returns the great-circle distance between a and b in kilometers.
func Distance(a, b Point) float64 {
	dLat := toRadians(b.Lat - a.Lat)
	dLng := toRadians(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(a.Lat))*math.Cos(toRadians(b.Lat))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusKm * c
}

// SelectNearest picks the candidate closest to origin. A nil origin selects
// fallback. Ties keep the first candidate found.
func SelectNearest(origin *Point, candidates []Site, fallback string) (Selection, error) {
	if origin == nil {
		return Selection{ID: fallback, Fallback: true}, nil
	}
	if len(candidates) == 0 {
		return Selection{}, ErrNoWarehouse
	}

	best := Selection{DistanceKm: math.Inf(1)}
	for _, site := range candidates {
		d := Distance(*origin, site.Point)
		if d < best.DistanceKm {
			best = Selection{ID: site.ID, Name: site.Name, DistanceKm: d}
		}
	}

	return best, nil
}

func toRadians(deg float64) float64 {
	return deg * (math.Pi / 180)
}
