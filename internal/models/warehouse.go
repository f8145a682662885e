package models

import "github.com/example/quickcart/internal/geo"

// Warehouse is a dark store holding its own stock.
type Warehouse struct {
	BaseModel
	Name    string      `json:"name"`
	Address string      `json:"address"`
	Lat     float64     `json:"lat"`
	Lng     float64     `json:"lng"`
	Stock   []StockItem `json:"stock,omitempty"`
}

// Site converts the warehouse into a routing candidate.
func (w Warehouse) Site() geo.Site {
	return geo.Site{
		ID:    w.ID.String(),
		Name:  w.Name,
		Point: geo.Point{Lat: w.Lat, Lng: w.Lng},
	}
}
