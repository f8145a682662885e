package models

import (
	"github.com/google/uuid"

	"github.com/example/quickcart/internal/geo"
)

// Address is a delivery address owned by a user.
type Address struct {
	BaseModel
	UserID uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	Label  string    `json:"label"`
	Street string    `json:"street"`
	City   string    `json:"city"`
	Zip    string    `json:"zip"`
	Lat    *float64  `json:"lat"`
	Lng    *float64  `json:"lng"`
}

// Point returns the address coordinates, or nil when either is missing.
func (a *Address) Point() *geo.Point {
	if a.Lat == nil || a.Lng == nil {
		return nil
	}
	return &geo.Point{Lat: *a.Lat, Lng: *a.Lng}
}
