package models

// Banner is a promotional image shown on the storefront home page.
type Banner struct {
	BaseModel
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	ImageURL string `gorm:"not null" json:"image_url"`
	IsActive bool   `gorm:"default:true" json:"is_active"`
}
