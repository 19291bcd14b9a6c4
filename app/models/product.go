package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// prices go over the wire as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true
}

type Product struct {
	ID                 uint                `gorm:"primaryKey" json:"id"`
	Name               string              `gorm:"size:255;not null" json:"name"`
	NameAr             string              `gorm:"size:255" json:"name_ar"`
	Description        string              `gorm:"type:text" json:"description"`
	DescriptionAr      string              `gorm:"type:text" json:"description_ar"`
	Price              decimal.Decimal     `gorm:"type:decimal(16,2);not null" json:"price"`
	DiscountPrice      decimal.NullDecimal `gorm:"type:decimal(16,2)" json:"discount_price"`
	DiscountPercentage decimal.NullDecimal `gorm:"type:decimal(10,2)" json:"discount_percentage"`
	// Image is the legacy single-image field kept for rows that predate galleries.
	Image     string         `gorm:"size:512" json:"image"`
	Images    []ProductImage `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

type ProductImage struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ProductID    uint      `gorm:"not null;index" json:"product_id"`
	ImagePath    string    `gorm:"size:512;not null" json:"image_path"`
	DisplayOrder int       `gorm:"not null;default:0" json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
}

// Gallery resolves the images a product exposes: its gallery rows when there are
// any, otherwise a single synthesized entry for a non-empty legacy image.
func Gallery(product *Product, rows []ProductImage) []ProductImage {
	if len(rows) > 0 {
		return rows
	}
	if product.Image != "" {
		return []ProductImage{{
			ID:           0,
			ProductID:    product.ID,
			ImagePath:    product.Image,
			DisplayOrder: 0,
		}}
	}
	return []ProductImage{}
}
