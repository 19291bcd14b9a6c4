package migrations

import (
	"github.com/Rakhulsr/go-storefront/app/models"
	"gorm.io/gorm"
)

// AutoMigrate creates or alters every table. Product must come before
// ProductImage so the cascading foreign key is attached to product_images.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.Product{}, &models.ProductImage{}, &models.Setting{}, &models.Banner{}, &models.User{})
}
