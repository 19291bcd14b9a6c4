package repositories

import (
	"context"
	"errors"

	"github.com/Rakhulsr/go-storefront/app/models"
	"gorm.io/gorm"
)

type ProductImageRepositoryImpl interface {
	GetByProduct(ctx context.Context, productID uint) ([]models.ProductImage, error)
	GetByIDs(ctx context.Context, productID uint, ids []uint) ([]models.ProductImage, error)
	FindOne(ctx context.Context, productID, imageID uint) (*models.ProductImage, error)
	CountByProduct(ctx context.Context, productID uint) (int64, error)
	Create(ctx context.Context, image *models.ProductImage) error
	DeleteByIDs(ctx context.Context, productID uint, ids []uint) error
}

type productImageRepository struct {
	db *gorm.DB
}

func NewProductImageRepository(db *gorm.DB) ProductImageRepositoryImpl {
	return &productImageRepository{db}
}

func (r *productImageRepository) GetByProduct(ctx context.Context, productID uint) ([]models.ProductImage, error) {
	images := []models.ProductImage{}
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("display_order ASC").
		Order("id ASC").
		Find(&images).Error
	if err != nil {
		return nil, err
	}
	return images, nil
}

// GetByIDs only returns rows that belong to productID.
func (r *productImageRepository) GetByIDs(ctx context.Context, productID uint, ids []uint) ([]models.ProductImage, error) {
	images := []models.ProductImage{}
	if len(ids) == 0 {
		return images, nil
	}
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND id IN ?", productID, ids).
		Order("id ASC").
		Find(&images).Error
	if err != nil {
		return nil, err
	}
	return images, nil
}

func (r *productImageRepository) FindOne(ctx context.Context, productID, imageID uint) (*models.ProductImage, error) {
	var image models.ProductImage
	err := r.db.WithContext(ctx).
		Where("id = ? AND product_id = ?", imageID, productID).
		First(&image).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &image, nil
}

func (r *productImageRepository) CountByProduct(ctx context.Context, productID uint) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.ProductImage{}).
		Where("product_id = ?", productID).
		Count(&total).Error
	return total, err
}

func (r *productImageRepository) Create(ctx context.Context, image *models.ProductImage) error {
	return r.db.WithContext(ctx).Create(image).Error
}

func (r *productImageRepository) DeleteByIDs(ctx context.Context, productID uint, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("product_id = ? AND id IN ?", productID, ids).
		Delete(&models.ProductImage{}).Error
}
