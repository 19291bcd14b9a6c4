package repositories

import (
	"context"
	"errors"

	"github.com/Rakhulsr/go-storefront/app/models"
	"gorm.io/gorm"
)

type BannerRepositoryImpl interface {
	GetBanners(ctx context.Context, enabledOnly bool) ([]models.Banner, error)
	GetByID(ctx context.Context, id uint) (*models.Banner, error)
	Create(ctx context.Context, banner *models.Banner) error
	Update(ctx context.Context, banner *models.Banner) error
	Delete(ctx context.Context, id uint) (bool, error)
}

type bannerRepository struct {
	db *gorm.DB
}

func NewBannerRepository(db *gorm.DB) BannerRepositoryImpl {
	return &bannerRepository{db}
}

func (r *bannerRepository) GetBanners(ctx context.Context, enabledOnly bool) ([]models.Banner, error) {
	banners := []models.Banner{}
	query := r.db.WithContext(ctx).Model(&models.Banner{})
	if enabledOnly {
		query = query.Where("enabled = ?", true)
	}
	if err := query.Order("display_order ASC").Order("id ASC").Find(&banners).Error; err != nil {
		return nil, err
	}
	return banners, nil
}

func (r *bannerRepository) GetByID(ctx context.Context, id uint) (*models.Banner, error) {
	var banner models.Banner
	if err := r.db.WithContext(ctx).First(&banner, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &banner, nil
}

func (r *bannerRepository) Create(ctx context.Context, banner *models.Banner) error {
	return r.db.WithContext(ctx).Create(banner).Error
}

func (r *bannerRepository) Update(ctx context.Context, banner *models.Banner) error {
	return r.db.WithContext(ctx).Save(banner).Error
}

func (r *bannerRepository) Delete(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.Banner{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
