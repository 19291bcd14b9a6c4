package services

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/Rakhulsr/go-storefront/app/models"
	"github.com/Rakhulsr/go-storefront/app/repositories"
	"github.com/Rakhulsr/go-storefront/app/utils/apperr"
)

type BannerInput struct {
	Title         string `json:"title" validate:"max=255"`
	TitleAr       string `json:"title_ar" validate:"max=255"`
	Subtitle      string `json:"subtitle" validate:"max=255"`
	SubtitleAr    string `json:"subtitle_ar" validate:"max=255"`
	ButtonText    string `json:"button_text" validate:"max=100"`
	ButtonTextAr  string `json:"button_text_ar" validate:"max=100"`
	ButtonLink    string `json:"button_link" validate:"max=512"`
	ButtonText2   string `json:"button_text_2" validate:"max=100"`
	ButtonText2Ar string `json:"button_text_2_ar" validate:"max=100"`
	ButtonLink2   string `json:"button_link_2" validate:"max=512"`
	ImageDesktop  string `json:"image_desktop" validate:"max=512"`
	ImageTablet   string `json:"image_tablet" validate:"max=512"`
	ImageMobile   string `json:"image_mobile" validate:"max=512"`
	DisplayOrder  int    `json:"display_order" validate:"min=0"`
	Enabled       *bool  `json:"enabled"`
}

type BannerService struct {
	repo     repositories.BannerRepositoryImpl
	validate *validator.Validate
}

func NewBannerService(repo repositories.BannerRepositoryImpl, validate *validator.Validate) *BannerService {
	return &BannerService{repo: repo, validate: validate}
}

func (s *BannerService) List(ctx context.Context, enabledOnly bool) ([]models.Banner, error) {
	banners, err := s.repo.GetBanners(ctx, enabledOnly)
	if err != nil {
		return nil, apperr.Storage("failed to list banners", err)
	}
	return banners, nil
}

func (s *BannerService) Get(ctx context.Context, id uint) (*models.Banner, error) {
	banner, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Storage("failed to load banner", err)
	}
	if banner == nil {
		return nil, apperr.NotFound("Banner not found")
	}
	return banner, nil
}

func (s *BannerService) Create(ctx context.Context, input BannerInput) (*models.Banner, error) {
	if err := s.check(input); err != nil {
		return nil, err
	}
	banner := &models.Banner{}
	apply(banner, input)
	if err := s.repo.Create(ctx, banner); err != nil {
		return nil, apperr.Storage("failed to create banner", err)
	}
	return banner, nil
}

// Update replaces every field of the banner with input.
func (s *BannerService) Update(ctx context.Context, id uint, input BannerInput) (*models.Banner, error) {
	if err := s.check(input); err != nil {
		return nil, err
	}
	banner, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	apply(banner, input)
	if err := s.repo.Update(ctx, banner); err != nil {
		return nil, apperr.Storage("failed to update banner", err)
	}
	return banner, nil
}

func (s *BannerService) Delete(ctx context.Context, id uint) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return apperr.Storage("failed to delete banner", err)
	}
	if !deleted {
		return apperr.NotFound("Banner not found")
	}
	return nil
}

func (s *BannerService) check(input BannerInput) error {
	return validateStruct(s.validate, input)
}

func apply(banner *models.Banner, input BannerInput) {
	banner.Title = input.Title
	banner.TitleAr = input.TitleAr
	banner.Subtitle = input.Subtitle
	banner.SubtitleAr = input.SubtitleAr
	banner.ButtonText = input.ButtonText
	banner.ButtonTextAr = input.ButtonTextAr
	banner.ButtonLink = input.ButtonLink
	banner.ButtonText2 = input.ButtonText2
	banner.ButtonText2Ar = input.ButtonText2Ar
	banner.ButtonLink2 = input.ButtonLink2
	banner.ImageDesktop = input.ImageDesktop
	banner.ImageTablet = input.ImageTablet
	banner.ImageMobile = input.ImageMobile
	banner.DisplayOrder = input.DisplayOrder
	banner.Enabled = input.Enabled == nil || *input.Enabled
}
