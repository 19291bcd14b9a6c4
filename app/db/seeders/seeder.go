package seeders

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/Rakhulsr/go-storefront/app/helpers"
	"github.com/Rakhulsr/go-storefront/app/models"
	"github.com/Rakhulsr/go-storefront/app/repositories"
)

func value(s string) *string { return &s }

// DefaultSettings are inserted on first start and never overwrite an existing key.
func DefaultSettings() []models.Setting {
	return []models.Setting{
		{Key: "store_name", Value: value("متجري الإلكتروني")},
		{Key: "store_name_en", Value: value("My Store")},
		{Key: "logo", Value: value("")},
		{Key: "primary_color", Value: value("#3B82F6")},
		{Key: "secondary_color", Value: value("#1E40AF")},
		{Key: "whatsapp_number", Value: value("")},
		{Key: "phone_number", Value: value("")},
		{Key: "instagram_url", Value: value("")},
		{Key: "store_url", Value: value("")},
		{Key: "banner_text", Value: value("عروض خاصة - خصومات تصل إلى 50%")},
		{Key: "banner_text_en", Value: value("Special Offers - Up to 50% Off")},
		{Key: "banner_enabled", Value: value("true")},
		{Key: "default_language", Value: value("ar")},
		{Key: "holiday_theme", Value: value("none")},
	}
}

// EnsureAdmin creates the admin user when missing. With reset it also replaces
// the password of an existing user; otherwise an existing user is left alone.
func EnsureAdmin(ctx context.Context, users repositories.UserRepositoryImpl, username, password string, reset bool) (bool, error) {
	if username == "" || password == "" {
		return false, fmt.Errorf("admin username and password must not be empty")
	}

	existing, err := users.FindByUsername(ctx, username)
	if err != nil {
		return false, fmt.Errorf("failed to look up admin: %w", err)
	}
	if existing != nil && !reset {
		return false, nil
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return false, err
	}

	if existing != nil {
		if err := users.UpdatePassword(ctx, existing.ID, hash); err != nil {
			return false, fmt.Errorf("failed to reset admin password: %w", err)
		}
		return false, nil
	}

	if err := users.Create(ctx, &models.User{Username: username, Password: hash, Role: models.RoleAdmin}); err != nil {
		return false, fmt.Errorf("failed to create admin: %w", err)
	}
	return true, nil
}

func DBSeed(ctx context.Context, db *gorm.DB, adminUsername, adminPassword string, log *logrus.Logger) error {
	if err := repositories.NewSettingRepository(db).InsertDefaults(ctx, DefaultSettings()); err != nil {
		return fmt.Errorf("failed to seed settings: %w", err)
	}

	created, err := EnsureAdmin(ctx, repositories.NewUserRepository(db), adminUsername, adminPassword, false)
	if err != nil {
		return err
	}
	if created {
		log.WithField("username", adminUsername).Info("DBSeed: admin user created")
	}
	return nil
}
