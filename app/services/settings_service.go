package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Rakhulsr/go-storefront/app/models"
	"github.com/Rakhulsr/go-storefront/app/repositories"
	"github.com/Rakhulsr/go-storefront/app/utils/apperr"
	"github.com/Rakhulsr/go-storefront/app/utils/blobstore"
	"github.com/Rakhulsr/go-storefront/app/utils/metrics"
)

const maxSettingKeyLength = 100

type SettingsService struct {
	repo    repositories.SettingRepositoryImpl
	store   blobstore.Store
	log     *logrus.Logger
	metrics *metrics.Metrics
}

func NewSettingsService(repo repositories.SettingRepositoryImpl, store blobstore.Store, log *logrus.Logger, m *metrics.Metrics) *SettingsService {
	return &SettingsService{repo: repo, store: store, log: log, metrics: m}
}

func (s *SettingsService) GetAll(ctx context.Context) (map[string]*string, error) {
	rows, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, apperr.Storage("failed to load settings", err)
	}
	settings := make(map[string]*string, len(rows))
	for _, row := range rows {
		settings[row.Key] = row.Value
	}
	return settings, nil
}

func (s *SettingsService) Get(ctx context.Context, key string) (*models.Setting, error) {
	setting, err := s.repo.GetByKey(ctx, key)
	if err != nil {
		return nil, apperr.Storage("failed to load setting", err)
	}
	if setting == nil {
		return nil, apperr.NotFound("Setting not found")
	}
	return setting, nil
}

// Upsert writes every given key. A logo upload is stored first and its path
// becomes the logo value in the same batch; the previous logo file is removed
// only after the rows are written.
func (s *SettingsService) Upsert(ctx context.Context, values map[string]*string, logo *blobstore.Upload) error {
	batch := make(map[string]*string, len(values)+1)
	for key, value := range values {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		if len(key) > maxSettingKeyLength {
			return apperr.Validation(fmt.Sprintf("setting key %q is longer than %d characters", key, maxSettingKeyLength))
		}
		batch[key] = value
	}

	var oldLogo, newLogo string
	if logo != nil {
		if err := blobstore.LogoPolicy.Check([]blobstore.Upload{*logo}); err != nil {
			return err
		}

		current, err := s.repo.GetByKey(ctx, models.SettingLogo)
		if err != nil {
			return apperr.Storage("failed to load current logo", err)
		}
		if current != nil && current.Value != nil {
			oldLogo = *current.Value
		}

		newLogo, err = s.store.Save(ctx, models.SettingLogo, *logo)
		if err != nil {
			return apperr.Storage("failed to store logo", err)
		}
		s.metrics.FilesUploaded(models.SettingLogo, 1)
		batch[models.SettingLogo] = &newLogo
	}

	if len(batch) == 0 {
		return nil
	}

	if err := s.repo.Upsert(ctx, batch); err != nil {
		if newLogo != "" {
			s.deleteFile(ctx, newLogo)
		}
		return apperr.Storage("failed to update settings", err)
	}

	if oldLogo != newLogo && isLogoFile(oldLogo) {
		s.deleteFile(ctx, oldLogo)
	}

	s.log.WithField("keys", len(batch)).Info("SettingsService.Upsert: settings updated")
	return nil
}

// isLogoFile reports whether path names a file stored by a logo upload. The logo
// value is also writable as a plain field, so anything else is left alone.
func isLogoFile(path string) bool {
	name, err := blobstore.NameFromPath(path)
	if err != nil {
		return false
	}
	return strings.HasPrefix(name, models.SettingLogo+"-")
}

func (s *SettingsService) deleteFile(ctx context.Context, path string) {
	if err := s.store.Delete(ctx, path); err != nil {
		s.metrics.BlobDeleteFailed()
		s.log.WithField("path", path).WithError(err).Warn("SettingsService: failed to delete logo file")
	}
}
