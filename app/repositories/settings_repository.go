package repositories

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/Rakhulsr/go-storefront/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingRepositoryImpl interface {
	GetAll(ctx context.Context) ([]models.Setting, error)
	GetByKey(ctx context.Context, key string) (*models.Setting, error)
	Upsert(ctx context.Context, values map[string]*string) error
	InsertDefaults(ctx context.Context, defaults []models.Setting) error
}

type settingRepository struct {
	db *gorm.DB
}

func NewSettingRepository(db *gorm.DB) SettingRepositoryImpl {
	return &settingRepository{db}
}

func (r *settingRepository) GetAll(ctx context.Context) ([]models.Setting, error) {
	settings := []models.Setting{}
	if err := r.db.WithContext(ctx).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "key"}}).
		Find(&settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

func (r *settingRepository) GetByKey(ctx context.Context, key string) (*models.Setting, error) {
	var setting models.Setting
	if err := r.db.WithContext(ctx).Where(map[string]interface{}{"key": key}).First(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &setting, nil
}

// Upsert inserts or replaces every key in one transaction.
func (r *settingRepository) Upsert(ctx context.Context, values map[string]*string) error {
	if len(values) == 0 {
		return nil
	}

	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	now := time.Now()
	rows := make([]models.Setting, 0, len(keys))
	for _, key := range keys {
		rows = append(rows, models.Setting{Key: key, Value: values[key], UpdatedAt: now})
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).Create(&rows).Error
	})
}

// InsertDefaults never overwrites a key that already exists.
func (r *settingRepository) InsertDefaults(ctx context.Context, defaults []models.Setting) error {
	if len(defaults) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "key"}}, DoNothing: true}).
		Create(&defaults).Error
}
