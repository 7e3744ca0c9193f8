package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/noah-isme/classscore-api/internal/models"
)

// SettingsRepository provides access to per-classroom display and sharing
// settings.
type SettingsRepository interface {
	GetOrCreate(ctx context.Context, userID, classroomID uint) (models.UserSetting, error)
	Get(ctx context.Context, userID, classroomID uint) (models.UserSetting, error)
	Save(ctx context.Context, setting *models.UserSetting) error
	GetByShareToken(ctx context.Context, token string) (models.UserSetting, error)
}

type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository constructs a settings repository.
func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

// GetOrCreate returns the settings row for the scope, inserting the
// defaults on first read.
func (r *settingsRepository) GetOrCreate(ctx context.Context, userID, classroomID uint) (models.UserSetting, error) {
	setting, err := r.Get(ctx, userID, classroomID)
	if err == nil {
		return setting, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.UserSetting{}, err
	}

	setting = models.NewDefaultSetting(userID, classroomID)
	if err := r.db.WithContext(ctx).Create(&setting).Error; err != nil {
		return models.UserSetting{}, err
	}

	return setting, nil
}

func (r *settingsRepository) Get(ctx context.Context, userID, classroomID uint) (models.UserSetting, error) {
	var setting models.UserSetting
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND classroom_id = ?", userID, classroomID).
		First(&setting).Error
	if err != nil {
		return models.UserSetting{}, err
	}

	return setting, nil
}

func (r *settingsRepository) Save(ctx context.Context, setting *models.UserSetting) error {
	return r.db.WithContext(ctx).Save(setting).Error
}

// GetByShareToken resolves an enabled share token. Disabled tokens are
// treated as absent.
func (r *settingsRepository) GetByShareToken(ctx context.Context, token string) (models.UserSetting, error) {
	var setting models.UserSetting
	err := r.db.WithContext(ctx).
		Where("share_token = ? AND share_enabled", token).
		First(&setting).Error
	if err != nil {
		return models.UserSetting{}, err
	}

	return setting, nil
}
