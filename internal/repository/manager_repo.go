package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/classscore-api/internal/models"
)

// ManagerRepository provides access to student-manager sub-accounts.
type ManagerRepository interface {
	ListByClassroom(ctx context.Context, userID, classroomID uint) ([]models.StudentManager, error)
	GetOwned(ctx context.Context, id, userID uint) (models.StudentManager, error)
	GetByID(ctx context.Context, id uint) (models.StudentManager, error)
	GetByUsername(ctx context.Context, username string) (models.StudentManager, error)
	UsernameTaken(ctx context.Context, username string) (bool, error)
	Create(ctx context.Context, manager *models.StudentManager) error
	Update(ctx context.Context, manager *models.StudentManager) error
	Delete(ctx context.Context, id, userID uint) error
}

type managerRepository struct {
	db *gorm.DB
}

// NewManagerRepository constructs a student-manager repository.
func NewManagerRepository(db *gorm.DB) ManagerRepository {
	return &managerRepository{db: db}
}

func (r *managerRepository) ListByClassroom(ctx context.Context, userID, classroomID uint) ([]models.StudentManager, error) {
	var managers []models.StudentManager
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND classroom_id = ?", userID, classroomID).
		Order("created_at DESC").
		Find(&managers).Error
	if err != nil {
		return nil, err
	}

	return managers, nil
}

func (r *managerRepository) GetOwned(ctx context.Context, id, userID uint) (models.StudentManager, error) {
	var manager models.StudentManager
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&manager).Error
	if err != nil {
		return models.StudentManager{}, err
	}

	return manager, nil
}

func (r *managerRepository) GetByID(ctx context.Context, id uint) (models.StudentManager, error) {
	var manager models.StudentManager
	if err := r.db.WithContext(ctx).First(&manager, id).Error; err != nil {
		return models.StudentManager{}, err
	}

	return manager, nil
}

func (r *managerRepository) GetByUsername(ctx context.Context, username string) (models.StudentManager, error) {
	var manager models.StudentManager
	err := r.db.WithContext(ctx).
		Where("username = ?", username).
		First(&manager).Error
	if err != nil {
		return models.StudentManager{}, err
	}

	return manager, nil
}

func (r *managerRepository) UsernameTaken(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.StudentManager{}).
		Where("username = ?", username).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *managerRepository) Create(ctx context.Context, manager *models.StudentManager) error {
	return r.db.WithContext(ctx).Create(manager).Error
}

func (r *managerRepository) Update(ctx context.Context, manager *models.StudentManager) error {
	return r.db.WithContext(ctx).Save(manager).Error
}

func (r *managerRepository) Delete(ctx context.Context, id, userID uint) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.StudentManager{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
