package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/classscore-api/internal/models"
)

// UserRepository provides access to teacher accounts.
type UserRepository interface {
	CreateWithDefaultClassroom(ctx context.Context, user *models.User, classroomName string) error
	GetByID(ctx context.Context, id uint) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	UsernameOrEmailTaken(ctx context.Context, username, email string) (bool, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository constructs a user repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// CreateWithDefaultClassroom inserts the user and its default classroom in
// one transaction so a registered teacher always owns exactly one default.
func (r *userRepository) CreateWithDefaultClassroom(ctx context.Context, user *models.User, classroomName string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}

		classroom := models.Classroom{
			UserID:    user.ID,
			Name:      classroomName,
			IsDefault: true,
		}
		return tx.Create(&classroom).Error
	})
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return models.User{}, err
	}

	return user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return models.User{}, err
	}

	return user, nil
}

func (r *userRepository) UsernameOrEmailTaken(ctx context.Context, username, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
