package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/classscore-api/internal/models"
)

// ClassroomRepository provides access to classrooms, always scoped by owner.
type ClassroomRepository interface {
	ListByUser(ctx context.Context, userID uint) ([]models.Classroom, error)
	GetOwned(ctx context.Context, id, userID uint) (models.Classroom, error)
	Create(ctx context.Context, classroom *models.Classroom) error
	Update(ctx context.Context, classroom *models.Classroom) error
	Delete(ctx context.Context, id, userID uint) error
	SetDefault(ctx context.Context, id, userID uint) (models.Classroom, error)
}

type classroomRepository struct {
	db *gorm.DB
}

// NewClassroomRepository constructs a classroom repository.
func NewClassroomRepository(db *gorm.DB) ClassroomRepository {
	return &classroomRepository{db: db}
}

func (r *classroomRepository) ListByUser(ctx context.Context, userID uint) ([]models.Classroom, error) {
	var classrooms []models.Classroom
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("is_default DESC, created_at ASC").
		Find(&classrooms).Error
	if err != nil {
		return nil, err
	}

	return classrooms, nil
}

func (r *classroomRepository) GetOwned(ctx context.Context, id, userID uint) (models.Classroom, error) {
	var classroom models.Classroom
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&classroom).Error
	if err != nil {
		return models.Classroom{}, err
	}

	return classroom, nil
}

func (r *classroomRepository) Create(ctx context.Context, classroom *models.Classroom) error {
	return r.db.WithContext(ctx).Create(classroom).Error
}

func (r *classroomRepository) Update(ctx context.Context, classroom *models.Classroom) error {
	return r.db.WithContext(ctx).Save(classroom).Error
}

// Delete removes the classroom and, through referential cascades, its
// students, rules, scores, managers and settings.
func (r *classroomRepository) Delete(ctx context.Context, id, userID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var classroom models.Classroom
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&classroom).Error; err != nil {
			return err
		}

		if err := tx.Where("classroom_id = ?", id).Delete(&models.StudentManager{}).Error; err != nil {
			return err
		}
		if err := tx.Where("classroom_id = ?", id).Delete(&models.UserSetting{}).Error; err != nil {
			return err
		}

		var studentIDs []uint
		if err := tx.Model(&models.Student{}).Where("classroom_id = ?", id).Pluck("id", &studentIDs).Error; err != nil {
			return err
		}
		if len(studentIDs) > 0 {
			if err := tx.Where("student_id IN ?", studentIDs).Delete(&models.DailyScore{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("classroom_id = ?", id).Delete(&models.Student{}).Error; err != nil {
			return err
		}
		if err := tx.Where("classroom_id = ?", id).Delete(&models.Rule{}).Error; err != nil {
			return err
		}

		return tx.Delete(&classroom).Error
	})
}

// SetDefault atomically moves the default flag: the previous default is
// unset and the new one set inside one transaction, so concurrent readers
// never observe zero or two defaults.
func (r *classroomRepository) SetDefault(ctx context.Context, id, userID uint) (models.Classroom, error) {
	var classroom models.Classroom

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&classroom).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Classroom{}).
			Where("user_id = ? AND is_default", userID).
			Update("is_default", false).Error; err != nil {
			return err
		}

		classroom.IsDefault = true
		return tx.Model(&classroom).Update("is_default", true).Error
	})
	if err != nil {
		return models.Classroom{}, err
	}

	return classroom, nil
}
