package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/classscore-api/internal/models"
)

// StudentRepository provides access to students, scoped by owner.
type StudentRepository interface {
	ListByClassroom(ctx context.Context, userID, classroomID uint) ([]models.Student, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Student, error)
	GetOwned(ctx context.Context, id, userID uint) (models.Student, error)
	FindByNaturalKey(ctx context.Context, classroomID uint, grade, classNum, studentNum int) (models.Student, error)
	NaturalKeyTaken(ctx context.Context, classroomID uint, grade, classNum, studentNum int, excludeID uint) (bool, error)
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id, userID uint) error
}

type studentRepository struct {
	db *gorm.DB
}

// NewStudentRepository constructs a student repository.
func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

const studentRosterOrder = "grade ASC, class_num ASC, student_num ASC"

func (r *studentRepository) ListByClassroom(ctx context.Context, userID, classroomID uint) ([]models.Student, error) {
	var students []models.Student
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND classroom_id = ?", userID, classroomID).
		Order(studentRosterOrder).
		Find(&students).Error
	if err != nil {
		return nil, err
	}

	return students, nil
}

func (r *studentRepository) ListByUser(ctx context.Context, userID uint) ([]models.Student, error) {
	var students []models.Student
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order(studentRosterOrder).
		Find(&students).Error
	if err != nil {
		return nil, err
	}

	return students, nil
}

func (r *studentRepository) GetOwned(ctx context.Context, id, userID uint) (models.Student, error) {
	var student models.Student
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&student).Error
	if err != nil {
		return models.Student{}, err
	}

	return student, nil
}

func (r *studentRepository) FindByNaturalKey(ctx context.Context, classroomID uint, grade, classNum, studentNum int) (models.Student, error) {
	var student models.Student
	err := r.db.WithContext(ctx).
		Where("classroom_id = ? AND grade = ? AND class_num = ? AND student_num = ?",
			classroomID, grade, classNum, studentNum).
		First(&student).Error
	if err != nil {
		return models.Student{}, err
	}

	return student, nil
}

func (r *studentRepository) NaturalKeyTaken(ctx context.Context, classroomID uint, grade, classNum, studentNum int, excludeID uint) (bool, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Student{}).
		Where("classroom_id = ? AND grade = ? AND class_num = ? AND student_num = ?",
			classroomID, grade, classNum, studentNum)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *studentRepository) Create(ctx context.Context, student *models.Student) error {
	return r.db.WithContext(ctx).Create(student).Error
}

func (r *studentRepository) Update(ctx context.Context, student *models.Student) error {
	return r.db.WithContext(ctx).Save(student).Error
}

// Delete removes the student and its ledger rows.
func (r *studentRepository) Delete(ctx context.Context, id, userID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var student models.Student
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&student).Error; err != nil {
			return err
		}

		if err := tx.Where("student_id = ?", id).Delete(&models.DailyScore{}).Error; err != nil {
			return err
		}

		return tx.Delete(&student).Error
	})
}
