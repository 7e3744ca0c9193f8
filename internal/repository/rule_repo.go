package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/classscore-api/internal/models"
)

// RuleRepository provides access to scoring rules, scoped by owner.
type RuleRepository interface {
	ListByUser(ctx context.Context, userID uint) ([]models.Rule, error)
	ListByClassroom(ctx context.Context, userID, classroomID uint) ([]models.Rule, error)
	GetOwned(ctx context.Context, id, userID uint) (models.Rule, error)
	Create(ctx context.Context, rule *models.Rule) error
	Update(ctx context.Context, rule *models.Rule) error
	DeleteWithCompensation(ctx context.Context, id, userID uint) error
	NameExists(ctx context.Context, classroomID uint, name string) (bool, error)
}

type ruleRepository struct {
	db *gorm.DB
}

// NewRuleRepository constructs a rule repository.
func NewRuleRepository(db *gorm.DB) RuleRepository {
	return &ruleRepository{db: db}
}

func (r *ruleRepository) ListByUser(ctx context.Context, userID uint) ([]models.Rule, error) {
	var rules []models.Rule
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&rules).Error
	if err != nil {
		return nil, err
	}

	return rules, nil
}

func (r *ruleRepository) ListByClassroom(ctx context.Context, userID, classroomID uint) ([]models.Rule, error) {
	var rules []models.Rule
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND classroom_id = ?", userID, classroomID).
		Order("id ASC").
		Find(&rules).Error
	if err != nil {
		return nil, err
	}

	return rules, nil
}

func (r *ruleRepository) GetOwned(ctx context.Context, id, userID uint) (models.Rule, error) {
	var rule models.Rule
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&rule).Error
	if err != nil {
		return models.Rule{}, err
	}

	return rule, nil
}

func (r *ruleRepository) Create(ctx context.Context, rule *models.Rule) error {
	return r.db.WithContext(ctx).Create(rule).Error
}

func (r *ruleRepository) Update(ctx context.Context, rule *models.Rule) error {
	return r.db.WithContext(ctx).Save(rule).Error
}

// DeleteWithCompensation removes a rule without corrupting denormalized
// totals: inside one transaction it sums the rule's ledger values per
// student, subtracts each sum from that student's running total (no floor),
// deletes the ledger rows and finally the rule itself.
func (r *ruleRepository) DeleteWithCompensation(ctx context.Context, id, userID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rule models.Rule
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&rule).Error; err != nil {
			return err
		}

		type studentTotal struct {
			StudentID uint
			Total     int
		}

		var totals []studentTotal
		err := tx.Model(&models.DailyScore{}).
			Select("student_id, SUM(value) AS total").
			Where("rule_id = ?", id).
			Group("student_id").
			Scan(&totals).Error
		if err != nil {
			return err
		}

		for _, t := range totals {
			if err := tx.Model(&models.Student{}).
				Where("id = ?", t.StudentID).
				Update("score", gorm.Expr("score - ?", t.Total)).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("rule_id = ?", id).Delete(&models.DailyScore{}).Error; err != nil {
			return err
		}

		return tx.Delete(&rule).Error
	})
}

func (r *ruleRepository) NameExists(ctx context.Context, classroomID uint, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Rule{}).
		Where("classroom_id = ? AND name = ?", classroomID, name).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
