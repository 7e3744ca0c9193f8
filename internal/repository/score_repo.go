package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/noah-isme/classscore-api/internal/models"
)

// Ledger lookup failures inside a mutation transaction. Absent and
// not-owned are indistinguishable on purpose.
var (
	ErrStudentNotFound = errors.New("student not found")
	ErrRuleNotFound    = errors.New("rule not found")
)

// ScoreScope restricts a ledger mutation to one tenant and, for
// student-manager principals, to one classroom. ClassroomID zero means the
// whole tenant.
type ScoreScope struct {
	TenantID    uint
	ClassroomID uint
}

// MutationResult reports the ledger entry and the student's denormalized
// total after a mutation committed.
type MutationResult struct {
	Entry      models.DailyScore
	TotalScore int
}

// ScoreRepository is the daily score ledger. Toggle and Adjust run the
// ownership check, the upsert and the denormalized-score update in a single
// transaction; on error nothing is applied.
//
// There is no cross-request row locking: two concurrent mutations of the
// same entry race last-write-wins on the stored value, but the denormalized
// total stays consistent because each transaction applies its delta with an
// additive SQL update rather than a read-modify-write.
type ScoreRepository interface {
	Toggle(ctx context.Context, scope ScoreScope, studentID, ruleID uint, date string) (MutationResult, error)
	Adjust(ctx context.Context, scope ScoreScope, studentID, ruleID uint, date string, delta int) (MutationResult, error)
	GetEntry(ctx context.Context, studentID, ruleID uint, date string) (models.DailyScore, error)
	ListByStudent(ctx context.Context, studentID uint) ([]models.DailyScore, error)
	ListByTenantAndDate(ctx context.Context, userID uint, date string) ([]models.DailyScore, error)
	ListForClassroom(ctx context.Context, classroomID uint, startDate, endDate string) ([]models.DailyScore, error)
}

type scoreRepository struct {
	db *gorm.DB
}

// NewScoreRepository constructs a score ledger repository.
func NewScoreRepository(db *gorm.DB) ScoreRepository {
	return &scoreRepository{db: db}
}

func (r *scoreRepository) Toggle(ctx context.Context, scope ScoreScope, studentID, ruleID uint, date string) (MutationResult, error) {
	return r.mutate(ctx, scope, studentID, ruleID, date, func(current int, exists bool) (int, int) {
		if !exists {
			return 1, 1
		}
		if current == 1 {
			return 0, -1
		}
		return 1, 1 - current
	})
}

func (r *scoreRepository) Adjust(ctx context.Context, scope ScoreScope, studentID, ruleID uint, date string, delta int) (MutationResult, error) {
	return r.mutate(ctx, scope, studentID, ruleID, date, func(current int, exists bool) (int, int) {
		if !exists {
			return delta, delta
		}
		return current + delta, delta
	})
}

// mutate applies next(current, exists) = (newValue, scoreDelta) to one
// ledger entry. Values are never clamped; both the entry and the
// denormalized total may go negative.
func (r *scoreRepository) mutate(ctx context.Context, scope ScoreScope, studentID, ruleID uint, date string, next func(current int, exists bool) (int, int)) (MutationResult, error) {
	var result MutationResult

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		studentQuery := tx.Where("id = ? AND user_id = ?", studentID, scope.TenantID)
		if scope.ClassroomID != 0 {
			studentQuery = studentQuery.Where("classroom_id = ?", scope.ClassroomID)
		}

		var student models.Student
		if err := studentQuery.First(&student).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrStudentNotFound
			}
			return err
		}

		ruleQuery := tx.Where("id = ? AND user_id = ?", ruleID, scope.TenantID)
		if scope.ClassroomID != 0 {
			ruleQuery = ruleQuery.Where("classroom_id = ?", scope.ClassroomID)
		}

		var rule models.Rule
		if err := ruleQuery.First(&rule).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRuleNotFound
			}
			return err
		}

		var entry models.DailyScore
		err := tx.Where("student_id = ? AND rule_id = ? AND date = ?", studentID, ruleID, date).
			First(&entry).Error

		switch {
		case err == nil:
			newValue, delta := next(entry.Value, true)
			entry.Value = newValue
			if err := tx.Model(&entry).Update("value", newValue).Error; err != nil {
				return err
			}
			result.Entry = entry
			result.TotalScore = student.Score + delta
			return r.applyDelta(tx, studentID, delta, &result)

		case errors.Is(err, gorm.ErrRecordNotFound):
			newValue, delta := next(0, false)
			entry = models.DailyScore{
				StudentID: studentID,
				RuleID:    ruleID,
				Date:      date,
				Value:     newValue,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
			result.Entry = entry
			return r.applyDelta(tx, studentID, delta, &result)

		default:
			return err
		}
	})
	if err != nil {
		return MutationResult{}, err
	}

	return result, nil
}

// applyDelta adds the delta to the denormalized total in SQL and reads the
// committed value back so the caller sees the same number a fresh query
// would.
func (r *scoreRepository) applyDelta(tx *gorm.DB, studentID uint, delta int, result *MutationResult) error {
	if err := tx.Model(&models.Student{}).
		Where("id = ?", studentID).
		Update("score", gorm.Expr("score + ?", delta)).Error; err != nil {
		return err
	}

	var student models.Student
	if err := tx.Select("score").First(&student, studentID).Error; err != nil {
		return err
	}
	result.TotalScore = student.Score

	return nil
}

func (r *scoreRepository) GetEntry(ctx context.Context, studentID, ruleID uint, date string) (models.DailyScore, error) {
	var entry models.DailyScore
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND rule_id = ? AND date = ?", studentID, ruleID, date).
		First(&entry).Error
	if err != nil {
		return models.DailyScore{}, err
	}

	return entry, nil
}

func (r *scoreRepository) ListByStudent(ctx context.Context, studentID uint) ([]models.DailyScore, error) {
	var entries []models.DailyScore
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *scoreRepository) ListByTenantAndDate(ctx context.Context, userID uint, date string) ([]models.DailyScore, error) {
	var entries []models.DailyScore
	err := r.db.WithContext(ctx).
		Select("daily_scores.*").
		Joins("JOIN students ON students.id = daily_scores.student_id").
		Where("students.user_id = ? AND daily_scores.date = ?", userID, date).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}

	return entries, nil
}

// ListForClassroom returns every ledger row for the classroom's students
// within the inclusive date bounds. Empty bounds are unbounded.
func (r *scoreRepository) ListForClassroom(ctx context.Context, classroomID uint, startDate, endDate string) ([]models.DailyScore, error) {
	query := r.db.WithContext(ctx).
		Select("daily_scores.*").
		Joins("JOIN students ON students.id = daily_scores.student_id").
		Where("students.classroom_id = ?", classroomID)

	if startDate != "" {
		query = query.Where("daily_scores.date >= ?", startDate)
	}
	if endDate != "" {
		query = query.Where("daily_scores.date <= ?", endDate)
	}

	var entries []models.DailyScore
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}

	return entries, nil
}
