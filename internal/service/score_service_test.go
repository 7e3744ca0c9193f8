package service

import (
	"context"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/noah-isme/classscore-api/internal/dto"
	"github.com/noah-isme/classscore-api/internal/models"
	"github.com/noah-isme/classscore-api/internal/repository"
)

func newScoreFixture(t *testing.T, db *gorm.DB) ScoreService {
	t.Helper()
	return NewScoreService(
		repository.NewScoreRepository(db),
		repository.NewStudentRepository(db),
		repository.NewClassroomRepository(db),
		repository.NewManagerRepository(db),
		newTestValidator(t),
		zerolog.New(io.Discard),
	)
}

func TestScoreServiceToggleAsTeacher(t *testing.T) {
	db := newServiceTestDB(t)
	svc := newScoreFixture(t, db)

	student := models.Student{UserID: 1, ClassroomID: 1, Name: "김철수", Grade: 1, ClassNum: 1, StudentNum: 1}
	rule := models.Rule{UserID: 1, ClassroomID: 1, Name: "발표", IconID: "Star", Color: "#f59e0b"}
	require.NoError(t, db.Create(&student).Error)
	require.NoError(t, db.Create(&rule).Error)

	principal := Principal{Kind: PrincipalTeacher, UserID: 1}
	resp, err := svc.Toggle(context.Background(), principal, dto.ScoreToggleRequest{
		StudentID: student.ID, RuleID: rule.ID, Date: "2026-03-02",
	})
	require.NoError(t, err)
	require.Equal(t, 1, resp.Value)
	require.Equal(t, 1, resp.TotalScore)

	// A teacher cannot reach another tenant's students.
	_, err = svc.Toggle(context.Background(), Principal{Kind: PrincipalTeacher, UserID: 2}, dto.ScoreToggleRequest{
		StudentID: student.ID, RuleID: rule.ID, Date: "2026-03-02",
	})
	require.ErrorIs(t, err, ErrStudentNotFound)
}

func TestScoreServiceToggleRejectsMalformedDate(t *testing.T) {
	db := newServiceTestDB(t)
	svc := newScoreFixture(t, db)

	_, err := svc.Toggle(context.Background(), Principal{Kind: PrincipalTeacher, UserID: 1}, dto.ScoreToggleRequest{
		StudentID: 1, RuleID: 1, Date: "03/02/2026",
	})
	require.Error(t, err)
}

func TestScoreServiceManagerAuthorization(t *testing.T) {
	db := newServiceTestDB(t)
	svc := newScoreFixture(t, db)

	student := models.Student{UserID: 1, ClassroomID: 1, Name: "김철수", Grade: 1, ClassNum: 1, StudentNum: 1}
	outsider := models.Student{UserID: 1, ClassroomID: 2, Name: "남의반", Grade: 1, ClassNum: 1, StudentNum: 2}
	allowed := models.Rule{UserID: 1, ClassroomID: 1, Name: "발표", IconID: "Star", Color: "#f59e0b"}
	forbidden := models.Rule{UserID: 1, ClassroomID: 1, Name: "지각", IconID: "Clock", Color: "#ef4444"}
	require.NoError(t, db.Create(&student).Error)
	require.NoError(t, db.Create(&outsider).Error)
	require.NoError(t, db.Create(&allowed).Error)
	require.NoError(t, db.Create(&forbidden).Error)

	manager := models.StudentManager{
		UserID:         1,
		ClassroomID:    1,
		Username:       "helper1",
		PasswordHash:   "hash",
		DisplayName:    "도우미",
		AllowedRuleIDs: datatypes.NewJSONSlice([]uint{allowed.ID}),
	}
	require.NoError(t, db.Create(&manager).Error)

	principal := Principal{Kind: PrincipalManager, ManagerID: manager.ID}

	resp, err := svc.Toggle(context.Background(), principal, dto.ScoreToggleRequest{
		StudentID: student.ID, RuleID: allowed.ID, Date: "2026-03-02",
	})
	require.NoError(t, err)
	require.Equal(t, 1, resp.Value)

	_, err = svc.Toggle(context.Background(), principal, dto.ScoreToggleRequest{
		StudentID: student.ID, RuleID: forbidden.ID, Date: "2026-03-02",
	})
	require.ErrorIs(t, err, ErrRuleNotAllowed)

	// An allowed rule still cannot reach students outside the pinned classroom.
	_, err = svc.Toggle(context.Background(), principal, dto.ScoreToggleRequest{
		StudentID: outsider.ID, RuleID: allowed.ID, Date: "2026-03-02",
	})
	require.ErrorIs(t, err, ErrStudentNotFound)

	// Deleting the manager revokes access on the very next call.
	require.NoError(t, db.Delete(&manager).Error)
	_, err = svc.Toggle(context.Background(), principal, dto.ScoreToggleRequest{
		StudentID: student.ID, RuleID: allowed.ID, Date: "2026-03-03",
	})
	require.ErrorIs(t, err, ErrManagerNotFound)
}

func TestScoreServiceListByDate(t *testing.T) {
	db := newServiceTestDB(t)
	svc := newScoreFixture(t, db)

	student := models.Student{UserID: 1, ClassroomID: 1, Name: "김철수", Grade: 1, ClassNum: 1, StudentNum: 1}
	rule := models.Rule{UserID: 1, ClassroomID: 1, Name: "발표", IconID: "Star", Color: "#f59e0b"}
	require.NoError(t, db.Create(&student).Error)
	require.NoError(t, db.Create(&rule).Error)

	principal := Principal{Kind: PrincipalTeacher, UserID: 1}
	_, err := svc.Adjust(context.Background(), principal, dto.ScoreAdjustRequest{
		StudentID: student.ID, RuleID: rule.ID, Date: "2026-03-02", Delta: 2,
	})
	require.NoError(t, err)

	entries, err := svc.ListByDate(context.Background(), 1, "2026-03-02")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, 2, entries[0].Value)

	entries, err = svc.ListByDate(context.Background(), 1, "2026-03-03")
	require.NoError(t, err)
	require.Empty(t, entries)

	_, err = svc.ListByDate(context.Background(), 1, "not-a-date")
	require.ErrorIs(t, err, ErrDateInvalid)
}

func TestScoreServiceBulkApplyAndClear(t *testing.T) {
	db := newServiceTestDB(t)
	svc := newScoreFixture(t, db)

	classroom := models.Classroom{UserID: 1, Name: "1반"}
	require.NoError(t, db.Create(&classroom).Error)

	first := models.Student{UserID: 1, ClassroomID: classroom.ID, Name: "하나", Grade: 1, ClassNum: 1, StudentNum: 1}
	second := models.Student{UserID: 1, ClassroomID: classroom.ID, Name: "둘", Grade: 1, ClassNum: 1, StudentNum: 2}
	rule := models.Rule{UserID: 1, ClassroomID: classroom.ID, Name: "발표", IconID: "Star", Color: "#f59e0b"}
	require.NoError(t, db.Create(&first).Error)
	require.NoError(t, db.Create(&second).Error)
	require.NoError(t, db.Create(&rule).Error)

	principal := Principal{Kind: PrincipalTeacher, UserID: 1}
	_, err := svc.Toggle(context.Background(), principal, dto.ScoreToggleRequest{
		StudentID: first.ID, RuleID: rule.ID, Date: "2026-03-02",
	})
	require.NoError(t, err)

	payload := dto.BulkScoreRequest{ClassroomID: classroom.ID, RuleID: rule.ID, Date: "2026-03-02"}

	result, err := svc.BulkApply(context.Background(), 1, payload)
	require.NoError(t, err)
	require.Equal(t, 1, result.Applied, "only the unscored student is toggled")
	require.Equal(t, 1, result.Skipped)
	require.Zero(t, result.Failed)
	require.Len(t, result.Rows, 2)

	result, err = svc.BulkClear(context.Background(), 1, payload)
	require.NoError(t, err)
	require.Equal(t, 2, result.Applied)
	require.Zero(t, result.Skipped)

	// Clearing again skips everyone.
	result, err = svc.BulkClear(context.Background(), 1, payload)
	require.NoError(t, err)
	require.Zero(t, result.Applied)
	require.Equal(t, 2, result.Skipped)
}

func TestScoreServiceBulkRequiresOwnedClassroom(t *testing.T) {
	db := newServiceTestDB(t)
	svc := newScoreFixture(t, db)

	classroom := models.Classroom{UserID: 2, Name: "남의 반"}
	require.NoError(t, db.Create(&classroom).Error)

	_, err := svc.BulkApply(context.Background(), 1, dto.BulkScoreRequest{
		ClassroomID: classroom.ID, RuleID: 1, Date: "2026-03-02",
	})
	require.ErrorIs(t, err, ErrClassroomNotFound)
}
