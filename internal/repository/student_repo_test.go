package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/classscore-api/internal/models"
)

func TestStudentRepositoryRosterOrder(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStudentRepository(db)

	rows := []models.Student{
		{UserID: 1, ClassroomID: 1, Name: "셋", Grade: 2, ClassNum: 1, StudentNum: 1},
		{UserID: 1, ClassroomID: 1, Name: "둘", Grade: 1, ClassNum: 2, StudentNum: 1},
		{UserID: 1, ClassroomID: 1, Name: "하나", Grade: 1, ClassNum: 1, StudentNum: 5},
	}
	for i := range rows {
		require.NoError(t, db.Create(&rows[i]).Error)
	}

	students, err := repo.ListByClassroom(context.Background(), 1, 1)
	require.NoError(t, err)
	require.Len(t, students, 3)
	require.Equal(t, "하나", students[0].Name)
	require.Equal(t, "둘", students[1].Name)
	require.Equal(t, "셋", students[2].Name)
}

func TestStudentRepositoryNaturalKeyTaken(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStudentRepository(db)

	student := models.Student{UserID: 1, ClassroomID: 1, Name: "김철수", Grade: 3, ClassNum: 2, StudentNum: 7}
	require.NoError(t, db.Create(&student).Error)

	taken, err := repo.NaturalKeyTaken(context.Background(), 1, 3, 2, 7, 0)
	require.NoError(t, err)
	require.True(t, taken)

	// Excluding the student itself permits a no-op renumber.
	taken, err = repo.NaturalKeyTaken(context.Background(), 1, 3, 2, 7, student.ID)
	require.NoError(t, err)
	require.False(t, taken)

	// Same tuple in another classroom does not collide.
	taken, err = repo.NaturalKeyTaken(context.Background(), 2, 3, 2, 7, 0)
	require.NoError(t, err)
	require.False(t, taken)
}

func TestStudentRepositoryDeleteRemovesLedger(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStudentRepository(db)
	scores := NewScoreRepository(db)

	student := models.Student{UserID: 1, ClassroomID: 1, Name: "이영희", Grade: 1, ClassNum: 1, StudentNum: 1}
	rule := models.Rule{UserID: 1, ClassroomID: 1, Name: "발표", IconID: "Star", Color: "#f59e0b"}
	require.NoError(t, db.Create(&student).Error)
	require.NoError(t, db.Create(&rule).Error)

	_, err := scores.Toggle(context.Background(), ScoreScope{TenantID: 1}, student.ID, rule.ID, "2026-03-02")
	require.NoError(t, err)

	require.NoError(t, repo.Delete(context.Background(), student.ID, 1))

	var count int64
	require.NoError(t, db.Model(&models.DailyScore{}).Count(&count).Error)
	require.Zero(t, count)
}
