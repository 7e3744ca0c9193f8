package service

import (
	"context"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/classscore-api/internal/dto"
	"github.com/noah-isme/classscore-api/internal/models"
	"github.com/noah-isme/classscore-api/internal/repository"
)

func TestPublicServiceLeaderboard(t *testing.T) {
	db := newServiceTestDB(t)
	leaderboard, _ := newLeaderboardFixture(t, db)
	svc := NewPublicService(
		repository.NewSettingsRepository(db),
		repository.NewUserRepository(db),
		leaderboard,
		zerolog.New(io.Discard),
	)

	owner := models.User{Username: "teacher1", Email: "t1@school.kr", PasswordHash: "hash", SchoolName: "한빛초등학교"}
	require.NoError(t, db.Create(&owner).Error)
	classroom := models.Classroom{UserID: owner.ID, Name: "1반"}
	require.NoError(t, db.Create(&classroom).Error)
	student := models.Student{UserID: owner.ID, ClassroomID: classroom.ID, Name: "김철수", Grade: 1, ClassNum: 1, StudentNum: 1}
	require.NoError(t, db.Create(&student).Error)

	setting := models.NewDefaultSetting(owner.ID, classroom.ID)
	setting.Title = "우리 반 점수판"
	setting.ShareEnabled = true
	setting.ShareToken = "a1b2c3d4e5f60718293a4b5c6d7e8f90"
	require.NoError(t, db.Create(&setting).Error)

	resp, err := svc.Leaderboard(context.Background(), setting.ShareToken, dto.LeaderboardQuery{})
	require.NoError(t, err)
	require.Equal(t, "우리 반 점수판", resp.Settings.Title)
	require.Equal(t, "한빛초등학교", resp.Settings.SchoolName)
	require.Equal(t, "teacher1", resp.Settings.TeacherName)
	require.Len(t, resp.Leaderboard.Entries, 1)

	_, err = svc.Leaderboard(context.Background(), "unknown-token", dto.LeaderboardQuery{})
	require.ErrorIs(t, err, ErrShareNotFound)

	// A disabled token behaves exactly like an unknown one.
	setting.ShareEnabled = false
	require.NoError(t, db.Save(&setting).Error)
	_, err = svc.Leaderboard(context.Background(), setting.ShareToken, dto.LeaderboardQuery{})
	require.ErrorIs(t, err, ErrShareNotFound)
}
