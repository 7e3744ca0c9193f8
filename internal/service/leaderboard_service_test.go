package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/noah-isme/classscore-api/internal/dto"
	"github.com/noah-isme/classscore-api/internal/models"
	"github.com/noah-isme/classscore-api/internal/repository"
)

func TestLeaderboardAggregateRanksEveryStudent(t *testing.T) {
	db := newServiceTestDB(t)
	svc, deps := newLeaderboardFixture(t, db)

	classroom := models.Classroom{UserID: 1, Name: "1반"}
	require.NoError(t, db.Create(&classroom).Error)

	top := models.Student{UserID: 1, ClassroomID: classroom.ID, Name: "일등", Grade: 2, ClassNum: 1, StudentNum: 4}
	middle := models.Student{UserID: 1, ClassroomID: classroom.ID, Name: "이등", Grade: 1, ClassNum: 1, StudentNum: 2}
	zero := models.Student{UserID: 1, ClassroomID: classroom.ID, Name: "무득점", Grade: 3, ClassNum: 2, StudentNum: 9}
	rule := models.Rule{UserID: 1, ClassroomID: classroom.ID, Name: "발표", IconID: "Star", Color: "#f59e0b"}
	for _, row := range []interface{}{&top, &middle, &zero, &rule} {
		require.NoError(t, db.Create(row).Error)
	}

	scope := repository.ScoreScope{TenantID: 1}
	_, err := deps.scores.Adjust(context.Background(), scope, top.ID, rule.ID, "2026-03-02", 5)
	require.NoError(t, err)
	_, err = deps.scores.Adjust(context.Background(), scope, middle.ID, rule.ID, "2026-03-03", 2)
	require.NoError(t, err)

	board, err := svc.Aggregate(context.Background(), 1, classroom.ID, dto.LeaderboardQuery{})
	require.NoError(t, err)
	require.Equal(t, PeriodAll, board.Period)
	require.Len(t, board.Entries, 3, "zero scorers are still ranked")
	require.Len(t, board.Rules, 1)

	require.Equal(t, []uint{top.ID, middle.ID, zero.ID}, entryIDs(board.Entries))
	require.Equal(t, 1, board.Entries[0].Rank)
	require.Equal(t, 5, board.Entries[0].TotalScore)
	require.Equal(t, 5, board.Entries[0].RuleTotals[rule.ID])
	require.Equal(t, 3, board.Entries[2].Rank)
	require.Zero(t, board.Entries[2].TotalScore)
}

func TestLeaderboardAggregateBreaksTiesByIdentity(t *testing.T) {
	db := newServiceTestDB(t)
	svc, _ := newLeaderboardFixture(t, db)

	classroom := models.Classroom{UserID: 1, Name: "1반"}
	require.NoError(t, db.Create(&classroom).Error)

	later := models.Student{UserID: 1, ClassroomID: classroom.ID, Name: "나중", Grade: 2, ClassNum: 1, StudentNum: 1}
	earlier := models.Student{UserID: 1, ClassroomID: classroom.ID, Name: "먼저", Grade: 1, ClassNum: 3, StudentNum: 8}
	require.NoError(t, db.Create(&later).Error)
	require.NoError(t, db.Create(&earlier).Error)

	board, err := svc.Aggregate(context.Background(), 1, classroom.ID, dto.LeaderboardQuery{})
	require.NoError(t, err)
	require.Equal(t, []uint{earlier.ID, later.ID}, entryIDs(board.Entries), "equal totals order by grade first")
}

func TestLeaderboardAggregateFiltersByWindow(t *testing.T) {
	db := newServiceTestDB(t)
	svc, deps := newLeaderboardFixture(t, db)
	svc.(*leaderboardService).now = func() time.Time {
		return time.Date(2026, 3, 4, 10, 0, 0, 0, time.Local)
	}

	classroom := models.Classroom{UserID: 1, Name: "1반"}
	require.NoError(t, db.Create(&classroom).Error)

	student := models.Student{UserID: 1, ClassroomID: classroom.ID, Name: "김철수", Grade: 1, ClassNum: 1, StudentNum: 1}
	rule := models.Rule{UserID: 1, ClassroomID: classroom.ID, Name: "발표", IconID: "Star", Color: "#f59e0b"}
	require.NoError(t, db.Create(&student).Error)
	require.NoError(t, db.Create(&rule).Error)

	scope := repository.ScoreScope{TenantID: 1}
	_, err := deps.scores.Adjust(context.Background(), scope, student.ID, rule.ID, "2026-03-04", 3)
	require.NoError(t, err)
	_, err = deps.scores.Adjust(context.Background(), scope, student.ID, rule.ID, "2026-02-01", 10)
	require.NoError(t, err)

	board, err := svc.Aggregate(context.Background(), 1, classroom.ID, dto.LeaderboardQuery{Period: PeriodDaily})
	require.NoError(t, err)
	require.Equal(t, 3, board.Entries[0].TotalScore, "entries outside the window are excluded")
	require.Equal(t, "2026-03-04", board.StartDate)

	board, err = svc.Aggregate(context.Background(), 1, classroom.ID, dto.LeaderboardQuery{})
	require.NoError(t, err)
	require.Equal(t, 13, board.Entries[0].TotalScore)
}

func TestLeaderboardAggregateForManagerPinsClassroom(t *testing.T) {
	db := newServiceTestDB(t)
	svc, deps := newLeaderboardFixture(t, db)

	classroom := models.Classroom{UserID: 1, Name: "1반"}
	other := models.Classroom{UserID: 1, Name: "2반"}
	require.NoError(t, db.Create(&classroom).Error)
	require.NoError(t, db.Create(&other).Error)

	student := models.Student{UserID: 1, ClassroomID: classroom.ID, Name: "김철수", Grade: 1, ClassNum: 1, StudentNum: 1}
	rule := models.Rule{UserID: 1, ClassroomID: classroom.ID, Name: "발표", IconID: "Star", Color: "#f59e0b"}
	manager := models.StudentManager{UserID: 1, ClassroomID: classroom.ID, Username: "helper", PasswordHash: "x", DisplayName: "도우미"}
	for _, row := range []interface{}{&student, &rule, &manager} {
		require.NoError(t, db.Create(row).Error)
	}

	_, err := deps.scores.Adjust(context.Background(), repository.ScoreScope{TenantID: 1}, student.ID, rule.ID, "2026-03-02", 4)
	require.NoError(t, err)

	principal := Principal{Kind: PrincipalManager, ManagerID: manager.ID}
	board, err := svc.AggregateFor(context.Background(), principal, other.ID, dto.LeaderboardQuery{})
	require.NoError(t, err)
	require.Len(t, board.Entries, 1, "requested classroom is ignored for managers")
	require.Equal(t, 4, board.Entries[0].TotalScore)

	require.NoError(t, db.Delete(&manager).Error)
	_, err = svc.AggregateFor(context.Background(), principal, classroom.ID, dto.LeaderboardQuery{})
	require.ErrorIs(t, err, ErrManagerNotFound)
}

func TestLeaderboardAggregateRejectsForeignClassroom(t *testing.T) {
	db := newServiceTestDB(t)
	svc, _ := newLeaderboardFixture(t, db)

	classroom := models.Classroom{UserID: 2, Name: "남의 반"}
	require.NoError(t, db.Create(&classroom).Error)

	_, err := svc.Aggregate(context.Background(), 1, classroom.ID, dto.LeaderboardQuery{})
	require.ErrorIs(t, err, ErrClassroomNotFound)
}

func entryIDs(entries []dto.LeaderboardEntry) []uint {
	ids := make([]uint, 0, len(entries))
	for _, entry := range entries {
		ids = append(ids, entry.StudentID)
	}
	return ids
}

type leaderboardDeps struct {
	students   repository.StudentRepository
	rules      repository.RuleRepository
	scores     repository.ScoreRepository
	classrooms repository.ClassroomRepository
	managers   repository.ManagerRepository
}

func newLeaderboardFixture(t *testing.T, db *gorm.DB) (LeaderboardService, leaderboardDeps) {
	t.Helper()
	deps := leaderboardDeps{
		students:   repository.NewStudentRepository(db),
		rules:      repository.NewRuleRepository(db),
		scores:     repository.NewScoreRepository(db),
		classrooms: repository.NewClassroomRepository(db),
		managers:   repository.NewManagerRepository(db),
	}
	svc := NewLeaderboardService(deps.students, deps.rules, deps.scores, deps.classrooms, deps.managers, zerolog.New(io.Discard))
	return svc, deps
}

func newServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Classroom{},
		&models.Student{},
		&models.Rule{},
		&models.DailyScore{},
		&models.StudentManager{},
		&models.UserSetting{},
	))
	return db
}

func newTestValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New(validator.WithRequiredStructEnabled())
	require.NoError(t, dto.RegisterValidators(v))
	return v
}
