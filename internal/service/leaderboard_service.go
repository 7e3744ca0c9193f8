package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/classscore-api/internal/dto"
	"github.com/noah-isme/classscore-api/internal/repository"
)

// LeaderboardService derives ranked totals and per-rule breakdowns from the
// score ledger. There is no caching layer: every call re-aggregates.
type LeaderboardService interface {
	Aggregate(ctx context.Context, userID, classroomID uint, query dto.LeaderboardQuery) (dto.LeaderboardResponse, error)
	AggregateFor(ctx context.Context, principal Principal, classroomID uint, query dto.LeaderboardQuery) (dto.LeaderboardResponse, error)
}

type leaderboardService struct {
	students   repository.StudentRepository
	rules      repository.RuleRepository
	scores     repository.ScoreRepository
	classrooms repository.ClassroomRepository
	managers   repository.ManagerRepository
	logger     zerolog.Logger
	now        func() time.Time
}

// NewLeaderboardService builds the leaderboard aggregator.
func NewLeaderboardService(
	students repository.StudentRepository,
	rules repository.RuleRepository,
	scores repository.ScoreRepository,
	classrooms repository.ClassroomRepository,
	managers repository.ManagerRepository,
	logger zerolog.Logger,
) LeaderboardService {
	return &leaderboardService{
		students:   students,
		rules:      rules,
		scores:     scores,
		classrooms: classrooms,
		managers:   managers,
		logger:     logger.With().Str("component", "leaderboard_service").Logger(),
		now:        time.Now,
	}
}

// AggregateFor resolves the principal's tenant before aggregating. A
// manager principal is pinned to its own classroom regardless of the
// requested one.
func (s *leaderboardService) AggregateFor(ctx context.Context, principal Principal, classroomID uint, query dto.LeaderboardQuery) (dto.LeaderboardResponse, error) {
	userID := principal.UserID

	if principal.Kind == PrincipalManager {
		manager, err := s.managers.GetByID(ctx, principal.ManagerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return dto.LeaderboardResponse{}, ErrManagerNotFound
			}
			return dto.LeaderboardResponse{}, err
		}
		userID = manager.UserID
		classroomID = manager.ClassroomID
	}

	return s.Aggregate(ctx, userID, classroomID, query)
}

// Aggregate ranks every student in the classroom, zero scorers included.
// Range totals are always summed from the ledger, never read from the
// denormalized column, so filtered and lifetime views cannot drift apart.
// Ordering is a strict total order: total desc, then grade, class and
// number ascending.
func (s *leaderboardService) Aggregate(ctx context.Context, userID, classroomID uint, query dto.LeaderboardQuery) (dto.LeaderboardResponse, error) {
	if _, err := s.classrooms.GetOwned(ctx, classroomID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.LeaderboardResponse{}, ErrClassroomNotFound
		}
		return dto.LeaderboardResponse{}, err
	}

	window, err := resolveWindow(s.now(), query)
	if err != nil {
		return dto.LeaderboardResponse{}, err
	}

	students, err := s.students.ListByClassroom(ctx, userID, classroomID)
	if err != nil {
		return dto.LeaderboardResponse{}, err
	}

	rules, err := s.rules.ListByClassroom(ctx, userID, classroomID)
	if err != nil {
		return dto.LeaderboardResponse{}, err
	}

	entries, err := s.scores.ListForClassroom(ctx, classroomID, window.start, window.end)
	if err != nil {
		return dto.LeaderboardResponse{}, err
	}

	byStudent := make(map[uint]*dto.LeaderboardEntry, len(students))
	board := make([]dto.LeaderboardEntry, 0, len(students))
	for _, student := range students {
		board = append(board, dto.LeaderboardEntry{
			StudentID:  student.ID,
			Name:       student.Name,
			Grade:      student.Grade,
			ClassNum:   student.ClassNum,
			StudentNum: student.StudentNum,
			RuleTotals: map[uint]int{},
		})
	}
	for i := range board {
		byStudent[board[i].StudentID] = &board[i]
	}

	for _, entry := range entries {
		row, ok := byStudent[entry.StudentID]
		if !ok {
			continue
		}
		row.TotalScore += entry.Value
		row.RuleTotals[entry.RuleID] += entry.Value
	}

	sort.Slice(board, func(i, j int) bool {
		a, b := board[i], board[j]
		if a.TotalScore != b.TotalScore {
			return a.TotalScore > b.TotalScore
		}
		if a.Grade != b.Grade {
			return a.Grade < b.Grade
		}
		if a.ClassNum != b.ClassNum {
			return a.ClassNum < b.ClassNum
		}
		return a.StudentNum < b.StudentNum
	})
	for i := range board {
		board[i].Rank = i + 1
	}

	period := query.Period
	if period == "" {
		period = PeriodAll
	}

	return dto.LeaderboardResponse{
		Entries:   board,
		Rules:     dto.NewRuleResponseSlice(rules),
		Period:    period,
		StartDate: window.start,
		EndDate:   window.end,
	}, nil
}
