package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/classscore-api/internal/dto"
	"github.com/noah-isme/classscore-api/internal/observability"
	"github.com/noah-isme/classscore-api/internal/repository"
)

// ScoreService is the ledger mutation surface. Teachers may score anything
// they own; student managers only their classroom's allowed rules.
type ScoreService interface {
	Toggle(ctx context.Context, principal Principal, payload dto.ScoreToggleRequest) (dto.ScoreMutationResponse, error)
	Adjust(ctx context.Context, principal Principal, payload dto.ScoreAdjustRequest) (dto.ScoreMutationResponse, error)
	ListByDate(ctx context.Context, userID uint, date string) ([]dto.ScoreEntryResponse, error)
	BulkApply(ctx context.Context, userID uint, payload dto.BulkScoreRequest) (dto.BulkScoreResult, error)
	BulkClear(ctx context.Context, userID uint, payload dto.BulkScoreRequest) (dto.BulkScoreResult, error)
}

type scoreService struct {
	scores     repository.ScoreRepository
	students   repository.StudentRepository
	classrooms repository.ClassroomRepository
	managers   repository.ManagerRepository
	validator  *validator.Validate
	logger     zerolog.Logger
}

// NewScoreService builds the score ledger service.
func NewScoreService(
	scores repository.ScoreRepository,
	students repository.StudentRepository,
	classrooms repository.ClassroomRepository,
	managers repository.ManagerRepository,
	validate *validator.Validate,
	logger zerolog.Logger,
) ScoreService {
	return &scoreService{
		scores:     scores,
		students:   students,
		classrooms: classrooms,
		managers:   managers,
		validator:  validate,
		logger:     logger.With().Str("component", "score_service").Logger(),
	}
}

// resolveScope turns the principal into a tenant scope for the ledger
// transaction. For managers the rule must be in the allowed set before any
// write is attempted.
func (s *scoreService) resolveScope(ctx context.Context, principal Principal, ruleID uint) (repository.ScoreScope, error) {
	if principal.Kind == PrincipalTeacher {
		return repository.ScoreScope{TenantID: principal.UserID}, nil
	}

	manager, err := s.managers.GetByID(ctx, principal.ManagerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return repository.ScoreScope{}, ErrManagerNotFound
		}
		return repository.ScoreScope{}, err
	}

	if !manager.AllowsRule(ruleID) {
		return repository.ScoreScope{}, ErrRuleNotAllowed
	}

	return repository.ScoreScope{TenantID: manager.UserID, ClassroomID: manager.ClassroomID}, nil
}

func (s *scoreService) Toggle(ctx context.Context, principal Principal, payload dto.ScoreToggleRequest) (dto.ScoreMutationResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ScoreMutationResponse{}, err
	}

	scope, err := s.resolveScope(ctx, principal, payload.RuleID)
	if err != nil {
		return dto.ScoreMutationResponse{}, err
	}

	result, err := s.scores.Toggle(ctx, scope, payload.StudentID, payload.RuleID, payload.Date)
	if err != nil {
		return dto.ScoreMutationResponse{}, s.mapLedgerError(err)
	}

	observability.ScoreMutations().WithLabelValues("toggle").Inc()

	return newMutationResponse(result), nil
}

func (s *scoreService) Adjust(ctx context.Context, principal Principal, payload dto.ScoreAdjustRequest) (dto.ScoreMutationResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ScoreMutationResponse{}, err
	}

	scope, err := s.resolveScope(ctx, principal, payload.RuleID)
	if err != nil {
		return dto.ScoreMutationResponse{}, err
	}

	result, err := s.scores.Adjust(ctx, scope, payload.StudentID, payload.RuleID, payload.Date, payload.Delta)
	if err != nil {
		return dto.ScoreMutationResponse{}, s.mapLedgerError(err)
	}

	observability.ScoreMutations().WithLabelValues("adjust").Inc()

	return newMutationResponse(result), nil
}

func (s *scoreService) ListByDate(ctx context.Context, userID uint, date string) ([]dto.ScoreEntryResponse, error) {
	if !dto.IsLedgerDate(date) {
		return nil, fmt.Errorf("%w: %q", ErrDateInvalid, date)
	}

	entries, err := s.scores.ListByTenantAndDate(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ScoreEntryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, dto.ScoreEntryResponse{
			StudentID: entry.StudentID,
			RuleID:    entry.RuleID,
			Date:      entry.Date,
			Value:     entry.Value,
		})
	}

	return responses, nil
}

// BulkApply toggles the rule on for every student in the classroom not
// already at value 1. Each toggle commits on its own; a failure leaves the
// students before it toggled.
func (s *scoreService) BulkApply(ctx context.Context, userID uint, payload dto.BulkScoreRequest) (dto.BulkScoreResult, error) {
	return s.bulkToggle(ctx, userID, payload, 1)
}

// BulkClear toggles the rule off for every student still at value 1.
func (s *scoreService) BulkClear(ctx context.Context, userID uint, payload dto.BulkScoreRequest) (dto.BulkScoreResult, error) {
	return s.bulkToggle(ctx, userID, payload, 0)
}

func (s *scoreService) bulkToggle(ctx context.Context, userID uint, payload dto.BulkScoreRequest, target int) (dto.BulkScoreResult, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.BulkScoreResult{}, err
	}

	if _, err := s.classrooms.GetOwned(ctx, payload.ClassroomID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.BulkScoreResult{}, ErrClassroomNotFound
		}
		return dto.BulkScoreResult{}, err
	}

	students, err := s.students.ListByClassroom(ctx, userID, payload.ClassroomID)
	if err != nil {
		return dto.BulkScoreResult{}, err
	}

	scope := repository.ScoreScope{TenantID: userID}
	result := dto.BulkScoreResult{Rows: make([]dto.BulkRowOutcome, 0, len(students))}

	for _, student := range students {
		outcome := dto.BulkRowOutcome{Name: student.Name}

		current := 0
		entry, err := s.scores.GetEntry(ctx, student.ID, payload.RuleID, payload.Date)
		switch {
		case err == nil:
			current = entry.Value
		case errors.Is(err, gorm.ErrRecordNotFound):
		default:
			result.Failed++
			outcome.Status = "failed"
			outcome.Error = err.Error()
			result.Rows = append(result.Rows, outcome)
			continue
		}

		if current == target {
			result.Skipped++
			outcome.Status = "skipped"
			result.Rows = append(result.Rows, outcome)
			continue
		}

		if _, err := s.scores.Toggle(ctx, scope, student.ID, payload.RuleID, payload.Date); err != nil {
			result.Failed++
			outcome.Status = "failed"
			outcome.Error = err.Error()
		} else {
			result.Applied++
			outcome.Status = "applied"
			observability.ScoreMutations().WithLabelValues("toggle").Inc()
		}
		result.Rows = append(result.Rows, outcome)
	}

	s.logger.Info().
		Uint("classroom_id", payload.ClassroomID).
		Uint("rule_id", payload.RuleID).
		Int("applied", result.Applied).
		Int("skipped", result.Skipped).
		Int("failed", result.Failed).
		Msg("bulk score toggle finished")

	return result, nil
}

func (s *scoreService) mapLedgerError(err error) error {
	switch {
	case errors.Is(err, repository.ErrStudentNotFound):
		return ErrStudentNotFound
	case errors.Is(err, repository.ErrRuleNotFound):
		return ErrRuleNotFound
	default:
		return err
	}
}

func newMutationResponse(result repository.MutationResult) dto.ScoreMutationResponse {
	return dto.ScoreMutationResponse{
		StudentID:  result.Entry.StudentID,
		RuleID:     result.Entry.RuleID,
		Date:       result.Entry.Date,
		Value:      result.Entry.Value,
		TotalScore: result.TotalScore,
	}
}
