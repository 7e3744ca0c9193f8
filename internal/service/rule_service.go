package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/classscore-api/internal/dto"
	"github.com/noah-isme/classscore-api/internal/models"
	"github.com/noah-isme/classscore-api/internal/repository"
)

// RuleService exposes scoring-rule use cases for the owning teacher.
type RuleService interface {
	List(ctx context.Context, userID, classroomID uint) ([]dto.RuleResponse, error)
	Create(ctx context.Context, userID uint, payload dto.RuleCreateRequest) (dto.RuleResponse, error)
	Update(ctx context.Context, userID, id uint, payload dto.RuleUpdateRequest) (dto.RuleResponse, error)
	Delete(ctx context.Context, userID, id uint) error
	Import(ctx context.Context, userID uint, payload dto.RuleImportRequest) (dto.RuleImportResult, error)
}

type ruleService struct {
	rules      repository.RuleRepository
	classrooms repository.ClassroomRepository
	validator  *validator.Validate
	logger     zerolog.Logger
}

// NewRuleService builds the rule service.
func NewRuleService(rules repository.RuleRepository, classrooms repository.ClassroomRepository, validate *validator.Validate, logger zerolog.Logger) RuleService {
	return &ruleService{
		rules:      rules,
		classrooms: classrooms,
		validator:  validate,
		logger:     logger.With().Str("component", "rule_service").Logger(),
	}
}

func (s *ruleService) List(ctx context.Context, userID, classroomID uint) ([]dto.RuleResponse, error) {
	var rules []models.Rule
	var err error
	if classroomID != 0 {
		rules, err = s.rules.ListByClassroom(ctx, userID, classroomID)
	} else {
		rules, err = s.rules.ListByUser(ctx, userID)
	}
	if err != nil {
		return nil, err
	}

	return dto.NewRuleResponseSlice(rules), nil
}

func (s *ruleService) Create(ctx context.Context, userID uint, payload dto.RuleCreateRequest) (dto.RuleResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.RuleResponse{}, err
	}

	if _, err := s.classrooms.GetOwned(ctx, payload.ClassroomID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.RuleResponse{}, ErrClassroomNotFound
		}
		return dto.RuleResponse{}, err
	}

	rule := models.Rule{
		UserID:      userID,
		ClassroomID: payload.ClassroomID,
		Name:        payload.Name,
		IconID:      payload.IconID,
		Color:       payload.Color,
	}
	if err := s.rules.Create(ctx, &rule); err != nil {
		return dto.RuleResponse{}, err
	}

	s.logger.Info().Uint("rule_id", rule.ID).Msg("rule created")

	return dto.NewRuleResponse(rule), nil
}

func (s *ruleService) Update(ctx context.Context, userID, id uint, payload dto.RuleUpdateRequest) (dto.RuleResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.RuleResponse{}, err
	}

	rule, err := s.rules.GetOwned(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.RuleResponse{}, ErrRuleNotFound
		}
		return dto.RuleResponse{}, err
	}

	rule.Name = payload.Name
	rule.IconID = payload.IconID
	rule.Color = payload.Color
	if err := s.rules.Update(ctx, &rule); err != nil {
		return dto.RuleResponse{}, err
	}

	return dto.NewRuleResponse(rule), nil
}

// Delete runs the compensating transaction: every affected student's
// denormalized total drops by the rule's ledger contribution before the
// rule and its ledger rows disappear.
func (s *ruleService) Delete(ctx context.Context, userID, id uint) error {
	if err := s.rules.DeleteWithCompensation(ctx, id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRuleNotFound
		}
		return err
	}

	s.logger.Info().Uint("rule_id", id).Msg("rule deleted with score compensation")
	return nil
}

// Import copies rule definitions between two owned classrooms, best-effort:
// names already present in the target are skipped (exact, case-sensitive)
// and a failed copy does not abort the rest.
func (s *ruleService) Import(ctx context.Context, userID uint, payload dto.RuleImportRequest) (dto.RuleImportResult, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.RuleImportResult{}, err
	}

	for _, classroomID := range []uint{payload.SourceClassroomID, payload.TargetClassroomID} {
		if _, err := s.classrooms.GetOwned(ctx, classroomID, userID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return dto.RuleImportResult{}, ErrClassroomNotFound
			}
			return dto.RuleImportResult{}, err
		}
	}

	source, err := s.rules.ListByClassroom(ctx, userID, payload.SourceClassroomID)
	if err != nil {
		return dto.RuleImportResult{}, err
	}

	result := dto.RuleImportResult{Rows: make([]dto.BulkRowOutcome, 0, len(source))}

	for _, rule := range source {
		outcome := dto.BulkRowOutcome{Name: rule.Name}

		exists, err := s.rules.NameExists(ctx, payload.TargetClassroomID, rule.Name)
		if err != nil {
			result.Failed++
			outcome.Status = "failed"
			outcome.Error = err.Error()
			result.Rows = append(result.Rows, outcome)
			continue
		}
		if exists {
			result.Skipped++
			outcome.Status = "skipped"
			result.Rows = append(result.Rows, outcome)
			continue
		}

		copied := models.Rule{
			UserID:      userID,
			ClassroomID: payload.TargetClassroomID,
			Name:        rule.Name,
			IconID:      rule.IconID,
			Color:       rule.Color,
		}
		if err := s.rules.Create(ctx, &copied); err != nil {
			result.Failed++
			outcome.Status = "failed"
			outcome.Error = err.Error()
		} else {
			result.Imported++
			outcome.Status = "imported"
		}
		result.Rows = append(result.Rows, outcome)
	}

	s.logger.Info().
		Int("imported", result.Imported).
		Int("skipped", result.Skipped).
		Int("failed", result.Failed).
		Msg("rule import finished")

	return result, nil
}
