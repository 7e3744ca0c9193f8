package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/noah-isme/classscore-api/internal/dto"
	"github.com/noah-isme/classscore-api/internal/models"
	"github.com/noah-isme/classscore-api/internal/repository"
)

// ManagerService lets a teacher provision and maintain student-manager
// sub-accounts for a classroom.
type ManagerService interface {
	List(ctx context.Context, userID, classroomID uint) ([]dto.ManagerResponse, error)
	Create(ctx context.Context, userID uint, payload dto.ManagerCreateRequest) (dto.ManagerResponse, error)
	Update(ctx context.Context, userID, id uint, payload dto.ManagerUpdateRequest) (dto.ManagerResponse, error)
	Delete(ctx context.Context, userID, id uint) error
}

type managerService struct {
	managers   repository.ManagerRepository
	classrooms repository.ClassroomRepository
	rules      repository.RuleRepository
	validator  *validator.Validate
	logger     zerolog.Logger
}

// NewManagerService builds the student-manager service.
func NewManagerService(
	managers repository.ManagerRepository,
	classrooms repository.ClassroomRepository,
	rules repository.RuleRepository,
	validate *validator.Validate,
	logger zerolog.Logger,
) ManagerService {
	return &managerService{
		managers:   managers,
		classrooms: classrooms,
		rules:      rules,
		validator:  validate,
		logger:     logger.With().Str("component", "manager_service").Logger(),
	}
}

func (s *managerService) List(ctx context.Context, userID, classroomID uint) ([]dto.ManagerResponse, error) {
	if _, err := s.classrooms.GetOwned(ctx, classroomID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassroomNotFound
		}
		return nil, err
	}

	managers, err := s.managers.ListByClassroom(ctx, userID, classroomID)
	if err != nil {
		return nil, err
	}

	return dto.NewManagerResponseSlice(managers), nil
}

func (s *managerService) Create(ctx context.Context, userID uint, payload dto.ManagerCreateRequest) (dto.ManagerResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ManagerResponse{}, err
	}

	if _, err := s.classrooms.GetOwned(ctx, payload.ClassroomID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ManagerResponse{}, ErrClassroomNotFound
		}
		return dto.ManagerResponse{}, err
	}

	if err := s.checkRuleSubset(ctx, userID, payload.ClassroomID, payload.AllowedRuleIDs); err != nil {
		return dto.ManagerResponse{}, err
	}

	taken, err := s.managers.UsernameTaken(ctx, payload.Username)
	if err != nil {
		return dto.ManagerResponse{}, err
	}
	if taken {
		return dto.ManagerResponse{}, ErrManagerExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return dto.ManagerResponse{}, err
	}

	manager := models.StudentManager{
		UserID:         userID,
		ClassroomID:    payload.ClassroomID,
		Username:       payload.Username,
		PasswordHash:   string(hash),
		DisplayName:    payload.DisplayName,
		AllowedRuleIDs: datatypes.NewJSONSlice(payload.AllowedRuleIDs),
	}
	if err := s.managers.Create(ctx, &manager); err != nil {
		return dto.ManagerResponse{}, err
	}

	s.logger.Info().Uint("manager_id", manager.ID).Uint("classroom_id", manager.ClassroomID).Msg("student manager created")

	return dto.NewManagerResponse(manager), nil
}

func (s *managerService) Update(ctx context.Context, userID, id uint, payload dto.ManagerUpdateRequest) (dto.ManagerResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ManagerResponse{}, err
	}

	if payload.DisplayName == nil && payload.Password == nil && payload.AllowedRuleIDs == nil {
		return dto.ManagerResponse{}, ErrNothingToApply
	}

	manager, err := s.managers.GetOwned(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ManagerResponse{}, ErrManagerNotFound
		}
		return dto.ManagerResponse{}, err
	}

	if payload.DisplayName != nil {
		manager.DisplayName = *payload.DisplayName
	}

	if payload.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*payload.Password), bcrypt.DefaultCost)
		if err != nil {
			return dto.ManagerResponse{}, err
		}
		manager.PasswordHash = string(hash)
	}

	if payload.AllowedRuleIDs != nil {
		if err := s.checkRuleSubset(ctx, userID, manager.ClassroomID, *payload.AllowedRuleIDs); err != nil {
			return dto.ManagerResponse{}, err
		}
		manager.AllowedRuleIDs = datatypes.NewJSONSlice(*payload.AllowedRuleIDs)
	}

	if err := s.managers.Update(ctx, &manager); err != nil {
		return dto.ManagerResponse{}, err
	}

	return dto.NewManagerResponse(manager), nil
}

func (s *managerService) Delete(ctx context.Context, userID, id uint) error {
	if err := s.managers.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrManagerNotFound
		}
		return err
	}

	s.logger.Info().Uint("manager_id", id).Msg("student manager deleted")
	return nil
}

// checkRuleSubset enforces that every granted rule id belongs to the
// manager's classroom. The schema does not enforce this, so the service
// must.
func (s *managerService) checkRuleSubset(ctx context.Context, userID, classroomID uint, ruleIDs []uint) error {
	if len(ruleIDs) == 0 {
		return nil
	}

	rules, err := s.rules.ListByClassroom(ctx, userID, classroomID)
	if err != nil {
		return err
	}

	known := make(map[uint]struct{}, len(rules))
	for _, rule := range rules {
		known[rule.ID] = struct{}{}
	}

	for _, id := range ruleIDs {
		if _, ok := known[id]; !ok {
			return ErrRuleNotInClass
		}
	}

	return nil
}
