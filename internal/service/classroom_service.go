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

// ClassroomService exposes classroom use cases for the owning teacher.
type ClassroomService interface {
	List(ctx context.Context, userID uint) ([]dto.ClassroomResponse, error)
	Create(ctx context.Context, userID uint, payload dto.ClassroomRequest) (dto.ClassroomResponse, error)
	Rename(ctx context.Context, userID, id uint, payload dto.ClassroomRequest) (dto.ClassroomResponse, error)
	Delete(ctx context.Context, userID, id uint) error
	SetDefault(ctx context.Context, userID, id uint) (dto.ClassroomResponse, error)
}

type classroomService struct {
	repo      repository.ClassroomRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewClassroomService builds the classroom service.
func NewClassroomService(repo repository.ClassroomRepository, validate *validator.Validate, logger zerolog.Logger) ClassroomService {
	return &classroomService{
		repo:      repo,
		validator: validate,
		logger:    logger.With().Str("component", "classroom_service").Logger(),
	}
}

func (s *classroomService) List(ctx context.Context, userID uint) ([]dto.ClassroomResponse, error) {
	classrooms, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return dto.NewClassroomResponseSlice(classrooms), nil
}

func (s *classroomService) Create(ctx context.Context, userID uint, payload dto.ClassroomRequest) (dto.ClassroomResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ClassroomResponse{}, err
	}

	classroom := models.Classroom{
		UserID: userID,
		Name:   payload.Name,
	}
	if err := s.repo.Create(ctx, &classroom); err != nil {
		return dto.ClassroomResponse{}, err
	}

	s.logger.Info().Uint("classroom_id", classroom.ID).Msg("classroom created")

	return dto.NewClassroomResponse(classroom), nil
}

func (s *classroomService) Rename(ctx context.Context, userID, id uint, payload dto.ClassroomRequest) (dto.ClassroomResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ClassroomResponse{}, err
	}

	classroom, err := s.repo.GetOwned(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ClassroomResponse{}, ErrClassroomNotFound
		}
		return dto.ClassroomResponse{}, err
	}

	classroom.Name = payload.Name
	if err := s.repo.Update(ctx, &classroom); err != nil {
		return dto.ClassroomResponse{}, err
	}

	return dto.NewClassroomResponse(classroom), nil
}

func (s *classroomService) Delete(ctx context.Context, userID, id uint) error {
	classroom, err := s.repo.GetOwned(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrClassroomNotFound
		}
		return err
	}

	if classroom.IsDefault {
		return ErrDefaultClassroom
	}

	if err := s.repo.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrClassroomNotFound
		}
		return err
	}

	s.logger.Info().Uint("classroom_id", id).Msg("classroom deleted")
	return nil
}

func (s *classroomService) SetDefault(ctx context.Context, userID, id uint) (dto.ClassroomResponse, error) {
	classroom, err := s.repo.SetDefault(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ClassroomResponse{}, ErrClassroomNotFound
		}
		return dto.ClassroomResponse{}, err
	}

	return dto.NewClassroomResponse(classroom), nil
}
