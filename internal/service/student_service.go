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

// StudentService exposes roster use cases. Listing is available to both
// principal kinds; mutations are teacher-only.
type StudentService interface {
	List(ctx context.Context, principal Principal, classroomID uint) ([]dto.StudentResponse, error)
	Create(ctx context.Context, userID uint, payload dto.StudentCreateRequest) (dto.StudentResponse, error)
	Update(ctx context.Context, userID, id uint, payload dto.StudentUpdateRequest) (dto.StudentResponse, error)
	Delete(ctx context.Context, userID, id uint) error
	BulkUpsert(ctx context.Context, userID uint, payload dto.StudentBulkRequest) (dto.StudentBulkResult, error)
}

type studentService struct {
	students   repository.StudentRepository
	classrooms repository.ClassroomRepository
	rules      repository.RuleRepository
	scores     repository.ScoreRepository
	managers   repository.ManagerRepository
	validator  *validator.Validate
	logger     zerolog.Logger
}

// NewStudentService builds the student service.
func NewStudentService(
	students repository.StudentRepository,
	classrooms repository.ClassroomRepository,
	rules repository.RuleRepository,
	scores repository.ScoreRepository,
	managers repository.ManagerRepository,
	validate *validator.Validate,
	logger zerolog.Logger,
) StudentService {
	return &studentService{
		students:   students,
		classrooms: classrooms,
		rules:      rules,
		scores:     scores,
		managers:   managers,
		validator:  validate,
		logger:     logger.With().Str("component", "student_service").Logger(),
	}
}

// List returns the classroom roster ordered by grade, class and number,
// each student carrying its per-day score map. A manager principal is
// pinned to its own classroom regardless of the requested one.
func (s *studentService) List(ctx context.Context, principal Principal, classroomID uint) ([]dto.StudentResponse, error) {
	userID := principal.UserID

	if principal.Kind == PrincipalManager {
		manager, err := s.managers.GetByID(ctx, principal.ManagerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrManagerNotFound
			}
			return nil, err
		}
		userID = manager.UserID
		classroomID = manager.ClassroomID
	}

	var students []models.Student
	var err error
	if classroomID != 0 {
		students, err = s.students.ListByClassroom(ctx, userID, classroomID)
	} else {
		students, err = s.students.ListByUser(ctx, userID)
	}
	if err != nil {
		return nil, err
	}

	ruleNames, err := s.ruleNames(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.StudentResponse, 0, len(students))
	for _, student := range students {
		resp := dto.NewStudentResponse(student)

		entries, err := s.scores.ListByStudent(ctx, student.ID)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			day, ok := resp.DailyScores[entry.Date]
			if !ok {
				day = map[uint]dto.DailyScoreCell{}
				resp.DailyScores[entry.Date] = day
			}
			day[entry.RuleID] = dto.DailyScoreCell{
				Value:    entry.Value,
				RuleName: ruleNames[entry.RuleID],
			}
		}

		responses = append(responses, resp)
	}

	return responses, nil
}

func (s *studentService) Create(ctx context.Context, userID uint, payload dto.StudentCreateRequest) (dto.StudentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.StudentResponse{}, err
	}

	if _, err := s.classrooms.GetOwned(ctx, payload.ClassroomID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StudentResponse{}, ErrClassroomNotFound
		}
		return dto.StudentResponse{}, err
	}

	taken, err := s.students.NaturalKeyTaken(ctx, payload.ClassroomID, payload.Grade, payload.ClassNum, payload.StudentNum, 0)
	if err != nil {
		return dto.StudentResponse{}, err
	}
	if taken {
		return dto.StudentResponse{}, ErrStudentExists
	}

	student := models.Student{
		UserID:      userID,
		ClassroomID: payload.ClassroomID,
		Name:        payload.Name,
		Grade:       payload.Grade,
		ClassNum:    payload.ClassNum,
		StudentNum:  payload.StudentNum,
	}
	if err := s.students.Create(ctx, &student); err != nil {
		return dto.StudentResponse{}, err
	}

	s.logger.Info().Uint("student_id", student.ID).Msg("student created")

	return dto.NewStudentResponse(student), nil
}

// Update renames or renumbers a student. Renumbering is a plain update on
// the surrogate key; the natural-key index rejects collisions and ledger
// rows never move.
func (s *studentService) Update(ctx context.Context, userID, id uint, payload dto.StudentUpdateRequest) (dto.StudentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.StudentResponse{}, err
	}

	student, err := s.students.GetOwned(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StudentResponse{}, ErrStudentNotFound
		}
		return dto.StudentResponse{}, err
	}

	taken, err := s.students.NaturalKeyTaken(ctx, student.ClassroomID, payload.Grade, payload.ClassNum, payload.StudentNum, student.ID)
	if err != nil {
		return dto.StudentResponse{}, err
	}
	if taken {
		return dto.StudentResponse{}, ErrStudentExists
	}

	student.Name = payload.Name
	student.Grade = payload.Grade
	student.ClassNum = payload.ClassNum
	student.StudentNum = payload.StudentNum
	if err := s.students.Update(ctx, &student); err != nil {
		return dto.StudentResponse{}, err
	}

	return dto.NewStudentResponse(student), nil
}

func (s *studentService) Delete(ctx context.Context, userID, id uint) error {
	if err := s.students.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStudentNotFound
		}
		return err
	}

	s.logger.Info().Uint("student_id", id).Msg("student deleted")
	return nil
}

// BulkUpsert imports a roster best-effort: existing students (matched by
// natural key) get their name refreshed, new ones are created, and a failed
// row never rolls back the rows before it.
func (s *studentService) BulkUpsert(ctx context.Context, userID uint, payload dto.StudentBulkRequest) (dto.StudentBulkResult, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.StudentBulkResult{}, err
	}

	if _, err := s.classrooms.GetOwned(ctx, payload.ClassroomID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StudentBulkResult{}, ErrClassroomNotFound
		}
		return dto.StudentBulkResult{}, err
	}

	result := dto.StudentBulkResult{Rows: make([]dto.BulkRowOutcome, 0, len(payload.Students))}

	for _, row := range payload.Students {
		outcome := dto.BulkRowOutcome{Name: row.Name}

		existing, err := s.students.FindByNaturalKey(ctx, payload.ClassroomID, row.Grade, row.ClassNum, row.StudentNum)
		switch {
		case err == nil:
			existing.Name = row.Name
			if err := s.students.Update(ctx, &existing); err != nil {
				result.Failed++
				outcome.Status = "failed"
				outcome.Error = err.Error()
			} else {
				result.Updated++
				outcome.Status = "updated"
			}

		case errors.Is(err, gorm.ErrRecordNotFound):
			student := models.Student{
				UserID:      userID,
				ClassroomID: payload.ClassroomID,
				Name:        row.Name,
				Grade:       row.Grade,
				ClassNum:    row.ClassNum,
				StudentNum:  row.StudentNum,
			}
			if err := s.students.Create(ctx, &student); err != nil {
				result.Failed++
				outcome.Status = "failed"
				outcome.Error = err.Error()
			} else {
				result.Created++
				outcome.Status = "created"
			}

		default:
			result.Failed++
			outcome.Status = "failed"
			outcome.Error = err.Error()
		}

		result.Rows = append(result.Rows, outcome)
	}

	s.logger.Info().
		Int("created", result.Created).
		Int("updated", result.Updated).
		Int("failed", result.Failed).
		Msg("roster import finished")

	return result, nil
}

func (s *studentService) ruleNames(ctx context.Context, userID uint) (map[uint]string, error) {
	rules, err := s.rules.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	names := make(map[uint]string, len(rules))
	for _, rule := range rules {
		names[rule.ID] = rule.Name
	}

	return names, nil
}
