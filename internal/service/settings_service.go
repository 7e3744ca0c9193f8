package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/classscore-api/internal/dto"
	"github.com/noah-isme/classscore-api/internal/repository"
)

// SettingsService manages per-classroom leaderboard display settings and
// the sharing toggle.
type SettingsService interface {
	Get(ctx context.Context, userID, classroomID uint) (dto.SettingsResponse, error)
	Update(ctx context.Context, userID, classroomID uint, payload dto.SettingsUpdateRequest) (dto.SettingsResponse, error)
}

type settingsService struct {
	settings   repository.SettingsRepository
	classrooms repository.ClassroomRepository
	validator  *validator.Validate
	sanitizer  *bluemonday.Policy
	logger     zerolog.Logger
}

// NewSettingsService builds the settings service.
func NewSettingsService(settings repository.SettingsRepository, classrooms repository.ClassroomRepository, validate *validator.Validate, logger zerolog.Logger) SettingsService {
	return &settingsService{
		settings:   settings,
		classrooms: classrooms,
		validator:  validate,
		sanitizer:  bluemonday.StrictPolicy(),
		logger:     logger.With().Str("component", "settings_service").Logger(),
	}
}

// Get returns the classroom's settings, creating the defaults on first read.
func (s *settingsService) Get(ctx context.Context, userID, classroomID uint) (dto.SettingsResponse, error) {
	if _, err := s.classrooms.GetOwned(ctx, classroomID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SettingsResponse{}, ErrClassroomNotFound
		}
		return dto.SettingsResponse{}, err
	}

	setting, err := s.settings.GetOrCreate(ctx, userID, classroomID)
	if err != nil {
		return dto.SettingsResponse{}, err
	}

	return dto.NewSettingsResponse(setting), nil
}

// Update applies display changes and the sharing toggle. Title and subtitle
// are rendered on the unauthenticated public page, so they pass through the
// strict sanitizer. The share token is minted once on first enable and kept
// through disable/enable cycles; there is no rotation.
func (s *settingsService) Update(ctx context.Context, userID, classroomID uint, payload dto.SettingsUpdateRequest) (dto.SettingsResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SettingsResponse{}, err
	}

	if _, err := s.classrooms.GetOwned(ctx, classroomID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SettingsResponse{}, ErrClassroomNotFound
		}
		return dto.SettingsResponse{}, err
	}

	setting, err := s.settings.GetOrCreate(ctx, userID, classroomID)
	if err != nil {
		return dto.SettingsResponse{}, err
	}

	setting.Title = s.sanitizer.Sanitize(payload.Title)
	setting.Subtitle = s.sanitizer.Sanitize(payload.Subtitle)
	setting.IconID = payload.IconID
	setting.IconColor = payload.IconColor
	setting.Font = payload.Font

	if payload.ShareEnabled != nil {
		setting.ShareEnabled = *payload.ShareEnabled
		if setting.ShareEnabled && setting.ShareToken == "" {
			token, err := newShareToken()
			if err != nil {
				return dto.SettingsResponse{}, err
			}
			setting.ShareToken = token
			s.logger.Info().Uint("classroom_id", classroomID).Msg("share token generated")
		}
	}

	if err := s.settings.Save(ctx, &setting); err != nil {
		return dto.SettingsResponse{}, err
	}

	return dto.NewSettingsResponse(setting), nil
}

// newShareToken returns 16 random bytes hex encoded, matching the link
// format already circulating with users.
func newShareToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
