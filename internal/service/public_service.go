package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/classscore-api/internal/dto"
	"github.com/noah-isme/classscore-api/internal/repository"
)

// PublicService is the sharing façade: it maps an opaque share token to its
// classroom and exposes the aggregator's output with no authentication and
// no mutation surface.
type PublicService interface {
	Leaderboard(ctx context.Context, token string, query dto.LeaderboardQuery) (dto.PublicLeaderboardResponse, error)
}

type publicService struct {
	settings    repository.SettingsRepository
	users       repository.UserRepository
	leaderboard LeaderboardService
	logger      zerolog.Logger
}

// NewPublicService builds the sharing façade.
func NewPublicService(settings repository.SettingsRepository, users repository.UserRepository, leaderboard LeaderboardService, logger zerolog.Logger) PublicService {
	return &publicService{
		settings:    settings,
		users:       users,
		leaderboard: leaderboard,
		logger:      logger.With().Str("component", "public_service").Logger(),
	}
}

func (p *publicService) Leaderboard(ctx context.Context, token string, query dto.LeaderboardQuery) (dto.PublicLeaderboardResponse, error) {
	setting, err := p.settings.GetByShareToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.PublicLeaderboardResponse{}, ErrShareNotFound
		}
		return dto.PublicLeaderboardResponse{}, err
	}

	owner, err := p.users.GetByID(ctx, setting.UserID)
	if err != nil {
		return dto.PublicLeaderboardResponse{}, err
	}

	board, err := p.leaderboard.Aggregate(ctx, setting.UserID, setting.ClassroomID, query)
	if err != nil {
		return dto.PublicLeaderboardResponse{}, err
	}

	return dto.PublicLeaderboardResponse{
		Settings: dto.PublicBoardSettings{
			Title:       setting.Title,
			Subtitle:    setting.Subtitle,
			IconID:      setting.IconID,
			IconColor:   setting.IconColor,
			Font:        setting.Font,
			SchoolName:  owner.SchoolName,
			TeacherName: owner.Username,
		},
		Leaderboard: board,
	}, nil
}
