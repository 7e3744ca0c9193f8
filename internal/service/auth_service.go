package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/noah-isme/classscore-api/internal/dto"
	"github.com/noah-isme/classscore-api/internal/models"
	"github.com/noah-isme/classscore-api/internal/repository"
)

const defaultClassroomName = "기본 학급"

// AuthService handles registration and login for both principal kinds.
type AuthService interface {
	Register(ctx context.Context, payload dto.RegisterRequest) (dto.AuthResponse, error)
	Login(ctx context.Context, payload dto.LoginRequest) (dto.AuthResponse, error)
	ManagerLogin(ctx context.Context, payload dto.ManagerLoginRequest) (dto.ManagerAuthResponse, error)
	Me(ctx context.Context, userID uint) (dto.UserResponse, error)
}

type authService struct {
	users     repository.UserRepository
	managers  repository.ManagerRepository
	validator *validator.Validate
	secret    []byte
	tokenTTL  time.Duration
	logger    zerolog.Logger
	now       func() time.Time
}

// NewAuthService builds the auth service.
func NewAuthService(users repository.UserRepository, managers repository.ManagerRepository, validate *validator.Validate, secret string, tokenTTL time.Duration, logger zerolog.Logger) AuthService {
	return &authService{
		users:     users,
		managers:  managers,
		validator: validate,
		secret:    []byte(secret),
		tokenTTL:  tokenTTL,
		logger:    logger.With().Str("component", "auth_service").Logger(),
		now:       time.Now,
	}
}

func (s *authService) Register(ctx context.Context, payload dto.RegisterRequest) (dto.AuthResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AuthResponse{}, err
	}

	taken, err := s.users.UsernameOrEmailTaken(ctx, payload.Username, payload.Email)
	if err != nil {
		return dto.AuthResponse{}, err
	}
	if taken {
		return dto.AuthResponse{}, ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return dto.AuthResponse{}, err
	}

	user := models.User{
		Username:     payload.Username,
		Email:        payload.Email,
		PasswordHash: string(hash),
		SchoolName:   payload.SchoolName,
	}

	if err := s.users.CreateWithDefaultClassroom(ctx, &user, defaultClassroomName); err != nil {
		return dto.AuthResponse{}, err
	}

	token, err := s.issueToken(string(PrincipalTeacher), user.ID)
	if err != nil {
		return dto.AuthResponse{}, err
	}

	s.logger.Info().Uint("user_id", user.ID).Msg("teacher registered")

	return dto.AuthResponse{Token: token, User: dto.NewUserResponse(user)}, nil
}

func (s *authService) Login(ctx context.Context, payload dto.LoginRequest) (dto.AuthResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AuthResponse{}, err
	}

	user, err := s.users.GetByEmail(ctx, payload.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AuthResponse{}, ErrCredentialsInvalid
		}
		return dto.AuthResponse{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(payload.Password)) != nil {
		return dto.AuthResponse{}, ErrCredentialsInvalid
	}

	token, err := s.issueToken(string(PrincipalTeacher), user.ID)
	if err != nil {
		return dto.AuthResponse{}, err
	}

	return dto.AuthResponse{Token: token, User: dto.NewUserResponse(user)}, nil
}

func (s *authService) ManagerLogin(ctx context.Context, payload dto.ManagerLoginRequest) (dto.ManagerAuthResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ManagerAuthResponse{}, err
	}

	manager, err := s.managers.GetByUsername(ctx, payload.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ManagerAuthResponse{}, ErrCredentialsInvalid
		}
		return dto.ManagerAuthResponse{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(manager.PasswordHash), []byte(payload.Password)) != nil {
		return dto.ManagerAuthResponse{}, ErrCredentialsInvalid
	}

	token, err := s.issueToken(string(PrincipalManager), manager.ID)
	if err != nil {
		return dto.ManagerAuthResponse{}, err
	}

	return dto.ManagerAuthResponse{Token: token, Manager: dto.NewManagerResponse(manager)}, nil
}

func (s *authService) Me(ctx context.Context, userID uint) (dto.UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.UserResponse{}, ErrUserNotFound
		}
		return dto.UserResponse{}, err
	}

	return dto.NewUserResponse(user), nil
}

func (s *authService) issueToken(role string, subject uint) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(s.tokenTTL).Unix(),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}
