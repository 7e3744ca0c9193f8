package service

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/noah-isme/classscore-api/internal/dto"
	"github.com/noah-isme/classscore-api/internal/models"
	"github.com/noah-isme/classscore-api/internal/repository"
)

const testSecret = "test-secret"

func newAuthFixture(t *testing.T, db *gorm.DB) AuthService {
	t.Helper()
	return NewAuthService(
		repository.NewUserRepository(db),
		repository.NewManagerRepository(db),
		newTestValidator(t),
		testSecret,
		time.Hour,
		zerolog.New(io.Discard),
	)
}

func TestAuthServiceRegisterAndLogin(t *testing.T) {
	db := newServiceTestDB(t)
	svc := newAuthFixture(t, db)

	resp, err := svc.Register(context.Background(), dto.RegisterRequest{
		Username: "teacher1", Email: "t1@school.kr", Password: "secret1", SchoolName: "한빛초등학교",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	require.Equal(t, "teacher1", resp.User.Username)
	requireClaims(t, resp.Token, resp.User.ID, "teacher")

	// Registration seeds the default classroom.
	var classroom models.Classroom
	require.NoError(t, db.Where("user_id = ?", resp.User.ID).First(&classroom).Error)
	require.True(t, classroom.IsDefault)

	login, err := svc.Login(context.Background(), dto.LoginRequest{Email: "t1@school.kr", Password: "secret1"})
	require.NoError(t, err)
	require.Equal(t, resp.User.ID, login.User.ID)

	_, err = svc.Login(context.Background(), dto.LoginRequest{Email: "t1@school.kr", Password: "wrong"})
	require.ErrorIs(t, err, ErrCredentialsInvalid)

	_, err = svc.Login(context.Background(), dto.LoginRequest{Email: "nobody@school.kr", Password: "secret1"})
	require.ErrorIs(t, err, ErrCredentialsInvalid)
}

func TestAuthServiceRegisterRejectsDuplicates(t *testing.T) {
	db := newServiceTestDB(t)
	svc := newAuthFixture(t, db)

	_, err := svc.Register(context.Background(), dto.RegisterRequest{
		Username: "teacher1", Email: "t1@school.kr", Password: "secret1",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), dto.RegisterRequest{
		Username: "teacher1", Email: "other@school.kr", Password: "secret1",
	})
	require.ErrorIs(t, err, ErrUserExists)

	_, err = svc.Register(context.Background(), dto.RegisterRequest{
		Username: "other", Email: "t1@school.kr", Password: "secret1",
	})
	require.ErrorIs(t, err, ErrUserExists)
}

func TestAuthServiceManagerLogin(t *testing.T) {
	db := newServiceTestDB(t)
	svc := newAuthFixture(t, db)

	hash, err := bcrypt.GenerateFromPassword([]byte("1234"), bcrypt.MinCost)
	require.NoError(t, err)
	manager := models.StudentManager{
		UserID: 1, ClassroomID: 2, Username: "helper1", PasswordHash: string(hash), DisplayName: "도우미",
	}
	require.NoError(t, db.Create(&manager).Error)

	resp, err := svc.ManagerLogin(context.Background(), dto.ManagerLoginRequest{Username: "helper1", Password: "1234"})
	require.NoError(t, err)
	require.Equal(t, manager.ID, resp.Manager.ID)
	requireClaims(t, resp.Token, manager.ID, "manager")

	_, err = svc.ManagerLogin(context.Background(), dto.ManagerLoginRequest{Username: "helper1", Password: "wrong"})
	require.ErrorIs(t, err, ErrCredentialsInvalid)

	_, err = svc.ManagerLogin(context.Background(), dto.ManagerLoginRequest{Username: "ghost", Password: "1234"})
	require.ErrorIs(t, err, ErrCredentialsInvalid)
}

func TestAuthServiceMe(t *testing.T) {
	db := newServiceTestDB(t)
	svc := newAuthFixture(t, db)

	user := models.User{Username: "teacher1", Email: "t1@school.kr", PasswordHash: "hash", SchoolName: "한빛초"}
	require.NoError(t, db.Create(&user).Error)

	resp, err := svc.Me(context.Background(), user.ID)
	require.NoError(t, err)
	require.Equal(t, "한빛초", resp.SchoolName)

	_, err = svc.Me(context.Background(), 999)
	require.ErrorIs(t, err, ErrUserNotFound)
}

func requireClaims(t *testing.T, token string, subject uint, role string) {
	t.Helper()
	parsed, err := jwt.Parse(token, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	require.NoError(t, err)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	require.Equal(t, float64(subject), claims["sub"])
	require.Equal(t, role, claims["role"])
}
