package handler_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/classscore-api/internal/dto"
	"github.com/noah-isme/classscore-api/internal/handler"
	"github.com/noah-isme/classscore-api/internal/middleware"
	"github.com/noah-isme/classscore-api/internal/service"
)

type mockClassroomService struct {
	lastUserID uint
	lastID     uint
	listResp   []dto.ClassroomResponse
	resp       dto.ClassroomResponse
	err        error
}

func (m *mockClassroomService) List(_ context.Context, userID uint) ([]dto.ClassroomResponse, error) {
	m.lastUserID = userID
	return m.listResp, m.err
}

func (m *mockClassroomService) Create(_ context.Context, userID uint, _ dto.ClassroomRequest) (dto.ClassroomResponse, error) {
	m.lastUserID = userID
	return m.resp, m.err
}

func (m *mockClassroomService) Rename(_ context.Context, userID, id uint, _ dto.ClassroomRequest) (dto.ClassroomResponse, error) {
	m.lastUserID, m.lastID = userID, id
	return m.resp, m.err
}

func (m *mockClassroomService) Delete(_ context.Context, userID, id uint) error {
	m.lastUserID, m.lastID = userID, id
	return m.err
}

func (m *mockClassroomService) SetDefault(_ context.Context, userID, id uint) (dto.ClassroomResponse, error) {
	m.lastUserID, m.lastID = userID, id
	return m.resp, m.err
}

func newClassroomApp(svc service.ClassroomService) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(middleware.LocalPrincipalKind, middleware.RoleTeacher)
		c.Locals(middleware.LocalPrincipalID, uint(7))
		return c.Next()
	})
	handler.NewClassroomHandler(svc, zerolog.New(io.Discard)).Register(app.Group("/api/v1/classrooms"))
	return app
}

func TestClassroomHandlerList(t *testing.T) {
	svc := &mockClassroomService{listResp: []dto.ClassroomResponse{{ID: 1, Name: "1반", IsDefault: true}}}
	app := newClassroomApp(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/classrooms/", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, uint(7), svc.lastUserID)

	var body struct {
		Data []dto.ClassroomResponse `json:"data"`
	}
	decodeResponse(t, resp, &body)
	require.Len(t, body.Data, 1)
	require.True(t, body.Data[0].IsDefault)
}

func TestClassroomHandlerDeleteDefaultRejected(t *testing.T) {
	svc := &mockClassroomService{err: service.ErrDefaultClassroom}
	app := newClassroomApp(svc)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/classrooms/3", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	require.Equal(t, uint(3), svc.lastID)
}

func TestClassroomHandlerSetDefault(t *testing.T) {
	svc := &mockClassroomService{resp: dto.ClassroomResponse{ID: 2, Name: "2반", IsDefault: true}}
	app := newClassroomApp(svc)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/classrooms/2/default", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, uint(2), svc.lastID)
}

func TestClassroomHandlerInvalidID(t *testing.T) {
	svc := &mockClassroomService{}
	app := newClassroomApp(svc)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/classrooms/zero", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
