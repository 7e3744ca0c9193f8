package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/classscore-api/internal/middleware"
)

const testSecret = "unit-test-secret"

func signToken(t *testing.T, secret, role string, subject uint, ttl time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": role,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(ttl).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func newProtectedApp(extra ...fiber.Handler) *fiber.App {
	app := fiber.New()
	handlers := append([]fiber.Handler{middleware.JWTProtected(testSecret)}, extra...)
	handlers = append(handlers, func(c *fiber.Ctx) error {
		id, _ := c.Locals(middleware.LocalPrincipalID).(uint)
		role, _ := c.Locals(middleware.LocalPrincipalKind).(string)
		return c.JSON(fiber.Map{"id": id, "role": role})
	})
	app.Get("/protected", handlers...)
	return app
}

func TestJWTProtectedAcceptsValidToken(t *testing.T) {
	app := newProtectedApp()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, middleware.RoleTeacher, 42, time.Hour))
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestJWTProtectedRejections(t *testing.T) {
	cases := []struct {
		name  string
		setup func(t *testing.T, req *http.Request)
	}{
		{"missing header", func(t *testing.T, req *http.Request) {}},
		{"not bearer", func(t *testing.T, req *http.Request) {
			req.Header.Set("Authorization", "Basic abc")
		}},
		{"garbage token", func(t *testing.T, req *http.Request) {
			req.Header.Set("Authorization", "Bearer not.a.token")
		}},
		{"wrong secret", func(t *testing.T, req *http.Request) {
			req.Header.Set("Authorization", "Bearer "+signToken(t, "other-secret", middleware.RoleTeacher, 42, time.Hour))
		}},
		{"expired", func(t *testing.T, req *http.Request) {
			req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, middleware.RoleTeacher, 42, -time.Hour))
		}},
		{"unknown role", func(t *testing.T, req *http.Request) {
			req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, "admin", 42, time.Hour))
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newProtectedApp()
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			tc.setup(t, req)
			resp, err := app.Test(req)
			require.NoError(t, err)
			require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestTeacherOnlyBlocksManagers(t *testing.T) {
	app := newProtectedApp(middleware.TeacherOnly())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, middleware.RoleManager, 3, time.Hour))
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, middleware.RoleTeacher, 42, time.Hour))
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}
