package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/classscore-api/internal/config"
	"github.com/noah-isme/classscore-api/internal/handler"
	"github.com/noah-isme/classscore-api/internal/middleware"
	"github.com/noah-isme/classscore-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler        *handler.AuthHandler
	ClassroomHandler   *handler.ClassroomHandler
	StudentHandler     *handler.StudentHandler
	RuleHandler        *handler.RuleHandler
	ScoreHandler       *handler.ScoreHandler
	ManagerHandler     *handler.ManagerHandler
	SettingsHandler    *handler.SettingsHandler
	LeaderboardHandler *handler.LeaderboardHandler
	PublicHandler      *handler.PublicHandler
	JWTMiddleware      fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))
	api.Get("/metrics", observability.MetricsHandler())

	// Use provided JWT middleware, or a no-op if nil
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}
	teacherOnly := middleware.TeacherOnly()

	// Auth: credential endpoints are rate limited per client
	if deps.AuthHandler != nil {
		auth := api.Group("/auth", middleware.RateLimit("auth", cfg.AuthRateLimit, cfg.AuthRateWindow))
		deps.AuthHandler.Register(auth)
		deps.AuthHandler.RegisterProtected(api.Group("/auth", jwtMiddleware, teacherOnly))
	}

	// Public share-token leaderboard, no authentication
	if deps.PublicHandler != nil {
		deps.PublicHandler.Register(api.Group("/public"))
	}

	// Teacher-only resources
	if deps.ClassroomHandler != nil {
		deps.ClassroomHandler.Register(api.Group("/classrooms", jwtMiddleware, teacherOnly))
	}
	if deps.RuleHandler != nil {
		deps.RuleHandler.Register(api.Group("/rules", jwtMiddleware, teacherOnly))
	}
	if deps.ManagerHandler != nil {
		deps.ManagerHandler.Register(api.Group("/student-managers", jwtMiddleware, teacherOnly))
	}
	if deps.SettingsHandler != nil {
		deps.SettingsHandler.Register(api.Group("/settings", jwtMiddleware, teacherOnly))
	}
	// Leaderboard reads are shared with managers
	if deps.LeaderboardHandler != nil {
		deps.LeaderboardHandler.Register(api.Group("/leaderboard", jwtMiddleware))
	}

	// Students: listing is shared with managers, mutations are teacher only
	if deps.StudentHandler != nil {
		students := api.Group("/students", jwtMiddleware)
		deps.StudentHandler.Register(students)
		deps.StudentHandler.RegisterTeacherOnly(students.Group("", teacherOnly))
	}

	// Scores: toggle and adjust are shared with managers
	if deps.ScoreHandler != nil {
		scores := api.Group("/scores", jwtMiddleware)
		deps.ScoreHandler.Register(scores)
		deps.ScoreHandler.RegisterTeacherOnly(scores.Group("", teacherOnly))
	}
}
