package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/classscore-api/internal/config"
	"github.com/noah-isme/classscore-api/internal/database"
	"github.com/noah-isme/classscore-api/internal/dto"
	"github.com/noah-isme/classscore-api/internal/handler"
	"github.com/noah-isme/classscore-api/internal/middleware"
	"github.com/noah-isme/classscore-api/internal/repository"
	"github.com/noah-isme/classscore-api/internal/router"
	"github.com/noah-isme/classscore-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL, database.Options{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxIdleTime: cfg.DBConnMaxIdleTime,
		ConnectAttempts: cfg.DBConnectAttempts,
	}, logger)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := database.Migrate(db, logger); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := dto.RegisterValidators(validate); err != nil {
		log.Fatalf("failed to register validators: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	classroomRepo := repository.NewClassroomRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	ruleRepo := repository.NewRuleRepository(db)
	scoreRepo := repository.NewScoreRepository(db)
	managerRepo := repository.NewManagerRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	authService := service.NewAuthService(userRepo, managerRepo, validate, cfg.JWTSecret, cfg.TokenTTL, logger)
	classroomService := service.NewClassroomService(classroomRepo, validate, logger)
	studentService := service.NewStudentService(studentRepo, classroomRepo, ruleRepo, scoreRepo, managerRepo, validate, logger)
	ruleService := service.NewRuleService(ruleRepo, classroomRepo, validate, logger)
	scoreService := service.NewScoreService(scoreRepo, studentRepo, classroomRepo, managerRepo, validate, logger)
	managerService := service.NewManagerService(managerRepo, classroomRepo, ruleRepo, validate, logger)
	settingsService := service.NewSettingsService(settingsRepo, classroomRepo, validate, logger)
	leaderboardService := service.NewLeaderboardService(studentRepo, ruleRepo, scoreRepo, classroomRepo, managerRepo, logger)
	publicService := service.NewPublicService(settingsRepo, userRepo, leaderboardService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:        handler.NewAuthHandler(authService, logger),
		ClassroomHandler:   handler.NewClassroomHandler(classroomService, logger),
		StudentHandler:     handler.NewStudentHandler(studentService, logger),
		RuleHandler:        handler.NewRuleHandler(ruleService, logger),
		ScoreHandler:       handler.NewScoreHandler(scoreService, logger),
		ManagerHandler:     handler.NewManagerHandler(managerService, logger),
		SettingsHandler:    handler.NewSettingsHandler(settingsService, logger),
		LeaderboardHandler: handler.NewLeaderboardHandler(leaderboardService, logger),
		PublicHandler:      handler.NewPublicHandler(publicService, logger),
		JWTMiddleware:      middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
