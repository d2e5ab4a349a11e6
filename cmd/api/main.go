package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"alfredoptarigan/talentscout/internal/config"
	"alfredoptarigan/talentscout/internal/handlers"
	"alfredoptarigan/talentscout/internal/repositories"
	"alfredoptarigan/talentscout/internal/services"
)

// repositoryOpener returns a session repository and the func that releases it.
type repositoryOpener func(ctx context.Context, cfg *config.Config, appLog *slog.Logger) (repositories.SessionRepository, func(), error)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}
	log.Println("✅ Config loaded successfully")

	appLog := config.SetupLogger(cfg)
	services.RegisterMetrics()

	if err := run(context.Background(), cfg, appLog, newSessionRepository); err != nil {
		log.Fatalf("❌ %v", err)
	}
}

// run wires the server and blocks until it stops. The session repository is
// closed on every return path.
func run(ctx context.Context, cfg *config.Config, appLog *slog.Logger, openRepo repositoryOpener) error {
	// Initialize session repository
	sessionRepo, closeRepo, err := openRepo(ctx, cfg, appLog)
	if err != nil {
		return fmt.Errorf("failed to initialize session store: %w", err)
	}
	defer closeRepo()
	log.Printf("✅ Session store initialized (%s)\n", cfg.Session.Store)

	// Initialize services
	store := services.NewCSVStore(cfg.Storage.DataDir, cfg.Storage.CSVFilename, appLog)
	if err := store.EnsureDataDir(); err != nil {
		return err
	}

	bank, err := services.LoadQuestionBank(cfg.Interview.QuestionBankPath)
	if err != nil {
		return fmt.Errorf("failed to load question bank: %w", err)
	}
	if bank.Len() != cfg.Interview.MaxBasicQuestions {
		return fmt.Errorf("question bank has %d questions, MAX_BASIC_QUESTIONS is %d", bank.Len(), cfg.Interview.MaxBasicQuestions)
	}
	log.Println("✅ Services initialized successfully")

	// Initialize language model
	llm, err := services.NewLLMService(ctx, cfg.Model)
	if err != nil {
		return fmt.Errorf("failed to initialize %s model: %w", cfg.Model.Provider, err)
	}
	log.Printf("✅ %s model initialized (%s)\n", llm.Provider(), cfg.Model.ModelName())

	generator := services.NewQuestionGenerator(llm, cfg.Model.Timeout, appLog)
	interviewer := services.NewInterviewer(bank, generator, store, services.InterviewSettings{
		AssistantName:      cfg.App.AssistantName(),
		MaxTechQuestions:   cfg.Interview.MaxTechQuestions,
		MinAnswerLength:    cfg.Interview.MinAnswerLength,
		MaxExperienceYears: cfg.Interview.MaxExperienceYears,
	}, appLog)
	assembler := services.NewRecordAssembler(bank, cfg.Interview.MaxTechQuestions)
	log.Println("✅ Interviewer initialized")

	// Start janitor
	janitor := services.NewJanitor(sessionRepo, cfg.Session.TTL, cfg.Session.CleanupInterval, appLog)
	janitor.Start(ctx)
	defer janitor.Stop()

	// Initialize Handlers
	sessionHandler := handlers.NewSessionHandler(sessionRepo, interviewer, assembler, store, appLog)
	candidateHandler := handlers.NewCandidateHandler(store)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Title,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.Model.Timeout + 30*time.Second,
		ErrorHandler: handlers.ErrorHandler(appLog),
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	app.Use("/api", limiter.New(limiter.Config{
		Max:        cfg.Server.RateLimitPerMin,
		Expiration: time.Minute,
	}))

	// Routes
	handlers.RegisterRoutes(app, sessionHandler, candidateHandler)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": cfg.App.Title,
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/sessions",
				"GET /api/v1/sessions/:id",
				"POST /api/v1/sessions/:id/messages",
				"POST /api/v1/sessions/:id/reset",
				"POST /api/v1/sessions/:id/save",
				"GET /api/v1/sessions/:id/export",
				"DELETE /api/v1/sessions/:id",
				"GET /api/v1/candidates",
				"GET /api/v1/candidates/count",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		janitor.Stop()
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func newSessionRepository(ctx context.Context, cfg *config.Config, appLog *slog.Logger) (repositories.SessionRepository, func(), error) {
	switch cfg.Session.Store {
	case config.SessionStoreRedis:
		client, err := config.InitRedis(ctx, cfg, appLog)
		if err != nil {
			return nil, nil, err
		}
		return repositories.NewRedisSessionRepository(client, cfg.Session.TTL), func() { _ = client.Close() }, nil

	case config.SessionStorePostgres:
		db, err := config.InitDatabase(cfg, appLog)
		if err != nil {
			return nil, nil, err
		}
		closeDB := func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		return repositories.NewGormSessionRepository(db), closeDB, nil

	default:
		return repositories.NewMemorySessionRepository(), func() {}, nil
	}
}
