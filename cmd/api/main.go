package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"hirevision/interview-api/internal/apperr"
	"hirevision/interview-api/internal/config"
	"hirevision/interview-api/internal/handlers"
	"hirevision/interview-api/internal/logger"
	"hirevision/interview-api/internal/middleware"
	"hirevision/interview-api/internal/repositories"
	"hirevision/interview-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	zlog, err := logger.New(cfg.Server.Env)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		zlog.Fatal("Failed to initialize database", zap.Error(err))
	}

	// Initialize repositories
	sessionRepo := repositories.NewSessionRepository(db)
	convRepo := repositories.NewConversationRepository(db)

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		zlog.Fatal("Failed to create upload directory", zap.Error(err))
	}

	pdfParser := services.NewPDFParserService()

	embedder := services.NewHuggingFaceEmbedder(
		cfg.HuggingFace.BaseURL,
		cfg.HuggingFace.APIKey,
		cfg.HuggingFace.Model,
		cfg.Qdrant.VectorSize,
		cfg.Upstream.EmbedTimeout,
		zlog,
	)

	generator, err := services.NewGeminiService(
		cfg.Gemini.APIKey,
		cfg.Gemini.Model,
		cfg.Upstream.GenerateTimeout,
		zlog,
	)
	if err != nil {
		zlog.Fatal("Failed to initialize Gemini", zap.Error(err))
	}

	vectorStore, err := services.NewQdrantStore(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
		cfg.Qdrant.VectorSize,
		zlog,
	)
	if err != nil {
		zlog.Fatal("Failed to initialize Qdrant", zap.Error(err))
	}

	if err := vectorStore.InitCollection(); err != nil {
		zlog.Fatal("Failed to initialize Qdrant collection", zap.Error(err))
	}

	retriever := services.NewRetriever(embedder, vectorStore)

	ingestService := services.NewIngestService(sessionRepo, pdfParser, embedder, vectorStore, zlog)

	atsService := services.NewATSService(
		ingestService,
		sessionRepo,
		generator,
		cfg.Upstream.RetryMaxAttempts,
		zlog,
	)

	interviewService := services.NewInterviewService(
		sessionRepo,
		convRepo,
		retriever,
		generator,
		cfg.Upstream.RetryMaxAttempts,
		zlog,
	)

	// Initialize handlers
	embeddingHandler := handlers.NewEmbeddingHandler(embedder)
	documentHandler := handlers.NewDocumentHandler(ingestService, atsService, storageService, cfg.Storage.MaxFileSize)
	conversationHandler := handlers.NewConversationHandler(interviewService)
	sessionHandler := handlers.NewSessionHandler(sessionRepo)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "HireVision Interview API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, x-user-id",
	}))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// API endpoints
	app.Get("/embeddings", embeddingHandler.HandleEmbeddings)
	app.Post("/load-document", middleware.RequireUser(), documentHandler.HandleLoadDocument)
	app.Post("/analyze-ats", middleware.RequireUser(), documentHandler.HandleAnalyzeATS)
	app.Post("/conversation", middleware.RequireUser(), conversationHandler.HandleConversation)
	app.Get("/sessions/:id", middleware.RequireUser(), sessionHandler.HandleGetSession)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		zlog.Info("Shutting down server")
		if err := app.Shutdown(); err != nil {
			zlog.Error("Server forced to shutdown", zap.Error(err))
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	zlog.Info("Server starting", zap.String("addr", addr))

	if err := app.Listen(addr); err != nil {
		zlog.Fatal("Failed to start server", zap.Error(err))
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := apperr.StatusCode(err)

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}
