package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Hadi891/CareerCompass/config"
	"github.com/Hadi891/CareerCompass/internal/collaborator"
	v1 "github.com/Hadi891/CareerCompass/internal/delivery/http/v1"
	"github.com/Hadi891/CareerCompass/internal/repository/postgres"
	"github.com/Hadi891/CareerCompass/internal/usecase"
	"github.com/Hadi891/CareerCompass/pkg/auth"
	"github.com/Hadi891/CareerCompass/pkg/database"
	"github.com/Hadi891/CareerCompass/pkg/logger"
)

func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting CareerCompass backend", "port", cfg.Port)

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	cvRepo := postgres.NewCVRepository(dbPool)
	courseRepo := postgres.NewCourseRepository(dbPool)
	suggestionRepo := postgres.NewSuggestionRepository(dbPool)

	// 5. Setup Collaborators
	extractor := collaborator.NewPDFExtractor()
	model := collaborator.NewOllamaClient(cfg.OllamaBaseURL, cfg.ParseModel, cfg.ChatModel, cfg.ModelTimeout)
	searcher := collaborator.NewCourseraSearcher(cfg.CourseraBaseURL, cfg.ScrapeTimeout)

	// 6. Setup UseCases
	validate := validator.New()
	issuer := auth.NewIssuer(cfg.JWTSecret, cfg.JWTExpiryMinutes)
	authUC := usecase.NewAuthUsecase(userRepo, cvRepo, issuer, validate)
	suggestionSvc := usecase.NewSuggestionUsecase(model, suggestionRepo)
	enrichmentSvc := usecase.NewEnrichmentUsecase(searcher, courseRepo, cfg.ScrapeDelay)
	cvUC := usecase.NewCVUsecase(cvRepo, userRepo, extractor, model, suggestionSvc, enrichmentSvc, cfg.UploadDir)
	chatUC := usecase.NewChatUsecase(suggestionRepo, model)
	healthUC := usecase.NewHealthUsecase(dbPool)

	// 7. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:   authUC,
		CVUC:     cvUC,
		ChatUC:   chatUC,
		HealthUC: healthUC,
		Issuer:   issuer,
		UserRepo: userRepo,
	})

	// 8. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
