package main

import (
	"context"
	"futured/internal/cache"
	"futured/internal/config"
	"futured/internal/repository"
	"futured/internal/riskmodel"
	"futured/internal/service"
	"futured/internal/transport/rest"
	"futured/internal/transport/ws"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// @title Futured Dropout Risk API
// @version 1.0
// @description Dropout risk scoring and sync service for student surveys
// @host localhost:8080
// @BasePath /v1
func main() {
	log.Println("started")
	ctx := context.Background()

	cfg := config.Load()
	log.Printf("Model artifacts:")
	log.Printf("  Model:    %s", cfg.ModelPath)
	log.Printf("  Encoders: %s", cfg.EncodersPath)

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	// Ping MongoDB
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDB)

	// Redis connection
	redisAddr := strings.TrimPrefix(cfg.RedisAddr, "redis://")

	rdb := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})
	defer rdb.Close()

	// Ping Redis
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Load model artifacts. A missing model is not fatal: the API stays up
	// and scoring endpoints answer 503 until artifacts appear.
	bundle, err := riskmodel.LoadBundle(cfg.ModelPath, cfg.EncodersPath)
	if err != nil {
		log.Printf("Warning: could not load model artifacts: %v", err)
		log.Println("Predictions will return 503 until artifacts are present; run cmd/seed to generate them")
		bundle = nil
	} else {
		log.Printf("Model loaded (%d feature columns)", len(bundle.ExpectedColumns()))
	}

	// Initialize WebSocket hub
	wsHub := ws.NewHub()
	log.Println("WebSocket hub started")

	// Initialize repositories
	studentRepo := repository.NewStudentRepo(db)
	surveyRepo := repository.NewSurveyRepo(db)
	groupRepo := repository.NewGroupRepo(db)
	assessmentRepo := repository.NewAssessmentRepo(db)

	// Initialize caches
	assessmentCache := cache.NewAssessmentCache(rdb)
	leaderboard := cache.NewRiskLeaderboard(rdb)

	// Initialize services
	authSvc := service.NewAuthService(cfg.StaffUsername, cfg.StaffPassword, cfg.JWTSecret)
	predictionSvc := service.NewPredictionService(bundle, studentRepo, surveyRepo, groupRepo, assessmentRepo, assessmentCache, leaderboard)
	syncSvc := service.NewSyncService(predictionSvc, studentRepo)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	predictionSvc.SetBroadcaster(wsHub)
	syncSvc.SetBroadcaster(wsHub)

	// Create router with container
	container := &rest.Container{
		AuthService:       authSvc,
		PredictionService: predictionSvc,
		SyncService:       syncSvc,
		Bundle:            bundle,
		WSHub:             wsHub,
	}

	router := rest.NewRouter(container)

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		log.Printf("Staff auth: username=%s", cfg.StaffUsername)
		log.Println("Endpoints:")
		log.Println("  GET  /health")
		log.Println("  POST /v1/auth/login")
		log.Println("  POST /v1/score")
		log.Println("  POST /v1/predictions/sync")
		log.Println("  GET  /v1/predictions")
		log.Println("  GET  /v1/predictions/top")
		log.Println("  POST/GET /v1/predictions/{enrollment}")
		log.Println("  WS  /v1/ws/dashboard")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
