package rest

import (
	"futured/internal/riskmodel"
	"futured/internal/service"
	"futured/internal/transport/rest/handler"
	"futured/internal/transport/rest/middleware"
	"futured/internal/transport/ws"
	"net/http"
	"os"

	"github.com/gorilla/mux"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService       *service.AuthService
	PredictionService *service.PredictionService
	SyncService       *service.SyncService
	Bundle            *riskmodel.Bundle
	WSHub             *ws.Hub
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	predictionHandler := handler.NewPredictionHandler(c.PredictionService, c.SyncService)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")

	// WebSocket route (staff token in query param)
	v1.HandleFunc("/ws/dashboard", wsHandler.DashboardWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if c.Bundle.Ready() {
			w.Write([]byte(`{"status":"ok","model_loaded":true}`))
		} else {
			w.Write([]byte(`{"status":"ok","model_loaded":false}`))
		}
	}).Methods("GET")

	// Staff routes (require staff auth). Literal paths register before
	// the {enrollment} captures so "sync" and "top" never match as
	// enrollment numbers.
	staffRoutes := v1.NewRoute().Subrouter()
	staffRoutes.Use(authMW.RequireStaff)

	staffRoutes.HandleFunc("/score", predictionHandler.Score).Methods("POST", "OPTIONS")
	staffRoutes.HandleFunc("/predictions/sync", predictionHandler.Sync).Methods("POST", "OPTIONS")
	staffRoutes.HandleFunc("/predictions/top", predictionHandler.Top).Methods("GET", "OPTIONS")
	staffRoutes.HandleFunc("/predictions", predictionHandler.List).Methods("GET", "OPTIONS")
	staffRoutes.HandleFunc("/predictions/{enrollment}", predictionHandler.Predict).Methods("POST", "OPTIONS")
	staffRoutes.HandleFunc("/predictions/{enrollment}", predictionHandler.Get).Methods("GET", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
