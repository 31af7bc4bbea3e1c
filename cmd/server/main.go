package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"nss-backend/internal/auth"
	"nss-backend/internal/config"
	"nss-backend/internal/database"
	"nss-backend/internal/db"
	"nss-backend/internal/handlers"
	"nss-backend/internal/health"
	h "nss-backend/internal/http"
	"nss-backend/internal/middleware"
	"nss-backend/internal/monitoring"
	"nss-backend/internal/notify"
	"nss-backend/internal/repositories"
	"nss-backend/internal/services"
	"nss-backend/internal/ws"
	"nss-backend/migrations"

	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	port := flag.Int("port", 0, "Server port (overrides config)")
	flag.Parse()

	cfg := config.Load()
	if *port != 0 {
		cfg.Server.Port = *port
	}

	// Database and migrations
	pool := db.Connect(cfg)
	defer pool.Close()

	ctx := context.Background()
	if err := database.NewMigrator(pool, migrations.FS).Run(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Metrics
	registry := prometheus.NewRegistry()
	metrics := monitoring.NewMetrics(registry)

	// Auth
	jwtManager := auth.NewJWTManager(cfg)

	// Repositories
	userRepo := repositories.NewUserRepository(pool)
	attendanceRepo := repositories.NewAttendanceRepository(pool)
	eventRepo := repositories.NewEventRepository(pool)
	donationRepo := repositories.NewDonationRepository(pool)
	galleryRepo := repositories.NewGalleryRepository(pool)

	// Websocket hub broadcasting token rotations to issuer displays
	hub := ws.NewHub()

	// Media storage is optional; the gallery falls back to stored URLs
	var storage *services.MediaStorage
	if cfg.Storage.Bucket != "" {
		var err error
		storage, err = services.NewMediaStorage(ctx, cfg.Storage)
		if err != nil {
			log.Fatalf("Failed to initialize media storage: %v", err)
		}
	} else {
		log.Println("Media storage not configured, presigned uploads disabled")
	}

	// Services
	userService := services.NewUserService(userRepo, jwtManager)
	eventService := services.NewEventService(eventRepo)
	issuer := services.NewTokenIssuer(cfg.Attendance.RefreshSeconds, hub, metrics)
	attendanceService := services.NewAttendanceService(
		attendanceRepo,
		time.Duration(cfg.Attendance.TokenTTLSeconds)*time.Second,
		metrics,
	)
	donationService := services.NewDonationService(donationRepo, cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret)
	galleryService := services.NewGalleryService(galleryRepo, storage)
	notifier := notify.NewLogNotifier()

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	attendanceHandler := handlers.NewAttendanceHandler(issuer, attendanceService, eventService, userService, hub, notifier)
	eventHandler := handlers.NewEventHandler(eventService)
	donationHandler := handlers.NewDonationHandler(donationService)
	galleryHandler := handlers.NewGalleryHandler(galleryService)
	volunteerHandler := handlers.NewVolunteerHandler(userService, attendanceRepo)
	healthHandler := handlers.NewHealthHandler(health.NewChecker(pool))

	// Middleware and router
	authMiddleware := middleware.NewAuthMiddleware(jwtManager)
	metricsMiddleware := middleware.NewMetricsMiddleware(metrics)
	corsMiddleware := middleware.NewCORS(cfg)

	router := h.NewRouter(
		authHandler,
		attendanceHandler,
		eventHandler,
		donationHandler,
		galleryHandler,
		volunteerHandler,
		healthHandler,
		authMiddleware,
		metricsMiddleware,
		registry,
	)
	handler := corsMiddleware(router)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server running on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
