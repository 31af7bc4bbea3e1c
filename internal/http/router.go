package http

import (
	"net/http"

	"nss-backend/internal/handlers"
	"nss-backend/internal/middleware"
	"nss-backend/internal/models"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires every endpoint with its middleware chain
func NewRouter(
	authHandler *handlers.AuthHandler,
	attendanceHandler *handlers.AttendanceHandler,
	eventHandler *handlers.EventHandler,
	donationHandler *handlers.DonationHandler,
	galleryHandler *handlers.GalleryHandler,
	volunteerHandler *handlers.VolunteerHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
	metricsMiddleware *middleware.MetricsMiddleware,
	registry *prometheus.Registry,
) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.SecurityHeaders)
	r.Use(metricsMiddleware.Handler)

	// Unauthenticated surface
	r.HandleFunc("/health", healthHandler.Check).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	r.Handle("/api/auth/login",
		middleware.LoginRateLimiter.Middleware(http.HandlerFunc(authHandler.Login)),
	).Methods(http.MethodPost)

	// Everything below requires a valid token
	api := r.PathPrefix("/api").Subrouter()
	api.Use(authMiddleware.RequireAuth)

	api.HandleFunc("/auth/me", authHandler.Me).Methods(http.MethodGet)

	// Issuer endpoints: mentors and secretaries only
	issuerOnly := authMiddleware.RequireRole(models.RoleMentor, models.RoleSecretary)
	session := api.PathPrefix("/attendance/session").Subrouter()
	session.Use(issuerOnly)
	session.HandleFunc("/start", attendanceHandler.StartSession).Methods(http.MethodPost)
	session.HandleFunc("/stop", attendanceHandler.StopSession).Methods(http.MethodPost)
	session.HandleFunc("/token", attendanceHandler.SessionToken).Methods(http.MethodGet)
	session.HandleFunc("/token.png", attendanceHandler.SessionTokenPNG).Methods(http.MethodGet)
	session.HandleFunc("/ws", attendanceHandler.SessionWS).Methods(http.MethodGet)

	// Consumer endpoints
	volunteerOnly := authMiddleware.RequireRole(models.RoleVolunteer)
	api.Handle("/attendance/redeem",
		volunteerOnly(middleware.RedeemRateLimiter.Middleware(http.HandlerFunc(attendanceHandler.Redeem))),
	).Methods(http.MethodPost)
	api.Handle("/attendance/manual", issuerOnly(http.HandlerFunc(attendanceHandler.RecordManual))).Methods(http.MethodPost)
	api.HandleFunc("/attendance/history", attendanceHandler.History).Methods(http.MethodGet)
	api.HandleFunc("/attendance/summary", attendanceHandler.Summary).Methods(http.MethodGet)

	// Roster
	api.Handle("/volunteers", issuerOnly(http.HandlerFunc(volunteerHandler.Roster))).Methods(http.MethodGet)

	// Events
	api.HandleFunc("/events", eventHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/events/{id}", eventHandler.Get).Methods(http.MethodGet)
	api.Handle("/events", issuerOnly(http.HandlerFunc(eventHandler.Create))).Methods(http.MethodPost)
	api.Handle("/events/{id}", issuerOnly(http.HandlerFunc(eventHandler.Update))).Methods(http.MethodPut)
	api.Handle("/events/{id}", issuerOnly(http.HandlerFunc(eventHandler.Delete))).Methods(http.MethodDelete)

	// Donations
	secretaryOnly := authMiddleware.RequireRole(models.RoleSecretary)
	api.HandleFunc("/donations/campaigns", donationHandler.ListCampaigns).Methods(http.MethodGet)
	api.Handle("/donations/campaigns", secretaryOnly(http.HandlerFunc(donationHandler.CreateCampaign))).Methods(http.MethodPost)
	api.HandleFunc("/donations/campaigns/{id}/contribute", donationHandler.Contribute).Methods(http.MethodPost)
	api.HandleFunc("/donations/campaigns/{id}/contributions", donationHandler.ListContributions).Methods(http.MethodGet)

	// Gallery
	api.HandleFunc("/gallery", galleryHandler.List).Methods(http.MethodGet)
	api.Handle("/gallery", issuerOnly(http.HandlerFunc(galleryHandler.Publish))).Methods(http.MethodPost)
	api.Handle("/gallery/upload-url", issuerOnly(http.HandlerFunc(galleryHandler.RequestUpload))).Methods(http.MethodPost)

	return r
}
