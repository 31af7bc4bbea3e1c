package handlers

import (
	"encoding/json"
	"net/http"

	"nss-backend/internal/middleware"
	"nss-backend/internal/models"
	"nss-backend/internal/repositories"
	"nss-backend/internal/services"
)

// VolunteerHandler serves the roster views with ledger aggregates
type VolunteerHandler struct {
	UserService    *services.UserService
	AttendanceRepo *repositories.AttendanceRepository
}

func NewVolunteerHandler(userService *services.UserService, attendanceRepo *repositories.AttendanceRepository) *VolunteerHandler {
	return &VolunteerHandler{
		UserService:    userService,
		AttendanceRepo: attendanceRepo,
	}
}

// Roster returns the volunteers visible to the caller with total hours
// GET /api/volunteers
func (h *VolunteerHandler) Roster(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	role, _ := middleware.GetRoleFromContext(ctx)

	entries, err := h.UserService.Roster(ctx, userID, role, h.AttendanceRepo)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []models.RosterEntry{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entries)
}
