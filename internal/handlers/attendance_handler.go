package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"nss-backend/internal/middleware"
	"nss-backend/internal/models"
	"nss-backend/internal/notify"
	"nss-backend/internal/services"
	"nss-backend/internal/timeutil"
	"nss-backend/internal/ws"
)

// AttendanceHandler exposes the token issuer (mentor side) and the
// redemption/history endpoints (volunteer side)
type AttendanceHandler struct {
	Issuer      *services.TokenIssuer
	Attendance  *services.AttendanceService
	Events      *services.EventService
	UserService *services.UserService
	Hub         *ws.Hub
	Notifier    notify.Notifier
}

func NewAttendanceHandler(
	issuer *services.TokenIssuer,
	attendance *services.AttendanceService,
	events *services.EventService,
	userService *services.UserService,
	hub *ws.Hub,
	notifier notify.Notifier,
) *AttendanceHandler {
	return &AttendanceHandler{
		Issuer:      issuer,
		Attendance:  attendance,
		Events:      events,
		UserService: userService,
		Hub:         hub,
		Notifier:    notifier,
	}
}

// StartSession begins issuing rotating tokens for an event
// POST /api/attendance/session/start
func (h *AttendanceHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	var req models.StartSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	// Fill the display name from the events table when omitted
	if req.EventName == "" && req.EventID != "" {
		if event, err := h.Events.GetEvent(r.Context(), req.EventID); err == nil {
			req.EventName = event.Title
		}
	}

	if err := h.Issuer.StartSession(req.EventID, req.EventName, req.Hours); err != nil {
		switch {
		case errors.Is(err, models.ErrSessionActive):
			http.Error(w, err.Error(), http.StatusConflict)
		case errors.Is(err, models.ErrMissingEvent), errors.Is(err, models.ErrInvalidHours):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.Issuer.Status())
}

// StopSession ends the current token session
// POST /api/attendance/session/stop
func (h *AttendanceHandler) StopSession(w http.ResponseWriter, r *http.Request) {
	h.Issuer.StopSession()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.Issuer.Status())
}

// SessionToken returns the current token payload and countdown
// GET /api/attendance/session/token
func (h *AttendanceHandler) SessionToken(w http.ResponseWriter, r *http.Request) {
	status := h.Issuer.Status()
	if !status.Active {
		http.Error(w, "No active token session", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(status)
}

// SessionTokenPNG streams the current token as a QR image download
// GET /api/attendance/session/token.png?size=256
func (h *AttendanceHandler) SessionTokenPNG(w http.ResponseWriter, r *http.Request) {
	size, _ := strconv.Atoi(r.URL.Query().Get("size"))

	png, err := h.Issuer.ExportCurrentTokenPNG(size)
	if err != nil {
		if errors.Is(err, models.ErrNoActiveSession) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("nss-attendance-qr-%d.png", timeutil.Now().UnixMilli())
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	w.Write(png)
}

// SessionWS upgrades to a websocket that receives every minted token
// GET /api/attendance/session/ws
func (h *AttendanceHandler) SessionWS(w http.ResponseWriter, r *http.Request) {
	h.Hub.HandleConnection(w, r)
}

// Redeem converts a scanned payload into an attendance record
// POST /api/attendance/redeem
func (h *AttendanceHandler) Redeem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req models.RedeemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	volunteer, err := h.UserService.GetUser(ctx, userID)
	if err != nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	record, err := h.Attendance.Redeem(ctx, req.Payload, *volunteer)
	if err != nil {
		h.Notifier.Notify(userID, notify.SeverityError, "Attendance not marked", err.Error())
		switch {
		case errors.Is(err, models.ErrMalformedPayload):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, models.ErrStaleToken):
			http.Error(w, err.Error(), http.StatusGone)
		case errors.Is(err, models.ErrDuplicateRedemption):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	h.Notifier.Notify(userID, notify.SeverityInfo, "Attendance Marked",
		fmt.Sprintf("You've successfully marked your attendance for %s", record.EventName))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(record)
}

// RecordManual lets a mentor or secretary credit attendance directly
// POST /api/attendance/manual
func (h *AttendanceHandler) RecordManual(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.ManualAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	event, err := h.Events.GetEvent(ctx, req.EventID)
	if err != nil {
		http.Error(w, "Event not found", http.StatusNotFound)
		return
	}

	record, err := h.Attendance.RecordManual(ctx, req, event)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrDuplicateRedemption):
			http.Error(w, err.Error(), http.StatusConflict)
		case errors.Is(err, models.ErrMalformedPayload), errors.Is(err, models.ErrInvalidHours):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(record)
}

// History returns the caller's attendance records, most recent first
// GET /api/attendance/history
func (h *AttendanceHandler) History(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	records, err := h.Attendance.History(ctx, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if records == nil {
		records = []models.AttendanceRecord{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(records)
}

// Summary returns the caller's total hours and event count
// GET /api/attendance/summary
func (h *AttendanceHandler) Summary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	summary, err := h.Attendance.Summary(ctx, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(summary)
}
