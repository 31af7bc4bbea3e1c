package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"nss-backend/internal/middleware"
	"nss-backend/internal/models"
	"nss-backend/internal/repositories"
	"nss-backend/internal/services"

	"github.com/gorilla/mux"
)

type DonationHandler struct {
	DonationService *services.DonationService
}

func NewDonationHandler(donationService *services.DonationService) *DonationHandler {
	return &DonationHandler{DonationService: donationService}
}

// ListCampaigns returns all fundraising campaigns
// GET /api/donations/campaigns
func (h *DonationHandler) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	campaigns, err := h.DonationService.ListCampaigns(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if campaigns == nil {
		campaigns = []models.Campaign{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(campaigns)
}

// CreateCampaign adds a new campaign (secretary only, enforced in routes)
// POST /api/donations/campaigns
func (h *DonationHandler) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	var req models.CreateCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	campaign, err := h.DonationService.CreateCampaign(r.Context(), &req, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(campaign)
}

// Contribute records a donation against a campaign
// POST /api/donations/campaigns/{id}/contribute
func (h *DonationHandler) Contribute(w http.ResponseWriter, r *http.Request) {
	campaignID := mux.Vars(r)["id"]
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	var req models.ContributeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	contribution, err := h.DonationService.Contribute(r.Context(), campaignID, userID, &req)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			http.Error(w, "Campaign not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(contribution)
}

// ListContributions returns a campaign's contributions
// GET /api/donations/campaigns/{id}/contributions
func (h *DonationHandler) ListContributions(w http.ResponseWriter, r *http.Request) {
	campaignID := mux.Vars(r)["id"]

	contributions, err := h.DonationService.ListContributions(r.Context(), campaignID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if contributions == nil {
		contributions = []models.Contribution{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(contributions)
}
