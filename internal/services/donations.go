package services

import (
	"context"
	"fmt"
	"time"

	"nss-backend/internal/models"
	"nss-backend/internal/repositories"

	"github.com/google/uuid"
	razorpay "github.com/razorpay/razorpay-go"
)

type DonationService struct {
	donationRepo *repositories.DonationRepository
	keyID        string
	keySecret    string
}

func NewDonationService(donationRepo *repositories.DonationRepository, keyID, keySecret string) *DonationService {
	return &DonationService{
		donationRepo: donationRepo,
		keyID:        keyID,
		keySecret:    keySecret,
	}
}

func (s *DonationService) client() *razorpay.Client {
	if s.keyID == "" || s.keySecret == "" {
		return nil
	}
	return razorpay.NewClient(s.keyID, s.keySecret)
}

// CreateCampaign validates and inserts a fundraising campaign
func (s *DonationService) CreateCampaign(ctx context.Context, req *models.CreateCampaignRequest, creatorID string) (*models.Campaign, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("campaign title is required")
	}
	if req.TargetAmount <= 0 {
		return nil, fmt.Errorf("campaign target amount must be positive")
	}
	if req.EndDate.Before(req.StartDate) {
		return nil, fmt.Errorf("campaign end date precedes start date")
	}

	campaign := &models.Campaign{
		ID:           "camp-" + uuid.NewString(),
		Title:        req.Title,
		Description:  req.Description,
		TargetAmount: req.TargetAmount,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		ImageURL:     req.ImageURL,
		CreatedBy:    creatorID,
	}

	if err := s.donationRepo.CreateCampaign(ctx, campaign); err != nil {
		return nil, fmt.Errorf("failed to create campaign: %w", err)
	}
	return campaign, nil
}

// ListCampaigns returns all campaigns
func (s *DonationService) ListCampaigns(ctx context.Context) ([]models.Campaign, error) {
	return s.donationRepo.ListCampaigns(ctx)
}

// Contribute records a contribution against an open campaign. When
// Razorpay credentials are configured, a payment order is created and
// its id stored on the contribution for the SPA checkout flow.
func (s *DonationService) Contribute(ctx context.Context, campaignID, donorID string, req *models.ContributeRequest) (*models.Contribution, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("contribution amount must be positive")
	}
	if req.DonorName == "" {
		return nil, fmt.Errorf("donor name is required")
	}

	campaign, err := s.donationRepo.GetCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if now.Before(campaign.StartDate) || now.After(campaign.EndDate) {
		return nil, fmt.Errorf("campaign %q is not accepting contributions", campaign.Title)
	}

	contribution := &models.Contribution{
		ID:         "don-" + uuid.NewString(),
		CampaignID: campaignID,
		DonorID:    donorID,
		DonorName:  req.DonorName,
		Amount:     req.Amount,
	}

	if client := s.client(); client != nil {
		orderData := map[string]interface{}{
			"amount":   int(req.Amount * 100), // paise
			"currency": "INR",
			"receipt":  fmt.Sprintf("rcpt_%s_%d", campaignID, now.Unix()),
			"notes": map[string]interface{}{
				"campaign_id": campaignID,
				"donor_name":  req.DonorName,
			},
		}

		order, err := client.Order.Create(orderData, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create razorpay order: %w", err)
		}
		if id, ok := order["id"].(string); ok {
			contribution.OrderID = id
		}
	}

	if err := s.donationRepo.AddContribution(ctx, contribution); err != nil {
		return nil, fmt.Errorf("failed to record contribution: %w", err)
	}
	return contribution, nil
}

// ListContributions returns a campaign's contributions
func (s *DonationService) ListContributions(ctx context.Context, campaignID string) ([]models.Contribution, error) {
	return s.donationRepo.ListContributions(ctx, campaignID)
}
