package models

import "time"

// Campaign is a fundraising campaign shown on the donation page
type Campaign struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	TargetAmount float64   `json:"target_amount"`
	RaisedAmount float64   `json:"raised_amount"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	ImageURL     string    `json:"image_url,omitempty"`
	CreatedBy    string    `json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
}

// Contribution is a single donation towards a campaign
type Contribution struct {
	ID         string    `json:"id"`
	CampaignID string    `json:"campaign_id"`
	DonorID    string    `json:"donor_id,omitempty"`
	DonorName  string    `json:"donor_name"`
	Amount     float64   `json:"amount"`
	OrderID    string    `json:"order_id,omitempty"` // payment gateway order reference
	CreatedAt  time.Time `json:"created_at"`
}

// CreateCampaignRequest is the request body for creating a campaign
type CreateCampaignRequest struct {
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	TargetAmount float64   `json:"target_amount"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	ImageURL     string    `json:"image_url"`
}

// ContributeRequest is the request body for contributing to a campaign
type ContributeRequest struct {
	DonorName string  `json:"donor_name"`
	Amount    float64 `json:"amount"`
}
