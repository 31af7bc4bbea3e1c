package repositories

import (
	"context"
	"errors"
	"fmt"

	"nss-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DonationRepository struct {
	DB *pgxpool.Pool
}

func NewDonationRepository(db *pgxpool.Pool) *DonationRepository {
	return &DonationRepository{DB: db}
}

// CreateCampaign inserts a fundraising campaign
func (r *DonationRepository) CreateCampaign(ctx context.Context, c *models.Campaign) error {
	query := `
		INSERT INTO campaigns(id, title, description, target_amount, start_date, end_date, image_url, created_by)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`

	return r.DB.QueryRow(ctx, query,
		c.ID, c.Title, c.Description, c.TargetAmount,
		c.StartDate, c.EndDate, c.ImageURL, c.CreatedBy,
	).Scan(&c.CreatedAt)
}

// GetCampaign returns a campaign by id
func (r *DonationRepository) GetCampaign(ctx context.Context, id string) (*models.Campaign, error) {
	query := `
		SELECT id, title, COALESCE(description, ''), target_amount, raised_amount, start_date, end_date, COALESCE(image_url, ''), COALESCE(created_by, ''), created_at
		FROM campaigns
		WHERE id = $1
	`

	var c models.Campaign
	err := r.DB.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Title, &c.Description, &c.TargetAmount, &c.RaisedAmount,
		&c.StartDate, &c.EndDate, &c.ImageURL, &c.CreatedBy, &c.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListCampaigns returns all campaigns, most recent first
func (r *DonationRepository) ListCampaigns(ctx context.Context) ([]models.Campaign, error) {
	query := `
		SELECT id, title, COALESCE(description, ''), target_amount, raised_amount, start_date, end_date, COALESCE(image_url, ''), COALESCE(created_by, ''), created_at
		FROM campaigns
		ORDER BY created_at DESC
	`

	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var campaigns []models.Campaign
	for rows.Next() {
		var c models.Campaign
		if err := rows.Scan(
			&c.ID, &c.Title, &c.Description, &c.TargetAmount, &c.RaisedAmount,
			&c.StartDate, &c.EndDate, &c.ImageURL, &c.CreatedBy, &c.CreatedAt,
		); err != nil {
			return nil, err
		}
		campaigns = append(campaigns, c)
	}
	return campaigns, rows.Err()
}

// AddContribution records a contribution and bumps the campaign's
// raised amount in one transaction
func (r *DonationRepository) AddContribution(ctx context.Context, c *models.Contribution) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	insert := `
		INSERT INTO contributions(id, campaign_id, donor_id, donor_name, amount, order_id)
		VALUES($1, $2, NULLIF($3, ''), $4, $5, $6)
		RETURNING created_at
	`
	if err := tx.QueryRow(ctx, insert,
		c.ID, c.CampaignID, c.DonorID, c.DonorName, c.Amount, c.OrderID,
	).Scan(&c.CreatedAt); err != nil {
		return err
	}

	bump := `UPDATE campaigns SET raised_amount = raised_amount + $2 WHERE id = $1`
	tag, err := tx.Exec(ctx, bump, c.CampaignID, c.Amount)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return tx.Commit(ctx)
}

// ListContributions returns a campaign's contributions, newest first
func (r *DonationRepository) ListContributions(ctx context.Context, campaignID string) ([]models.Contribution, error) {
	query := `
		SELECT id, campaign_id, COALESCE(donor_id, ''), donor_name, amount, COALESCE(order_id, ''), created_at
		FROM contributions
		WHERE campaign_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.DB.Query(ctx, query, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contributions []models.Contribution
	for rows.Next() {
		var c models.Contribution
		if err := rows.Scan(&c.ID, &c.CampaignID, &c.DonorID, &c.DonorName, &c.Amount, &c.OrderID, &c.CreatedAt); err != nil {
			return nil, err
		}
		contributions = append(contributions, c)
	}
	return contributions, rows.Err()
}
