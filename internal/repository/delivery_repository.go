package repository

import (
    "database/sql"
    "errors"
    "time"

    "github.com/avaliamed/surveypulse-backend/internal/model"
)

// DeliveryRepositoryInterface defines the methods the submission flow and the
// notification worker need.
type DeliveryRepositoryInterface interface {
    CreateResponded(campaignID int, responseToken string) (int, error)
    UpdateStatus(id int, status string) error
    GetByID(id int) (*model.Delivery, error)
    CountByCampaign(campaignID int) (int, error)
}

type DeliveryRepository struct {
    DB *sql.DB
}

// CreateResponded inserts a delivery already in responded state. Link-type
// campaigns create the delivery at submission time, so responded_at and the
// terminal status are set in one insert.
func (r *DeliveryRepository) CreateResponded(campaignID int, responseToken string) (int, error) {
    now := time.Now()
    query := `
        INSERT INTO deliveries (campaign_id, status, response_token, responded_at, created_at, updated_at)
        VALUES ($1, 'responded', $2, $3, $3, $3)
        RETURNING id
    `
    var id int
    if err := r.DB.QueryRow(query, campaignID, responseToken, now).Scan(&id); err != nil {
        return 0, err
    }
    return id, nil
}

func (r *DeliveryRepository) UpdateStatus(id int, status string) error {
    query := `UPDATE deliveries SET status=$1, updated_at=NOW() WHERE id=$2`
    _, err := r.DB.Exec(query, status, id)
    return err
}

func (r *DeliveryRepository) GetByID(id int) (*model.Delivery, error) {
    query := `
        SELECT id, campaign_id, status, response_token, sent_at, responded_at, created_at, updated_at
        FROM deliveries WHERE id=$1
    `
    var d model.Delivery
    err := r.DB.QueryRow(query, id).Scan(
        &d.ID, &d.CampaignID, &d.Status, &d.ResponseToken,
        &d.SentAt, &d.RespondedAt, &d.CreatedAt, &d.UpdatedAt,
    )
    if errors.Is(err, sql.ErrNoRows) {
        return nil, nil
    }
    if err != nil {
        return nil, err
    }
    return &d, nil
}

func (r *DeliveryRepository) CountByCampaign(campaignID int) (int, error) {
    var count int
    err := r.DB.QueryRow(`SELECT COUNT(*) FROM deliveries WHERE campaign_id=$1`, campaignID).Scan(&count)
    if err != nil {
        return 0, err
    }
    return count, nil
}

var _ DeliveryRepositoryInterface = (*DeliveryRepository)(nil)
