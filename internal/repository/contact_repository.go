package repository

import (
    "database/sql"
    "time"

    "github.com/avaliamed/surveypulse-backend/internal/model"
)

type ContactRepositoryInterface interface {
    Create(c *model.RespondentContact) error
    GetByResponseID(responseID int) (*model.RespondentContact, error)
}

// ContactRepository stores the anonymized respondent contact records.
type ContactRepository struct {
    DB *sql.DB
}

func (r *ContactRepository) Create(c *model.RespondentContact) error {
    c.CreatedAt = time.Now()
    query := `
        INSERT INTO respondent_contacts (campaign_id, response_id, name, email, phone, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id
    `
    return r.DB.QueryRow(query, c.CampaignID, c.ResponseID, c.Name, c.Email, c.Phone, c.CreatedAt).Scan(&c.ID)
}

func (r *ContactRepository) GetByResponseID(responseID int) (*model.RespondentContact, error) {
    query := `
        SELECT id, campaign_id, response_id, name, email, phone, created_at
        FROM respondent_contacts WHERE response_id=$1
    `
    var c model.RespondentContact
    err := r.DB.QueryRow(query, responseID).Scan(&c.ID, &c.CampaignID, &c.ResponseID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt)
    if err != nil {
        if err == sql.ErrNoRows {
            return nil, nil
        }
        return nil, err
    }
    return &c, nil
}

var _ ContactRepositoryInterface = (*ContactRepository)(nil)
