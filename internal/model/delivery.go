// internal/model/delivery.go
package model

import "time"

// Delivery marks that one respondent session reached a submitted state for a
// campaign. Exactly one delivery per completed session; the response row
// references it.
type Delivery struct {
    ID            int        `db:"id" json:"id"`
    CampaignID    int        `db:"campaign_id" json:"campaign_id"`
    Status        string     `db:"status" json:"status"` // pending, responded, notified
    ResponseToken string     `db:"response_token" json:"response_token"`
    SentAt        *time.Time `db:"sent_at" json:"sent_at,omitempty"`
    RespondedAt   *time.Time `db:"responded_at" json:"responded_at,omitempty"`
    CreatedAt     time.Time  `db:"created_at" json:"created_at"`
    UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
}
