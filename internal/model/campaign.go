// internal/model/campaign.go
package model

import "time"

type Campaign struct {
    ID           int        `db:"id" json:"id"`
    Name         string     `db:"name" json:"name"`
    CampaignType string     `db:"campaign_type" json:"campaign_type"` // email, link
    Active       bool       `db:"active" json:"active"`
    LinkToken    string     `db:"link_token" json:"link_token,omitempty"`
    CreatedAt    time.Time  `db:"created_at" json:"created_at"`
    UpdatedAt    *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}
