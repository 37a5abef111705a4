// internal/service/stats_service.go
package service

import (
    "time"

    "github.com/avaliamed/surveypulse-backend/internal/repository"
)

// StatsService produces the admin-facing campaign rollup. The tier grouping
// and the NPS value both go through the classifier.
type StatsService struct {
    CampaignRepo repository.CampaignRepositoryInterface
    ResponseRepo repository.ResponseRepositoryInterface
    DeliveryRepo repository.DeliveryRepositoryInterface
}

type CampaignDetails struct {
    ID           int        `json:"id"`
    Name         string     `json:"name"`
    CampaignType string     `json:"campaign_type"`
    Active       bool       `json:"active"`
    CreatedAt    time.Time  `json:"created_at"`
    UpdatedAt    *time.Time `json:"updated_at"`
    Stats        NPSStats   `json:"stats"`
}

type NPSStats struct {
    Deliveries int          `json:"deliveries"`
    Responses  int          `json:"responses"`
    Tiers      map[Tier]int `json:"tiers"`
    NPS        int          `json:"nps"`
}

func (s *StatsService) GetCampaignDetailsWithStats(campaignID int) (*CampaignDetails, error) {
    campaign, err := s.CampaignRepo.GetByID(campaignID)
    if err != nil {
        return nil, err
    }

    scoreCounts, err := s.ResponseRepo.ScoreCounts(campaignID)
    if err != nil {
        return nil, err
    }
    deliveries, err := s.DeliveryRepo.CountByCampaign(campaignID)
    if err != nil {
        return nil, err
    }

    tiers := TierCounts(scoreCounts)
    total := 0
    for _, n := range scoreCounts {
        total += n
    }

    return &CampaignDetails{
        ID:           campaign.ID,
        Name:         campaign.Name,
        CampaignType: campaign.CampaignType,
        Active:       campaign.Active,
        CreatedAt:    campaign.CreatedAt,
        UpdatedAt:    campaign.UpdatedAt,
        Stats: NPSStats{
            Deliveries: deliveries,
            Responses:  total,
            Tiers:      tiers,
            NPS:        NPSFromCounts(tiers),
        },
    }, nil
}
