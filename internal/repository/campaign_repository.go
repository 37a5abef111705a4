package repository

import (
    "database/sql"
    "encoding/json"
    "fmt"
    "time"

    appErrors "github.com/avaliamed/surveypulse-backend/internal/errors"
    "github.com/avaliamed/surveypulse-backend/internal/model"
)

type CampaignRepositoryInterface interface {
    // Campaign CRUD
    ListCampaigns(offset, limit int, campaignType string, active *bool) ([]*model.Campaign, int, error)
    GetByID(id int) (*model.Campaign, error)
    SetActive(campaignID int, active bool) error
    Create(c *model.Campaign) error

    // Configuration (read-only to the flow engine)
    GetConfig(campaignID int) (*model.CampaignConfig, error)
    CreateConfig(cfg *model.CampaignConfig) error
}

type CampaignRepository struct {
    DB *sql.DB
}

// ====================== Campaign CRUD ======================

func (r *CampaignRepository) Create(c *model.Campaign) error {
    c.CreatedAt = time.Now()
    if c.CampaignType == "" {
        c.CampaignType = "link"
    }
    query := `
        INSERT INTO campaigns (name, campaign_type, active, link_token, created_at)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id
    `
    return r.DB.QueryRow(query, c.Name, c.CampaignType, c.Active, c.LinkToken, c.CreatedAt).Scan(&c.ID)
}

func (r *CampaignRepository) SetActive(campaignID int, active bool) error {
    query := `UPDATE campaigns SET active=$1, updated_at=$2 WHERE id=$3`
    _, err := r.DB.Exec(query, active, time.Now(), campaignID)
    return err
}

func (r *CampaignRepository) GetByID(id int) (*model.Campaign, error) {
    query := `
        SELECT id, name, campaign_type, active, link_token, created_at, updated_at
        FROM campaigns WHERE id=$1
    `
    var c model.Campaign
    err := r.DB.QueryRow(query, id).Scan(&c.ID, &c.Name, &c.CampaignType, &c.Active, &c.LinkToken, &c.CreatedAt, &c.UpdatedAt)
    if err != nil {
        if err == sql.ErrNoRows {
            return nil, appErrors.NewCampaignNotFound(id)
        }
        return nil, err
    }
    return &c, nil
}

func (r *CampaignRepository) ListCampaigns(offset, limit int, campaignType string, active *bool) ([]*model.Campaign, int, error) {
    campaigns := []*model.Campaign{}
    query := `SELECT id, name, campaign_type, active, link_token, created_at, updated_at FROM campaigns WHERE 1=1`
    args := []interface{}{}
    argPos := 1

    if campaignType != "" {
        query += fmt.Sprintf(" AND campaign_type=$%d", argPos)
        args = append(args, campaignType)
        argPos++
    }
    if active != nil {
        query += fmt.Sprintf(" AND active=$%d", argPos)
        args = append(args, *active)
        argPos++
    }

    query += fmt.Sprintf(" ORDER BY id DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)
    args = append(args, limit, offset)

    rows, err := r.DB.Query(query, args...)
    if err != nil {
        return nil, 0, err
    }
    defer rows.Close()

    for rows.Next() {
        c := &model.Campaign{}
        if err := rows.Scan(&c.ID, &c.Name, &c.CampaignType, &c.Active, &c.LinkToken, &c.CreatedAt, &c.UpdatedAt); err != nil {
            return nil, 0, err
        }
        campaigns = append(campaigns, c)
    }

    // Count total
    countQuery := `SELECT COUNT(*) FROM campaigns WHERE 1=1`
    argsCount := []interface{}{}
    argPosCount := 1
    if campaignType != "" {
        countQuery += fmt.Sprintf(" AND campaign_type=$%d", argPosCount)
        argsCount = append(argsCount, campaignType)
        argPosCount++
    }
    if active != nil {
        countQuery += fmt.Sprintf(" AND active=$%d", argPosCount)
        argsCount = append(argsCount, *active)
    }

    var total int
    if err := r.DB.QueryRow(countQuery, argsCount...).Scan(&total); err != nil {
        return nil, 0, err
    }

    return campaigns, total, nil
}

// ====================== Configuration ======================

// GetConfig loads the full questionnaire definition. Returns nil (no error)
// when the campaign has no configuration row; the planner degrades to the
// mandatory section in that case.
func (r *CampaignRepository) GetConfig(campaignID int) (*model.CampaignConfig, error) {
    query := `
        SELECT id, campaign_id, primary_question, recommend_prompt, authorization_prompt,
               contact_points, problem_report, additional_forms, created_at, updated_at
        FROM campaign_configs WHERE campaign_id=$1
    `
    var cfg model.CampaignConfig
    var contactPoints, problemReport, additionalForms []byte
    err := r.DB.QueryRow(query, campaignID).Scan(
        &cfg.ID, &cfg.CampaignID, &cfg.PrimaryQuestion, &cfg.RecommendPrompt, &cfg.AuthorizationPrompt,
        &contactPoints, &problemReport, &additionalForms, &cfg.CreatedAt, &cfg.UpdatedAt,
    )
    if err != nil {
        if err == sql.ErrNoRows {
            return nil, nil
        }
        return nil, err
    }

    if err := json.Unmarshal(contactPoints, &cfg.ContactPoints); err != nil {
        return nil, fmt.Errorf("bad contact_points config for campaign %d: %w", campaignID, err)
    }
    if err := json.Unmarshal(problemReport, &cfg.ProblemReport); err != nil {
        return nil, fmt.Errorf("bad problem_report config for campaign %d: %w", campaignID, err)
    }
    if err := json.Unmarshal(additionalForms, &cfg.AdditionalForms); err != nil {
        return nil, fmt.Errorf("bad additional_forms config for campaign %d: %w", campaignID, err)
    }
    return &cfg, nil
}

func (r *CampaignRepository) CreateConfig(cfg *model.CampaignConfig) error {
    cfg.CreatedAt = time.Now()

    contactPoints, err := json.Marshal(cfg.ContactPoints)
    if err != nil {
        return err
    }
    problemReport, err := json.Marshal(cfg.ProblemReport)
    if err != nil {
        return err
    }
    additionalForms, err := json.Marshal(cfg.AdditionalForms)
    if err != nil {
        return err
    }

    query := `
        INSERT INTO campaign_configs
        (campaign_id, primary_question, recommend_prompt, authorization_prompt,
         contact_points, problem_report, additional_forms, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id
    `
    return r.DB.QueryRow(
        query,
        cfg.CampaignID, cfg.PrimaryQuestion, cfg.RecommendPrompt, cfg.AuthorizationPrompt,
        contactPoints, problemReport, additionalForms, cfg.CreatedAt,
    ).Scan(&cfg.ID)
}

var _ CampaignRepositoryInterface = (*CampaignRepository)(nil)
