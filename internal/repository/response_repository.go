package repository

import (
    "database/sql"
    "encoding/json"
    "time"

    "github.com/avaliamed/surveypulse-backend/internal/model"
)

type ResponseRepositoryInterface interface {
    Create(resp *model.SurveyResponse) error
    GetByID(id int) (*model.SurveyResponse, error)
    ScoreCounts(campaignID int) (map[int]int, error)
}

type ResponseRepository struct {
    DB *sql.DB
}

// Create inserts the normalized response row and fills in the generated ID.
// Responses are immutable; there is no update method.
func (r *ResponseRepository) Create(resp *model.SurveyResponse) error {
    resp.CreatedAt = time.Now()

    scores, err := json.Marshal(resp.ContactPointScores)
    if err != nil {
        return err
    }
    factors, err := json.Marshal(resp.ExperienceFactors)
    if err != nil {
        return err
    }
    var problem []byte
    if resp.ProblemReport != nil {
        if problem, err = json.Marshal(resp.ProblemReport); err != nil {
            return err
        }
    }
    answers, err := json.Marshal(resp.AdditionalAnswers)
    if err != nil {
        return err
    }

    query := `
        INSERT INTO responses
        (delivery_id, campaign_id, nps_score, score_reason, would_recommend, data_use_authorized,
         contact_point_scores, contact_point_feedback, experience_factors, final_suggestion,
         problem_report, additional_answers, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
        RETURNING id
    `
    return r.DB.QueryRow(
        query,
        resp.DeliveryID, resp.CampaignID, resp.NPSScore, resp.ScoreReason,
        resp.WouldRecommend, resp.DataUseAuthorized,
        scores, resp.ContactPointFeedback, factors, resp.FinalSuggestion,
        problem, answers, resp.CreatedAt,
    ).Scan(&resp.ID)
}

func (r *ResponseRepository) GetByID(id int) (*model.SurveyResponse, error) {
    query := `
        SELECT id, delivery_id, campaign_id, nps_score, score_reason, would_recommend,
               data_use_authorized, contact_point_scores, contact_point_feedback,
               experience_factors, final_suggestion, problem_report, additional_answers, created_at
        FROM responses WHERE id=$1
    `
    var resp model.SurveyResponse
    var scores, factors, problem, answers []byte
    err := r.DB.QueryRow(query, id).Scan(
        &resp.ID, &resp.DeliveryID, &resp.CampaignID, &resp.NPSScore, &resp.ScoreReason,
        &resp.WouldRecommend, &resp.DataUseAuthorized, &scores, &resp.ContactPointFeedback,
        &factors, &resp.FinalSuggestion, &problem, &answers, &resp.CreatedAt,
    )
    if err != nil {
        if err == sql.ErrNoRows {
            return nil, nil
        }
        return nil, err
    }

    if len(scores) > 0 {
        if err := json.Unmarshal(scores, &resp.ContactPointScores); err != nil {
            return nil, err
        }
    }
    if len(factors) > 0 {
        if err := json.Unmarshal(factors, &resp.ExperienceFactors); err != nil {
            return nil, err
        }
    }
    if len(problem) > 0 {
        if err := json.Unmarshal(problem, &resp.ProblemReport); err != nil {
            return nil, err
        }
    }
    if len(answers) > 0 {
        if err := json.Unmarshal(answers, &resp.AdditionalAnswers); err != nil {
            return nil, err
        }
    }
    return &resp, nil
}

// ScoreCounts returns how many responses landed on each score 0-10 for a
// campaign. Tier grouping happens in the service so the classifier stays the
// single source of truth for the trisection.
func (r *ResponseRepository) ScoreCounts(campaignID int) (map[int]int, error) {
    query := `SELECT nps_score, COUNT(*) FROM responses WHERE campaign_id=$1 GROUP BY nps_score`
    rows, err := r.DB.Query(query, campaignID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    counts := map[int]int{}
    for rows.Next() {
        var score, count int
        if err := rows.Scan(&score, &count); err != nil {
            return nil, err
        }
        counts[score] = count
    }
    return counts, nil
}

var _ ResponseRepositoryInterface = (*ResponseRepository)(nil)
