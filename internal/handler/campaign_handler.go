// internal/handler/campaign_handler.go
package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	appErrors "github.com/avaliamed/surveypulse-backend/internal/errors"
	"github.com/avaliamed/surveypulse-backend/internal/model"
	"github.com/avaliamed/surveypulse-backend/internal/repository"
	"github.com/avaliamed/surveypulse-backend/internal/service"
)

// CampaignHandler holds the dependencies for campaign admin HTTP handlers
type CampaignHandler struct {
	Repo  repository.CampaignRepositoryInterface
	Stats *service.StatsService
}

// CreateCampaignHandler creates a campaign together with its questionnaire
// configuration. Authoring past this point is out of scope; the flow engine
// only ever reads what is written here.
func (h *CampaignHandler) CreateCampaignHandler(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name                string                       `json:"name"`
		CampaignType        string                       `json:"campaign_type"`
		Active              bool                         `json:"active"`
		PrimaryQuestion     string                       `json:"primary_question"`
		RecommendPrompt     string                       `json:"recommend_prompt"`
		AuthorizationPrompt string                       `json:"authorization_prompt"`
		ContactPoints       model.ContactPointsSection   `json:"contact_points"`
		ProblemReport       model.ProblemReportSection   `json:"problem_report"`
		AdditionalForms     model.AdditionalFormsSection `json:"additional_forms"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if payload.Name == "" || payload.PrimaryQuestion == "" {
		http.Error(w, "name and primary_question are required", http.StatusBadRequest)
		return
	}

	campaign := &model.Campaign{
		Name:         payload.Name,
		CampaignType: payload.CampaignType,
		Active:       payload.Active,
		LinkToken:    uuid.NewString(),
	}
	if err := h.Repo.Create(campaign); err != nil {
		http.Error(w, "failed to create campaign: "+err.Error(), http.StatusInternalServerError)
		return
	}

	cfg := &model.CampaignConfig{
		CampaignID:          campaign.ID,
		PrimaryQuestion:     payload.PrimaryQuestion,
		RecommendPrompt:     payload.RecommendPrompt,
		AuthorizationPrompt: payload.AuthorizationPrompt,
		ContactPoints:       payload.ContactPoints,
		ProblemReport:       payload.ProblemReport,
		AdditionalForms:     payload.AdditionalForms,
	}
	if err := h.Repo.CreateConfig(cfg); err != nil {
		http.Error(w, "failed to create campaign config: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"campaign": campaign,
		"config":   cfg,
		"steps":    service.PlanSteps(cfg),
	})
}

// ListCampaignsHandler returns a paginated list of campaigns
func (h *CampaignHandler) ListCampaignsHandler(w http.ResponseWriter, r *http.Request) {
	pageStr := r.URL.Query().Get("page")
	pageSizeStr := r.URL.Query().Get("page_size")
	page := 1
	pageSize := 10

	if pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			page = p
		}
	}
	if pageSizeStr != "" {
		if ps, err := strconv.Atoi(pageSizeStr); err == nil && ps > 0 {
			pageSize = ps
		}
	}
	if pageSize > 100 {
		pageSize = 100
	}

	campaignType := r.URL.Query().Get("type")
	var active *bool
	if activeStr := r.URL.Query().Get("active"); activeStr != "" {
		if v, err := strconv.ParseBool(activeStr); err == nil {
			active = &v
		}
	}

	campaigns, total, err := h.Repo.ListCampaigns((page-1)*pageSize, pageSize, campaignType, active)
	if err != nil {
		http.Error(w, "failed to fetch campaigns: "+err.Error(), http.StatusInternalServerError)
		return
	}

	totalPages := (total + pageSize - 1) / pageSize
	response := map[string]interface{}{
		"data": campaigns,
		"pagination": map[string]int{
			"page":        page,
			"page_size":   pageSize,
			"total_count": total,
			"total_pages": totalPages,
		},
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// SetCampaignActiveHandler toggles a campaign between accepting and refusing
// new survey sessions. Deactivating never touches existing responses.
func (h *CampaignHandler) SetCampaignActiveHandler(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "invalid campaign id", http.StatusBadRequest)
		return
	}

	var payload struct {
		Active *bool `json:"active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if payload.Active == nil {
		http.Error(w, "active is required", http.StatusBadRequest)
		return
	}

	campaign, err := h.Repo.GetByID(id)
	if err != nil {
		var notFound *appErrors.ErrCampaignNotFound
		if errors.As(err, &notFound) {
			http.Error(w, "campaign not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to fetch campaign: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if err := h.Repo.SetActive(id, *payload.Active); err != nil {
		http.Error(w, "failed to update campaign: "+err.Error(), http.StatusInternalServerError)
		return
	}
	campaign.Active = *payload.Active

	log.Println("✅ Campaign", id, "active set to", *payload.Active)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(campaign)
}

// GetCampaignHandlerWithStats returns one campaign with its NPS rollup.
func (h *CampaignHandler) GetCampaignHandlerWithStats(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "invalid campaign id", http.StatusBadRequest)
		return
	}

	log.Println("📥 Handler called for campaign ID:", id)

	details, err := h.Stats.GetCampaignDetailsWithStats(id)
	if err != nil {
		log.Println("❌ Error fetching campaign:", err)
		http.Error(w, "failed to fetch campaign: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(details)
}
