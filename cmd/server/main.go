// cmd/server/main.go
package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/avaliamed/surveypulse-backend/internal/controller"
	"github.com/avaliamed/surveypulse-backend/internal/db"
	"github.com/avaliamed/surveypulse-backend/internal/handler"
	"github.com/avaliamed/surveypulse-backend/internal/queue"
	"github.com/avaliamed/surveypulse-backend/internal/repository"
	"github.com/avaliamed/surveypulse-backend/internal/service"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, relying on OS environment variables")
	}

	// Init DB
	db.Init()
	q := queue.NewInMemoryQueue()

	campaignRepo := &repository.CampaignRepository{DB: db.DB}
	deliveryRepo := &repository.DeliveryRepository{DB: db.DB}
	responseRepo := &repository.ResponseRepository{DB: db.DB}
	contactRepo := &repository.ContactRepository{DB: db.DB}
	queue.StartResponseNotifySubscriber(q, responseRepo, deliveryRepo, contactRepo)

	submissionService := &service.SubmissionService{
		CampaignRepo: campaignRepo,
		DeliveryRepo: deliveryRepo,
		ResponseRepo: responseRepo,
		ContactRepo:  contactRepo,
		Queue:        q,
	}

	surveyService := &service.SurveyService{
		CampaignRepo: campaignRepo,
		Sessions:     service.NewSessionStore(),
		Submission:   submissionService,
	}

	statsService := &service.StatsService{
		CampaignRepo: campaignRepo,
		ResponseRepo: responseRepo,
		DeliveryRepo: deliveryRepo,
	}

	surveyController := &controller.SurveyController{
		SurveyService: surveyService,
	}

	campaignHandler := &handler.CampaignHandler{
		Repo:  campaignRepo,
		Stats: statsService,
	}

	r := chi.NewRouter()

	// Public survey flow
	r.Get("/surveys/{campaignID}", surveyController.GetSurvey)
	r.Post("/surveys/{campaignID}/sessions", surveyController.StartSession)
	r.Post("/surveys/{campaignID}/sessions/{sessionID}/answers", surveyController.RecordAnswers)
	r.Post("/surveys/{campaignID}/sessions/{sessionID}/submit", surveyController.SubmitSession)

	// Campaign admin
	r.Post("/campaigns", campaignHandler.CreateCampaignHandler)
	r.Get("/campaigns", campaignHandler.ListCampaignsHandler)
	r.Get("/campaigns/{id}", campaignHandler.GetCampaignHandlerWithStats)
	r.Patch("/campaigns/{id}/active", campaignHandler.SetCampaignActiveHandler)

	log.Println("🚀 Server running on :8080")
	log.Fatal(http.ListenAndServe(":8080", r))
}
