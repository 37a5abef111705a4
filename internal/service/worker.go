// internal/service/worker.go
package service

import (
	"log"
	"strconv"

	"github.com/avaliamed/surveypulse-backend/internal/model"
)

// NotifyResponseRepository defines the methods the notification worker needs.
type NotifyResponseRepository interface {
	GetByID(id int) (*model.SurveyResponse, error)
}

type NotifyDeliveryRepository interface {
	UpdateStatus(id int, status string) error
}

// Worker processes response-notification jobs off a channel.
type Worker struct {
	ResponseRepo NotifyResponseRepository
	DeliveryRepo NotifyDeliveryRepository
	JobChan      <-chan int
	SendFunc     func(msg string) bool
}

// Constructor
func NewWorker(responseRepo NotifyResponseRepository, deliveryRepo NotifyDeliveryRepository, jobChan <-chan int, sendFunc func(msg string) bool) *Worker {
	return &Worker{
		ResponseRepo: responseRepo,
		DeliveryRepo: deliveryRepo,
		JobChan:      jobChan,
		SendFunc:     sendFunc,
	}
}

// Start begins processing jobs
func (w *Worker) Start() {
	for responseID := range w.JobChan {
		resp, err := w.ResponseRepo.GetByID(responseID)
		if err != nil {
			log.Println("Failed to get response:", err)
			continue
		}
		if resp == nil {
			log.Println("Response not found:", responseID)
			continue
		}

		message := RenderTemplate("Thank you for your feedback (score {score}).", map[string]string{
			"score": strconv.Itoa(resp.NPSScore),
		})

		status := "notified"
		if !w.SendFunc(message) {
			status = "responded" // leave the delivery where it was
		}

		if err := w.DeliveryRepo.UpdateStatus(resp.DeliveryID, status); err != nil {
			log.Println("Failed to update delivery status:", err)
		}
	}
}
