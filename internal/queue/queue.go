package queue

import (
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/avaliamed/surveypulse-backend/internal/repository"
)

// Queue interface
type Queue interface {
	Publish(topic string, payload any) error
	Subscribe(topic string, handler func(payload any) error) error
}

// InMemoryQueue is an in-memory queue with retry, used for the in-process
// completion-notification path. The standalone worker binary consumes the
// same topic over AMQP instead.
type InMemoryQueue struct {
	mu       sync.Mutex
	handlers map[string][]func(payload any) error
}

// NewInMemoryQueue creates a new queue
func NewInMemoryQueue() *InMemoryQueue {
	return &InMemoryQueue{
		handlers: make(map[string][]func(payload any) error),
	}
}

// JobPayload wraps a message payload with retry info
type JobPayload struct {
	Payload    any
	RetryCount int
	MaxRetries int
}

// Publish sends a message to all subscribers
func (q *InMemoryQueue) Publish(topic string, payload any) error {
	q.mu.Lock()
	handlers := q.handlers[topic]
	q.mu.Unlock()

	if len(handlers) == 0 {
		return fmt.Errorf("no subscribers for topic %s", topic)
	}

	job := JobPayload{
		Payload:    payload,
		RetryCount: 0,
		MaxRetries: 3,
	}

	for _, handler := range handlers {
		go q.processJob(handler, job)
	}

	return nil
}

// processJob handles retries and errors
func (q *InMemoryQueue) processJob(handler func(payload any) error, job JobPayload) {
	for job.RetryCount <= job.MaxRetries {
		err := handler(job.Payload)
		if err == nil {
			log.Printf("Job processed successfully: %+v\n", job.Payload)
			return // ACK
		}

		job.RetryCount++
		log.Printf("Job failed (attempt %d/%d): %+v, error: %v\n", job.RetryCount, job.MaxRetries, job.Payload, err)

		if job.RetryCount > job.MaxRetries {
			log.Printf("Job permanently failed after %d attempts: %+v\n", job.MaxRetries, job.Payload)
			return // No requeue
		}

		// Exponential backoff before retry
		time.Sleep(time.Duration(job.RetryCount*500) * time.Millisecond)
	}
}

// Subscribe adds a handler for a topic
func (q *InMemoryQueue) Subscribe(topic string, handler func(payload any) error) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.handlers[topic] = append(q.handlers[topic], handler)
	return nil
}

// StartResponseNotifySubscriber wires the in-process completion notifier:
// for every submitted response it renders a thank-you message and flips the
// delivery from responded to notified.
func StartResponseNotifySubscriber(q Queue, responseRepo repository.ResponseRepositoryInterface, deliveryRepo repository.DeliveryRepositoryInterface, contactRepo repository.ContactRepositoryInterface) {
	go func() {
		err := q.Subscribe("survey_responses", func(payload any) error {
			responseID, ok := payload.(int)
			if !ok {
				log.Println("⚠️ Invalid payload type, expected int")
				return nil // or return error to trigger retry
			}

			log.Println("📩 Processing submitted response ID:", responseID)

			resp, err := responseRepo.GetByID(responseID)
			if err != nil {
				log.Println("⚠️ Failed to fetch response:", err)
				return err
			}
			if resp == nil {
				log.Println("⚠️ Response not found for ID:", responseID)
				return nil // no retry
			}

			delivery, err := deliveryRepo.GetByID(resp.DeliveryID)
			if err != nil {
				log.Println("⚠️ Failed to fetch delivery:", err)
				return err
			}
			if delivery == nil {
				log.Println("⚠️ Delivery not found for response ID:", responseID)
				return nil // no retry
			}
			if delivery.Status == "notified" {
				log.Println("📭 Delivery already notified, skipping:", delivery.ID)
				return nil
			}

			name := ""
			if contact, err := contactRepo.GetByResponseID(responseID); err == nil && contact != nil {
				name = contact.Name
			}

			message := fmt.Sprintf("Thank you%s! Your feedback was recorded.", nameSuffix(name))
			if err := Sender(message); err != nil {
				log.Println("⚠️ Failed to send thank-you:", err)
				return err // triggers retry in queue
			}

			if err := deliveryRepo.UpdateStatus(delivery.ID, "notified"); err != nil {
				log.Println("⚠️ Failed to update delivery status:", err)
				return err // retry
			}

			log.Println("✅ Response processed successfully:", responseID)
			return nil
		})

		if err != nil {
			log.Println("⚠️ Failed to start subscriber for survey_responses:", err)
		}
	}()
}

func nameSuffix(name string) string {
	if name == "" {
		return ""
	}
	return ", " + name
}

//////////////////////////
// Example Mock Sender  //
//////////////////////////

// Sender delivers the rendered thank-you message. Defaults to the mock.
var Sender = MockSender

// MockSender simulates delivering a notification with 90% success
func MockSender(payload any) error {
	r := rand.Float64()
	if r < 0.9 {
		return nil // success
	}
	return fmt.Errorf("mock sending failed")
}
