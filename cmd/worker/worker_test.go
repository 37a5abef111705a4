package main

import (
	"sync"
	"testing"

	"github.com/streadway/amqp"

	"github.com/avaliamed/surveypulse-backend/internal/model"
	"github.com/avaliamed/surveypulse-backend/internal/service"
)

// MockResponseRepo stores responses in memory
type MockResponseRepo struct {
	responses map[int]*model.SurveyResponse
	mu        sync.Mutex
}

func (m *MockResponseRepo) GetByID(id int) (*model.SurveyResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.responses[id], nil
}

type MockDeliveryRepo struct {
	statuses map[int]string
	mu       sync.Mutex
}

func (m *MockDeliveryRepo) UpdateStatus(id int, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statuses[id] = status
	return nil
}

func TestNotificationWorker(t *testing.T) {
	responseRepo := &MockResponseRepo{
		responses: map[int]*model.SurveyResponse{
			1: {ID: 1, DeliveryID: 7, CampaignID: 1, NPSScore: 10},
		},
	}
	deliveryRepo := &MockDeliveryRepo{statuses: map[int]string{7: "responded"}}

	jobChan := make(chan int, 1)
	jobChan <- 1 // enqueue job
	close(jobChan)

	worker := service.NewWorker(responseRepo, deliveryRepo, jobChan, func(msg string) bool {
		return true
	})

	done := make(chan struct{})
	go func() {
		worker.Start()
		close(done)
	}()

	// Start drains the closed channel and returns
	<-done

	deliveryRepo.mu.Lock()
	status := deliveryRepo.statuses[7]
	deliveryRepo.mu.Unlock()
	if status != "notified" {
		t.Errorf("expected notified, got %s", status)
	}
}

// The attempt counter must survive the broker round trip in whatever integer
// width the broker hands back, and a missing header counts as attempt zero.
func TestRetryCount(t *testing.T) {
	cases := []struct {
		name    string
		headers amqp.Table
		want    int
	}{
		{"no headers", nil, 0},
		{"missing key", amqp.Table{}, 0},
		{"int", amqp.Table{"x-retry-count": 2}, 2},
		{"int32", amqp.Table{"x-retry-count": int32(1)}, 1},
		{"int64", amqp.Table{"x-retry-count": int64(3)}, 3},
		{"wrong type", amqp.Table{"x-retry-count": "2"}, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := retryCount(tc.headers); got != tc.want {
				t.Errorf("expected %d, got %d", tc.want, got)
			}
		})
	}

	// Each failed attempt republishes with the counter bumped, so the fourth
	// failure is the last.
	for attempt, wantMore := range map[int]bool{0: true, 2: true, 3: false} {
		if more := attempt < maxRetries; more != wantMore {
			t.Errorf("attempt %d: expected retry=%v, got %v", attempt, wantMore, more)
		}
	}
}
