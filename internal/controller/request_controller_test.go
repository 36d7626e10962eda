package controller_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/unclebandit/campaignrouter-backend/internal/controller"
	appErrors "github.com/unclebandit/campaignrouter-backend/internal/errors"
	"github.com/unclebandit/campaignrouter-backend/internal/model"
	"github.com/unclebandit/campaignrouter-backend/internal/service"
	"github.com/unclebandit/campaignrouter-backend/internal/workflow"
)

// --- Mock Repositories ---

type MockRequestRepo struct {
	requests []*model.CampaignRequest
}

func (m *MockRequestRepo) Create(r *model.CampaignRequest) error {
	r.ID = len(m.requests) + 1
	r.CreatedAt = time.Now()
	m.requests = append(m.requests, r)
	return nil
}

func (m *MockRequestRepo) GetByID(id int) (*model.CampaignRequest, error) {
	for _, r := range m.requests {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, appErrors.NewRequestNotFound(id)
}

func (m *MockRequestRepo) ListRequests(offset, limit int, campaignType, status string) ([]*model.CampaignRequest, int, error) {
	return m.requests, len(m.requests), nil
}

func (m *MockRequestRepo) UpdateStatus(id int, status string) error { return nil }

type MockTicketRepo struct {
	tickets []*model.Ticket
}

func (m *MockTicketRepo) CreateTicket(requestID int, workflowName, team, title string) (*model.Ticket, error) {
	t := &model.Ticket{
		ID:        len(m.tickets) + 1,
		RequestID: requestID,
		Workflow:  workflowName,
		Team:      team,
		Title:     title,
		Status:    "pending",
	}
	m.tickets = append(m.tickets, t)
	return t, nil
}

func (m *MockTicketRepo) GetTicket(requestID int, workflowName string) (*model.Ticket, error) {
	return nil, nil
}
func (m *MockTicketRepo) GetByID(id int) (*model.Ticket, error) { return nil, nil }
func (m *MockTicketRepo) Update(t *model.Ticket) error          { return nil }
func (m *MockTicketRepo) UpdateTicketStatus(id int, status, remoteRef, lastError string) error {
	return nil
}
func (m *MockTicketRepo) ListByRequest(requestID int) ([]*model.Ticket, error) {
	return m.tickets, nil
}
func (m *MockTicketRepo) GetRequestStats(requestID int) (map[string]int, error) {
	return map[string]int{"pending": len(m.tickets), "created": 0, "failed": 0}, nil
}
func (m *MockTicketRepo) CountPending(requestID int) (int, error) { return len(m.tickets), nil }

type MockQueue struct{}

func (m *MockQueue) Publish(topic string, payload any) error                     { return nil }
func (m *MockQueue) Subscribe(topic string, handler func(payload any) error) error { return nil }

func newController() *controller.RequestController {
	svc := &service.RequestService{
		RequestRepo: &MockRequestRepo{},
		TicketRepo:  &MockTicketRepo{},
		Composer:    &workflow.Composer{Registry: workflow.NewRegistry()},
		Queue:       &MockQueue{},
	}
	// AMQPURL left empty: in-memory path only under test
	return &controller.RequestController{RequestService: svc}
}

// --- Tests ---

func TestSubmitRequestHandler(t *testing.T) {
	ctrl := newController()

	body := map[string]interface{}{
		"name":          "Community Meetup - Chicago",
		"campaign_type": "physical_event",
		"goal":          "Grow local community engagement",
		"requested_by":  "U024BE7LH",
	}
	b, _ := json.Marshal(body)

	req := httptest.NewRequest("POST", "/requests", bytes.NewReader(b))
	w := httptest.NewRecorder()

	ctrl.SubmitRequest(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	var res map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if res["tickets_queued"].(float64) != 2 {
		t.Errorf("expected 2 tickets queued, got %v", res["tickets_queued"])
	}

	plan, ok := res["plan"].(map[string]interface{})
	if !ok {
		t.Fatal("plan not found in response")
	}
	parents, ok := plan["parents"].([]interface{})
	if !ok || len(parents) != 2 {
		t.Errorf("expected 2 parents in plan, got %v", plan["parents"])
	}
}

func TestSubmitRequestHandlerInvalidType(t *testing.T) {
	ctrl := newController()

	body := map[string]interface{}{
		"name":          "Mystery Campaign",
		"campaign_type": "carrier_pigeon",
	}
	b, _ := json.Marshal(body)

	req := httptest.NewRequest("POST", "/requests", bytes.NewReader(b))
	w := httptest.NewRecorder()

	ctrl.SubmitRequest(w, req)

	if w.Result().StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Result().StatusCode)
	}
}

func TestSubmitRequestHandlerBadBody(t *testing.T) {
	ctrl := newController()

	req := httptest.NewRequest("POST", "/requests", bytes.NewReader([]byte("{not json")))
	w := httptest.NewRecorder()

	ctrl.SubmitRequest(w, req)

	if w.Result().StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Result().StatusCode)
	}
}
