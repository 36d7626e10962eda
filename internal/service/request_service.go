// internal/service/request_service.go
package service

import (
    "fmt"
    "log"
    "strings"
    "time"

    "github.com/google/uuid"

    appErrors "github.com/unclebandit/campaignrouter-backend/internal/errors"
    "github.com/unclebandit/campaignrouter-backend/internal/metrics"
    "github.com/unclebandit/campaignrouter-backend/internal/model"
    "github.com/unclebandit/campaignrouter-backend/internal/queue"
    "github.com/unclebandit/campaignrouter-backend/internal/repository"
    "github.com/unclebandit/campaignrouter-backend/internal/workflow"
)

type RequestService struct {
    RequestRepo repository.RequestRepositoryInterface
    TicketRepo  repository.TicketRepositoryInterface
    Composer    *workflow.Composer
    Queue       queue.Queue
}

// SubmitRequestInput carries the fields the modal layer collects.
type SubmitRequestInput struct {
    Name           string
    CampaignType   string
    Goal           string
    TargetAudience string
    RequestedBy    string
    EventDate      string
}

// Result struct for SubmitRequest
type SubmitRequestResult struct {
    RequestID     int
    Reference     string
    Status        string
    TicketsQueued int
    TicketIDs     []int
    Plan          *model.TicketPlan
}

// RequestDetails is the detail view with ticket stats attached.
type RequestDetails struct {
    ID             int                `json:"id"`
    Reference      string             `json:"reference"`
    Name           string             `json:"name"`
    CampaignType   model.CampaignType `json:"campaign_type"`
    Goal           string             `json:"goal"`
    TargetAudience string             `json:"target_audience"`
    RequestedBy    string             `json:"requested_by"`
    EventDate      string             `json:"event_date,omitempty"`
    Status         string             `json:"status"`
    CreatedAt      time.Time          `json:"created_at"`
    UpdatedAt      *time.Time         `json:"updated_at"`
    Tickets        []*model.Ticket    `json:"tickets"`
    Stats          map[string]int     `json:"stats"`
}

// SubmitRequest validates the campaign type, composes the ticket plan,
// persists the request plus one ticket row per parent and queues the
// creation jobs. An invalid campaign type fails before anything is stored.
func (s *RequestService) SubmitRequest(in SubmitRequestInput) (*SubmitRequestResult, error) {
    campaignType, ok := model.SupportedCampaignTypes[in.CampaignType]
    if !ok {
        return nil, appErrors.NewInvalidCampaignType(in.CampaignType)
    }
    if strings.TrimSpace(in.Name) == "" {
        return nil, fmt.Errorf("campaign name cannot be empty")
    }

    req := &model.CampaignRequest{
        Reference:      uuid.NewString(),
        Name:           strings.TrimSpace(in.Name),
        CampaignType:   campaignType,
        Goal:           in.Goal,
        TargetAudience: in.TargetAudience,
        RequestedBy:    in.RequestedBy,
        EventDate:      in.EventDate,
        Status:         "received",
    }

    plan, err := s.Composer.Compose(req)
    if err != nil {
        return nil, err
    }

    if err := s.RequestRepo.Create(req); err != nil {
        return nil, err
    }

    result := &SubmitRequestResult{
        RequestID: req.ID,
        Reference: req.Reference,
        Status:    "received",
        TicketIDs: []int{},
        Plan:      plan,
    }

    for _, parent := range plan.Parents {
        // Idempotent create (returns existing if already exists)
        ticket, err := s.TicketRepo.CreateTicket(req.ID, parent.Workflow, parent.Team, parent.Title)
        if err != nil {
            log.Println("⚠️ failed to create/get ticket row:", err)
            continue
        }

        if err := s.Queue.Publish("ticket_creates", ticket.ID); err != nil {
            log.Println("⚠️ failed to enqueue ticket ID", ticket.ID, ":", err)
            continue
        }

        result.TicketIDs = append(result.TicketIDs, ticket.ID)
        result.TicketsQueued++
    }

    if err := s.RequestRepo.UpdateStatus(req.ID, "routing"); err != nil {
        return result, err
    }
    result.Status = "routing"

    if m := metrics.Global(); m != nil {
        m.RequestsSubmittedTotal.WithLabelValues(string(campaignType)).Inc()
        m.PlansComposedTotal.Inc()
    }

    return result, nil
}

// PlanPreview re-composes the ticket plan for a stored request without
// persisting or enqueueing anything. Dry run for the UI layer.
func (s *RequestService) PlanPreview(requestID int) (*model.TicketPlan, error) {
    req, err := s.RequestRepo.GetByID(requestID)
    if err != nil {
        return nil, err
    }
    if req == nil {
        return nil, appErrors.NewRequestNotFound(requestID)
    }

    plan, err := s.Composer.Compose(req)
    if err != nil {
        return nil, err
    }

    if m := metrics.Global(); m != nil {
        m.PlansComposedTotal.Inc()
    }

    return plan, nil
}

// ListRequests fetches campaign requests with pagination
func (s *RequestService) ListRequests(page, pageSize int, campaignType, status string) ([]model.CampaignRequest, map[string]int, error) {
    if page < 1 {
        page = 1
    }
    if pageSize < 1 {
        pageSize = 20
    }
    if pageSize > 100 {
        pageSize = 100
    }
    offset := (page - 1) * pageSize

    ptrs, total, err := s.RequestRepo.ListRequests(offset, pageSize, campaignType, status)
    if err != nil {
        return nil, nil, err
    }

    requests := make([]model.CampaignRequest, len(ptrs))
    for i, r := range ptrs {
        requests[i] = *r
    }

    totalPages := (total + pageSize - 1) / pageSize
    pagination := map[string]int{
        "page":        page,
        "page_size":   pageSize,
        "total_count": total,
        "total_pages": totalPages,
    }

    return requests, pagination, nil
}

// GetRequestDetails fetches a campaign request by ID
func (s *RequestService) GetRequestDetails(id int) (*model.CampaignRequest, error) {
    return s.RequestRepo.GetByID(id)
}

func (s *RequestService) GetRequestDetailsWithStats(requestID int) (*RequestDetails, error) {
    req, err := s.RequestRepo.GetByID(requestID)
    if err != nil {
        return nil, err
    }

    stats, err := s.TicketRepo.GetRequestStats(requestID)
    if err != nil {
        return nil, err
    }
    total := 0
    for _, count := range stats {
        total += count
    }
    stats["total"] = total

    tickets, err := s.TicketRepo.ListByRequest(requestID)
    if err != nil {
        return nil, err
    }

    return &RequestDetails{
        ID:             req.ID,
        Reference:      req.Reference,
        Name:           req.Name,
        CampaignType:   req.CampaignType,
        Goal:           req.Goal,
        TargetAudience: req.TargetAudience,
        RequestedBy:    req.RequestedBy,
        EventDate:      req.EventDate,
        Status:         req.Status,
        CreatedAt:      req.CreatedAt,
        UpdatedAt:      req.UpdatedAt,
        Tickets:        tickets,
        Stats:          stats,
    }, nil
}
