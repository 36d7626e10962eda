// internal/controller/request_controller.go
package controller

import (
    "encoding/json"
    "errors"
    "log"
    "net/http"
    "strconv"

    "github.com/unclebandit/campaignrouter-backend/internal/service"

    "github.com/go-chi/chi/v5"
    "github.com/streadway/amqp"

    appErrors "github.com/unclebandit/campaignrouter-backend/internal/errors"
)

type RequestController struct {
    RequestService *service.RequestService
    // AMQPURL enables the RabbitMQ fan-out path; empty means in-memory only
    AMQPURL string
}

// writeServiceError maps core errors onto HTTP status codes. An unknown
// workflow is an internal fault, not a user error.
func writeServiceError(w http.ResponseWriter, err error) {
    var invalidType *appErrors.ErrInvalidCampaignType
    var notFound *appErrors.ErrRequestNotFound
    switch {
    case errors.As(err, &invalidType):
        http.Error(w, err.Error(), http.StatusBadRequest)
    case errors.As(err, &notFound):
        http.Error(w, err.Error(), http.StatusNotFound)
    default:
        http.Error(w, err.Error(), http.StatusInternalServerError)
    }
}

func (c *RequestController) SubmitRequest(w http.ResponseWriter, r *http.Request) {
    var body struct {
        Name           string `json:"name"`
        CampaignType   string `json:"campaign_type"`
        Goal           string `json:"goal"`
        TargetAudience string `json:"target_audience"`
        RequestedBy    string `json:"requested_by"`
        EventDate      string `json:"event_date"`
    }
    if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
        http.Error(w, "invalid body", http.StatusBadRequest)
        return
    }

    result, err := c.RequestService.SubmitRequest(service.SubmitRequestInput{
        Name:           body.Name,
        CampaignType:   body.CampaignType,
        Goal:           body.Goal,
        TargetAudience: body.TargetAudience,
        RequestedBy:    body.RequestedBy,
        EventDate:      body.EventDate,
    })
    if err != nil {
        writeServiceError(w, err)
        return
    }

    // Fan the ticket jobs out to RabbitMQ as well, for the standalone worker
    c.publishTicketJobs(result.TicketIDs)

    w.Header().Set("Content-Type", "application/json")
    w.WriteHeader(http.StatusCreated)
    json.NewEncoder(w).Encode(map[string]interface{}{
        "request_id":     result.RequestID,
        "reference":      result.Reference,
        "status":         result.Status,
        "tickets_queued": result.TicketsQueued,
        "plan":           result.Plan,
    })
}

func (c *RequestController) publishTicketJobs(ticketIDs []int) {
    if c.AMQPURL == "" || len(ticketIDs) == 0 {
        return
    }

    conn, err := amqp.Dial(c.AMQPURL)
    if err != nil {
        log.Println("⚠️ Failed to connect to queue:", err)
        return
    }
    defer conn.Close()

    ch, err := conn.Channel()
    if err != nil {
        log.Println("⚠️ Failed to open queue channel:", err)
        return
    }
    defer ch.Close()

    q, err := ch.QueueDeclare(
        "ticket_creates",
        true,
        false,
        false,
        false,
        nil,
    )
    if err != nil {
        log.Println("⚠️ Failed to declare queue:", err)
        return
    }

    for _, ticketID := range ticketIDs {
        body, _ := json.Marshal(map[string]int{"ticket_id": ticketID})
        err = ch.Publish(
            "",
            q.Name,
            false,
            false,
            amqp.Publishing{
                ContentType: "application/json",
                Body:        body,
            },
        )
        if err != nil {
            log.Println("Failed to publish ticket job:", err)
        }
    }
}

func (c *RequestController) ListRequests(w http.ResponseWriter, r *http.Request) {
    page, _ := strconv.Atoi(r.URL.Query().Get("page"))
    pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
    campaignType := r.URL.Query().Get("campaign_type")
    status := r.URL.Query().Get("status")

    if page < 1 {
        page = 1
    }
    if pageSize < 1 {
        pageSize = 20
    }

    requests, pagination, err := c.RequestService.ListRequests(page, pageSize, campaignType, status)
    if err != nil {
        http.Error(w, err.Error(), http.StatusInternalServerError)
        return
    }

    w.Header().Set("Content-Type", "application/json")
    json.NewEncoder(w).Encode(map[string]interface{}{
        "data":       requests,
        "pagination": pagination,
    })
}

func (c *RequestController) GetRequestDetails(w http.ResponseWriter, r *http.Request) {
    idStr := chi.URLParam(r, "id")
    id, err := strconv.Atoi(idStr)
    if err != nil {
        http.Error(w, "invalid request id", http.StatusBadRequest)
        return
    }

    req, err := c.RequestService.GetRequestDetails(id)
    if err != nil {
        writeServiceError(w, err)
        return
    }

    w.Header().Set("Content-Type", "application/json")
    json.NewEncoder(w).Encode(req)
}

func (c *RequestController) PlanPreview(w http.ResponseWriter, r *http.Request) {
    idStr := chi.URLParam(r, "id")
    id, err := strconv.Atoi(idStr)
    if err != nil {
        http.Error(w, "invalid request id", http.StatusBadRequest)
        return
    }

    plan, err := c.RequestService.PlanPreview(id)
    if err != nil {
        writeServiceError(w, err)
        return
    }

    w.Header().Set("Content-Type", "application/json")
    json.NewEncoder(w).Encode(plan)
}
