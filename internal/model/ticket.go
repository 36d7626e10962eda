// internal/model/ticket.go
package model

import "time"

// ParentTicket is one parent descriptor in a composed plan. Not persisted
// as-is; the worker rebuilds it from the ticket row plus the registry.
type ParentTicket struct {
    Workflow string           `json:"workflow"`
    Team     string           `json:"team"`
    Title    string           `json:"title"`
    Tasks    []TaskDefinition `json:"tasks"`
}

// TicketPlan is the composer output: one or two independent parent tickets
// for a single campaign request.
type TicketPlan struct {
    RequestReference string       `json:"request_reference"`
    CampaignName     string       `json:"campaign_name"`
    CampaignType     CampaignType `json:"campaign_type"`
    Parents          []ParentTicket `json:"parents"`
}

// ParentTicketFor builds the parent descriptor a template produces for a
// rendered title. The task slice is copied so plans never alias the registry.
func (t WorkflowTemplate) ParentTicketFor(title string) ParentTicket {
    tasks := make([]TaskDefinition, len(t.Tasks))
    copy(tasks, t.Tasks)
    return ParentTicket{
        Workflow: t.Name,
        Team:     t.Team,
        Title:    title,
        Tasks:    tasks,
    }
}

// Ticket is a persisted ticket-creation job, one row per parent descriptor.
type Ticket struct {
    ID         int       `db:"id" json:"id"`
    RequestID  int       `db:"request_id" json:"request_id"`
    Workflow   string    `db:"workflow" json:"workflow"`
    Team       string    `db:"team" json:"team"`
    Title      string    `db:"title" json:"title"`
    Status     string    `db:"status" json:"status"` // pending, created, failed
    RemoteRef  string    `db:"remote_ref,omitempty" json:"remote_ref,omitempty"`
    BoardURL   string    `db:"board_url,omitempty" json:"board_url,omitempty"`
    LastError  string    `db:"last_error,omitempty" json:"last_error,omitempty"`
    RetryCount int       `db:"retry_count" json:"retry_count"`
    CreatedAt  time.Time `db:"created_at" json:"created_at"`
    UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}
