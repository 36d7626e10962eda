package repository

import (
    "database/sql"
    "time"

    "github.com/unclebandit/campaignrouter-backend/internal/model"
)

type TicketRepositoryInterface interface {
    CreateTicket(requestID int, workflow, team, title string) (*model.Ticket, error)
    GetTicket(requestID int, workflow string) (*model.Ticket, error)
    GetByID(id int) (*model.Ticket, error)
    Update(t *model.Ticket) error
    UpdateTicketStatus(id int, status, remoteRef, lastError string) error
    ListByRequest(requestID int) ([]*model.Ticket, error)
    GetRequestStats(requestID int) (map[string]int, error)
    CountPending(requestID int) (int, error)
}

type TicketRepository struct {
    DB *sql.DB
}

// CreateTicket is idempotent per (request_id, workflow): submitting the same
// request twice must not fan a parent ticket out twice.
func (r *TicketRepository) CreateTicket(requestID int, workflow, team, title string) (*model.Ticket, error) {
    existing, err := r.GetTicket(requestID, workflow)
    if err != nil {
        return nil, err
    }
    if existing != nil {
        return existing, nil
    }

    query := `
        INSERT INTO tickets (request_id, workflow, team, title, status, retry_count, created_at, updated_at)
        VALUES ($1, $2, $3, $4, 'pending', 0, NOW(), NOW())
        RETURNING id, status, retry_count, created_at, updated_at
    `
    var t model.Ticket
    err = r.DB.QueryRow(query, requestID, workflow, team, title).Scan(&t.ID, &t.Status, &t.RetryCount, &t.CreatedAt, &t.UpdatedAt)
    if err != nil {
        return nil, err
    }

    t.RequestID = requestID
    t.Workflow = workflow
    t.Team = team
    t.Title = title
    return &t, nil
}

func (r *TicketRepository) GetTicket(requestID int, workflow string) (*model.Ticket, error) {
    query := `SELECT id, request_id, workflow, team, title, status, remote_ref, board_url, last_error, retry_count, created_at, updated_at
              FROM tickets
              WHERE request_id=$1 AND workflow=$2`
    var t model.Ticket
    err := r.DB.QueryRow(query, requestID, workflow).Scan(
        &t.ID, &t.RequestID, &t.Workflow, &t.Team, &t.Title,
        &t.Status, &t.RemoteRef, &t.BoardURL, &t.LastError, &t.RetryCount,
        &t.CreatedAt, &t.UpdatedAt,
    )
    if err != nil {
        if err == sql.ErrNoRows {
            return nil, nil
        }
        return nil, err
    }
    return &t, nil
}

func (r *TicketRepository) GetByID(id int) (*model.Ticket, error) {
    query := `
        SELECT id, request_id, workflow, team, title, status, remote_ref, board_url, last_error, retry_count, created_at, updated_at
        FROM tickets
        WHERE id=$1
    `
    var t model.Ticket
    err := r.DB.QueryRow(query, id).Scan(
        &t.ID, &t.RequestID, &t.Workflow, &t.Team, &t.Title,
        &t.Status, &t.RemoteRef, &t.BoardURL, &t.LastError, &t.RetryCount,
        &t.CreatedAt, &t.UpdatedAt,
    )
    if err != nil {
        if err == sql.ErrNoRows {
            return nil, nil
        }
        return nil, err
    }
    return &t, nil
}

func (r *TicketRepository) Update(t *model.Ticket) error {
    t.UpdatedAt = time.Now()
    query := `
        UPDATE tickets
        SET status=$1, remote_ref=$2, board_url=$3, last_error=$4, retry_count=$5, updated_at=$6
        WHERE id=$7
    `
    _, err := r.DB.Exec(query, t.Status, t.RemoteRef, t.BoardURL, t.LastError, t.RetryCount, t.UpdatedAt, t.ID)
    return err
}

func (r *TicketRepository) UpdateTicketStatus(id int, status, remoteRef, lastError string) error {
    query := `UPDATE tickets SET status=$1, remote_ref=$2, last_error=$3, retry_count=retry_count+1, updated_at=NOW() WHERE id=$4`
    _, err := r.DB.Exec(query, status, remoteRef, lastError, id)
    return err
}

func (r *TicketRepository) ListByRequest(requestID int) ([]*model.Ticket, error) {
    query := `
        SELECT id, request_id, workflow, team, title, status, remote_ref, board_url, last_error, retry_count, created_at, updated_at
        FROM tickets
        WHERE request_id=$1
        ORDER BY id
    `
    rows, err := r.DB.Query(query, requestID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    tickets := []*model.Ticket{}
    for rows.Next() {
        t := &model.Ticket{}
        if err := rows.Scan(
            &t.ID, &t.RequestID, &t.Workflow, &t.Team, &t.Title,
            &t.Status, &t.RemoteRef, &t.BoardURL, &t.LastError, &t.RetryCount,
            &t.CreatedAt, &t.UpdatedAt,
        ); err != nil {
            return nil, err
        }
        tickets = append(tickets, t)
    }
    return tickets, nil
}

func (r *TicketRepository) GetRequestStats(requestID int) (map[string]int, error) {
    query := `SELECT status, COUNT(*) FROM tickets WHERE request_id=$1 GROUP BY status`
    rows, err := r.DB.Query(query, requestID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    stats := map[string]int{"pending": 0, "created": 0, "failed": 0}
    for rows.Next() {
        var status string
        var count int
        if err := rows.Scan(&status, &count); err != nil {
            return nil, err
        }
        stats[status] = count
    }
    return stats, nil
}

func (r *TicketRepository) CountPending(requestID int) (int, error) {
    var count int
    err := r.DB.QueryRow(`
        SELECT COUNT(*)
        FROM tickets
        WHERE request_id = $1 AND status <> 'created'`, requestID).Scan(&count)
    if err != nil {
        return 0, err
    }
    return count, nil
}

var _ TicketRepositoryInterface = (*TicketRepository)(nil)
