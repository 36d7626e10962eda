package repository

import (
    "database/sql"
    "fmt"
    "time"

    appErrors "github.com/unclebandit/campaignrouter-backend/internal/errors"
    "github.com/unclebandit/campaignrouter-backend/internal/model"
)

type RequestRepositoryInterface interface {
    Create(r *model.CampaignRequest) error
    GetByID(id int) (*model.CampaignRequest, error)
    ListRequests(offset, limit int, campaignType, status string) ([]*model.CampaignRequest, int, error)
    UpdateStatus(requestID int, status string) error
}

type RequestRepository struct {
    DB *sql.DB
}

func (r *RequestRepository) Create(req *model.CampaignRequest) error {
    req.CreatedAt = time.Now()
    if req.Status == "" {
        req.Status = "received"
    }
    query := `
        INSERT INTO campaign_requests (reference, name, campaign_type, goal, target_audience, requested_by, event_date, status, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id
    `
    return r.DB.QueryRow(query, req.Reference, req.Name, req.CampaignType, req.Goal, req.TargetAudience, req.RequestedBy, req.EventDate, req.Status, req.CreatedAt).Scan(&req.ID)
}

func (r *RequestRepository) GetByID(id int) (*model.CampaignRequest, error) {
    query := `
        SELECT id, reference, name, campaign_type, goal, target_audience, requested_by, event_date, status, created_at, updated_at
        FROM campaign_requests WHERE id=$1
    `
    var req model.CampaignRequest
    err := r.DB.QueryRow(query, id).Scan(&req.ID, &req.Reference, &req.Name, &req.CampaignType, &req.Goal, &req.TargetAudience, &req.RequestedBy, &req.EventDate, &req.Status, &req.CreatedAt, &req.UpdatedAt)
    if err != nil {
        if err == sql.ErrNoRows {
            return nil, appErrors.NewRequestNotFound(id)
        }
        return nil, err
    }
    return &req, nil
}

func (r *RequestRepository) ListRequests(offset, limit int, campaignType, status string) ([]*model.CampaignRequest, int, error) {
    requests := []*model.CampaignRequest{}
    query := `SELECT id, reference, name, campaign_type, goal, target_audience, requested_by, event_date, status, created_at, updated_at FROM campaign_requests WHERE 1=1`
    args := []interface{}{}
    argPos := 1

    if campaignType != "" {
        query += fmt.Sprintf(" AND campaign_type=$%d", argPos)
        args = append(args, campaignType)
        argPos++
    }
    if status != "" {
        query += fmt.Sprintf(" AND status=$%d", argPos)
        args = append(args, status)
        argPos++
    }

    query += fmt.Sprintf(" ORDER BY id DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)
    args = append(args, limit, offset)

    rows, err := r.DB.Query(query, args...)
    if err != nil {
        return nil, 0, err
    }
    defer rows.Close()

    for rows.Next() {
        req := &model.CampaignRequest{}
        if err := rows.Scan(&req.ID, &req.Reference, &req.Name, &req.CampaignType, &req.Goal, &req.TargetAudience, &req.RequestedBy, &req.EventDate, &req.Status, &req.CreatedAt, &req.UpdatedAt); err != nil {
            return nil, 0, err
        }
        requests = append(requests, req)
    }

    // Count total
    countQuery := `SELECT COUNT(*) FROM campaign_requests WHERE 1=1`
    argsCount := []interface{}{}
    argPosCount := 1
    if campaignType != "" {
        countQuery += fmt.Sprintf(" AND campaign_type=$%d", argPosCount)
        argsCount = append(argsCount, campaignType)
        argPosCount++
    }
    if status != "" {
        countQuery += fmt.Sprintf(" AND status=$%d", argPosCount)
        argsCount = append(argsCount, status)
    }

    var total int
    if err := r.DB.QueryRow(countQuery, argsCount...).Scan(&total); err != nil {
        return nil, 0, err
    }

    return requests, total, nil
}

func (r *RequestRepository) UpdateStatus(requestID int, status string) error {
    query := `UPDATE campaign_requests SET status=$1, updated_at=$2 WHERE id=$3`
    _, err := r.DB.Exec(query, status, time.Now(), requestID)
    return err
}

var _ RequestRepositoryInterface = (*RequestRepository)(nil)
