// internal/model/campaign_request.go
package model

import "time"

type CampaignRequest struct {
    ID             int          `db:"id" json:"id"`
    Reference      string       `db:"reference" json:"reference"`
    Name           string       `db:"name" json:"name"`
    CampaignType   CampaignType `db:"campaign_type" json:"campaign_type"`
    Goal           string       `db:"goal" json:"goal"`
    TargetAudience string       `db:"target_audience" json:"target_audience"`
    RequestedBy    string       `db:"requested_by" json:"requested_by"`
    EventDate      string       `db:"event_date" json:"event_date,omitempty"`
    Status         string       `db:"status" json:"status"`
    CreatedAt      time.Time    `db:"created_at" json:"created_at"`
    UpdatedAt      *time.Time   `db:"updated_at" json:"updated_at,omitempty"`
}
