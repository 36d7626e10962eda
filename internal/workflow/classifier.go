// internal/workflow/classifier.go
package workflow

import (
    appErrors "github.com/unclebandit/campaignrouter-backend/internal/errors"
    "github.com/unclebandit/campaignrouter-backend/internal/model"
)

// Classify maps a campaign type to the workflow template names it requires.
// A physical event always fans out to two parent tickets (event planning
// listed first for display, then email); email-only routes to the email
// workflow alone. The two tickets of a physical event are independent and
// may be created in any order.
func Classify(campaignType model.CampaignType) ([]string, error) {
    switch campaignType {
    case model.CampaignTypePhysicalEvent:
        return []string{EventPlanningWorkflow, EmailCampaignWorkflow}, nil
    case model.CampaignTypeEmailOnly:
        return []string{EmailCampaignWorkflow}, nil
    default:
        return nil, appErrors.NewInvalidCampaignType(string(campaignType))
    }
}
