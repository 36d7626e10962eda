// internal/workflow/composer.go
package workflow

import (
    "github.com/unclebandit/campaignrouter-backend/internal/model"
)

// Composer builds ticket plans from campaign requests. Stateless apart from
// the injected read-only registry.
type Composer struct {
    Registry *Registry
}

// Compose classifies the request and builds one parent descriptor per
// workflow, attaching that workflow's task list unchanged. Parents never
// share tasks; when two exist they reference independent workflows so the
// downstream creation calls can proceed and fail independently.
func (c *Composer) Compose(req *model.CampaignRequest) (*model.TicketPlan, error) {
    names, err := Classify(req.CampaignType)
    if err != nil {
        return nil, err
    }

    plan := &model.TicketPlan{
        RequestReference: req.Reference,
        CampaignName:     req.Name,
        CampaignType:     req.CampaignType,
    }

    for _, name := range names {
        tpl, err := c.Registry.Lookup(name)
        if err != nil {
            return nil, err
        }

        title := RenderTitle(tpl.TitleTemplate, map[string]string{
            "campaign_name": req.Name,
        })

        plan.Parents = append(plan.Parents, tpl.ParentTicketFor(title))
    }

    return plan, nil
}
