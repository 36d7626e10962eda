// internal/workflow/registry.go
package workflow

import (
    "fmt"

    appErrors "github.com/unclebandit/campaignrouter-backend/internal/errors"
    "github.com/unclebandit/campaignrouter-backend/internal/model"
)

// Workflow names registered at startup. These are the only two.
const (
    EventPlanningWorkflow = "event_planning"
    EmailCampaignWorkflow = "email_campaign"
)

// Registry holds the fixed workflow templates. Built once at process start,
// read-only afterwards, safe for concurrent lookups without locking.
type Registry struct {
    templates map[string]model.WorkflowTemplate
}

// NewRegistry builds the registry with the built-in templates.
func NewRegistry() *Registry {
    return &Registry{
        templates: map[string]model.WorkflowTemplate{
            EventPlanningWorkflow: {
                Name:          EventPlanningWorkflow,
                Team:          "event-planning",
                TitleTemplate: "Event Planning: {campaign_name}",
                Tasks: []model.TaskDefinition{
                    {Description: "Venue booking and logistics", Owner: model.RoleEventPlanner, CalendarReminder: true},
                    {Description: "Event timeline and agenda", Owner: model.RoleEventPlanner},
                    {Description: "Speaker and presenter coordination", Owner: model.RoleEventPlanner},
                    {Description: "Materials and setup planning", Owner: model.RoleEventPlanner},
                    {Description: "Registration and on-site execution", Owner: model.RoleEventPlanner, CalendarReminder: true},
                },
            },
            EmailCampaignWorkflow: {
                Name:          EmailCampaignWorkflow,
                Team:          "email",
                TitleTemplate: "Email Campaign: {campaign_name}",
                // Email-only campaigns never generate calendar reminders
                Tasks: []model.TaskDefinition{
                    {Description: "Campaign strategy", Owner: model.RoleEmailMarketer},
                    {Description: "Audience segmentation", Owner: model.RoleEmailMarketer},
                    {Description: "Content creation", Owner: model.RoleEmailMarketer},
                    {Description: "A/B testing", Owner: model.RoleEmailMarketer},
                    {Description: "Send automation", Owner: model.RoleEmailMarketer},
                    {Description: "Performance analysis", Owner: model.RoleEmailMarketer},
                },
            },
        },
    }
}

// Lookup returns a copy of the named template so callers cannot mutate the
// registry through the returned task slice.
func (r *Registry) Lookup(name string) (model.WorkflowTemplate, error) {
    tpl, ok := r.templates[name]
    if !ok {
        return model.WorkflowTemplate{}, appErrors.NewUnknownWorkflow(name)
    }
    tasks := make([]model.TaskDefinition, len(tpl.Tasks))
    copy(tasks, tpl.Tasks)
    tpl.Tasks = tasks
    return tpl, nil
}

// Names returns the registered workflow names in display order.
func (r *Registry) Names() []string {
    return []string{EventPlanningWorkflow, EmailCampaignWorkflow}
}

// ApplyOverride replaces the task list of a registered workflow. Only called
// during startup, before the registry is shared.
func (r *Registry) ApplyOverride(name string, tasks []model.TaskDefinition) error {
    tpl, ok := r.templates[name]
    if !ok {
        return appErrors.NewUnknownWorkflow(name)
    }
    if len(tasks) == 0 {
        return fmt.Errorf("workflow %q override has no tasks", name)
    }
    for _, task := range tasks {
        if task.Description == "" {
            return fmt.Errorf("workflow %q override has a task with no description", name)
        }
        if task.Owner != model.RoleEventPlanner && task.Owner != model.RoleEmailMarketer {
            return fmt.Errorf("workflow %q override has unknown owner %q", name, task.Owner)
        }
        if name == EmailCampaignWorkflow && task.CalendarReminder {
            return fmt.Errorf("workflow %q cannot carry calendar reminders", name)
        }
    }
    tpl.Tasks = tasks
    r.templates[name] = tpl
    return nil
}
