// internal/model/workflow.go
package model

// CampaignType is the user-facing classification of a campaign request.
type CampaignType string

const (
    CampaignTypePhysicalEvent CampaignType = "physical_event"
    CampaignTypeEmailOnly     CampaignType = "email_only"
)

// SupportedCampaignTypes maps wire values to the closed set of campaign types.
var SupportedCampaignTypes = map[string]CampaignType{
    "physical_event": CampaignTypePhysicalEvent,
    "email_only":     CampaignTypeEmailOnly,
}

// Role is the team role that owns a task.
type Role string

const (
    RoleEventPlanner  Role = "event_planner"
    RoleEmailMarketer Role = "email_marketer"
)

// TaskDefinition is one subtask inside a workflow template.
type TaskDefinition struct {
    Description      string `json:"description" yaml:"description"`
    Owner            Role   `json:"owner" yaml:"owner"`
    CalendarReminder bool   `json:"calendar_reminder" yaml:"calendar_reminder"`
}

// WorkflowTemplate is a fixed, named, ordered list of subtasks applied to
// every campaign routed to it. Built once at startup, never mutated.
type WorkflowTemplate struct {
    Name          string           `json:"name"`
    Team          string           `json:"team"`
    TitleTemplate string           `json:"title_template"`
    Tasks         []TaskDefinition `json:"tasks"`
}
