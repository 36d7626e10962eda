// internal/errors/errors.go
package appErrors

import "fmt"

// ErrInvalidCampaignType is a sentinel error for campaign types outside the
// closed physical_event/email_only set
type ErrInvalidCampaignType struct {
    Value string
}

func (e *ErrInvalidCampaignType) Error() string {
    return fmt.Sprintf("invalid campaign type: %q", e.Value)
}

// Helper constructor
func NewInvalidCampaignType(value string) error {
    return &ErrInvalidCampaignType{Value: value}
}

// ErrUnknownWorkflow means the classifier referenced a workflow missing from
// the registry. Indicates a defect, not a user error.
type ErrUnknownWorkflow struct {
    Name string
}

func (e *ErrUnknownWorkflow) Error() string {
    return fmt.Sprintf("unknown workflow: %q", e.Name)
}

func NewUnknownWorkflow(name string) error {
    return &ErrUnknownWorkflow{Name: name}
}

// ErrRequestNotFound is a sentinel error
type ErrRequestNotFound struct {
    RequestID int
}

func (e *ErrRequestNotFound) Error() string {
    return fmt.Sprintf("campaign request with ID %d not found", e.RequestID)
}

func NewRequestNotFound(id int) error {
    return &ErrRequestNotFound{RequestID: id}
}
