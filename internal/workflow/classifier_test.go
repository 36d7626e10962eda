package workflow_test

import (
	"errors"
	"testing"

	appErrors "github.com/unclebandit/campaignrouter-backend/internal/errors"
	"github.com/unclebandit/campaignrouter-backend/internal/model"
	"github.com/unclebandit/campaignrouter-backend/internal/workflow"
)

func TestClassifyPhysicalEvent(t *testing.T) {
	names, err := workflow.Classify(model.CampaignTypePhysicalEvent)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(names) != 2 {
		t.Fatalf("expected 2 workflows, got %d", len(names))
	}
	// event ticket is listed before the email ticket
	if names[0] != workflow.EventPlanningWorkflow {
		t.Errorf("expected %s first, got %s", workflow.EventPlanningWorkflow, names[0])
	}
	if names[1] != workflow.EmailCampaignWorkflow {
		t.Errorf("expected %s second, got %s", workflow.EmailCampaignWorkflow, names[1])
	}
}

func TestClassifyEmailOnly(t *testing.T) {
	names, err := workflow.Classify(model.CampaignTypeEmailOnly)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(names) != 1 {
		t.Fatalf("expected 1 workflow, got %d", len(names))
	}
	if names[0] != workflow.EmailCampaignWorkflow {
		t.Errorf("expected %s, got %s", workflow.EmailCampaignWorkflow, names[0])
	}
}

func TestClassifyInvalidType(t *testing.T) {
	names, err := workflow.Classify(model.CampaignType("unknown"))
	if err == nil {
		t.Fatal("expected error for unknown campaign type")
	}
	if names != nil {
		t.Errorf("expected no workflows, got %v", names)
	}

	var invalid *appErrors.ErrInvalidCampaignType
	if !errors.As(err, &invalid) {
		t.Fatalf("expected ErrInvalidCampaignType, got %T", err)
	}
	if invalid.Value != "unknown" {
		t.Errorf("expected value %q, got %q", "unknown", invalid.Value)
	}
}
