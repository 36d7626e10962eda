package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/unclebandit/campaignrouter-backend/internal/config"
	"github.com/unclebandit/campaignrouter-backend/internal/workflow"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "workflows.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

func TestApplyWorkflowOverrides(t *testing.T) {
	path := writeFile(t, `
workflows:
  email_campaign:
    - description: "Campaign strategy"
      owner: email_marketer
    - description: "Localization pass"
      owner: email_marketer
`)

	reg := workflow.NewRegistry()
	if err := config.ApplyWorkflowOverrides(reg, path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tpl, err := reg.Lookup(workflow.EmailCampaignWorkflow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tpl.Tasks) != 2 {
		t.Fatalf("expected overridden task list of 2, got %d", len(tpl.Tasks))
	}
	if tpl.Tasks[1].Description != "Localization pass" {
		t.Errorf("unexpected task: %q", tpl.Tasks[1].Description)
	}

	// the other workflow is untouched
	event, _ := reg.Lookup(workflow.EventPlanningWorkflow)
	if len(event.Tasks) != 5 {
		t.Errorf("expected event workflow unchanged, got %d tasks", len(event.Tasks))
	}
}

func TestApplyWorkflowOverridesRejectsUnknownWorkflow(t *testing.T) {
	path := writeFile(t, `
workflows:
  sms_blast:
    - description: "Write copy"
      owner: email_marketer
`)

	reg := workflow.NewRegistry()
	if err := config.ApplyWorkflowOverrides(reg, path); err == nil {
		t.Fatal("expected unknown workflow to be rejected")
	}
}

func TestApplyWorkflowOverridesRejectsEmailReminder(t *testing.T) {
	path := writeFile(t, `
workflows:
  email_campaign:
    - description: "Send automation"
      owner: email_marketer
      calendar_reminder: true
`)

	reg := workflow.NewRegistry()
	if err := config.ApplyWorkflowOverrides(reg, path); err == nil {
		t.Fatal("expected email calendar reminder to be rejected")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SERVER_ADDR", "")
	t.Setenv("AMQP_URL", "")

	cfg := config.Load()
	if cfg.ListenAddr != ":8080" {
		t.Errorf("expected default listen addr :8080, got %s", cfg.ListenAddr)
	}
	if cfg.AMQPURL == "" {
		t.Error("expected a default AMQP URL")
	}
}
