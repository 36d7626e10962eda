package workflow_test

import (
	"errors"
	"reflect"
	"testing"

	appErrors "github.com/unclebandit/campaignrouter-backend/internal/errors"
	"github.com/unclebandit/campaignrouter-backend/internal/model"
	"github.com/unclebandit/campaignrouter-backend/internal/workflow"
)

func newComposer() *workflow.Composer {
	return &workflow.Composer{Registry: workflow.NewRegistry()}
}

func physicalEventRequest() *model.CampaignRequest {
	return &model.CampaignRequest{
		Reference:    "req-ref-1",
		Name:         "Community Meetup - Chicago",
		CampaignType: model.CampaignTypePhysicalEvent,
		RequestedBy:  "U024BE7LH",
	}
}

func TestComposePhysicalEvent(t *testing.T) {
	plan, err := newComposer().Compose(physicalEventRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(plan.Parents) != 2 {
		t.Fatalf("expected 2 parent tickets, got %d", len(plan.Parents))
	}

	event := plan.Parents[0]
	email := plan.Parents[1]

	if event.Workflow != workflow.EventPlanningWorkflow || event.Team != "event-planning" {
		t.Errorf("unexpected first parent: %+v", event)
	}
	if email.Workflow != workflow.EmailCampaignWorkflow || email.Team != "email" {
		t.Errorf("unexpected second parent: %+v", email)
	}

	if event.Title != "Event Planning: Community Meetup - Chicago" {
		t.Errorf("unexpected event title: %q", event.Title)
	}
	if email.Title != "Email Campaign: Community Meetup - Chicago" {
		t.Errorf("unexpected email title: %q", email.Title)
	}

	if len(event.Tasks) != 5 {
		t.Errorf("expected 5 event tasks, got %d", len(event.Tasks))
	}
	if len(email.Tasks) != 6 {
		t.Errorf("expected 6 email tasks, got %d", len(email.Tasks))
	}

	// the two parents share no tasks and are owned by different roles
	seen := map[string]bool{}
	for _, task := range event.Tasks {
		if task.Owner != model.RoleEventPlanner {
			t.Errorf("event parent carries task owned by %s", task.Owner)
		}
		seen[task.Description] = true
	}
	for _, task := range email.Tasks {
		if task.Owner != model.RoleEmailMarketer {
			t.Errorf("email parent carries task owned by %s", task.Owner)
		}
		if seen[task.Description] {
			t.Errorf("task %q appears in both parents", task.Description)
		}
	}

	hasReminder := false
	for _, task := range event.Tasks {
		if task.CalendarReminder {
			hasReminder = true
		}
	}
	if !hasReminder {
		t.Error("expected at least one event task with a calendar reminder")
	}
}

func TestComposeEmailOnly(t *testing.T) {
	req := &model.CampaignRequest{
		Reference:    "req-ref-2",
		Name:         "Receipt Heroes Q4 Launch",
		CampaignType: model.CampaignTypeEmailOnly,
	}

	plan, err := newComposer().Compose(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(plan.Parents) != 1 {
		t.Fatalf("expected 1 parent ticket, got %d", len(plan.Parents))
	}

	email := plan.Parents[0]
	if len(email.Tasks) != 6 {
		t.Errorf("expected 6 email tasks, got %d", len(email.Tasks))
	}
	for _, task := range email.Tasks {
		if task.CalendarReminder {
			t.Errorf("email-only campaign produced a calendar reminder on %q", task.Description)
		}
	}
}

func TestComposeIdempotent(t *testing.T) {
	c := newComposer()

	first, err := c.Compose(physicalEventRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := c.Compose(physicalEventRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("expected structurally identical plans for identical input")
	}
}

func TestComposeInvalidType(t *testing.T) {
	req := &model.CampaignRequest{
		Name:         "Mystery Campaign",
		CampaignType: model.CampaignType("carrier_pigeon"),
	}

	plan, err := newComposer().Compose(req)
	if plan != nil {
		t.Errorf("expected no plan, got %+v", plan)
	}

	var invalid *appErrors.ErrInvalidCampaignType
	if !errors.As(err, &invalid) {
		t.Fatalf("expected ErrInvalidCampaignType, got %v", err)
	}
}
