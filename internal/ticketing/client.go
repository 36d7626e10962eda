// internal/ticketing/client.go
package ticketing

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"github.com/unclebandit/campaignrouter-backend/internal/model"
)

// Client creates parent tickets in the external project-management tool.
// The real integration lives behind this interface; the core never assumes
// anything about its protocol beyond the ParentTicket shape.
type Client interface {
	CreateParentTicket(parent model.ParentTicket) (*CreatedTicket, error)
}

// CreatedTicket is what the external tool hands back for one parent.
type CreatedTicket struct {
	RemoteRef string
	BoardURL  string
}

// MockClient simulates ticket creation with 90% success
type MockClient struct{}

func (MockClient) CreateParentTicket(parent model.ParentTicket) (*CreatedTicket, error) {
	r := rand.Float64()
	if r < 0.9 {
		ref := uuid.NewString()
		return &CreatedTicket{
			RemoteRef: ref,
			BoardURL:  fmt.Sprintf("https://monday.com/boards/%s", ref),
		}, nil
	}
	return nil, fmt.Errorf("mock ticket creation failed")
}
