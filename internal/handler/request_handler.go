// internal/handler/request_handler.go
package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	appErrors "github.com/unclebandit/campaignrouter-backend/internal/errors"
	"github.com/unclebandit/campaignrouter-backend/internal/service"
	"github.com/unclebandit/campaignrouter-backend/internal/workflow"
)

// RequestHandler holds the dependencies for request-related HTTP handlers
type RequestHandler struct {
	Service  *service.RequestService
	Registry *workflow.Registry
}

// GetRequestHandlerWithStats returns a request with its tickets and stats
func (h *RequestHandler) GetRequestHandlerWithStats(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "invalid request id", http.StatusBadRequest)
		return
	}

	details, err := h.Service.GetRequestDetailsWithStats(id)
	if err != nil {
		var notFound *appErrors.ErrRequestNotFound
		if errors.As(err, &notFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		log.Println("❌ Error fetching request:", err)
		http.Error(w, "failed to fetch request: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(details)
}

// GetWorkflowHandler exposes a registry lookup so the modal layer can show
// the task list for a workflow before submitting
func (h *RequestHandler) GetWorkflowHandler(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	tpl, err := h.Registry.Lookup(name)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(tpl)
}
