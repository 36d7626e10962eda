// cmd/server/main.go
package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/unclebandit/campaignrouter-backend/internal/config"
	"github.com/unclebandit/campaignrouter-backend/internal/controller"
	"github.com/unclebandit/campaignrouter-backend/internal/db"
	"github.com/unclebandit/campaignrouter-backend/internal/handler"
	"github.com/unclebandit/campaignrouter-backend/internal/metrics"
	"github.com/unclebandit/campaignrouter-backend/internal/queue"
	"github.com/unclebandit/campaignrouter-backend/internal/repository"
	"github.com/unclebandit/campaignrouter-backend/internal/service"
	"github.com/unclebandit/campaignrouter-backend/internal/ticketing"
	"github.com/unclebandit/campaignrouter-backend/internal/workflow"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, relying on OS environment variables")
	}

	cfg := config.Load()

	// Init DB
	db.Init()
	q := queue.NewInMemoryQueue()

	requestRepo := &repository.RequestRepository{DB: db.DB}
	ticketRepo := &repository.TicketRepository{DB: db.DB}

	// Workflow templates are fixed at startup; the optional override file can
	// reshape the task lists but not add workflows
	registry := workflow.NewRegistry()
	if cfg.WorkflowsFile != "" {
		if err := config.ApplyWorkflowOverrides(registry, cfg.WorkflowsFile); err != nil {
			log.Fatalf("failed to apply workflow overrides: %v", err)
		}
		log.Println("✅ Workflow overrides loaded from", cfg.WorkflowsFile)
	}

	m := metrics.New()
	metrics.SetGlobal(m)

	queue.StartTicketCreateSubscriber(q, ticketRepo, requestRepo, registry, ticketing.MockClient{})

	requestService := &service.RequestService{
		RequestRepo: requestRepo,
		TicketRepo:  ticketRepo,
		Composer:    &workflow.Composer{Registry: registry},
		Queue:       q,
	}

	requestController := &controller.RequestController{
		RequestService: requestService,
		AMQPURL:        cfg.AMQPURL,
	}

	requestHandler := &handler.RequestHandler{
		Service:  requestService,
		Registry: registry,
	}

	r := chi.NewRouter()
	r.Use(metrics.HTTPMiddleware)

	// Campaign request routes
	r.Post("/requests", requestController.SubmitRequest)
	r.Get("/requests", requestController.ListRequests)
	r.Post("/requests/{id}/plan-preview", requestController.PlanPreview)
	r.Get("/requests/{id}", requestHandler.GetRequestHandlerWithStats)
	r.Get("/workflows/{name}", requestHandler.GetWorkflowHandler)
	r.Handle("/metrics", m.Handler())

	log.Println("🚀 Server running on", cfg.ListenAddr)
	log.Fatal(http.ListenAndServe(cfg.ListenAddr, r))
}
