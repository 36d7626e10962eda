package queue

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/unclebandit/campaignrouter-backend/internal/metrics"
	"github.com/unclebandit/campaignrouter-backend/internal/repository"
	"github.com/unclebandit/campaignrouter-backend/internal/ticketing"
	"github.com/unclebandit/campaignrouter-backend/internal/workflow"
)

// Queue interface
type Queue interface {
	Publish(topic string, payload any) error
	Subscribe(topic string, handler func(payload any) error) error
}

// InMemoryQueue is a production-ready in-memory queue with retry
type InMemoryQueue struct {
	mu       sync.Mutex
	handlers map[string][]func(payload any) error
}

// NewInMemoryQueue creates a new queue
func NewInMemoryQueue() *InMemoryQueue {
	return &InMemoryQueue{
		handlers: make(map[string][]func(payload any) error),
	}
}

// JobPayload wraps a message payload with retry info
type JobPayload struct {
	Payload    any
	RetryCount int
	MaxRetries int
}

// Publish sends a message to all subscribers
func (q *InMemoryQueue) Publish(topic string, payload any) error {
	q.mu.Lock()
	handlers := q.handlers[topic]
	q.mu.Unlock()

	if len(handlers) == 0 {
		return fmt.Errorf("no subscribers for topic %s", topic)
	}

	job := JobPayload{
		Payload:    payload,
		RetryCount: 0,
		MaxRetries: 3,
	}

	for _, handler := range handlers {
		go q.processJob(handler, job)
	}

	return nil
}

// processJob handles retries and errors
func (q *InMemoryQueue) processJob(handler func(payload any) error, job JobPayload) {
	for job.RetryCount <= job.MaxRetries {
		err := handler(job.Payload)
		if err == nil {
			return // ACK
		}

		job.RetryCount++
		log.Printf("Job failed (attempt %d/%d): %+v, error: %v\n", job.RetryCount, job.MaxRetries, job.Payload, err)

		if job.RetryCount > job.MaxRetries {
			log.Printf("Job permanently failed after %d attempts: %+v\n", job.MaxRetries, job.Payload)
			return // No requeue
		}

		// Exponential backoff before retry
		time.Sleep(time.Duration(job.RetryCount*500) * time.Millisecond)
	}
}

// Subscribe adds a handler for a topic
func (q *InMemoryQueue) Subscribe(topic string, handler func(payload any) error) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.handlers[topic] = append(q.handlers[topic], handler)
	return nil
}

// StartTicketCreateSubscriber processes queued ticket-creation jobs: it
// rebuilds the parent descriptor from the ticket row plus the registry and
// hands it to the ticketing client. A failed parent never blocks the other
// parent of the same request.
func StartTicketCreateSubscriber(q Queue, ticketRepo repository.TicketRepositoryInterface, requestRepo repository.RequestRepositoryInterface, reg *workflow.Registry, client ticketing.Client) {
	go func() {
		err := q.Subscribe("ticket_creates", func(payload any) error {
			ticketID, ok := payload.(int)
			if !ok {
				log.Println("⚠️ Invalid payload type, expected int")
				return nil // no retry
			}

			log.Println("📩 Processing queued ticket ID:", ticketID)

			ticket, err := ticketRepo.GetByID(ticketID)
			if err != nil {
				log.Println("⚠️ Failed to fetch ticket:", err)
				return err
			}
			if ticket == nil {
				log.Println("⚠️ Ticket not found for ID:", ticketID)
				return nil // no retry
			}
			if ticket.Status == "created" {
				return nil // already created elsewhere, skip
			}

			tpl, err := reg.Lookup(ticket.Workflow)
			if err != nil {
				// registry drifted from the stored row, a defect
				log.Println("⚠️ Workflow not registered for ticket:", err)
				return nil
			}

			parent := tpl.ParentTicketFor(ticket.Title)
			created, err := client.CreateParentTicket(parent)
			if err != nil {
				log.Println("⚠️ Failed to create parent ticket:", err)
				_ = ticketRepo.UpdateTicketStatus(ticketID, "failed", "", err.Error())
				if m := metrics.Global(); m != nil {
					m.TicketsFailedTotal.WithLabelValues(ticket.Workflow).Inc()
				}
				return err // triggers retry in queue
			}

			ticket.Status = "created"
			ticket.RemoteRef = created.RemoteRef
			ticket.BoardURL = created.BoardURL
			ticket.LastError = ""
			if err := ticketRepo.Update(ticket); err != nil {
				log.Println("⚠️ Failed to update ticket status:", err)
				return err // retry
			}

			// When every parent of the request is created, the request is routed
			pending, err := ticketRepo.CountPending(ticket.RequestID)
			if err == nil && pending == 0 {
				if err := requestRepo.UpdateStatus(ticket.RequestID, "routed"); err != nil {
					log.Println("⚠️ Failed to mark request routed:", err)
				}
			}

			if m := metrics.Global(); m != nil {
				m.TicketsCreatedTotal.WithLabelValues(ticket.Workflow).Inc()
			}

			log.Println("✅ Ticket created:", ticketID, "->", created.BoardURL)
			return nil
		})

		if err != nil {
			log.Println("⚠️ Failed to start subscriber for ticket_creates:", err)
		}
	}()
}
