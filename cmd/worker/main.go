package main

import (
	"database/sql"
	"encoding/json"
	"log"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/streadway/amqp"

	"github.com/unclebandit/campaignrouter-backend/internal/config"
	"github.com/unclebandit/campaignrouter-backend/internal/db"
	"github.com/unclebandit/campaignrouter-backend/internal/repository"
	"github.com/unclebandit/campaignrouter-backend/internal/ticketing"
	"github.com/unclebandit/campaignrouter-backend/internal/workflow"
)

type QueueJob struct {
	TicketID int `json:"ticket_id"`
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on OS environment variables")
	}

	cfg := config.Load()

	// Connect to DB
	dbConn, err := sql.Open("postgres", db.DSN())
	if err != nil {
		log.Fatal("failed to connect to DB:", err)
	}

	// Repositories
	requestRepo := &repository.RequestRepository{DB: dbConn}
	ticketRepo := &repository.TicketRepository{DB: dbConn}

	registry := workflow.NewRegistry()
	if cfg.WorkflowsFile != "" {
		if err := config.ApplyWorkflowOverrides(registry, cfg.WorkflowsFile); err != nil {
			log.Fatal("failed to apply workflow overrides:", err)
		}
	}

	var client ticketing.Client = ticketing.MockClient{}

	// Connect to RabbitMQ
	conn, err := amqp.Dial(cfg.AMQPURL)
	if err != nil {
		log.Fatal("Failed to connect to RabbitMQ:", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatal("Failed to open a channel:", err)
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(
		"ticket_creates", // name
		true,             // durable
		false,            // delete when unused
		false,            // exclusive
		false,            // no-wait
		nil,              // arguments
	)
	if err != nil {
		log.Fatal("Failed to declare queue:", err)
	}

	msgs, err := ch.Consume(
		q.Name,
		"",
		false, // autoAck = false for reliability
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		log.Fatal("Failed to register consumer:", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var job QueueJob
			if err := json.Unmarshal(d.Body, &job); err != nil {
				log.Println("Invalid job:", err)
				d.Ack(false)
				continue
			}

			err := processTicket(job.TicketID, ticketRepo, requestRepo, registry, client)
			if err != nil {
				log.Println("Failed to create ticket:", err)
				// Retry logic: requeue up to 3 times
				var retryCount int
				if d.Headers["x-retry-count"] != nil {
					retryCount = d.Headers["x-retry-count"].(int)
				}
				if retryCount < 3 {
					d.Nack(false, true) // requeue
					continue
				}
			}

			d.Ack(false)
		}
	}()

	log.Println("Worker running, waiting for ticket jobs...")
	<-forever
}

func processTicket(ticketID int, tickets *repository.TicketRepository, requests *repository.RequestRepository, reg *workflow.Registry, client ticketing.Client) error {
	ticket, err := tickets.GetByID(ticketID)
	if err != nil {
		return err
	}
	if ticket == nil {
		log.Println("Ticket not found for ID:", ticketID)
		return nil
	}
	if ticket.Status == "created" {
		// already handled by the in-process subscriber
		return nil
	}

	tpl, err := reg.Lookup(ticket.Workflow)
	if err != nil {
		return err
	}

	created, err := client.CreateParentTicket(tpl.ParentTicketFor(ticket.Title))
	if err != nil {
		ticket.Status = "failed"
		ticket.LastError = err.Error()
		ticket.RetryCount += 1
		_ = tickets.Update(ticket)
		return err
	}

	ticket.Status = "created"
	ticket.RemoteRef = created.RemoteRef
	ticket.BoardURL = created.BoardURL
	ticket.LastError = ""
	if err := tickets.Update(ticket); err != nil {
		return err
	}

	// Each parent is independent; the request is routed once all are created
	pending, err := tickets.CountPending(ticket.RequestID)
	if err == nil && pending == 0 {
		return requests.UpdateStatus(ticket.RequestID, "routed")
	}
	return nil
}
