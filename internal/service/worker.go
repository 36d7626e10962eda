package service

import (
	"log"

	"github.com/unclebandit/campaignrouter-backend/internal/model"
)

// WorkerTicketRepository defines the methods the worker needs
type WorkerTicketRepository interface {
	GetByID(id int) (*model.Ticket, error)
	Update(t *model.Ticket) error
}

// Worker processes parent-ticket creation jobs
type Worker struct {
	TicketRepo WorkerTicketRepository
	JobChan    <-chan int
	CreateFunc func(title string) (string, bool)
}

// Constructor
func NewWorker(repo WorkerTicketRepository, jobChan <-chan int, createFunc func(title string) (string, bool)) *Worker {
	return &Worker{
		TicketRepo: repo,
		JobChan:    jobChan,
		CreateFunc: createFunc,
	}
}

// Start begins processing jobs
func (w *Worker) Start() {
	for jobID := range w.JobChan {
		ticket, err := w.TicketRepo.GetByID(jobID)
		if err != nil {
			log.Println("Failed to get ticket:", err)
			continue
		}
		if ticket == nil || ticket.Status == "created" {
			continue
		}

		remoteRef, ok := w.CreateFunc(ticket.Title)
		if ok {
			ticket.Status = "created"
			ticket.RemoteRef = remoteRef
		} else {
			ticket.Status = "failed"
			ticket.RetryCount += 1
		}

		w.TicketRepo.Update(ticket)
	}
}
