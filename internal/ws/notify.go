package ws

import (
	"encoding/json"
	"strings"
	"time"
)

const (
	EventJobCreated           = "job_created"
	EventApplicationSubmitted = "application_submitted"
)

type ConsoleEvent struct {
	Type      string `json:"type"`
	JobID     string `json:"jobId,omitempty"`
	Subject   string `json:"subject,omitempty"`
	Timestamp string `json:"timestamp"`
}

// Notifier pushes console events to a company's live dashboards.
type Notifier interface {
	Notify(companyID, eventType, jobID, subject string)
}

func (h *Hub) Notify(companyID, eventType, jobID, subject string) {
	if h == nil {
		return
	}
	companyID = strings.TrimSpace(companyID)
	if companyID == "" {
		return
	}

	b, err := json.Marshal(ConsoleEvent{
		Type:      eventType,
		JobID:     jobID,
		Subject:   subject,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return
	}
	h.Broadcast(companyID, b)
}

type NoopNotifier struct{}

func (NoopNotifier) Notify(string, string, string, string) {}

var (
	_ Notifier = (*Hub)(nil)
	_ Notifier = NoopNotifier{}
)
