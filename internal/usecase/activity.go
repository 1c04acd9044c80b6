package usecase

import (
	"context"
	"log"
	"time"

	"shortlist-console/internal/repository"
)

// Activity records console events. Recording never fails the caller.
type Activity struct {
	events repository.ConsoleEventRepository
	logger *log.Logger
}

func NewActivity(events repository.ConsoleEventRepository, logger *log.Logger) *Activity {
	if events == nil {
		events = repository.NoopConsoleEventRepository{}
	}
	return &Activity{events: events, logger: logger}
}

func (a *Activity) Record(ctx context.Context, companyID string, kind repository.ConsoleEventKind, subject, detail string) {
	if a == nil || companyID == "" {
		return
	}
	err := a.events.Record(ctx, repository.ConsoleEvent{
		CompanyID: companyID,
		Kind:      kind,
		Subject:   subject,
		Detail:    detail,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil && a.logger != nil {
		a.logger.Printf("[Activity] record failed company_id=%s kind=%s err=%v", companyID, kind, err)
	}
}

func (a *Activity) Recent(ctx context.Context, companyID string, limit int) []repository.ConsoleEvent {
	if a == nil || companyID == "" {
		return []repository.ConsoleEvent{}
	}
	out, err := a.events.ListRecent(ctx, companyID, limit)
	if err != nil {
		if a.logger != nil {
			a.logger.Printf("[Activity] list failed company_id=%s err=%v", companyID, err)
		}
		return []repository.ConsoleEvent{}
	}
	return out
}
