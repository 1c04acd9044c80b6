package repository

import (
	"context"
	"strings"
	"time"

	"shortlist-console/internal/database"

	"github.com/google/uuid"
)

type ConsoleEventKind string

const (
	EventLogin                ConsoleEventKind = "login"
	EventLogout               ConsoleEventKind = "logout"
	EventJobCreated           ConsoleEventKind = "job_created"
	EventApplicationSubmitted ConsoleEventKind = "application_submitted"
)

type ConsoleEvent struct {
	ID        uuid.UUID
	CompanyID string
	Kind      ConsoleEventKind
	Subject   string
	Detail    string
	CreatedAt time.Time
}

type ConsoleEventRepository interface {
	Record(ctx context.Context, ev ConsoleEvent) error
	ListRecent(ctx context.Context, companyID string, limit int) ([]ConsoleEvent, error)
}

type PostgresConsoleEventRepository struct {
	db database.DB
}

func NewPostgresConsoleEventRepository(db database.DB) *PostgresConsoleEventRepository {
	return &PostgresConsoleEventRepository{db: db}
}

func (r *PostgresConsoleEventRepository) Record(ctx context.Context, ev ConsoleEvent) error {
	if ev.ID == uuid.Nil {
		ev.ID = uuid.New()
	}
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO console_events (id, company_id, kind, subject, detail, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		ev.ID,
		strings.TrimSpace(ev.CompanyID),
		string(ev.Kind),
		ev.Subject,
		ev.Detail,
		ev.CreatedAt,
	)
	return err
}

func (r *PostgresConsoleEventRepository) ListRecent(ctx context.Context, companyID string, limit int) ([]ConsoleEvent, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, company_id, kind, subject, detail, created_at
		 FROM console_events
		 WHERE company_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		strings.TrimSpace(companyID),
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ConsoleEvent, 0, limit)
	for rows.Next() {
		var ev ConsoleEvent
		var kind string
		if err := rows.Scan(&ev.ID, &ev.CompanyID, &kind, &ev.Subject, &ev.Detail, &ev.CreatedAt); err != nil {
			return nil, err
		}
		ev.Kind = ConsoleEventKind(kind)
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// NoopConsoleEventRepository is used when no database is configured.
type NoopConsoleEventRepository struct{}

func (NoopConsoleEventRepository) Record(context.Context, ConsoleEvent) error { return nil }

func (NoopConsoleEventRepository) ListRecent(context.Context, string, int) ([]ConsoleEvent, error) {
	return []ConsoleEvent{}, nil
}

var (
	_ ConsoleEventRepository = (*PostgresConsoleEventRepository)(nil)
	_ ConsoleEventRepository = NoopConsoleEventRepository{}
)
