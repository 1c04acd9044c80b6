package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"testing"
	"time"

	"shortlist-console/internal/database"

	"github.com/google/uuid"
)

type fakeDB struct {
	execQuery string
	execArgs  []any
	queryArgs []any
	rows      [][]any
}

func (f *fakeDB) Ping(context.Context) error { return nil }
func (f *fakeDB) Close() error               { return nil }
func (f *fakeDB) SQLDB() *sql.DB             { return nil }

func (f *fakeDB) Exec(_ context.Context, query string, args ...any) (int64, error) {
	f.execQuery = query
	f.execArgs = args
	return 1, nil
}

func (f *fakeDB) Query(_ context.Context, _ string, args ...any) (database.Rows, error) {
	f.queryArgs = args
	return &fakeRows{rows: f.rows, idx: -1}, nil
}

func (f *fakeDB) QueryRow(context.Context, string, ...any) database.Row { return nil }

type fakeRows struct {
	rows [][]any
	idx  int
}

func (r *fakeRows) Close()     {}
func (r *fakeRows) Err() error { return nil }
func (r *fakeRows) Next() bool {
	r.idx++
	return r.idx < len(r.rows)
}

func (r *fakeRows) Scan(dest ...any) error {
	vals := r.rows[r.idx]
	if len(dest) != len(vals) {
		return fmt.Errorf("scan dest mismatch")
	}
	for i := range dest {
		switch d := dest[i].(type) {
		case *uuid.UUID:
			*d = vals[i].(uuid.UUID)
		case *string:
			*d = vals[i].(string)
		case *time.Time:
			*d = vals[i].(time.Time)
		default:
			return fmt.Errorf("unsupported scan type")
		}
	}
	return nil
}

func TestConsoleEventRepository_RecordFillsDefaults(t *testing.T) {
	db := &fakeDB{}
	repo := NewPostgresConsoleEventRepository(db)

	if err := repo.Record(context.Background(), ConsoleEvent{CompanyID: " acme ", Kind: EventJobCreated, Subject: "Go Engineer"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !strings.Contains(db.execQuery, "INSERT INTO console_events") {
		t.Fatalf("unexpected query: %s", db.execQuery)
	}
	if id, ok := db.execArgs[0].(uuid.UUID); !ok || id == uuid.Nil {
		t.Fatalf("expected generated id, got %v", db.execArgs[0])
	}
	if db.execArgs[1] != "acme" || db.execArgs[2] != "job_created" {
		t.Fatalf("unexpected args: %v", db.execArgs)
	}
	if ts, ok := db.execArgs[5].(time.Time); !ok || ts.IsZero() {
		t.Fatalf("expected created_at to be set")
	}
}

func TestConsoleEventRepository_ListRecent(t *testing.T) {
	now := time.Now().UTC()
	db := &fakeDB{rows: [][]any{
		{uuid.New(), "acme", "login", "alice@acme.com", "", now},
		{uuid.New(), "acme", "application_submitted", "Ann", "job 42", now.Add(-time.Minute)},
	}}
	repo := NewPostgresConsoleEventRepository(db)

	got, err := repo.ListRecent(context.Background(), "acme", 0)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 2 || got[1].Kind != EventApplicationSubmitted {
		t.Fatalf("unexpected events: %+v", got)
	}
	if db.queryArgs[1] != 10 {
		t.Fatalf("expected default limit 10, got %v", db.queryArgs[1])
	}
}
