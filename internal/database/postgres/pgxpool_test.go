package postgres

import (
	"context"
	"strings"
	"testing"

	"shortlist-console/internal/config"
)

func TestDSN_DefaultsPort(t *testing.T) {
	dsn := DSN(config.DatabaseConfig{DBHost: " db ", DBUser: "console", DBName: "events", DBSSLMode: "disable"})
	for _, want := range []string{"host=db", "port=5432", "user=console", "dbname=events", "sslmode=disable"} {
		if !strings.Contains(dsn, want) {
			t.Fatalf("dsn %q missing %q", dsn, want)
		}
	}
}

func TestPool_NilIsSafe(t *testing.T) {
	var p *Pool
	if err := p.Ping(context.Background()); err == nil {
		t.Fatalf("expected error from nil pool")
	}
	if err := p.QueryRow(context.Background(), "SELECT 1").Scan(); err == nil {
		t.Fatalf("expected error from nil row")
	}
	if err := p.Close(); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}
