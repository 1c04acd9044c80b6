package migration

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	"shortlist-console/migrations"
)

func TestLoadMigrations_OrdersAndFilters(t *testing.T) {
	fsys := fstest.MapFS{
		"sql/V2__second.sql": {Data: []byte("SELECT 2;")},
		"sql/V1__first.sql":  {Data: []byte("  SELECT 1;  ")},
		"sql/README.md":      {Data: []byte("ignored")},
		"sql/V3_bad.sql":     {Data: []byte("SELECT 3;")},
	}

	migs, err := LoadMigrations(fsys, "sql")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(migs) != 2 {
		t.Fatalf("expected 2 migrations, got %d", len(migs))
	}
	if migs[0].Version != 1 || migs[0].Name != "first" || migs[0].SQL != "SELECT 1;" {
		t.Fatalf("unexpected first migration: %+v", migs[0])
	}
	if migs[1].Version != 2 {
		t.Fatalf("unexpected second migration: %+v", migs[1])
	}
}

func TestLoadMigrations_Errors(t *testing.T) {
	dup := fstest.MapFS{
		"V1__a.sql":  {Data: []byte("SELECT 1;")},
		"V01__b.sql": {Data: []byte("SELECT 1;")},
	}
	if _, err := LoadMigrations(dup, ""); err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("expected duplicate error, got %v", err)
	}

	empty := fstest.MapFS{"V1__a.sql": {Data: []byte("   ")}}
	if _, err := LoadMigrations(empty, ""); err == nil {
		t.Fatalf("expected empty file error")
	}

	migs, err := LoadMigrations(fstest.MapFS{}, "missing")
	if err != nil || len(migs) != 0 {
		t.Fatalf("expected no migrations for missing dir, got %v %v", migs, err)
	}
}

func TestPending_ChecksumMismatch(t *testing.T) {
	migs := []Migration{{Version: 1, Name: "a", Checksum: "x"}, {Version: 2, Name: "b", Checksum: "y"}}

	pending, err := Pending(migs, map[int64]string{1: "x"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(pending) != 1 || pending[0].Version != 2 {
		t.Fatalf("unexpected pending: %+v", pending)
	}

	if _, err := Pending(migs, map[int64]string{1: "changed"}); err == nil {
		t.Fatalf("expected checksum mismatch")
	}
}

func TestEmbeddedMigrations(t *testing.T) {
	migs, err := LoadMigrations(migrations.Files, ".")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(migs) == 0 || !strings.Contains(migs[0].SQL, "console_events") {
		t.Fatalf("expected embedded console_events migration, got %+v", migs)
	}
}

func TestRun_NilDB(t *testing.T) {
	if _, err := (Runner{FS: fstest.MapFS{}}).Run(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil db")
	}
}
