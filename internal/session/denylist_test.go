package session

import (
	"context"
	"testing"
	"time"
)

// memKV expires nothing; tests drop keys by hand to simulate a TTL running out.
type memKV struct {
	keys map[string]time.Duration
}

func newMemKV() *memKV { return &memKV{keys: map[string]time.Duration{}} }

func (kv *memKV) SetIfNotExists(_ context.Context, key, _ string, ttl time.Duration) (bool, error) {
	if _, ok := kv.keys[key]; ok {
		return false, nil
	}
	kv.keys[key] = ttl
	return true, nil
}

func (kv *memKV) Exists(_ context.Context, key string) (bool, error) {
	_, ok := kv.keys[key]
	return ok, nil
}

func (kv *memKV) Delete(_ context.Context, key string) error {
	delete(kv.keys, key)
	return nil
}

func TestDenylist_RotateKeepsGrace(t *testing.T) {
	kv := newMemKV()
	dl := NewDenylist(kv)
	ctx := context.Background()

	if err := dl.Rotate(ctx, "jti-1", RotationGrace, time.Hour); err != nil {
		t.Fatalf("rotate: %v", err)
	}
	if kv.keys[rotatedKeyPrefix+"jti-1"] != RotationGrace || kv.keys[revokedKeyPrefix+"jti-1"] != time.Hour {
		t.Fatalf("unexpected keys: %v", kv.keys)
	}
	if revoked, _ := dl.IsRevoked(ctx, "jti-1"); revoked {
		t.Fatalf("rotated id should be usable during the grace period")
	}

	delete(kv.keys, rotatedKeyPrefix+"jti-1")
	if revoked, _ := dl.IsRevoked(ctx, "jti-1"); !revoked {
		t.Fatalf("rotated id should be revoked once the grace period ends")
	}
}

func TestDenylist_RevokeEndsGrace(t *testing.T) {
	kv := newMemKV()
	dl := NewDenylist(kv)
	ctx := context.Background()

	_ = dl.Rotate(ctx, "jti-1", RotationGrace, time.Hour)
	if err := dl.Revoke(ctx, "jti-1", time.Hour); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if revoked, _ := dl.IsRevoked(ctx, "jti-1"); !revoked {
		t.Fatalf("revoke must not leave a grace period")
	}
}

func TestDenylist_IgnoresEmptyIDs(t *testing.T) {
	kv := newMemKV()
	dl := NewDenylist(kv)
	ctx := context.Background()

	_ = dl.Revoke(ctx, "  ", time.Hour)
	_ = dl.Rotate(ctx, "", RotationGrace, time.Hour)
	if len(kv.keys) != 0 {
		t.Fatalf("expected no keys, got %v", kv.keys)
	}
	if revoked, _ := dl.IsRevoked(ctx, ""); revoked {
		t.Fatalf("empty id is never revoked")
	}
}
