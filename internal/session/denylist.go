package session

import (
	"context"
	"strings"
	"time"
)

const (
	revokedKeyPrefix = "session:revoked:"
	rotatedKeyPrefix = "session:rotated:"
)

// Denylist records token ids that were revoked before their natural expiry.
// A rotated id stays usable for a short grace period so requests that raced
// the rotation with the old cookie still refresh.
type Denylist interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	Rotate(ctx context.Context, tokenID string, grace, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type kvStore interface {
	SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
	Exists(ctx context.Context, key string) (bool, error)
	Delete(ctx context.Context, key string) error
}

type kvDenylist struct {
	kv kvStore
}

// NewDenylist stores revoked token ids in a key/value store such as Redis.
func NewDenylist(kv kvStore) Denylist {
	if kv == nil {
		return NoopDenylist{}
	}
	return kvDenylist{kv: kv}
}

// Revoke takes effect immediately, cutting short any rotation grace.
func (d kvDenylist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	tokenID = strings.TrimSpace(tokenID)
	if tokenID == "" || ttl <= 0 {
		return nil
	}
	if err := d.kv.Delete(ctx, rotatedKeyPrefix+tokenID); err != nil {
		return err
	}
	_, err := d.kv.SetIfNotExists(ctx, revokedKeyPrefix+tokenID, "1", ttl)
	return err
}

// Rotate revokes tokenID once grace has passed. Repeated calls do not extend
// the grace period.
func (d kvDenylist) Rotate(ctx context.Context, tokenID string, grace, ttl time.Duration) error {
	tokenID = strings.TrimSpace(tokenID)
	if tokenID == "" || ttl <= 0 {
		return nil
	}
	if grace > 0 {
		if _, err := d.kv.SetIfNotExists(ctx, rotatedKeyPrefix+tokenID, "1", grace); err != nil {
			return err
		}
	}
	_, err := d.kv.SetIfNotExists(ctx, revokedKeyPrefix+tokenID, "1", ttl)
	return err
}

func (d kvDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	tokenID = strings.TrimSpace(tokenID)
	if tokenID == "" {
		return false, nil
	}
	revoked, err := d.kv.Exists(ctx, revokedKeyPrefix+tokenID)
	if err != nil || !revoked {
		return false, err
	}
	inGrace, err := d.kv.Exists(ctx, rotatedKeyPrefix+tokenID)
	if err != nil {
		return true, err
	}
	return !inGrace, nil
}

type NoopDenylist struct{}

func (NoopDenylist) Revoke(context.Context, string, time.Duration) error                { return nil }
func (NoopDenylist) Rotate(context.Context, string, time.Duration, time.Duration) error { return nil }
func (NoopDenylist) IsRevoked(context.Context, string) (bool, error)                    { return false, nil }
