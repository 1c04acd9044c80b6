package usecase

import (
	"context"
	"strings"
	"time"
)

type JobsCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

func JobsCacheKey(companyID string) string {
	return "console:jobs:" + strings.TrimSpace(companyID)
}
