// Package markguard rejects a punch that repeats the same worker and type
// within a short window. It catches client retries at write time; the
// aggregator's implicit close remains the safety net for anything that gets
// through.
package markguard

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"timeclock/backend/foundation/web"
	"timeclock/backend/internal/entity"
)

var ErrDuplicate = errors.New("the same punch was submitted moments ago")

type setter interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
}

type Guard struct {
	client setter
	ttl    time.Duration
}

// New returns a Guard backed by client. A nil client disables the guard.
func New(client *redis.Client, ttl time.Duration) *Guard {
	if client == nil {
		return &Guard{ttl: ttl}
	}

	return &Guard{client: client, ttl: ttl}
}

func key(workerID uuid.UUID, t entity.PunchType) string {
	return fmt.Sprintf("punch:mark:%s:%s", workerID, t)
}

// Acquire claims the (worker, type) slot for the guard's TTL. It returns a
// 409 web error when the slot is already held. Redis failures do not block
// punching; they are returned wrapped so the caller can log them.
func (g *Guard) Acquire(ctx context.Context, workerID uuid.UUID, t entity.PunchType) error {
	if g == nil || g.client == nil || g.ttl <= 0 {
		return nil
	}

	ok, err := g.client.SetNX(ctx, key(workerID, t), time.Now().UTC().Format(time.RFC3339Nano), g.ttl).Result()
	if err != nil {
		return errors.Wrap(err, "markguard setnx")
	}
	if !ok {
		return web.NewRequestError(ErrDuplicate, http.StatusConflict)
	}

	return nil
}
