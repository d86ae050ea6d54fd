package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"equipment-ingest/internal/model"
)

// limitedStore throttles every round trip through a shared token bucket.
type limitedStore struct {
	next    Store
	limiter *rate.Limiter
}

// WithRateLimit wraps s so that at most r calls per second (bursting to b) reach it.
// A non-positive r returns s unchanged.
func WithRateLimit(s Store, r rate.Limit, b int) Store {
	if r <= 0 {
		return s
	}
	if b <= 0 {
		b = 1
	}
	return &limitedStore{next: s, limiter: rate.NewLimiter(r, b)}
}

func (l *limitedStore) wait(ctx context.Context, op string) error {
	if err := l.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("store: %s: %w: rate limiter: %w", op, ErrConnectivity, err)
	}
	return nil
}

func (l *limitedStore) FindClientByName(ctx context.Context, name string) (*uuid.UUID, error) {
	if err := l.wait(ctx, "find client"); err != nil {
		return nil, err
	}
	return l.next.FindClientByName(ctx, name)
}

func (l *limitedStore) InsertClient(ctx context.Context, c model.Client) (int64, error) {
	if err := l.wait(ctx, "insert client"); err != nil {
		return 0, err
	}
	return l.next.InsertClient(ctx, c)
}

func (l *limitedStore) UpsertEquipment(ctx context.Context, e model.Equipment) (int64, error) {
	if err := l.wait(ctx, "upsert equipment"); err != nil {
		return 0, err
	}
	return l.next.UpsertEquipment(ctx, e)
}

func (l *limitedStore) CountEquipment(ctx context.Context) (int64, error) {
	if err := l.wait(ctx, "count equipment"); err != nil {
		return 0, err
	}
	return l.next.CountEquipment(ctx)
}
