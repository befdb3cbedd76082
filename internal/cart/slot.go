package cart

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/guardtag/guardtag-backend/pkg/redis"
)

// Slot is the durable storage for one cart session. Save overwrites the
// whole snapshot; Load returns ErrSlotEmpty when nothing was ever saved.
type Slot interface {
	Save(ctx context.Context, sessionID string, snapshot []byte) error
	Load(ctx context.Context, sessionID string) ([]byte, error)
	Clear(ctx context.Context, sessionID string) error
}

// ErrSlotEmpty signals that no snapshot exists for the session.
var ErrSlotEmpty = stderrors.New("cart: slot empty")

type redisSlot struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSlot stores snapshots under the namespaced cart key with a
// sliding TTL so abandoned carts eventually expire.
func NewRedisSlot(client *redis.Client, ttl time.Duration) Slot {
	return &redisSlot{client: client, ttl: ttl}
}

func (s *redisSlot) Save(ctx context.Context, sessionID string, snapshot []byte) error {
	return s.client.Set(ctx, s.client.CartSlotKey(sessionID), snapshot, s.ttl)
}

func (s *redisSlot) Load(ctx context.Context, sessionID string) ([]byte, error) {
	value, err := s.client.Get(ctx, s.client.CartSlotKey(sessionID))
	if err != nil {
		if stderrors.Is(err, redis.Nil) {
			return nil, ErrSlotEmpty
		}
		return nil, err
	}
	return []byte(value), nil
}

func (s *redisSlot) Clear(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, s.client.CartSlotKey(sessionID))
}
