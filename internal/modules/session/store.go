// README: Session store in PostgreSQL with a Redis marker for ids already persisted.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

const (
	knownKeyPattern = "session:%s:known"
	knownTTL        = 24 * time.Hour
)

type Store struct {
	db    *pgxpool.Pool
	redis *redis.Client
}

// NewStore takes an optional redis client; nil means every Save hits Postgres.
func NewStore(db *pgxpool.Pool, redis *redis.Client) *Store {
	return &Store{db: db, redis: redis}
}

// Save persists the session id once. Repeated calls are no-ops.
func (s *Store) Save(ctx context.Context, id string) error {
	if s.redis != nil {
		known, err := s.redis.Exists(ctx, knownKey(id)).Result()
		if err == nil && known > 0 {
			return nil
		}
	}
	if _, err := s.db.Exec(ctx, `
        INSERT INTO user_sessions (session_id) VALUES ($1)
        ON CONFLICT (session_id) DO NOTHING`, id); err != nil {
		return err
	}
	if s.redis != nil {
		// Best effort; a missing marker only costs one more insert.
		_ = s.redis.Set(ctx, knownKey(id), "1", knownTTL).Err()
	}
	return nil
}

func knownKey(id string) string {
	return fmt.Sprintf(knownKeyPattern, id)
}
