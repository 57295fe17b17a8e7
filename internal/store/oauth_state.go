package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"onboardly.app/portal/internal/model"
)

type redisOAuthStateStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewOAuthStateStore keeps OAuth state in redis under "<prefix>:oauth_state:<uuid>".
func NewOAuthStateStore(client *redis.Client, prefix string, ttl time.Duration) OAuthStateStore {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &redisOAuthStateStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *redisOAuthStateStore) Save(ctx context.Context, state *model.OAuthState) (string, error) {
	if state.CreatedAt.IsZero() {
		state.CreatedAt = time.Now().UTC()
	}

	payload, err := json.Marshal(state)
	if err != nil {
		return "", fmt.Errorf("encoding oauth state: %w", err)
	}

	key := uuid.NewString()
	if err := s.client.Set(ctx, s.redisKey(key), payload, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("storing oauth state: %w", err)
	}
	return key, nil
}

func (s *redisOAuthStateStore) Consume(ctx context.Context, key string) (*model.OAuthState, error) {
	if _, err := uuid.Parse(key); err != nil {
		return nil, ErrNotFound
	}

	payload, err := s.client.GetDel(ctx, s.redisKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("loading oauth state: %w", err)
	}

	var state model.OAuthState
	if err := json.Unmarshal(payload, &state); err != nil {
		return nil, fmt.Errorf("decoding oauth state: %w", err)
	}
	return &state, nil
}

func (s *redisOAuthStateStore) redisKey(key string) string {
	if s.prefix == "" {
		return "oauth_state:" + key
	}
	return s.prefix + ":oauth_state:" + key
}
