package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"alfredoptarigan/talentscout/internal/models"
)

const sessionKeyPrefix = "talentscout:session:"

type redisSessionRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessionRepository stores sessions as JSON values that expire ttl
// after their last save.
func NewRedisSessionRepository(client *redis.Client, ttl time.Duration) SessionRepository {
	return &redisSessionRepository{client: client, ttl: ttl}
}

func sessionKey(id uuid.UUID) string {
	return sessionKeyPrefix + id.String()
}

func (r *redisSessionRepository) Save(ctx context.Context, session models.InterviewSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if err := r.client.Set(ctx, sessionKey(session.ID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (r *redisSessionRepository) FindByID(ctx context.Context, id uuid.UUID) (models.InterviewSession, error) {
	data, err := r.client.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.InterviewSession{}, ErrSessionNotFound
	}
	if err != nil {
		return models.InterviewSession{}, fmt.Errorf("failed to find session: %w", err)
	}

	var session models.InterviewSession
	if err := json.Unmarshal(data, &session); err != nil {
		return models.InterviewSession{}, fmt.Errorf("failed to decode session: %w", err)
	}
	return session, nil
}

func (r *redisSessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	removed, err := r.client.Del(ctx, sessionKey(id)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if removed == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// DeleteIdleBefore is a no-op: redis expires idle sessions through the key TTL.
func (r *redisSessionRepository) DeleteIdleBefore(context.Context, time.Time) (int, error) {
	return 0, nil
}
