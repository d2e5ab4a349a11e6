package repositories

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/talentscout/internal/models"
)

var ErrSessionNotFound = errors.New("interview session not found")

// SessionRepository keeps interview sessions between requests.
type SessionRepository interface {
	Save(ctx context.Context, session models.InterviewSession) error
	FindByID(ctx context.Context, id uuid.UUID) (models.InterviewSession, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// DeleteIdleBefore removes sessions last updated before cutoff and
	// returns how many were removed.
	DeleteIdleBefore(ctx context.Context, cutoff time.Time) (int, error)
}

type memorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]models.InterviewSession
}

func NewMemorySessionRepository() SessionRepository {
	return &memorySessionRepository{
		sessions: make(map[uuid.UUID]models.InterviewSession),
	}
}

func (r *memorySessionRepository) Save(_ context.Context, session models.InterviewSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[session.ID] = session.Clone()
	return nil
}

func (r *memorySessionRepository) FindByID(_ context.Context, id uuid.UUID) (models.InterviewSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[id]
	if !ok {
		return models.InterviewSession{}, ErrSessionNotFound
	}
	return session.Clone(), nil
}

func (r *memorySessionRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(r.sessions, id)
	return nil
}

func (r *memorySessionRepository) DeleteIdleBefore(_ context.Context, cutoff time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, session := range r.sessions {
		if session.UpdatedAt.Before(cutoff) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed, nil
}
