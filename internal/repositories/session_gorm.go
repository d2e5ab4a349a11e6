package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/talentscout/internal/models"
)

type gormSessionRepository struct {
	db *gorm.DB
}

func NewGormSessionRepository(db *gorm.DB) SessionRepository {
	return &gormSessionRepository{db: db}
}

func (r *gormSessionRepository) Save(ctx context.Context, session models.InterviewSession) error {
	state, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	record := models.SessionRecord{
		ID:        session.ID,
		Phase:     session.Phase,
		State:     string(state),
		CreatedAt: session.CreatedAt,
		UpdatedAt: session.UpdatedAt,
	}

	if err := r.db.WithContext(ctx).Save(&record).Error; err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (r *gormSessionRepository) FindByID(ctx context.Context, id uuid.UUID) (models.InterviewSession, error) {
	var record models.SessionRecord
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.InterviewSession{}, ErrSessionNotFound
		}
		return models.InterviewSession{}, fmt.Errorf("failed to find session: %w", err)
	}

	var session models.InterviewSession
	if err := json.Unmarshal([]byte(record.State), &session); err != nil {
		return models.InterviewSession{}, fmt.Errorf("failed to decode session: %w", err)
	}
	return session, nil
}

func (r *gormSessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.SessionRecord{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete session: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func (r *gormSessionRepository) DeleteIdleBefore(ctx context.Context, cutoff time.Time) (int, error) {
	result := r.db.WithContext(ctx).Where("updated_at < ?", cutoff).Delete(&models.SessionRecord{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete idle sessions: %w", result.Error)
	}
	return int(result.RowsAffected), nil
}
