package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/talentscout/internal/models"
	"alfredoptarigan/talentscout/internal/repositories"
)

func TestJanitor_Sweep(t *testing.T) {
	repo := repositories.NewMemorySessionRepository()
	ctx := context.Background()
	now := time.Now()

	stale := models.NewInterviewSession(now.Add(-3 * time.Hour))
	fresh := models.NewInterviewSession(now)
	require.NoError(t, repo.Save(ctx, stale))
	require.NoError(t, repo.Save(ctx, fresh))

	j := NewJanitor(repo, time.Hour, time.Hour, discardLogger())

	assert.Equal(t, 1, j.Sweep(ctx))
	assert.Equal(t, 0, j.Sweep(ctx))

	_, err := repo.FindByID(ctx, stale.ID)
	assert.ErrorIs(t, err, repositories.ErrSessionNotFound)
	_, err = repo.FindByID(ctx, fresh.ID)
	assert.NoError(t, err)
}

func TestJanitor_StartStop(t *testing.T) {
	repo := repositories.NewMemorySessionRepository()
	ctx := context.Background()

	stale := models.NewInterviewSession(time.Now().Add(-time.Hour))
	require.NoError(t, repo.Save(ctx, stale))

	j := NewJanitor(repo, time.Minute, 10*time.Millisecond, discardLogger())
	j.Start(ctx)

	assert.Eventually(t, func() bool {
		_, err := repo.FindByID(ctx, stale.ID)
		return err != nil
	}, time.Second, 10*time.Millisecond)

	j.Stop()
	j.Stop()
}
