package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/bakerysim-go/internal/adapters/persistence"
	"github.com/andrescamacho/bakerysim-go/internal/application/logging"
	"github.com/andrescamacho/bakerysim-go/internal/domain/shared"
	"github.com/andrescamacho/bakerysim-go/test/helpers"
)

func TestSessionLogRepository_Deduplicates(t *testing.T) {
	ctx := context.Background()
	clock := shared.NewMockClock(base)
	repo := persistence.NewGormSessionLogRepository(helpers.NewTestDB(t), clock)

	require.NoError(t, repo.Log(ctx, "s1", "Round started", logging.LevelInfo, nil))
	clock.Advance(2 * time.Second)
	require.NoError(t, repo.Log(ctx, "s1", "Round started", logging.LevelInfo, nil))
	require.NoError(t, repo.Log(ctx, "s2", "Round started", logging.LevelInfo, nil))

	logs, err := repo.GetLogs(ctx, "s1", 0, 0, nil, nil)
	require.NoError(t, err)
	assert.Len(t, logs, 1, "duplicate within the window is dropped")

	clock.Advance(5 * time.Second)
	require.NoError(t, repo.Log(ctx, "s1", "Round started", logging.LevelInfo, nil))

	logs, err = repo.GetLogs(ctx, "s1", 0, 0, nil, nil)
	require.NoError(t, err)
	assert.Len(t, logs, 2)
}

func TestSessionLogRepository_GetLogsFilters(t *testing.T) {
	ctx := context.Background()
	clock := shared.NewMockClock(base)
	repo := persistence.NewGormSessionLogRepository(helpers.NewTestDB(t), clock)

	require.NoError(t, repo.Log(ctx, "s1", "Game started", logging.LevelInfo, map[string]interface{}{"currency": 300000}))
	clock.Advance(time.Minute)
	require.NoError(t, repo.Log(ctx, "s1", "Opponent sits out", logging.LevelWarning, nil))
	clock.Advance(time.Minute)
	require.NoError(t, repo.Log(ctx, "s1", "Region selected", logging.LevelInfo, nil))

	logs, err := repo.GetLogs(ctx, "s1", 10, 0, nil, nil)
	require.NoError(t, err)
	require.Len(t, logs, 3)
	assert.Equal(t, "Region selected", logs[0].Message, "newest first")
	assert.EqualValues(t, 300000, logs[2].Metadata["currency"])

	warning := logging.LevelWarning
	logs, err = repo.GetLogs(ctx, "s1", 10, 0, &warning, nil)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "Opponent sits out", logs[0].Message)

	since := base.Add(30 * time.Second)
	logs, err = repo.GetLogs(ctx, "s1", 10, 0, nil, &since)
	require.NoError(t, err)
	assert.Len(t, logs, 2)

	logs, err = repo.GetLogs(ctx, "s1", 1, 1, nil, nil)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "Opponent sits out", logs[0].Message)
}

func TestSessionLogger_MinLevel(t *testing.T) {
	repo := helpers.NewMockSessionLogRepository()
	logger := persistence.NewSessionLogger(context.Background(), "s1", repo, logging.LevelWarning, false)

	logger.Log(logging.LevelDebug, "debug line", nil)
	logger.Log(logging.LevelInfo, "info line", nil)
	logger.Log(logging.LevelWarning, "warning line", nil)
	logger.Log(logging.LevelError, "error line", nil)

	assert.Equal(t, []string{"warning line", "error line"}, repo.Messages("s1"))
}
