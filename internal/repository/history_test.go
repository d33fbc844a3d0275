package repository

import (
	"context"
	"testing"
	"time"

	"github.com/rocketscienceinc/quantum-tictactoe-backend/internal/entity"
	"github.com/rocketscienceinc/quantum-tictactoe-backend/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHistoryRepository(t *testing.T) (context.Context, HistoryRepository) {
	t.Helper()

	ctx := context.Background()

	return ctx, NewHistoryRepository(suite.NewSQLite(ctx, t).Connection)
}

func TestHistoryRepository_Save(t *testing.T) {
	t.Run("Stores a result once per game", func(t *testing.T) {
		ctx, historyRepo := newHistoryRepository(t)

		// Given: a finished game
		result := &entity.GameResult{
			GameID:     "g1",
			AreaID:     "a1",
			X:          "p1",
			O:          "p2",
			XScore:     2,
			OScore:     1,
			Winner:     "p1",
			FinishedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		}

		// When: it is saved twice
		require.NoError(t, historyRepo.Save(ctx, result))
		require.NoError(t, historyRepo.Save(ctx, result))

		// Then: only one record exists and it matches
		results, err := historyRepo.List(ctx, 10)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, result.GameID, results[0].GameID)
		assert.Equal(t, result.Winner, results[0].Winner)
		assert.Equal(t, 2, results[0].XScore)
		assert.True(t, result.FinishedAt.Equal(results[0].FinishedAt))
	})
}

func TestHistoryRepository_ListByPlayer(t *testing.T) {
	t.Run("Returns the games of the player, newest first", func(t *testing.T) {
		ctx, historyRepo := newHistoryRepository(t)

		// Given: three games, two of them with p1
		base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
		require.NoError(t, historyRepo.Save(ctx, &entity.GameResult{GameID: "g1", AreaID: "a1", X: "p1", O: "p2", FinishedAt: base}))
		require.NoError(t, historyRepo.Save(ctx, &entity.GameResult{GameID: "g2", AreaID: "a1", X: "p3", O: "p4", FinishedAt: base.Add(time.Minute)}))
		require.NoError(t, historyRepo.Save(ctx, &entity.GameResult{GameID: "g3", AreaID: "a2", X: "p2", O: "p1", Winner: "p1", FinishedAt: base.Add(2 * time.Minute)}))

		// When: the history of p1 is listed
		results, err := historyRepo.ListByPlayer(ctx, "p1")

		// Then: only p1's games are returned
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "g3", results[0].GameID)
		assert.Equal(t, "g1", results[1].GameID)
	})

	t.Run("Returns an empty list for an unknown player", func(t *testing.T) {
		ctx, historyRepo := newHistoryRepository(t)

		results, err := historyRepo.ListByPlayer(ctx, "nobody")

		require.NoError(t, err)
		assert.Empty(t, results)
	})
}
