//go:build integration

package cache_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"paperflow/internal/paper/models"
	"paperflow/internal/paper/store/cache"
	id "paperflow/pkg/domain"
	"paperflow/pkg/testutil/containers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingPaper(t *testing.T) *models.Paper {
	t.Helper()
	questions := []models.Question{{Type: models.QuestionText, Prompt: "q", Marks: 1}}
	owner := id.NewUserID()
	paper, err := models.NewPaper(id.NewPaperID(), "Biology Term Paper", "BIO201", "Biology",
		questions, owner, "C. Darwin", time.Now().UTC().Truncate(time.Millisecond))
	require.NoError(t, err)
	paper.ApplySubmit(owner, "ready", time.Now().UTC())
	return paper
}

func TestPendingCache(t *testing.T) {
	rc := containers.NewRedisContainer(t)
	ctx := context.Background()
	logger := slog.New(slog.DiscardHandler)

	t.Run("miss when empty", func(t *testing.T) {
		require.NoError(t, rc.FlushAll(ctx))
		c := cache.New(rc.Client, cache.WithLogger(logger))
		_, err := c.Get(ctx)
		assert.ErrorIs(t, err, cache.ErrMiss)
	})

	t.Run("set then get round-trips", func(t *testing.T) {
		require.NoError(t, rc.FlushAll(ctx))
		c := cache.New(rc.Client, cache.WithLogger(logger))

		paper := pendingPaper(t)
		c.Set(ctx, []*models.Paper{paper})

		papers, err := c.Get(ctx)
		require.NoError(t, err)
		require.Len(t, papers, 1)
		assert.Equal(t, paper.ID, papers[0].ID)
		assert.Equal(t, models.StatusSubmitted, papers[0].Status)
	})

	t.Run("invalidate forces a miss", func(t *testing.T) {
		require.NoError(t, rc.FlushAll(ctx))
		c := cache.New(rc.Client, cache.WithLogger(logger))

		c.Set(ctx, []*models.Paper{pendingPaper(t)})
		c.Invalidate(ctx)

		_, err := c.Get(ctx)
		assert.ErrorIs(t, err, cache.ErrMiss)
	})

	t.Run("entries expire", func(t *testing.T) {
		require.NoError(t, rc.FlushAll(ctx))
		c := cache.New(rc.Client, cache.WithLogger(logger), cache.WithTTL(time.Second))

		c.Set(ctx, []*models.Paper{pendingPaper(t)})
		time.Sleep(1500 * time.Millisecond)

		_, err := c.Get(ctx)
		assert.ErrorIs(t, err, cache.ErrMiss)
	})

	t.Run("corrupt entry degrades to miss", func(t *testing.T) {
		require.NoError(t, rc.FlushAll(ctx))
		c := cache.New(rc.Client, cache.WithLogger(logger))

		require.NoError(t, rc.Client.Set(ctx, "paperflow:papers:pending", "not json", 0).Err())
		_, err := c.Get(ctx)
		assert.ErrorIs(t, err, cache.ErrMiss)
	})
}
