package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/testing/suite"
)

type repoFactory func(t *testing.T) (context.Context, SessionRepository)

func redisRepo(t *testing.T) (context.Context, SessionRepository) {
	ctx, st := suite.New(t)
	return ctx, NewSessionRepository(st.Storage, time.Minute)
}

func memoryRepo(_ *testing.T) (context.Context, SessionRepository) {
	return context.Background(), NewMemorySessionRepository()
}

func runSessionRepositoryTests(t *testing.T, newRepo repoFactory) {
	t.Run("CreateOrUpdate then GetByID", func(t *testing.T) {
		ctx, repo := newRepo(t)

		// Given: a session with a mark on the board
		session := entity.NewSession("123", entity.PlayerO)
		session.Board[4] = entity.MarkX
		session.Turn = entity.PlayerO
		session.Computer = true

		// When: it is stored and read back
		require.NoError(t, repo.CreateOrUpdate(ctx, session))
		retrieved, err := repo.GetByID(ctx, session.ID)

		// Then: the stored state matches
		require.NoError(t, err)
		assert.Equal(t, session.ID, retrieved.ID)
		assert.Equal(t, session.Board, retrieved.Board)
		assert.Equal(t, session.Turn, retrieved.Turn)
		assert.Equal(t, session.Status, retrieved.Status)
		assert.Equal(t, session.Active, retrieved.Active)
		assert.True(t, retrieved.Computer)
		assert.Equal(t, entity.PlayerO, retrieved.ComputerMark)
	})

	t.Run("CreateOrUpdate overwrites", func(t *testing.T) {
		ctx, repo := newRepo(t)

		session := entity.NewSession("123", entity.PlayerO)
		require.NoError(t, repo.CreateOrUpdate(ctx, session))

		session.Generation = 7
		session.Status = entity.Won(entity.PlayerX)
		require.NoError(t, repo.CreateOrUpdate(ctx, session))

		retrieved, err := repo.GetByID(ctx, session.ID)
		require.NoError(t, err)
		assert.Equal(t, uint64(7), retrieved.Generation)
		assert.Equal(t, entity.Won(entity.PlayerX), retrieved.Status)
	})

	t.Run("Returned session is a copy", func(t *testing.T) {
		ctx, repo := newRepo(t)

		session := entity.NewSession("123", entity.PlayerO)
		require.NoError(t, repo.CreateOrUpdate(ctx, session))

		// When: the caller mutates what it got back without saving
		retrieved, err := repo.GetByID(ctx, session.ID)
		require.NoError(t, err)
		retrieved.Board[0] = entity.MarkX

		// Then: the store is unaffected
		again, err := repo.GetByID(ctx, session.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.EmptyCell, again.Board[0])
	})

	t.Run("GetByID not found", func(t *testing.T) {
		ctx, repo := newRepo(t)

		retrieved, err := repo.GetByID(ctx, "9999999")

		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
		assert.Nil(t, retrieved)
	})

	t.Run("DeleteByID", func(t *testing.T) {
		ctx, repo := newRepo(t)

		session := entity.NewSession("123", entity.PlayerO)
		require.NoError(t, repo.CreateOrUpdate(ctx, session))

		require.NoError(t, repo.DeleteByID(ctx, session.ID))

		_, err := repo.GetByID(ctx, session.ID)
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})

	t.Run("DeleteByID not found", func(t *testing.T) {
		ctx, repo := newRepo(t)

		err := repo.DeleteByID(ctx, "9999999")

		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})
}

func TestMemorySessionRepository(t *testing.T) {
	runSessionRepositoryTests(t, memoryRepo)
}

func TestRedisSessionRepository(t *testing.T) {
	runSessionRepositoryTests(t, redisRepo)
}

func TestRedisSessionRepository_TTL(t *testing.T) {
	ctx, st := suite.New(t)

	// Given: a repository with a one minute ttl
	repo := NewSessionRepository(st.Storage, time.Minute)
	require.NoError(t, repo.CreateOrUpdate(ctx, entity.NewSession("123", entity.PlayerO)))

	// When: reading the key's ttl
	ttl, err := st.Storage.TTL(ctx, sessionKeyPrefix+"123").Result()

	// Then: the key expires within the configured window
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Minute)
}
