package repo

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/BuzzLyutic/taskboard/internal/model"
)

// setupPostgres использует TEST_DATABASE_URL, если задан, иначе поднимает
// контейнер PostgreSQL через testcontainers.
func setupPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("postgres integration tests skipped in -short mode")
	}
	ctx := context.Background()

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		pgContainer, err := postgres.Run(ctx,
			"postgres:15-alpine",
			postgres.WithDatabase("testdb"),
			postgres.WithUsername("testuser"),
			postgres.WithPassword("testpass"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(30*time.Second),
			),
		)
		if err != nil {
			t.Skipf("postgres container unavailable: %v", err)
		}
		t.Cleanup(func() {
			if err := pgContainer.Terminate(ctx); err != nil {
				t.Errorf("Failed to terminate container: %v", err)
			}
		})

		dbURL, err = pgContainer.ConnectionString(ctx, "sslmode=disable")
		require.NoError(t, err)
	}

	pool, err := OpenPostgres(ctx, dbURL)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	// Очистка
	_, err = pool.Exec(ctx, "TRUNCATE tasks, credentials RESTART IDENTITY")
	require.NoError(t, err)
	return pool
}

func TestTaskRepo_Postgres(t *testing.T) {
	pool := setupPostgres(t)
	repo := NewTaskRepo(pool)
	ctx := context.Background()

	created, err := repo.Create(ctx, " Buy milk ", " errands ")
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Buy milk", created.Text)
	assert.Equal(t, "errands", created.Label)
	assert.Equal(t, model.StatePending, created.State)
	assert.False(t, created.Completed)
	assert.Nil(t, created.DueDate)

	t.Run("field updates", func(t *testing.T) {
		n, err := repo.SetState(ctx, created.ID, model.StateCompleted)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		due := "2024-05-14"
		_, err = repo.SetDueDate(ctx, created.ID, &due)
		require.NoError(t, err)
		_, err = repo.SetNote(ctx, created.ID, " remember ")
		require.NoError(t, err)

		got, err := repo.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.True(t, got.Completed)
		assert.Equal(t, model.StateCompleted, got.State)
		assert.Equal(t, "remember", got.Note)
		require.NotNil(t, got.DueDate)
		assert.Equal(t, due, *got.DueDate)

		_, err = repo.SetDueDate(ctx, created.ID, nil)
		require.NoError(t, err)
		got, err = repo.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Nil(t, got.DueDate)
	})

	t.Run("missing id", func(t *testing.T) {
		n, err := repo.Delete(ctx, 99999)
		require.NoError(t, err)
		assert.Zero(t, n)

		_, err = repo.Get(ctx, 99999)
		assert.ErrorIs(t, err, ErrorNotFound)
	})

	t.Run("list newest first", func(t *testing.T) {
		second, err := repo.Create(ctx, "second", "")
		require.NoError(t, err)

		tasks, err := repo.List(ctx, model.TaskFilter{})
		require.NoError(t, err)
		require.Len(t, tasks, 2)
		assert.Equal(t, second.ID, tasks[0].ID)

		state := model.StatePending
		pending, err := repo.List(ctx, model.TaskFilter{State: &state})
		require.NoError(t, err)
		require.Len(t, pending, 1)
		assert.Equal(t, second.ID, pending[0].ID)
	})
}

func TestCredentialRepo_Postgres(t *testing.T) {
	pool := setupPostgres(t)
	repo := NewCredentialRepo(pool)
	ctx := context.Background()

	_, err := repo.Create(ctx, "alice", "hash-1")
	require.NoError(t, err)

	_, err = repo.Create(ctx, "alice", "hash-2")
	assert.ErrorIs(t, err, ErrorConflict)

	got, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "hash-1", got.PasswordHash)

	_, err = repo.GetByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, ErrorNotFound)
}
