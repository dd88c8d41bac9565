package db_test

import (
	"database/sql"
	"testing"
	"time"

	"github.com/mkravets/gridact/db"
	"github.com/mkravets/gridact/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStorage(t *testing.T) *db.SQLiteStorage {
	t.Helper()

	storage, err := db.NewStorageFromPath(":memory:")
	require.NoError(t, err)
	t.Cleanup(storage.Close)

	return storage
}

func task(id, title string, status model.Status, createdAt time.Time) *model.Task {
	return &model.Task{
		ID:        id,
		Title:     title,
		Status:    status,
		CreatedAt: createdAt,
	}
}

func TestStoreAndGet(t *testing.T) {
	t.Run("round-trips a task", func(t *testing.T) {
		storage := openStorage(t)
		createdAt := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

		stored := task("t1", "Write release notes", model.StatusOpen, createdAt)
		stored.Priority = 2
		require.NoError(t, storage.Store(stored))

		got, err := storage.Get("t1")
		require.NoError(t, err)

		assert.Equal(t, "t1", got.ID)
		assert.Equal(t, "Write release notes", got.Title)
		assert.Equal(t, model.StatusOpen, got.Status)
		assert.Equal(t, 2, got.Priority)
		assert.True(t, got.CreatedAt.Equal(createdAt), "got %v", got.CreatedAt)
	})

	t.Run("missing id fails", func(t *testing.T) {
		storage := openStorage(t)

		_, err := storage.Get("nope")
		require.ErrorIs(t, err, db.ErrTaskNotFound)
		assert.ErrorContains(t, err, `"nope"`)
	})

	t.Run("storing the same id updates in place", func(t *testing.T) {
		storage := openStorage(t)
		createdAt := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

		require.NoError(t, storage.Store(task("t1", "Draft", model.StatusOpen, createdAt)))

		updated := task("t1", "Draft v2", model.StatusDoing, createdAt.Add(time.Hour))
		require.NoError(t, storage.Store(updated))

		count, err := storage.Count()
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		got, err := storage.Get("t1")
		require.NoError(t, err)
		assert.Equal(t, "Draft v2", got.Title)
		assert.Equal(t, model.StatusDoing, got.Status)
		// The original creation time survives updates.
		assert.True(t, got.CreatedAt.Equal(createdAt), "got %v", got.CreatedAt)
	})
}

func TestDelete(t *testing.T) {
	t.Run("removes the task", func(t *testing.T) {
		storage := openStorage(t)
		require.NoError(t, storage.Store(task("t1", "Ship it", model.StatusOpen, time.Now())))

		require.NoError(t, storage.Delete("t1"))

		_, err := storage.Get("t1")
		require.ErrorIs(t, err, db.ErrTaskNotFound)
	})

	t.Run("missing id fails", func(t *testing.T) {
		storage := openStorage(t)

		require.ErrorIs(t, storage.Delete("t1"), db.ErrTaskNotFound)
	})
}

func TestGatherAll(t *testing.T) {
	t.Run("empty storage yields no tasks", func(t *testing.T) {
		storage := openStorage(t)

		items, err := storage.GatherAll()
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("orders oldest first", func(t *testing.T) {
		storage := openStorage(t)
		base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

		require.NoError(t, storage.Store(task("t2", "Second", model.StatusOpen, base.Add(time.Minute))))
		require.NoError(t, storage.Store(task("t3", "Third", model.StatusDone, base.Add(2*time.Minute))))
		require.NoError(t, storage.Store(task("t1", "First", model.StatusOpen, base)))

		items, err := storage.GatherAll()
		require.NoError(t, err)

		ids := make([]string, 0, len(items))
		for _, item := range items {
			ids = append(ids, item.ID)
		}

		assert.Equal(t, []string{"t1", "t2", "t3"}, ids)
	})
}

func TestAllIterator(t *testing.T) {
	t.Run("streams every task in order", func(t *testing.T) {
		storage := openStorage(t)
		base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

		for i, id := range []string{"t1", "t2", "t3"} {
			require.NoError(t, storage.Store(task(id, "Task "+id, model.StatusOpen, base.Add(time.Duration(i)*time.Minute))))
		}

		iterator, err := storage.AllIterator()
		require.NoError(t, err)

		ids := make([]string, 0, 3)
		for item := range iterator {
			ids = append(ids, item.ID)
		}

		assert.Equal(t, []string{"t1", "t2", "t3"}, ids)
	})

	t.Run("stops early when the consumer breaks", func(t *testing.T) {
		storage := openStorage(t)
		base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

		for i, id := range []string{"t1", "t2", "t3"} {
			require.NoError(t, storage.Store(task(id, "Task "+id, model.StatusOpen, base.Add(time.Duration(i)*time.Minute))))
		}

		iterator, err := storage.AllIterator()
		require.NoError(t, err)

		var seen int
		for range iterator {
			seen++
			if seen == 2 {
				break
			}
		}

		assert.Equal(t, 2, seen)
	})
}

func TestCountByStatus(t *testing.T) {
	t.Run("reports zero counts for empty columns", func(t *testing.T) {
		storage := openStorage(t)

		counts, err := storage.CountByStatus()
		require.NoError(t, err)

		assert.Equal(t, []model.StatusCount{
			{Status: model.StatusOpen, Count: 0},
			{Status: model.StatusDoing, Count: 0},
			{Status: model.StatusDone, Count: 0},
		}, counts)
	})

	t.Run("aggregates per status", func(t *testing.T) {
		storage := openStorage(t)
		now := time.Now()

		require.NoError(t, storage.Store(task("t1", "A", model.StatusOpen, now)))
		require.NoError(t, storage.Store(task("t2", "B", model.StatusOpen, now)))
		require.NoError(t, storage.Store(task("t3", "C", model.StatusDone, now)))

		counts, err := storage.CountByStatus()
		require.NoError(t, err)

		assert.Equal(t, []model.StatusCount{
			{Status: model.StatusOpen, Count: 2},
			{Status: model.StatusDoing, Count: 0},
			{Status: model.StatusDone, Count: 1},
		}, counts)
	})
}

func TestNewStorageFromConnection(t *testing.T) {
	t.Run("initializes the schema on an open connection", func(t *testing.T) {
		conn, err := sql.Open("sqlite3", ":memory:")
		require.NoError(t, err)

		storage, err := db.NewStorageFromConnection(conn)
		require.NoError(t, err)
		t.Cleanup(storage.Close)

		count, err := storage.Count()
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}
