// Package db persists tasks in SQLite and exposes the storage interface
// the web and CLI layers consume.
package db

import (
	"database/sql"
	"errors"
	"fmt"
	"iter"
	"log/slog"

	"github.com/mkravets/gridact/model"

	_ "github.com/mattn/go-sqlite3"
)

// ErrTaskNotFound reports a lookup or deletion against an id that is not
// stored.
var ErrTaskNotFound = errors.New("task not found")

type Storage interface {
	Store(task *model.Task) error
	Get(id string) (*model.Task, error)
	Delete(id string) error
	GatherAll() ([]model.Task, error)
	AllIterator() (iter.Seq[model.Task], error)
	Count() (int, error)
	CountByStatus() ([]model.StatusCount, error)
	Close()
}

type SQLiteStorage struct {
	db *sql.DB
}

// InitDBStorage creates the task table and its indexes when they do not
// exist yet.
func InitDBStorage(db *sql.DB) error {
	sqlStmt := `
	create table if not exists tasks(
	    id text primary key,
	    title text not null,
	    status text not null,
	    priority int not null default 0,
	    created_at datetime not null);`

	if _, err := db.Exec(sqlStmt); err != nil {
		return fmt.Errorf("could not create tasks table: %w", err)
	}

	sqlStmt = `create index if not exists tasks_created_ix on tasks (created_at ASC);`
	if _, err := db.Exec(sqlStmt); err != nil {
		return fmt.Errorf("could not create tasks index: %w", err)
	}

	return nil
}

// NewStorageFromConnection initializes the schema on an open connection
// and wraps it. The caller keeps ownership of the connection until Close.
func NewStorageFromConnection(conn *sql.DB) (*SQLiteStorage, error) {
	if err := InitDBStorage(conn); err != nil {
		return nil, err
	}

	return &SQLiteStorage{db: conn}, nil
}

// NewStorageFromPath opens (or creates) the SQLite database at path.
func NewStorageFromPath(path string) (*SQLiteStorage, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("could not open database at %q: %w", path, err)
	}

	storage, err := NewStorageFromConnection(conn)
	if err != nil {
		conn.Close()

		return nil, err
	}

	return storage, nil
}

// Store inserts the task, or updates its mutable fields when the id is
// already stored. CreatedAt never changes after the first insert.
func (s *SQLiteStorage) Store(task *model.Task) error {
	_, err := s.db.Exec(`insert into tasks(id, title, status, priority, created_at)
	    values(?, ?, ?, ?, ?)
	    on conflict(id) do update set
	        title = excluded.title,
	        status = excluded.status,
	        priority = excluded.priority`,
		task.ID, task.Title, string(task.Status), task.Priority, task.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("could not store task %q: %w", task.ID, err)
	}

	return nil
}

func (s *SQLiteStorage) Get(id string) (*model.Task, error) {
	row := s.db.QueryRow(
		`select id, title, status, priority, created_at from tasks where id = ?`, id)

	task, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", ErrTaskNotFound, id)
	}

	if err != nil {
		return nil, fmt.Errorf("could not load task %q: %w", id, err)
	}

	return task, nil
}

// Delete removes the task. A missing id fails with ErrTaskNotFound so
// handlers can distinguish it from storage trouble.
func (s *SQLiteStorage) Delete(id string) error {
	result, err := s.db.Exec(`delete from tasks where id = ?`, id)
	if err != nil {
		return fmt.Errorf("could not delete task %q: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not delete task %q: %w", id, err)
	}

	if affected == 0 {
		return fmt.Errorf("%w: %q", ErrTaskNotFound, id)
	}

	return nil
}

// GatherAll loads every task, oldest first.
func (s *SQLiteStorage) GatherAll() ([]model.Task, error) {
	rows, err := s.db.Query(
		`select id, title, status, priority, created_at
	    from tasks
	    order by created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("could not query tasks: %w", err)
	}

	defer rows.Close()

	result := make([]model.Task, 0)

	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("could not scan task row: %w", err)
		}

		result = append(result, *task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("could not read task rows: %w", err)
	}

	return result, nil
}

// AllIterator streams every task, oldest first, without materializing the
// whole table. The cursor closes when the sequence is exhausted or the
// consumer stops early.
func (s *SQLiteStorage) AllIterator() (iter.Seq[model.Task], error) {
	rows, err := s.db.Query(
		`select id, title, status, priority, created_at
	    from tasks
	    order by created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("could not query tasks: %w", err)
	}

	return func(yield func(model.Task) bool) {
		defer rows.Close()

		for rows.Next() {
			task, err := scanTask(rows)
			if err != nil {
				slog.Error("Could not scan task row", "error", err)

				return
			}

			if !yield(*task) {
				return
			}
		}

		if err := rows.Err(); err != nil {
			slog.Error("Could not read task rows", "error", err)
		}
	}, nil
}

func (s *SQLiteStorage) Count() (int, error) {
	var count int

	err := s.db.QueryRow(`select count(*) from tasks`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("could not count tasks: %w", err)
	}

	return count, nil
}

func (s *SQLiteStorage) Close() {
	s.db.Close()
}

// scanner covers both sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanTask(row scanner) (*model.Task, error) {
	var task model.Task
	var status string

	err := row.Scan(&task.ID, &task.Title, &status, &task.Priority, &task.CreatedAt)
	if err != nil {
		return nil, err
	}

	task.Status = model.Status(status)

	return &task, nil
}
