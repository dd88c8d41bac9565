package routes_test

import (
	"fmt"
	"iter"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mkravets/gridact/db"
	"github.com/mkravets/gridact/grid"
	"github.com/mkravets/gridact/model"
	"github.com/mkravets/gridact/web/routes"
)

// StorageMock is a simple manual mock implementation of the Storage interface.
type StorageMock struct {
	Tasks     []model.Task
	Counts    []model.StatusCount
	Err       error
	CountsErr error

	Stored  []*model.Task
	Deleted []string
}

func (m *StorageMock) Store(task *model.Task) error {
	if m.Err != nil {
		return m.Err
	}

	m.Stored = append(m.Stored, task)

	return nil
}

func (m *StorageMock) Get(id string) (*model.Task, error) {
	if m.Err != nil {
		return nil, m.Err
	}

	for _, task := range m.Tasks {
		if task.ID == id {
			return &task, nil
		}
	}

	return nil, fmt.Errorf("%w: %q", db.ErrTaskNotFound, id)
}

func (m *StorageMock) Delete(id string) error {
	if m.Err != nil {
		return m.Err
	}

	for _, task := range m.Tasks {
		if task.ID == id {
			m.Deleted = append(m.Deleted, id)

			return nil
		}
	}

	return fmt.Errorf("%w: %q", db.ErrTaskNotFound, id)
}

func (m *StorageMock) GatherAll() ([]model.Task, error) {
	return m.Tasks, m.Err
}

func (m *StorageMock) AllIterator() (iter.Seq[model.Task], error) {
	if m.Err != nil {
		return nil, m.Err
	}

	return slices.Values(m.Tasks), nil
}

func (m *StorageMock) Count() (int, error) {
	return len(m.Tasks), m.Err
}

func (m *StorageMock) CountByStatus() ([]model.StatusCount, error) {
	if m.CountsErr != nil {
		return nil, m.CountsErr
	}

	return m.Counts, nil
}

func (m *StorageMock) Close() {}

// testGridOptions mirrors the production grid configuration closely
// enough for handler tests.
func testGridOptions() grid.Options {
	return grid.Options{
		ID:   "tasks",
		Name: "Task",
		Routes: grid.Routes{
			Index:  routes.PathIndex,
			Create: routes.PathTaskNew,
			View:   routes.PathTaskView,
			Delete: routes.PathTaskDelete,
			Export: routes.PathTaskExport,
		},
		Columns: []grid.Column{
			{Key: "title", Title: "Title"},
			{Key: "status", Title: "Status"},
			{Key: "priority", Title: "Priority"},
			{Key: "created", Title: "Created"},
		},
		AllowExport: true,
	}
}

func newTestHandler(t *testing.T, storage *StorageMock) *routes.ServerHandler {
	t.Helper()

	g, err := grid.New(testGridOptions(), nil)
	require.NoError(t, err)

	return &routes.ServerHandler{Storage: storage, Grid: g}
}
