package routes_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkravets/gridact/model"
)

func postForm(path string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return req
}

func TestNewTaskHandle(t *testing.T) {
	handler := newTestHandler(t, &StorageMock{})

	recorder := httptest.NewRecorder()
	handler.NewTaskHandle(recorder, httptest.NewRequest(http.MethodGet, "/tasks/new", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `action="/tasks"`)
	assert.Contains(t, recorder.Body.String(), `<option value="open" selected>`)
	assert.Contains(t, recorder.Body.String(), `<option value="done">`)
}

func TestCreateHandle(t *testing.T) {
	t.Run("stores the task and redirects", func(t *testing.T) {
		storage := &StorageMock{}
		handler := newTestHandler(t, storage)

		values := url.Values{
			"title":    {"  Ship it  "},
			"status":   {"doing"},
			"priority": {"3"},
		}

		recorder := httptest.NewRecorder()
		handler.CreateHandle(recorder, postForm("/tasks", values))

		assert.Equal(t, http.StatusSeeOther, recorder.Code)
		assert.Equal(t, "/", recorder.Header().Get("Location"))

		require.Len(t, storage.Stored, 1)
		stored := storage.Stored[0]
		assert.Equal(t, "Ship it", stored.Title)
		assert.Equal(t, model.StatusDoing, stored.Status)
		assert.Equal(t, 3, stored.Priority)
		assert.WithinDuration(t, time.Now(), stored.CreatedAt, time.Minute)

		_, err := uuid.Parse(stored.ID)
		assert.NoError(t, err)
	})

	t.Run("defaults status and priority", func(t *testing.T) {
		storage := &StorageMock{}
		handler := newTestHandler(t, storage)

		recorder := httptest.NewRecorder()
		handler.CreateHandle(recorder, postForm("/tasks", url.Values{"title": {"Triage"}}))

		assert.Equal(t, http.StatusSeeOther, recorder.Code)

		require.Len(t, storage.Stored, 1)
		assert.Equal(t, model.StatusOpen, storage.Stored[0].Status)
		assert.Zero(t, storage.Stored[0].Priority)
	})

	t.Run("rejects bad input", func(t *testing.T) {
		tests := []struct {
			name   string
			values url.Values
			want   string
		}{
			{name: "empty title", values: url.Values{"title": {"   "}}, want: "title must not be empty"},
			{name: "unknown status", values: url.Values{"title": {"X"}, "status": {"paused"}}, want: `invalid status "paused"`},
			{name: "bad priority", values: url.Values{"title": {"X"}, "priority": {"high"}}, want: "priority must be a number"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				storage := &StorageMock{}
				handler := newTestHandler(t, storage)

				recorder := httptest.NewRecorder()
				handler.CreateHandle(recorder, postForm("/tasks", tt.values))

				assert.Equal(t, http.StatusBadRequest, recorder.Code)
				assert.Contains(t, recorder.Body.String(), tt.want)
				assert.Empty(t, storage.Stored)
			})
		}
	})

	t.Run("storage failures turn into a 500", func(t *testing.T) {
		storage := &StorageMock{Err: errors.New("disk on fire")}
		handler := newTestHandler(t, storage)

		recorder := httptest.NewRecorder()
		handler.CreateHandle(recorder, postForm("/tasks", url.Values{"title": {"X"}}))

		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	})
}

func TestViewHandle(t *testing.T) {
	t.Run("renders the task details", func(t *testing.T) {
		storage := &StorageMock{Tasks: sampleTasks()}
		handler := newTestHandler(t, storage)

		req := httptest.NewRequest(http.MethodGet, "/tasks/t1", nil)
		req.SetPathValue("id", "t1")

		recorder := httptest.NewRecorder()
		handler.ViewHandle(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
		body := recorder.Body.String()
		assert.Contains(t, body, "<title>Ship it</title>")
		assert.Contains(t, body, "<dt>Status</dt><dd>open</dd>")
		assert.Contains(t, body, "btn-delete")
		// The detail page drops the self-referencing view link.
		assert.NotContains(t, body, "btn-view")
	})

	t.Run("missing tasks yield a 404", func(t *testing.T) {
		storage := &StorageMock{}
		handler := newTestHandler(t, storage)

		req := httptest.NewRequest(http.MethodGet, "/tasks/zzz", nil)
		req.SetPathValue("id", "zzz")

		recorder := httptest.NewRecorder()
		handler.ViewHandle(recorder, req)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
		assert.Contains(t, recorder.Body.String(), `"zzz"`)
	})
}

func TestDeleteHandle(t *testing.T) {
	t.Run("deletes and redirects", func(t *testing.T) {
		storage := &StorageMock{Tasks: sampleTasks()}
		handler := newTestHandler(t, storage)

		req := httptest.NewRequest(http.MethodPost, "/tasks/t1/delete", nil)
		req.SetPathValue("id", "t1")

		recorder := httptest.NewRecorder()
		handler.DeleteHandle(recorder, req)

		assert.Equal(t, http.StatusSeeOther, recorder.Code)
		assert.Equal(t, "/", recorder.Header().Get("Location"))
		assert.Equal(t, []string{"t1"}, storage.Deleted)
	})

	t.Run("missing tasks yield a 404", func(t *testing.T) {
		storage := &StorageMock{}
		handler := newTestHandler(t, storage)

		req := httptest.NewRequest(http.MethodPost, "/tasks/zzz/delete", nil)
		req.SetPathValue("id", "zzz")

		recorder := httptest.NewRecorder()
		handler.DeleteHandle(recorder, req)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("storage failures turn into a 500", func(t *testing.T) {
		storage := &StorageMock{Err: errors.New("disk on fire")}
		handler := newTestHandler(t, storage)

		req := httptest.NewRequest(http.MethodPost, "/tasks/t1/delete", nil)
		req.SetPathValue("id", "t1")

		recorder := httptest.NewRecorder()
		handler.DeleteHandle(recorder, req)

		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	})
}
