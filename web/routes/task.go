package routes

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mkravets/gridact/db"
	"github.com/mkravets/gridact/grid"
	"github.com/mkravets/gridact/model"
	cs "github.com/mkravets/gridact/web/components"
)

// NewTaskHandle renders the task creation form.
func (s *ServerHandler) NewTaskHandle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slog.InfoContext(ctx, "Handling new task form request")

	formContext := cs.TaskFormContext{
		Title:    "New task",
		Action:   PathTasks,
		Statuses: statusOptions(model.StatusOpen),
	}

	_ = SafeRenderTemplate(ctx, cs.TaskFormPage(&formContext), w)
}

// CreateHandle stores a submitted task and redirects back to the board.
func (s *ServerHandler) CreateHandle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slog.InfoContext(ctx, "Handling task create request")

	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	task, err := taskFromForm(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	if err := s.Storage.Store(task); err != nil {
		slog.ErrorContext(ctx, "Failed to store task", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	slog.InfoContext(ctx, "Stored new task", "id", task.ID, "status", task.Status)

	http.Redirect(w, r, PathIndex, http.StatusSeeOther)
}

// ViewHandle renders one task's details.
func (s *ServerHandler) ViewHandle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	slog.InfoContext(ctx, "Handling task view request", "id", id)

	task, err := s.Storage.Get(id)
	if errors.Is(err, db.ErrTaskNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)

		return
	}

	if err != nil {
		slog.ErrorContext(ctx, "Failed to load task", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	viewContext := s.BuildTaskViewContext(task)

	_ = SafeRenderTemplate(ctx, cs.TaskViewPage(viewContext), w)
}

// BuildTaskViewContext maps one task onto the detail page view model.
// The row buttons render here too, except the self-referencing view link.
func (s *ServerHandler) BuildTaskViewContext(task *model.Task) *cs.TaskViewContext {
	buttons := make([]cs.ButtonView, 0)

	for _, b := range s.buttonViews(grid.TargetRows, *task, 0) {
		if b.Name == grid.ButtonView {
			continue
		}

		buttons = append(buttons, b)
	}

	return &cs.TaskViewContext{
		Title: task.Title,
		Fields: []cs.Field{
			{Label: "ID", Value: task.ID},
			{Label: "Status", Value: string(task.Status)},
			{Label: "Priority", Value: strconv.Itoa(task.Priority)},
			{Label: "Created", Value: task.CreatedAt.UTC().Format("2006-01-02 15:04")},
		},
		Buttons: buttons,
	}
}

// DeleteHandle removes a task and redirects back to the board.
func (s *ServerHandler) DeleteHandle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	slog.InfoContext(ctx, "Handling task delete request", "id", id)

	err := s.Storage.Delete(id)
	if errors.Is(err, db.ErrTaskNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)

		return
	}

	if err != nil {
		slog.ErrorContext(ctx, "Failed to delete task", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	http.Redirect(w, r, PathIndex, http.StatusSeeOther)
}

// taskFromForm validates the submitted fields and builds a fresh task.
func taskFromForm(r *http.Request) (*model.Task, error) {
	title := strings.TrimSpace(r.PostFormValue("title"))
	if title == "" {
		return nil, errors.New("title must not be empty")
	}

	status := model.Status(r.PostFormValue("status"))
	if status == "" {
		status = model.StatusOpen
	}

	if !status.Valid() {
		return nil, fmt.Errorf("invalid status %q", string(status))
	}

	priority := 0

	if raw := r.PostFormValue("priority"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("priority must be a number, got %q", raw)
		}

		priority = parsed
	}

	return &model.Task{
		ID:        uuid.NewString(),
		Title:     title,
		Status:    status,
		Priority:  priority,
		CreatedAt: time.Now().UTC(),
	}, nil
}

func statusOptions(selected model.Status) []cs.FieldOption {
	options := make([]cs.FieldOption, 0, len(model.Statuses()))
	for _, status := range model.Statuses() {
		options = append(options, cs.FieldOption{
			Value:    string(status),
			Label:    string(status),
			Selected: status == selected,
		})
	}

	return options
}
