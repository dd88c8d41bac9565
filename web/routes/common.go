// Package routes holds the HTTP handlers of the task board.
package routes

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"

	"github.com/mkravets/gridact/db"
	"github.com/mkravets/gridact/grid"
)

// Paths of every route the board serves. The grid's route options are
// built from these, so button links and mux patterns never drift apart.
const (
	PathIndex      = "/"
	PathTasks      = "/tasks"
	PathTaskNew    = "/tasks/new"
	PathTaskView   = "/tasks/{id}"
	PathTaskDelete = "/tasks/{id}/delete"
	PathTaskExport = "/tasks/export"
)

// ServerHandler holds all dependencies needed for the web server handlers.
type ServerHandler struct {
	Storage db.Storage
	Grid    *grid.Grid
}

// SafeRenderTemplate safely renders a templ component to an http.ResponseWriter.
func SafeRenderTemplate(ctx context.Context, component templ.Component, w http.ResponseWriter) error {
	// Do not write to w because it implies 200 status
	var buf bytes.Buffer

	if err := component.Render(ctx, &buf); err != nil {
		return fmt.Errorf("could not render template: %w", err)
	}

	// Template executed successfully to the buffer.
	// Now, copy it over to the ResponseWriter
	// This implies a 200 OK status code
	w.Header().Set("Content-Type", "text/html; charset=UTF-8")

	if _, err := buf.WriteTo(w); err != nil {
		slog.ErrorContext(ctx, "Failed to write response", "error", err)

		return fmt.Errorf("could not write to response writer: %w", err)
	}

	return nil
}
