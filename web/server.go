// Package web assembles the HTTP server: grid configuration, routing and
// request middleware.
package web

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mkravets/gridact/db"
	"github.com/mkravets/gridact/grid"
	"github.com/mkravets/gridact/logging"
	"github.com/mkravets/gridact/web/routes"
)

// DefaultGridOptions returns the task board's grid configuration.
// Buttons, exports and the rendered columns all derive from it.
func DefaultGridOptions() grid.Options {
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

// BoardButtons is the production button configuration: deletes go
// through a confirmed POST form, and the toolbar offers the Excel
// flavor of the export next to the plain one.
type BoardButtons struct{}

func (BoardButtons) ConfigureButtons(g *grid.Grid) error {
	if err := g.EditRowButton(grid.ButtonDelete, grid.Props{"data-method": "post"}); err != nil {
		return err
	}

	_, err := g.MakeCustomButton(grid.Props{
		"name":       "export-excel",
		"title":      "Export to Excel",
		"href":       routes.PathTaskExport + "?format=excel",
		"visibility": grid.WhenExportable(),
	}, grid.TargetToolbar)

	return err
}

func disableCacheInDevMode(dev bool, next http.Handler) http.Handler {
	if !dev {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}

// requestLogging stamps every request with a correlation id and logs it
// once served.
func requestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, _ := logging.WithRequestID(r.Context())
		start := time.Now()

		next.ServeHTTP(w, r.WithContext(ctx))

		slog.InfoContext(ctx, "Handled request",
			"method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}

// BuildServer wires the handlers onto a mux. conf may be nil, in which
// case the grid keeps its default buttons.
func BuildServer(opts grid.Options, storage db.Storage, conf grid.ButtonConfigurator, dev bool) (http.Handler, error) {
	g, err := grid.New(opts, conf)
	if err != nil {
		return nil, fmt.Errorf("could not build task grid: %w", err)
	}

	handler := &routes.ServerHandler{Storage: storage, Grid: g}

	mux := http.NewServeMux()
	// Serve the stylesheet and any other static files.
	mux.Handle("/assets/",
		disableCacheInDevMode(dev,
			http.StripPrefix("/assets",
				http.FileServer(http.Dir("assets")))))

	mux.HandleFunc("GET "+routes.PathTaskNew, handler.NewTaskHandle)
	mux.HandleFunc("POST "+routes.PathTasks, handler.CreateHandle)
	mux.HandleFunc("GET "+routes.PathTaskExport, handler.ExportHandle)
	mux.HandleFunc("GET "+routes.PathTaskView, handler.ViewHandle)
	mux.HandleFunc("POST "+routes.PathTaskDelete, handler.DeleteHandle)
	mux.HandleFunc("GET /{$}", handler.BoardHandle)

	return requestLogging(mux), nil
}

// StartServer runs the board until the listener fails.
func StartServer(port int, opts grid.Options, storage db.Storage, conf grid.ButtonConfigurator, dev bool) error {
	server, err := BuildServer(opts, storage, conf, dev)
	if err != nil {
		return err
	}

	slog.Info("Running interface", "port", port)

	if err := http.ListenAndServe(fmt.Sprintf(":%d", port), server); err != nil {
		return fmt.Errorf("could not run server: %w", err)
	}

	return nil
}
