package routes

import (
	"log/slog"
	"maps"
	"net/http"
	"strconv"

	"github.com/mkravets/gridact/grid"
	"github.com/mkravets/gridact/model"
	cs "github.com/mkravets/gridact/web/components"
)

// BuildBoardContext evaluates the grid configuration against the loaded
// tasks: visibility predicates run here, links resolve here, and the
// result is plain view data.
func (s *ServerHandler) BuildBoardContext(tasks []model.Task, counts []model.StatusCount) *cs.BoardContext {
	opts := s.Grid.Options()

	columns := make([]string, 0, len(opts.Columns))
	for _, column := range opts.Columns {
		columns = append(columns, column.Title)
	}

	rows := make([]cs.RowView, 0, len(tasks))
	for i, task := range tasks {
		rows = append(rows, cs.RowView{
			ID:      task.ID,
			Cells:   rowCells(task, opts.Columns),
			Buttons: s.buttonViews(grid.TargetRows, task, i),
		})
	}

	summary := make([]cs.StatusSummary, 0, len(counts))
	for _, count := range counts {
		summary = append(summary, cs.StatusSummary{Label: string(count.Status), Count: count.Count})
	}

	return &cs.BoardContext{
		Title:   opts.Name + " board",
		Columns: columns,
		Toolbar: s.buttonViews(grid.TargetToolbar, nil, 0),
		Rows:    rows,
		Summary: summary,
	}
}

// BoardHandle handles requests to the board page.
func (s *ServerHandler) BoardHandle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slog.InfoContext(ctx, "Handling board page request")

	tasks, err := s.Storage.GatherAll()
	if err != nil {
		slog.ErrorContext(ctx, "Failed to load tasks", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	counts, err := s.Storage.CountByStatus()
	if err != nil {
		slog.ErrorContext(ctx, "Failed to count tasks", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	boardContext := s.BuildBoardContext(tasks, counts)

	slog.DebugContext(ctx, "Built board context", "rows", len(boardContext.Rows))

	_ = SafeRenderTemplate(ctx, cs.BoardPage(boardContext), w)
}

// buttonViews maps one bucket's visible buttons onto view models, links
// resolved for the given row. Toolbar callers pass a nil item.
func (s *ServerHandler) buttonViews(target grid.Target, item grid.RowItem, index int) []cs.ButtonView {
	buttons := s.Grid.VisibleButtons(target)

	views := make([]cs.ButtonView, 0, len(buttons))
	for _, b := range buttons {
		views = append(views, cs.ButtonView{
			Name:   b.Name,
			Title:  b.Title,
			Href:   s.Grid.ResolveHref(b, item, index),
			Method: b.Attrs["data-method"],
			Attrs:  markupAttrs(b.Attrs),
		})
	}

	return views
}

// markupAttrs drops the keys that steer rendering instead of landing in
// the markup.
func markupAttrs(attrs map[string]string) map[string]string {
	if _, ok := attrs["data-method"]; !ok {
		return attrs
	}

	view := maps.Clone(attrs)
	delete(view, "data-method")

	return view
}

func rowCells(task model.Task, columns []grid.Column) []string {
	cells := make([]string, 0, len(columns))
	for _, column := range columns {
		cells = append(cells, cellText(task, column.Key))
	}

	return cells
}

func cellText(task model.Task, key string) string {
	switch key {
	case "id":
		return task.ID
	case "title":
		return task.Title
	case "status":
		return string(task.Status)
	case "priority":
		return strconv.Itoa(task.Priority)
	case "created":
		return task.CreatedAt.UTC().Format("2006-01-02 15:04")
	}

	return ""
}
