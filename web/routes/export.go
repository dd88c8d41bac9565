package routes

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mkravets/gridact/export"
)

// ExportHandle streams the task table as a download. The format query
// parameter picks the encoding; it defaults to csv.
func (s *ServerHandler) ExportHandle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	format := export.FormatCSV

	if raw := r.URL.Query().Get("format"); raw != "" {
		parsed, err := export.ParseFormat(raw)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)

			return
		}

		format = parsed
	}

	slog.InfoContext(ctx, "Handling export request", "format", format)

	iterator, err := s.Storage.AllIterator()
	if err != nil {
		slog.ErrorContext(ctx, "Failed to open task iterator", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	opts := s.Grid.Options()
	sheet := opts.Name + "s"
	base := strings.ToLower(sheet)

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", format.FileName(base)))

	// The header is out by the first write, so failures here can only be
	// logged, not turned into an error page.
	if err := export.Write(w, format, sheet, opts.Columns, iterator); err != nil {
		slog.ErrorContext(ctx, "Failed to write export", "format", format, "error", err)
	}
}
