// Package export renders the current task list into downloadable
// tabular formats. The column set comes from the grid configuration, so
// exports always mirror the rendered board.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"iter"
	"strconv"
	"time"

	"github.com/mkravets/gridact/grid"
	"github.com/mkravets/gridact/model"
)

// ErrInvalidFormat reports a requested export format outside the
// supported set.
var ErrInvalidFormat = errors.New("invalid export format")

// Format names one supported export encoding.
type Format string

const (
	FormatCSV   Format = "csv"
	FormatExcel Format = "excel"
)

// ParseFormat maps a query-string or flag value onto a Format.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "csv":
		return FormatCSV, nil
	case "excel", "xls", "xml":
		return FormatExcel, nil
	}

	return "", fmt.Errorf("%w %q: valid formats are csv, excel", ErrInvalidFormat, s)
}

// ContentType returns the MIME type a download response should carry.
func (f Format) ContentType() string {
	if f == FormatExcel {
		return "application/vnd.ms-excel"
	}

	return "text/csv"
}

// FileName returns the suggested download name for the given base.
func (f Format) FileName(base string) string {
	if f == FormatExcel {
		return base + ".xls"
	}

	return base + ".csv"
}

// Write renders tasks into w in the requested format.
func Write(w io.Writer, format Format, sheet string, columns []grid.Column, tasks iter.Seq[model.Task]) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, columns, tasks)
	case FormatExcel:
		return WriteExcelXML(w, sheet, columns, tasks)
	}

	return fmt.Errorf("%w %q: valid formats are csv, excel", ErrInvalidFormat, string(format))
}

// WriteCSV streams tasks as comma-separated rows, one header row first.
func WriteCSV(w io.Writer, columns []grid.Column, tasks iter.Seq[model.Task]) error {
	writer := csv.NewWriter(w)

	header := make([]string, 0, len(columns))
	for _, column := range columns {
		header = append(header, column.Title)
	}

	if err := writer.Write(header); err != nil {
		return fmt.Errorf("could not write csv header: %w", err)
	}

	row := make([]string, len(columns))

	for task := range tasks {
		for i, column := range columns {
			value, _ := cellValue(task, column.Key)
			row[i] = value
		}

		if err := writer.Write(row); err != nil {
			return fmt.Errorf("could not write csv row: %w", err)
		}
	}

	writer.Flush()

	if err := writer.Error(); err != nil {
		return fmt.Errorf("could not flush csv: %w", err)
	}

	return nil
}

// cellValue resolves one column of one task. The bool reports whether the
// value is numeric, which the Excel writer uses for cell typing.
func cellValue(task model.Task, key string) (string, bool) {
	switch key {
	case "id":
		return task.ID, false
	case "title":
		return task.Title, false
	case "status":
		return string(task.Status), false
	case "priority":
		return strconv.Itoa(task.Priority), true
	case "created":
		return task.CreatedAt.UTC().Format(time.RFC3339), false
	}

	return "", false
}
