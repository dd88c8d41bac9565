package gridact

import (
	"fmt"
	"iter"
	"log/slog"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/mkravets/gridact/db"
	"github.com/mkravets/gridact/export"
	"github.com/mkravets/gridact/model"
	"github.com/mkravets/gridact/web"
)

var (
	exportOut    string
	exportFormat string
)

// exportCmd represents the export command.
var exportCmd = &cobra.Command{
	Use:              "export",
	Short:            "Export the task table to a file",
	Long:             `Write the task table to a csv or excel file, same as the board's export buttons.`,
	PersistentPreRun: bindFlags,
	RunE: func(_ *cobra.Command, _ []string) error {
		format, err := export.ParseFormat(exportFormat)
		if err != nil {
			return err
		}

		storage, err := db.NewStorageFromPath(storagePath)
		if err != nil {
			return fmt.Errorf("could not open %s as sqlite file: %w", storagePath, err)
		}
		defer storage.Close()

		count, err := storage.Count()
		if err != nil {
			return err
		}

		items, err := storage.AllIterator()
		if err != nil {
			return err
		}

		out := exportOut
		if out == "" {
			out = format.FileName("tasks")
		}

		file, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("could not create %s: %w", out, err)
		}

		bar := progressbar.Default(int64(count), "Exporting tasks...")
		opts := web.DefaultGridOptions()

		if err := export.Write(file, format, opts.Name+"s", opts.Columns, withProgress(items, bar)); err != nil {
			file.Close()

			return err
		}

		if err := bar.Finish(); err != nil {
			slog.Error("could not finish progress bar", "error", err)
		}

		if err := file.Close(); err != nil {
			return fmt.Errorf("could not close %s: %w", out, err)
		}

		slog.Info("Exported tasks", "count", count, "path", out)

		return nil
	},
}

// withProgress advances the bar as the export consumes the sequence.
func withProgress(items iter.Seq[model.Task], bar *progressbar.ProgressBar) iter.Seq[model.Task] {
	return func(yield func(model.Task) bool) {
		for item := range items {
			if err := bar.Add(1); err != nil {
				slog.Error("could not update progress bar", "error", err)
			}

			if !yield(item) {
				return
			}
		}
	}
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&storagePath, "storage", "s", "./tasks.sqlite",
		"Path to the task database")

	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "",
		"Output path (defaults to tasks.csv or tasks.xls)")

	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "csv",
		"Export format: csv or excel")
}
