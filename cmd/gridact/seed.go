package gridact

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/mkravets/gridact/db"
	"github.com/mkravets/gridact/model"
)

var seedCount int

var seedVerbs = []string{"Fix", "Write", "Review", "Deploy", "Refactor", "Test", "Document"}

var seedTopics = []string{
	"the login flow", "release notes", "the export job", "the board styles",
	"database migrations", "the onboarding guide", "flaky tests",
}

// seedCmd represents the seed command.
var seedCmd = &cobra.Command{
	Use:              "seed",
	Short:            "Fill the task database with demo data",
	Long:             `Generate a batch of random tasks, useful for trying out the board UI.`,
	PersistentPreRun: bindFlags,
	RunE: func(_ *cobra.Command, _ []string) error {
		storage, err := db.NewStorageFromPath(storagePath)
		if err != nil {
			return fmt.Errorf("could not open %s as sqlite file: %w", storagePath, err)
		}
		defer storage.Close()

		bar := progressbar.Default(int64(seedCount), "Seeding tasks...")

		statuses := model.Statuses()
		now := time.Now().UTC()

		for i := range seedCount {
			task := &model.Task{
				ID:        uuid.NewString(),
				Title:     seedVerbs[rand.IntN(len(seedVerbs))] + " " + seedTopics[rand.IntN(len(seedTopics))],
				Status:    statuses[rand.IntN(len(statuses))],
				Priority:  rand.IntN(4),
				CreatedAt: now.Add(-time.Duration(i) * time.Hour),
			}

			if err := storage.Store(task); err != nil {
				return fmt.Errorf("could not store demo task: %w", err)
			}

			if err := bar.Add(1); err != nil {
				slog.Error("could not update progress bar", "error", err)
			}
		}

		if err := bar.Finish(); err != nil {
			slog.Error("could not finish progress bar", "error", err)
		}

		slog.Info("Seeded demo tasks", "count", seedCount, "storage", storagePath)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().IntVarP(&seedCount, "count", "n", 50,
		"How many demo tasks to create")

	seedCmd.Flags().StringVarP(&storagePath, "storage", "s", "./tasks.sqlite",
		"Path to the task database")
}
