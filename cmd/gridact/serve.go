package gridact

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkravets/gridact/db"
	"github.com/mkravets/gridact/grid"
	"github.com/mkravets/gridact/web"
)

// serveCmd represents the serve command.
var serveCmd = &cobra.Command{
	Use:              "serve",
	Short:            "Serve the task board web interface",
	Long:             `Open the task database and serve the board UI until interrupted.`,
	PersistentPreRun: bindFlags,
	RunE: func(_ *cobra.Command, _ []string) error {
		storage, err := db.NewStorageFromPath(storagePath)
		if err != nil {
			return fmt.Errorf("could not open %s as sqlite file: %w", storagePath, err)
		}
		defer storage.Close()

		opts := web.DefaultGridOptions()
		opts.Name = boardTitle
		opts.AllowExport = allowExport
		opts.Generate = buttons

		return web.StartServer(port, opts, storage, web.BoardButtons{}, dev)
	},
}

var (
	storagePath string
	port        int
	dev         bool
	boardTitle  string
	allowExport bool
	buttons     []string
)

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVarP(&port, "port", "p", 8080,
		"Port on which server should be watching")

	serveCmd.Flags().StringVarP(&storagePath, "storage", "s", "./tasks.sqlite",
		"Path to the task database")

	serveCmd.Flags().BoolVar(&dev, "dev", false,
		"Enable developer mode")

	serveCmd.Flags().StringVar(&boardTitle, "title", "Task",
		"Display name of a board entry")

	serveCmd.Flags().BoolVar(&allowExport, "allow-export", true,
		"Offer the export buttons on the toolbar")

	serveCmd.Flags().StringSliceVar(&buttons, "buttons", grid.DefaultGenerate(),
		"Default buttons to generate")
}
