// Package gridact implements the CLI: serving the board, seeding demo
// data and exporting the task table from the command line.
package gridact

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "gridact",
	Short: "A small self-hosted task board",
	Long: `Gridact keeps a task list in a local SQLite file and serves it as a
web board with configurable toolbar and row actions. Tasks can be seeded
and exported from the command line as well.`,
	PersistentPreRun: bindFlags,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is gridact.toml in the XDG config dir)")
}

func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search the XDG config dir first, then the home dir and the
		// working dir, for a file named gridact.toml.
		viper.AddConfigPath(filepath.Join(xdg.ConfigHome, "gridact"))
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("toml")
		viper.SetConfigName("gridact")
	}

	viper.SetEnvPrefix("gridact")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			createExampleConfig()
		} else {
			slog.Error("Could not read config file", "error", err)
			os.Exit(1)
		}
	}
}

func createExampleConfig() {
	exampleConfig := `
port = 8080
storage = "./tasks.sqlite"
`

	configPath := "./gridact.toml"

	if err := os.WriteFile(configPath, []byte(exampleConfig), 0o644); err != nil {
		slog.Error("Could not create example config file", "error", err)
		os.Exit(1)
	}

	slog.Info("Example config file created", "path", configPath)
}

// set values to the PFlag variables from config, if they are set. Priority is still given to explicitly provided CLI flags.
func bindFlags(cmd *cobra.Command, _ []string) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		// Viper compares case-insensitively, so stripping the hyphens is
		// all a camelCased config file needs.
		configName := strings.ReplaceAll(f.Name, "-", "")

		if !f.Changed && viper.IsSet(configName) {
			val := viper.Get(configName)

			if err := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", val)); err != nil {
				slog.Error("Could not bind flag to config value", "flag", f.Name, "error", err)
				panic(err)
			}
		}
	})
}
