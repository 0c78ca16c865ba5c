package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/systmms/fixedsecret/cmd/fixedsecret/commands"
	"github.com/systmms/fixedsecret/internal/config"
	dserrors "github.com/systmms/fixedsecret/internal/errors"
	"github.com/systmms/fixedsecret/internal/logging"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", dserrors.SimplifyError(err))
		os.Exit(1)
	}
}

func run() error {
	var (
		configFile string
		noColor    bool
		debug      bool
	)

	cfg := &config.Config{}

	rootCmd := &cobra.Command{
		Use:   "fixedsecret",
		Short: "Load fixed-length keys into zeroizing containers",
		Long: `fixedsecret loads the keys named in a manifest from the environment,
files, the OS keyring or AWS Secrets Manager into fixed-length containers
that are zeroed as soon as they are no longer needed.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg.Path = configFile
			cfg.Logger = logging.New(debug, noColor)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "fixedsecret.yaml", "Manifest file path")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(
		commands.NewCheckCommand(cfg),
		commands.NewKeysCommand(cfg),
	)

	return rootCmd.Execute()
}
