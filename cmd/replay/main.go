package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"riftreplay/internal/config"
	"riftreplay/internal/lifecycle"
	"riftreplay/internal/logger"
)

var args struct {
	configPath string
	noRef      bool
}

// cfg is loaded once before any subcommand runs
var cfg config.Config

var Cmd = &cobra.Command{
	Use:           "replay",
	Short:         "Reconstruct and inspect League of Legends matches",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, argv []string) error {
		config.LoadEnvFile()
		logger.InitWriter(os.Stderr, os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))

		var err error
		cfg, err = config.Load(args.configPath)
		return err
	},
}

func init() {
	Cmd.PersistentFlags().StringVar(&args.configPath, "config", "", "path to riftreplay.yaml")
	Cmd.PersistentFlags().BoolVar(&args.noRef, "no-ref", false, "skip reference metadata; assets are placeholders")

	Cmd.AddCommand(
		newSampleCmd(),
		newGoldCmd(),
		newExportCmd(),
		newFetchCmd(),
		newAnalyzeCmd(),
		newSearchCmd(),
		newDDragonCmd(),
	)
}

func main() {
	ctx := lifecycle.SetupSignalHandler(nil)
	if err := Cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
