package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/admission/internal/cli"
	"github.com/aretw0/admission/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "admission",
	Short: "Admission serves the entrance exam score upload template",
	Long: `Admission generates the score upload template used by administrators to
bulk-enter stanine scores, either over HTTP or straight to a file.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML configuration file")
	rootCmd.PersistentFlags().String("env-file", ".env", "Environment file loaded before ADMISSION_* overrides")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error); overrides the config")
}

// loadRuntime reads the configuration and builds the logger for a command.
func loadRuntime(cmd *cobra.Command) (config.Config, *slog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	envFile, _ := cmd.Flags().GetString("env-file")
	level, _ := cmd.Flags().GetString("log-level")

	cfg, err := config.Load(path, envFile)
	if err != nil {
		return config.Config{}, nil, err
	}
	logger, err := cli.CreateLogger(cfg.Log, level)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, logger, nil
}
