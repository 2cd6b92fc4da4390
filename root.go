package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/msomdec/careerforge/internal/config"
)

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "careerforge",
	Short: "AI career toolkit server",
	Long:  "CareerForge serves the ATS scanner, cover letter, LinkedIn post, GitHub roast and salary negotiation tools.",
	// Running the binary with no subcommand starts the server.
	RunE:          runServe,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to YAML config file (default: CAREERFORGE_CONFIG env var, else environment only)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// loadConfig reads .env when present, then the config file and environment.
// Priority: explicit path > CAREERFORGE_CONFIG > no file.
func loadConfig(path string) (*config.Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("load .env", "error", err)
	}
	if path == "" {
		path = os.Getenv("CAREERFORGE_CONFIG")
	}
	return config.Load(path)
}

// setupLogger logs text to stdout and JSON to stderr.
func setupLogger(level slog.Level, dbg bool) *slog.Logger {
	if dbg {
		level = slog.LevelDebug
	}
	logOpts := &slog.HandlerOptions{Level: level}
	logger := slog.New(slog.NewMultiHandler(
		slog.NewTextHandler(os.Stdout, logOpts),
		slog.NewJSONHandler(os.Stderr, logOpts),
	))
	slog.SetDefault(logger)
	return logger
}
