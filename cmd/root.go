// Package cmd provides the nyaya CLI.
//
// Commands:
//   - ask:      answer a BNS legal query from the terminal
//   - validate: analyze an uploaded PDF and export a draft
//   - serve:    run the HTTP API server
//   - ingest:   load statute passages into the corpus
//   - version:  print build information
package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/nyayalabs/nyaya/internal/config"
	"github.com/nyayalabs/nyaya/internal/log"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "nyaya",
	Short: "Retrieval-augmented legal assistant for the Bharatiya Nyaya Sanhita",
	Long: `nyaya answers legal queries and validates legal documents against the
Bharatiya Nyaya Sanhita (BNS). Answers are grounded in statute passages
retrieved from a vector corpus; document validation produces a
structured analysis and a downloadable draft.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env", "",
		"environment file with required secrets (default key.env)")
	slog.SetDefault(newLogger())
}

// newLogger builds the process logger. DEBUG in the environment lowers
// the level; logs go to stderr so stdout stays clean for answers.
func newLogger() log.Logger {
	level := slog.LevelInfo
	if os.Getenv("DEBUG") != "" {
		level = slog.LevelDebug
	}
	return log.New(log.Config{Level: level})
}

// loadConfig loads and validates configuration. A missing secret is
// fatal: commands do not run partially configured.
func loadConfig() (*config.Config, error) {
	return config.Load(envFile)
}
