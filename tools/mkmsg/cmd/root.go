package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zostay/go-mailbuilder/message"
	"github.com/zostay/go-mailbuilder/tools/mkmsg/recipe"
)

var (
	rootCmd = &cobra.Command{
		Use:               "mkmsg",
		Short:             "Build and inspect email messages",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setupLogger,
	}

	logLevel string
	logger   = slog.Default()
)

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", os.Getenv("MKMSG_LOG_LEVEL"),
		"log level: debug, info, warn, or error (default warn, or $MKMSG_LOG_LEVEL)")

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(treeCmd)
	rootCmd.AddCommand(checkCmd)
}

// Execute runs the command line.
func Execute() error {
	return rootCmd.Execute()
}

func setupLogger(cmd *cobra.Command, _ []string) error {
	var level slog.Level
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "", "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("unknown log level %q", logLevel)
	}

	logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: level,
	}))
	return nil
}

// loadBuilder reads the recipe at path and returns the Builder for it.
func loadBuilder(path string) (*message.Builder, error) {
	r, err := recipe.Load(path)
	if err != nil {
		return nil, err
	}

	logger.Debug("loaded recipe",
		"path", path,
		"attachments", len(r.Attachments),
		"boundaries", len(r.Boundaries))

	return r.Builder()
}
