package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mediaforge/archon/pkg/config"
	"github.com/mediaforge/archon/pkg/logger"
)

var (
	// Global flags
	flagConfigFile string
	flagLogFile    string
	flagLogLevel   string
	flagDryRun     bool

	initialized bool
)

var rootCmd = &cobra.Command{
	Use:   "archon",
	Short: "Mirror a media tree, transcoding on the way",
	Long: `archon incrementally mirrors a source directory tree into a target tree,
copying some files as-is and converting others through an external command,
then prunes target entries that no longer exist in the source.`,
}

// Execute runs the CLI with interrupt-aware context: on SIGINT/SIGTERM no
// new work is submitted and in-flight items finish or abort at their next
// I/O boundary.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfigFile, "config", "c", config.DefaultFilename, "Config file")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Mirror logs to a rotated file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&flagDryRun, "dry-run", false, "Log actions without writing or removing anything")
}

func initCore(showAppInfo bool) {
	// init logging
	if err := logger.Init(flagLogLevel, flagLogFile); err != nil {
		logrus.WithError(err).Fatal("Failed initializing logging")
	}

	// init config
	if err := config.Init(flagConfigFile); err != nil {
		logrus.WithError(err).Fatalf("Failed loading configuration from %q", flagConfigFile)
	}

	if showAppInfo {
		config.ShowUsing()
		logger.ShowUsing()
	}
}
