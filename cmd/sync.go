package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/mediaforge/archon/pkg/archon"
	"github.com/mediaforge/archon/pkg/config"
	"github.com/mediaforge/archon/pkg/logger"
	"github.com/mediaforge/archon/pkg/notification"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Mirror the source tree into the target tree",
	Long: `Walks the source tree, copies or converts stale files into the target tree
and prunes target entries with no surviving source counterpart. Exits
non-zero when any item failed.`,

	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		start := time.Now()

		// init core
		if !initialized {
			initCore(true)
			initialized = true
		}

		// set log
		log := logger.GetLogger("sync")

		// the base config file's mtime invalidates every target it governs
		var configMTime time.Time
		if fi, err := os.Stat(config.Path()); err == nil {
			configMTime = fi.ModTime()
		} else {
			log.WithError(err).Warn("Could not stat config file, config age will not trigger rebuilds")
		}

		syncer, err := archon.New(config.Config, archon.Options{
			DryRun:      flagDryRun,
			ConfigMTime: configMTime,
		})
		if err != nil {
			log.WithError(err).Fatal("Failed initializing syncer")
		}

		sum, err := syncer.Run(ctx)
		if err != nil {
			log.WithError(err).Fatal("Sync failed")
		}

		noti := notification.NewWebhookSender(log, config.Config.Notify)
		if noti.CanSend() {
			sendErr := noti.Send(
				"Sync",
				fmt.Sprintf("Copied **%d** and converted **%d** files | Pruned **%d** entries | Reclaimed **%s**",
					sum.CopiedFiles.Load(), sum.ConvertedFiles.Load(),
					sum.PrunedFiles.Load()+sum.PrunedDirs.Load(),
					humanize.IBytes(sum.ReclaimedBytes.Load())),
				time.Since(start),
				buildSummaryFields(sum),
				flagDryRun,
			)
			if sendErr != nil {
				log.WithError(sendErr).Error("Failed sending notification")
			}
		}

		if sum.FailureCount() > 0 {
			os.Exit(1)
		}
	},
}

func buildSummaryFields(sum *archon.Summary) []notification.Field {
	fields := []notification.Field{
		{Name: "Walked dirs", Value: fmt.Sprintf("%d", sum.WalkedDirs.Load())},
		{Name: "Copied", Value: fmt.Sprintf("%d (%s)", sum.CopiedFiles.Load(), humanize.IBytes(sum.CopiedBytes.Load()))},
		{Name: "Converted", Value: fmt.Sprintf("%d", sum.ConvertedFiles.Load())},
		{Name: "Up to date", Value: fmt.Sprintf("%d", sum.UpToDate.Load())},
		{Name: "Pruned", Value: fmt.Sprintf("%d files / %d folders", sum.PrunedFiles.Load(), sum.PrunedDirs.Load())},
	}

	for _, f := range sum.Failures() {
		fields = append(fields, notification.Field{
			Name:  fmt.Sprintf("%s failure", f.Kind),
			Value: f.Path,
		})
	}

	return fields
}

func init() {
	rootCmd.AddCommand(syncCmd)
}
