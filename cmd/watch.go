package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/VaibhavRumale/Constant-Fold/internal"
	"github.com/VaibhavRumale/Constant-Fold/optimize"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dirs...]",
	Short: "Re-run constant folding whenever a source file changes",
	Run: func(cmd *cobra.Command, args []string) {
		dirs := args
		if len(dirs) == 0 {
			dirs = []string{"."}
		}

		engine, _, err := optimize.New(cfgFile, logger)
		if err != nil {
			logger.Fatal("Failed to initialize engine", zap.Error(err))
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := runWatch(ctx, logger, engine, dirs, os.Stdout, os.Stderr); err != nil {
			logger.Fatal("Failed to watch directories", zap.Error(err))
		}
	},
}

// runWatch folds every changed file below dirs until ctx is done.
func runWatch(ctx context.Context, logger *zap.Logger, engine *internal.Engine, dirs []string, stdout, stderr io.Writer) error {
	onReport := func(report *internal.Report, err error) {
		if err != nil {
			fmt.Fprintln(stderr, err)
			return
		}
		fmt.Fprintf(stdout, "%s:\n", report.Filename)
		printReport(logger, report, stdout, stderr)
	}

	if err := engine.StartWatching(dirs, onReport); err != nil {
		return err
	}
	logger.Info("watching for changes", zap.Strings("dirs", dirs))

	<-ctx.Done()
	return engine.StopWatching()
}
