// =============================================================================
// Cart Parser - Watch Command
// =============================================================================
//
// This file defines the 'watch' command, which keeps running and processes
// cart files as they are dropped into the input directory.
//
// COMMAND USAGE:
//   cartparser watch
//
// BEHAVIOR:
//   1. Carts already present in the input directory are processed first
//   2. Create and write events on *.csv files are collected
//   3. Once no event arrived for watch_debounce, the collected carts are
//      processed the same way as the 'process' command does
//   4. SIGINT or SIGTERM stops the watcher
//
// =============================================================================

package cmd

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/ginjaninja78/cart-parser/internal/converter"
	"github.com/ginjaninja78/cart-parser/pkg/utils"
)

// watchCmd represents the 'watch' command.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Process cart files as they arrive in the input directory",
	Long: `Watch processes the carts already in the input directory and then waits for
new ones. Bursts of file events are coalesced using the watch_debounce
setting, so a cart is processed once it has been fully written.

Stop the watcher with Ctrl+C.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runWatch(ctx)
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

// runWatch sweeps the input directory once and then watches it until ctx is
// done.
func runWatch(ctx context.Context) error {
	if err := appConfig.EnsureDirectories(); err != nil {
		return err
	}

	files := utils.NewFileManager(
		appConfig.InputDir,
		appConfig.OutputDir,
		appConfig.InputArchiveDir,
		appConfig.OutputArchiveDir,
	)

	existing, err := files.DiscoverInputFiles("")
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		processBatch(existing)
	}

	logger.Info("watching for carts", "dir", appConfig.InputDir, "debounce", appConfig.WatchDebounce)
	return watchCarts(ctx, appConfig.InputDir, appConfig.WatchDebounce, processBatch)
}

// processBatch processes the carts that still exist. A cart may be gone
// when it was archived by an earlier batch or removed by its producer.
func processBatch(paths []string) {
	var carts []string
	for _, path := range paths {
		if utils.FileExists(path) {
			carts = append(carts, path)
		}
	}
	if len(carts) == 0 {
		return
	}

	summary := processFiles(carts, appConfig, logger, converter.Options{})
	logger.Info("batch processed",
		"files", summary.TotalFiles,
		"successful", summary.SuccessfulFiles,
		"failed", summary.FailedFiles,
	)

	if _, err := utils.WriteSummaryLog(summary, appConfig.OutputDir); err != nil {
		logger.Warn("write summary failed", "error", err)
	}
}

// watchCarts calls onChange with the sorted set of cart files that were
// created or written in dir, once events have been quiet for debounce.
func watchCarts(ctx context.Context, dir string, debounce time.Duration, onChange func(paths []string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return err
	}

	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}

	timer := time.NewTimer(time.Hour)
	if !timer.Stop() {
		<-timer.C
	}
	pending := map[string]bool{}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			path := filepath.Clean(event.Name)
			if !utils.IsCartFile(path) {
				continue
			}

			logger.Debug("cart event", "file", path, "op", event.Op.String())
			if len(pending) > 0 && !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			pending[path] = true
			timer.Reset(debounce)

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			changed := make([]string, 0, len(pending))
			for path := range pending {
				changed = append(changed, path)
			}
			sort.Strings(changed)
			pending = map[string]bool{}
			onChange(changed)

		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return watchErr
		}
	}
}
