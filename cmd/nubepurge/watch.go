package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nube-system/nubepurge"
	"github.com/nube-system/nubepurge/internal/purge"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Purge again whenever the stylesheet or project files change",
	Long: `Run purge once, then watch the content root and the source stylesheet
and run it again after each burst of changes. Stops on Ctrl-C.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runWatch,
}

func init() {
	addPurgeFlags(watchCmd)
	watchCmd.Flags().Duration("debounce", 0, "Quiet period before re-running (default 200ms)")
}

func runWatch(cmd *cobra.Command, _ []string) error {
	config, err := buildConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errReporter := purge.NewReporter(os.Stderr, getBoolWithFallback("color", "color", false))

	return nubepurge.Watch(ctx, config, nubepurge.WatchOptions{
		Debounce: getDurationWithFallback("debounce", "watch.debounce", nubepurge.DefaultDebounce),
		OnResult: func(result *nubepurge.Result, err error) {
			if err != nil {
				// keep watching; the next change may fix it
				errReporter.PrintError(err)
				return
			}
			if err := writeResult(result); err != nil {
				config.Logger.Warn("writing result", "err", err)
			}
		},
	})
}

// getDurationWithFallback checks the flag key first, then the config file key, then returns the default.
// A zero duration counts as unset.
func getDurationWithFallback(flagKey, configKey string, defaultVal time.Duration) time.Duration {
	if v := k.Duration(flagKey); v > 0 {
		return v
	}
	if v := k.Duration(configKey); v > 0 {
		return v
	}
	return defaultVal
}
