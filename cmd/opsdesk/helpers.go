package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/caura-labs/opsdesk/internal/action"
	"github.com/caura-labs/opsdesk/internal/config"
	"github.com/caura-labs/opsdesk/internal/provider/desk"
	"github.com/caura-labs/opsdesk/internal/state"
)

// loadConfig reads the config file named by the root --config flag.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		path = "opsdesk.yaml"
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// newExecutor wires a backend client and renderer from cfg.
func newExecutor(cfg *config.Config, logger *slog.Logger) *action.Executor {
	client := desk.New(cfg.Server.BaseURL, cfg.Server.Token, cfg.Server.Timeout.Duration)

	state.SetHistoryDir(cfg.History.Dir)

	return &action.Executor{
		Providers: action.Providers{
			Knowledge: client,
			Approvals: client,
			Requests:  client,
			Health:    client,
		},
		Render:      action.NewRenderer(os.Stdout, useColor(cfg.Output.Color)),
		Logger:      logger,
		KeepHistory: true,
	}
}

func useColor(mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	// auto: only when stdout is a terminal
	fi, err := os.Stdout.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}

// cleanupHistory prunes old recorded actions, best effort.
func cleanupHistory(cfg *config.Config, logger *slog.Logger) {
	if deleted, err := state.Cleanup(cfg.History.Retention.Duration); err != nil {
		logger.Warn("history cleanup failed", "error", err)
	} else if deleted > 0 {
		logger.Info("cleaned up old actions", "deleted", deleted)
	}
}

// --- Dynamic completions ---

// completeRecordIDs completes record IDs from recently executed actions
// whose intent starts with prefix (e.g. "approvals").
func completeRecordIDs(prefix string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if cfg, err := loadConfig(cmd); err == nil {
			state.SetHistoryDir(cfg.History.Dir)
		}
		ids, err := state.RecordIDs(prefix)
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		var out []string
		for _, id := range ids {
			if strings.HasPrefix(id, toComplete) {
				out = append(out, id)
			}
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	}
}
