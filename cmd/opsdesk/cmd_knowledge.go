package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/caura-labs/opsdesk/internal/action"
	"github.com/caura-labs/opsdesk/internal/intent"
	"github.com/caura-labs/opsdesk/internal/note"
)

func newKnowledgeCmd(logger *slog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "knowledge",
		Aliases: []string{"kb"},
		Short:   "Manage knowledge entries",
	}
	cmd.AddCommand(
		newKnowledgeAddCmd(logger),
		newKnowledgeSearchCmd(logger),
		newKnowledgeListCmd(logger),
		newKnowledgeImportCmd(logger),
	)
	return cmd
}

func newKnowledgeAddCmd(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "add <title> [content...]",
		Short: "Store a knowledge entry",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return newExecutor(cfg, logger).Execute(cmd.Context(), &intent.Result{
				Intent: intent.KnowledgeCreate,
				Payload: intent.KnowledgeCreatePayload{
					Title:   args[0],
					Content: strings.Join(args[1:], " "),
				},
			})
		},
	}
}

func newKnowledgeSearchCmd(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query...>",
		Short: "Search knowledge entries",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return newExecutor(cfg, logger).Execute(cmd.Context(), &intent.Result{
				Intent:  intent.KnowledgeSearch,
				Payload: intent.KnowledgeSearchPayload{Query: strings.Join(args, " ")},
			})
		},
	}
}

func newKnowledgeListCmd(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all knowledge entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return newExecutor(cfg, logger).Execute(cmd.Context(), &intent.Result{
				Intent:  intent.KnowledgeList,
				Payload: intent.KnowledgeListPayload{},
			})
		},
	}
}

func newKnowledgeImportCmd(logger *slog.Logger) *cobra.Command {
	var workers int

	cmd := &cobra.Command{
		Use:   "import <dir>",
		Short: "Import a directory of markdown notes as knowledge entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if workers <= 0 {
				workers = cfg.Import.Workers
			}

			paths, err := note.ScanDir(args[0])
			if err != nil {
				return fmt.Errorf("scanning %s: %w", args[0], err)
			}
			if len(paths) == 0 {
				fmt.Println("No markdown files found.")
				return nil
			}

			exec := newExecutor(cfg, logger)
			ctx := cmd.Context()

			logger.Info("importing notes", "files", len(paths), "workers", workers)

			// Fixed worker pool; each file is one backend call.
			jobs := make(chan string)
			errs := make([]error, len(paths))
			index := make(map[string]int, len(paths))
			for i, p := range paths {
				index[p] = i
			}

			var wg sync.WaitGroup
			for range workers {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for path := range jobs {
						errs[index[path]] = importNote(ctx, exec, path)
					}
				}()
			}
			for _, p := range paths {
				jobs <- p
			}
			close(jobs)
			wg.Wait()

			imported := 0
			for i, err := range errs {
				if err != nil {
					logger.Error("import failed", "file", paths[i], "error", err)
					continue
				}
				imported++
			}
			fmt.Printf("Imported %d/%d notes.\n", imported, len(paths))
			if imported < len(paths) {
				return fmt.Errorf("%d of %d notes failed to import", len(paths)-imported, len(paths))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&workers, "workers", 0, "concurrent imports (default from config)")

	return cmd
}

// importNote stores one markdown note as a knowledge entry. Workers call the
// backend directly; rendering a table per file would interleave output.
func importNote(ctx context.Context, exec *action.Executor, path string) error {
	n, err := note.Load(path)
	if err != nil {
		return err
	}
	_, err = exec.Providers.Knowledge.CreateEntry(ctx, n.Title, n.Body)
	return err
}
