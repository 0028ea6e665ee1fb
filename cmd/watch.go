package cmd

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sensei-lua/lualint/internal/render"
	"github.com/sensei-lua/lualint/internal/runner"
	"github.com/sensei-lua/lualint/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Lint a directory tree and re-lint files as they change",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return err
	}

	lcfg := cfg.Lint()
	out := cmd.OutOrStdout()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	r := runner.New(root, lcfg, cfg.Extensions)
	if err := r.Build(ctx); err != nil {
		return fmt.Errorf("initial lint of %s: %w", root, err)
	}

	total := 0
	for _, path := range r.Files() {
		ds := r.Diagnostics(path)
		total += len(ds)
		fmt.Fprint(out, render.Diagnostics(relPath(root, path), ds, lcfg.Color))
	}
	if total == 0 {
		fmt.Fprintln(out, render.Clean)
	}

	w, err := watcher.New(root, r.Matches, func(changed, removed []string) {
		for _, path := range removed {
			r.RemoveFile(path)
		}
		for _, path := range changed {
			if err := r.LintFile(path); err != nil {
				log.Printf("failed to lint %s: %v", path, err)
				continue
			}
			name := relPath(root, path)
			if ds := r.Diagnostics(path); len(ds) > 0 {
				fmt.Fprint(out, render.Diagnostics(name, ds, lcfg.Color))
			} else {
				fmt.Fprintf(out, "%s: %s\n", name, render.Clean)
			}
		}
	})
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Start(); err != nil {
		return err
	}

	<-ctx.Done()
	return nil
}

func relPath(root, path string) string {
	if rel, err := filepath.Rel(root, path); err == nil {
		return rel
	}
	return path
}
