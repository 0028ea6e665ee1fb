package cmd

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sensei-lua/lualint/internal/lsp"
)

var serveLogFile string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run as a language server over stdio",
	Long: `Speaks a minimal subset of the Language Server Protocol on stdin/stdout:
document sync plus pushed diagnostics. Point your editor's LSP client at
"lualint serve" to get findings inline.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveLogFile, "log", "",
		"log file path (defaults to stderr; stdout carries the protocol)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	if serveLogFile != "" {
		f, err := os.OpenFile(serveLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return err
		}
		defer f.Close()
		log.SetOutput(f)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Printf("lualint language server starting")

	server := lsp.NewServer(cfg.Lint())
	err := server.Serve(ctx, os.Stdin, os.Stdout)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	log.Printf("lualint language server shutdown complete")
	return nil
}
