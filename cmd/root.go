// Package cmd wires the command-line surface: flag and config handling via
// cobra/viper, and the exit-code mapping on top of the core analysis.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sensei-lua/lualint/internal/config"
	"github.com/sensei-lua/lualint/internal/lint"
	"github.com/sensei-lua/lualint/internal/render"
)

var (
	version = "0.1.0"
	cfgFile string
	quiet   bool
	cfg     config.Config
)

// errFindings signals a non-zero exit without an error message: the findings
// themselves are the output.
var errFindings = errors.New("lint findings")

var rootCmd = &cobra.Command{
	Use:   "lualint [flags] file...",
	Short: "A friendly static checker for Lua source files",
	Long: `lualint flags common surface mistakes in Lua scripts without building a
full parse tree: inconsistent indentation, trailing whitespace, and
unbalanced block constructs (do/end, if/then/end, repeat/until and friends).
It is aimed at learners; diagnostics favor clarity over completeness.

Pass one or more files, or '-' to read from stdin.`,
	Version:       version,
	Args:          cobra.MinimumNArgs(1),
	RunE:          runLint,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI and maps the outcome to the process exit code:
// 0 clean, 1 findings, 2 usage or I/O errors.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, errFindings) {
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(2)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .lualint.yaml, then ~/.config/lualint/config.yaml)")
	rootCmd.PersistentFlags().Int("indent-size", lint.DefaultIndentSize,
		"expected indentation width per block level")
	rootCmd.PersistentFlags().Bool("allow-tabs", false,
		"accept tab indentation (one tab per level)")
	rootCmd.PersistentFlags().Bool("color", false,
		"colorize diagnostics")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false,
		"print nothing, report through the exit code only")

	// Bind flags to viper so they override config file values
	_ = viper.BindPFlag("indent_size", rootCmd.PersistentFlags().Lookup("indent-size"))
	_ = viper.BindPFlag("allow_tabs", rootCmd.PersistentFlags().Lookup("allow-tabs"))
	_ = viper.BindPFlag("color", rootCmd.PersistentFlags().Lookup("color"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("indent_size", defaults.IndentSize)
	viper.SetDefault("allow_tabs", defaults.AllowTabs)
	viper.SetDefault("color", defaults.Color)
	viper.SetDefault("extensions", defaults.Extensions)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .lualint.yaml (current directory)
		// 2. ~/.config/lualint/config.yaml
		if _, err := os.Stat(".lualint.yaml"); err == nil {
			viper.SetConfigFile(".lualint.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "lualint"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	// Missing config files are fine; defaults and flags carry the run.
	_ = viper.ReadInConfig()
	_ = viper.Unmarshal(&cfg)
}

func runLint(cmd *cobra.Command, args []string) error {
	lcfg := cfg.Lint()

	type result struct {
		out string
		n   int
		err error
	}
	results := make([]result, len(args))

	// Files are independent; lint them concurrently and print in argument
	// order afterwards.
	var wg sync.WaitGroup
	sem := make(chan struct{}, 8)
	for i, path := range args {
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			source, name, err := readSource(cmd.InOrStdin(), path)
			if err != nil {
				results[i] = result{err: err}
				return
			}
			ds := lint.Analyze(source, lcfg)
			results[i] = result{
				out: render.Diagnostics(name, ds, lcfg.Color),
				n:   len(ds),
			}
		}(i, path)
	}
	wg.Wait()

	out := cmd.OutOrStdout()
	total := 0
	var firstErr error
	for _, res := range results {
		if res.err != nil {
			if firstErr == nil {
				firstErr = res.err
			}
			continue
		}
		total += res.n
		if !quiet && res.out != "" {
			fmt.Fprint(out, res.out)
		}
	}

	if firstErr != nil {
		return firstErr
	}
	if total == 0 {
		if !quiet {
			fmt.Fprintln(out, render.Clean)
		}
		return nil
	}
	return errFindings
}

// readSource loads a file's text, with "-" meaning stdin.
func readSource(stdin io.Reader, path string) (source, name string, err error) {
	if path == "-" {
		content, err := io.ReadAll(stdin)
		if err != nil {
			return "", "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(content), "stdin", nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return "", "", err
	}
	return string(content), path, nil
}
