// Package lint implements the whole-file analysis pass: the block stack
// engine, the indentation consistency checker and the whitespace checks, fed
// by the line scanner and merged into one ordered diagnostic list.
package lint

import (
	"strings"

	"github.com/sensei-lua/lualint/internal/diag"
	"github.com/sensei-lua/lualint/internal/scanner"
)

// DefaultIndentSize is used when a config carries a non-positive indent size.
const DefaultIndentSize = 4

// Config holds the per-run analysis settings. Color is accepted here so the
// whole configuration travels as one value, but only renderers look at it.
type Config struct {
	IndentSize int
	AllowTabs  bool
	Color      bool
}

// DefaultConfig returns the stock configuration: 4-space indents, no tabs,
// no color.
func DefaultConfig() Config {
	return Config{IndentSize: DefaultIndentSize}
}

func (c Config) normalized() Config {
	if c.IndentSize <= 0 {
		c.IndentSize = DefaultIndentSize
	}
	return c
}

// Analyze runs all checks over one file's text and returns the findings
// sorted by line, then kind. It is a pure function of its inputs: every call
// builds fresh scanner and stack state, so identical input always yields an
// identical diagnostic sequence and callers may analyze files in parallel.
func Analyze(source string, cfg Config) []diag.Diagnostic {
	cfg = cfg.normalized()

	lines := splitLines(source)
	sc := scanner.New()
	stack := &blockStack{}
	indent := &indentChecker{cfg: cfg}
	var diags []diag.Diagnostic

	for i, raw := range lines {
		num := i + 1
		ln := sc.Next(raw)

		// Depth is checkpointed before this line's own opens and closes.
		indent.check(ln, num, stack.depth())

		if ln.TrailingWS && !ln.StartMasked {
			diags = append(diags, diag.New(diag.TrailingWhitespace, num, len(raw),
				"trailing whitespace"))
		}

		for _, tok := range ln.Tokens {
			stack.apply(tok, num)
		}
	}
	stack.finalize()

	if source != "" && !strings.HasSuffix(source, "\n") {
		last := len(lines)
		diags = append(diags, diag.New(diag.MissingFinalNewline, last, len(lines[last-1])+1,
			"missing final newline"))
	}

	diags = append(diags, indent.diags...)
	diags = append(diags, stack.diags...)
	diag.Sort(diags)
	return diags
}

// splitLines splits on \n without producing a phantom empty line for input
// that ends with a final newline. A \r before the break is stripped so CRLF
// files are not flagged on every line.
func splitLines(source string) []string {
	if source == "" {
		return nil
	}
	trimmed := strings.TrimSuffix(source, "\n")
	lines := strings.Split(trimmed, "\n")
	for i, ln := range lines {
		lines[i] = strings.TrimSuffix(ln, "\r")
	}
	return lines
}
