package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sensei-lua/lualint/internal/diag"
	"github.com/sensei-lua/lualint/internal/scanner"
)

func checkLine(cfg Config, raw string, depth int) []diag.Diagnostic {
	c := &indentChecker{cfg: cfg.normalized()}
	c.check(scanner.New().Next(raw), 1, depth)
	return c.diags
}

func TestIndentChecker_WidthAgainstDepth(t *testing.T) {
	cfg := Config{IndentSize: 2}

	tests := []struct {
		name    string
		line    string
		depth   int
		wantMsg string
	}{
		{
			name:  "top level at zero depth",
			line:  "if true then",
			depth: 0,
		},
		{
			name:    "body missing indent",
			line:    "print(1)",
			depth:   1,
			wantMsg: "got width 0, want 2",
		},
		{
			name:  "body correctly indented",
			line:  "  print(1)",
			depth: 1,
		},
		{
			name:    "over-indented body",
			line:    "      print(1)",
			depth:   1,
			wantMsg: "got width 6, want 2",
		},
		{
			name:  "leading end sits one level out",
			line:  "end",
			depth: 1,
		},
		{
			name:  "leading until sits one level out",
			line:  "until done",
			depth: 1,
		},
		{
			name:  "else aligns with its if",
			line:  "  else",
			depth: 2,
		},
		{
			name:  "elseif aligns with its if",
			line:  "  elseif x then",
			depth: 2,
		},
		{
			name:    "end not at the first column of content",
			line:    "x = end_marker",
			depth:   1,
			wantMsg: "got width 0, want 2",
		},
		{
			name:  "trailing end does not dedent the line",
			line:  "  if x then return end",
			depth: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := checkLine(cfg, tt.line, tt.depth)
			if tt.wantMsg == "" {
				assert.Empty(t, ds)
				return
			}
			require.Len(t, ds, 1)
			assert.Equal(t, diag.IndentInconsistent, ds[0].Kind)
			assert.Contains(t, ds[0].Message, tt.wantMsg)
		})
	}
}

func TestIndentChecker_Tabs(t *testing.T) {
	t.Run("tab rejected by default", func(t *testing.T) {
		ds := checkLine(Config{IndentSize: 4}, "\tprint(1)", 1)
		require.Len(t, ds, 1)
		assert.Equal(t, diag.IndentInconsistent, ds[0].Kind)
		assert.Contains(t, ds[0].Message, "tabs not allowed")
		assert.Equal(t, 1, ds[0].Column)
	})

	t.Run("tab counts as one level when allowed", func(t *testing.T) {
		ds := checkLine(Config{IndentSize: 4, AllowTabs: true}, "\tprint(1)", 1)
		assert.Empty(t, ds)
	})

	t.Run("two tabs at depth one is a width mismatch", func(t *testing.T) {
		ds := checkLine(Config{IndentSize: 4, AllowTabs: true}, "\t\tprint(1)", 1)
		require.Len(t, ds, 1)
		assert.Contains(t, ds[0].Message, "got width 8, want 4")
	})

	t.Run("mixed tabs and spaces always flagged", func(t *testing.T) {
		ds := checkLine(Config{IndentSize: 4, AllowTabs: true}, " \tprint(1)", 0)
		require.Len(t, ds, 1)
		assert.Contains(t, ds[0].Message, "mixed tabs and spaces")
	})
}

func TestIndentChecker_ExemptLines(t *testing.T) {
	cfg := Config{IndentSize: 4}

	t.Run("blank line", func(t *testing.T) {
		assert.Empty(t, checkLine(cfg, "", 3))
	})

	t.Run("whitespace-only line", func(t *testing.T) {
		assert.Empty(t, checkLine(cfg, "      ", 3))
	})

	t.Run("line inside a long string", func(t *testing.T) {
		sc := scanner.New()
		sc.Next("local s = [[")
		c := &indentChecker{cfg: cfg}
		c.check(sc.Next("      raw text, any indent"), 2, 0)
		assert.Empty(t, c.diags)
	})
}
