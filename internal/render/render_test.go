package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sensei-lua/lualint/internal/diag"
)

func TestLine_Plain(t *testing.T) {
	d := diag.New(diag.UnclosedBlock, 1, 1, `unclosed "function", expecting "end"`)

	assert.Equal(t,
		`main.lua:L1:C1 SYNTAX unclosed "function", expecting "end"`,
		Line("main.lua", d, false))
}

func TestLine_NoPath(t *testing.T) {
	d := diag.New(diag.TrailingWhitespace, 4, 12, "trailing whitespace")

	assert.Equal(t, "L4:C12 FORMAT trailing whitespace", Line("", d, false))
}

func TestDiagnostics_OneLinePerFinding(t *testing.T) {
	ds := []diag.Diagnostic{
		diag.New(diag.IndentInconsistent, 2, 1, "inconsistent indentation: got width 0, want 2"),
		diag.New(diag.TrailingWhitespace, 3, 10, "trailing whitespace"),
	}

	out := Diagnostics("x.lua", ds, false)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], "INDENT")
	assert.Contains(t, lines[1], "FORMAT")
}

func TestDiagnostics_EmptyForCleanFile(t *testing.T) {
	assert.Empty(t, Diagnostics("x.lua", nil, false))
	assert.Empty(t, Diagnostics("x.lua", nil, true))
}

func TestLine_ColorKeepsContent(t *testing.T) {
	// Styling depends on the terminal's color profile, so only assert that
	// the pieces survive.
	d := diag.New(diag.MismatchedClose, 7, 1, `expected "until" to close "repeat" opened at line 2, found "end"`)

	out := Line("x.lua", d, true)
	assert.Contains(t, out, "L7:C1")
	assert.Contains(t, out, "SYNTAX")
	assert.Contains(t, out, `opened at line 2`)
}
