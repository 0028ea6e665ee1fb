// Package render formats diagnostics for terminal output. The format is
// `path:L<line>:C<col> CODE message`, one finding per line, optionally styled
// with lipgloss when color output is requested.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sensei-lua/lualint/internal/diag"
)

var (
	posStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	syntaxStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	indentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	formatStyle = lipgloss.NewStyle().Faint(true)
)

func codeStyle(code string) lipgloss.Style {
	switch code {
	case "SYNTAX":
		return syntaxStyle
	case "INDENT":
		return indentStyle
	default:
		return formatStyle
	}
}

// Diagnostics renders the findings of one file. Path may be empty (stdin);
// the result is empty for a clean file.
func Diagnostics(path string, ds []diag.Diagnostic, color bool) string {
	if len(ds) == 0 {
		return ""
	}
	var b strings.Builder
	for _, d := range ds {
		b.WriteString(Line(path, d, color))
		b.WriteByte('\n')
	}
	return b.String()
}

// Line renders a single finding without a trailing newline.
func Line(path string, d diag.Diagnostic, color bool) string {
	pos := fmt.Sprintf("L%d:C%d", d.Line, d.Column)
	code := d.Kind.Code()
	if color {
		pos = posStyle.Render(pos)
		code = codeStyle(code).Render(code)
	}
	if path != "" {
		return fmt.Sprintf("%s:%s %s %s", path, pos, code, d.Message)
	}
	return fmt.Sprintf("%s %s %s", pos, code, d.Message)
}

// Clean is printed when no findings were produced at all.
const Clean = "No issues found."
