package lint

import (
	"fmt"

	"github.com/sensei-lua/lualint/internal/diag"
	"github.com/sensei-lua/lualint/internal/scanner"
)

// dedentKeywords start lines that sit one level out from the block body:
// closers, plus the `if` continuation markers.
var dedentKeywords = map[string]bool{
	"end":    true,
	"until":  true,
	"else":   true,
	"elseif": true,
}

// indentChecker compares each non-blank line's indentation against the width
// implied by the block depth inherited at the start of the line. Same-line
// opens and closes never adjust the expectation; only a leading closer or
// continuation keyword drops the line one level out.
type indentChecker struct {
	cfg   Config
	diags []diag.Diagnostic
}

func (c *indentChecker) check(ln scanner.Line, lineNum, depth int) {
	if ln.Blank || ln.StartMasked {
		return
	}

	in := ln.Indent
	if in.Mixed() {
		c.diags = append(c.diags, diag.New(diag.IndentInconsistent, lineNum, 1,
			"mixed tabs and spaces in indentation"))
		return
	}
	if !c.cfg.AllowTabs && in.Tabs > 0 {
		c.diags = append(c.diags, diag.New(diag.IndentInconsistent, lineNum, in.FirstTab,
			"tabs not allowed in indentation (expected spaces)"))
		return
	}

	if len(ln.Tokens) > 0 && ln.Tokens[0].Col == in.Chars()+1 && dedentKeywords[ln.Tokens[0].Keyword] {
		depth--
	}
	if depth < 0 {
		depth = 0
	}

	expected := depth * c.cfg.IndentSize
	actual := in.Spaces + in.Tabs*c.cfg.IndentSize
	if actual != expected {
		col := in.Chars()
		if col == 0 {
			col = 1
		}
		c.diags = append(c.diags, diag.New(diag.IndentInconsistent, lineNum, col,
			fmt.Sprintf("inconsistent indentation: got width %d, want %d", actual, expected)))
	}
}
