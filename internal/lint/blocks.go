package lint

import (
	"fmt"

	"github.com/sensei-lua/lualint/internal/diag"
	"github.com/sensei-lua/lualint/internal/scanner"
)

// frame is one open block construct awaiting its closer.
type frame struct {
	keyword string // do, if, for, while, function, repeat
	line    int
	col     int
	// for/while frames open before their header `do`; the next `do` token
	// terminates the header instead of opening a second block.
	awaitingDo bool
}

// closer returns the keyword that closes this frame. Only `repeat` closes
// with `until`; everything else closes with `end`.
func (f frame) closer() string {
	if f.keyword == "repeat" {
		return "until"
	}
	return "end"
}

// blockStack consumes keyword tokens in line/column order and records block
// mismatch findings. It never stops early; a bad closer still pops so later
// lines are not cascading false positives.
type blockStack struct {
	frames []frame
	diags  []diag.Diagnostic
}

func (b *blockStack) depth() int { return len(b.frames) }

func (b *blockStack) apply(tok scanner.Token, line int) {
	switch tok.Keyword {
	case "do":
		if n := len(b.frames); n > 0 && b.frames[n-1].awaitingDo {
			b.frames[n-1].awaitingDo = false
			return
		}
		b.push("do", line, tok.Col, false)
	case "for", "while":
		b.push(tok.Keyword, line, tok.Col, true)
	case "if", "function", "repeat":
		b.push(tok.Keyword, line, tok.Col, false)
	case "end", "until":
		b.pop(tok.Keyword, line, tok.Col)
	case "then", "else", "elseif":
		// markers within an existing construct, never stack events
	}
}

func (b *blockStack) push(keyword string, line, col int, awaitingDo bool) {
	b.frames = append(b.frames, frame{
		keyword:    keyword,
		line:       line,
		col:        col,
		awaitingDo: awaitingDo,
	})
}

func (b *blockStack) pop(closer string, line, col int) {
	if len(b.frames) == 0 {
		b.diags = append(b.diags, diag.New(diag.UnexpectedClose, line, col,
			fmt.Sprintf("unexpected %q with no open block", closer)))
		return
	}
	top := b.frames[len(b.frames)-1]
	b.frames = b.frames[:len(b.frames)-1]
	if top.closer() != closer {
		b.diags = append(b.diags, diag.New(diag.MismatchedClose, line, col,
			fmt.Sprintf("expected %q to close %q opened at line %d, found %q",
				top.closer(), top.keyword, top.line, closer)))
	}
}

// finalize reports every frame still open at end of file, keyed to its
// opening line, in push order.
func (b *blockStack) finalize() {
	for _, f := range b.frames {
		b.diags = append(b.diags, diag.New(diag.UnclosedBlock, f.line, f.col,
			fmt.Sprintf("unclosed %q, expecting %q", f.keyword, f.closer())))
	}
	b.frames = nil
}
