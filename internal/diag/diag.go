package diag

import "sort"

// Kind categorizes lint findings. The declaration order doubles as the
// tie-break order when several findings land on the same line.
type Kind int

const (
	UnexpectedClose Kind = iota
	MismatchedClose
	UnclosedBlock
	IndentInconsistent
	TrailingWhitespace
	MissingFinalNewline
)

func (k Kind) String() string {
	switch k {
	case UnexpectedClose:
		return "unexpected_close"
	case MismatchedClose:
		return "mismatched_close"
	case UnclosedBlock:
		return "unclosed_block"
	case IndentInconsistent:
		return "indent_inconsistent"
	case TrailingWhitespace:
		return "trailing_whitespace"
	case MissingFinalNewline:
		return "missing_final_newline"
	default:
		return "unknown"
	}
}

// Code groups kinds into the coarse issue categories shown to users.
func (k Kind) Code() string {
	switch k {
	case UnexpectedClose, MismatchedClose, UnclosedBlock:
		return "SYNTAX"
	case IndentInconsistent:
		return "INDENT"
	case TrailingWhitespace, MissingFinalNewline:
		return "FORMAT"
	default:
		return "GENERIC"
	}
}

// Severity ranks findings for renderers and editors.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// Severity returns the default severity for a kind. Block mismatches are
// errors, whitespace and indentation findings are warnings.
func (k Kind) Severity() Severity {
	switch k {
	case UnexpectedClose, MismatchedClose, UnclosedBlock:
		return SeverityError
	default:
		return SeverityWarning
	}
}

// Diagnostic is one finding in a source file. Line and Column are 1-indexed.
type Diagnostic struct {
	Line     int
	Column   int
	Kind     Kind
	Severity Severity
	Message  string
}

// New builds a diagnostic with the kind's default severity.
func New(kind Kind, line, column int, message string) Diagnostic {
	return Diagnostic{
		Line:     line,
		Column:   column,
		Kind:     kind,
		Severity: kind.Severity(),
		Message:  message,
	}
}

// Sort orders diagnostics by line, then by kind (block findings before
// indentation before whitespace). The sort is stable so equal entries keep
// their emission order.
func Sort(ds []Diagnostic) {
	sort.SliceStable(ds, func(i, j int) bool {
		if ds[i].Line != ds[j].Line {
			return ds[i].Line < ds[j].Line
		}
		return ds[i].Kind < ds[j].Kind
	})
}
