package althtml

import "fmt"

// ErrorKind classifies a fatal compile error. Kinds implement error
// themselves so that callers may test with errors.Is:
//
// 	if errors.Is(err, althtml.UndefinedError) { ... }
type ErrorKind int

const (
	noError ErrorKind = iota

	// IndentationError is raised when a line indents more than one level
	// deeper than the current level, or when space indentation is not a
	// multiple of the detected unit.
	IndentationError

	// SyntaxError is raised when a directive is missing its name, or when an
	// inline set value is not quoted.
	SyntaxError

	// UndefinedError is raised when an unknown macro is used, when a macro
	// is used with the wrong call form, or when an argument count mismatches.
	UndefinedError

	// RecursionError is raised when macro expansion nests deeper than
	// MaxDepth, as happens when a macro expands itself.
	RecursionError
)

func (k ErrorKind) Error() string { return k.String() }

// String returns the kind's name, as used in error messages.
func (k ErrorKind) String() string {
	switch k {
	case noError:
		return "NoError"
	case IndentationError:
		return "IndentationError"
	case SyntaxError:
		return "SyntaxError"
	case UndefinedError:
		return "UndefinedError"
	case RecursionError:
		return "RecursionError"
	default:
		return fmt.Sprintf("InvalidError%d", int(k))
	}
}

// Error is the error returned by Compile for any fatal condition. Line is the
// 1-based line number within the source being compiled when the error arose;
// errors from nested compilations (macro bodies, structural arguments, set
// blocks) propagate unchanged, so their line numbers are relative to the
// nested source.
type Error struct {
	Kind    ErrorKind
	Line    int
	Message string
}

func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%v: %s (at line %d)", e.Kind, e.Message, e.Line)
	}
	return fmt.Sprintf("%v: %s", e.Kind, e.Message)
}

// Unwrap returns the error's kind.
func (e *Error) Unwrap() error { return e.Kind }

func errorf(kind ErrorKind, line int, format string, args ...interface{}) error {
	return &Error{
		Kind:    kind,
		Line:    line,
		Message: fmt.Sprintf(format, args...),
	}
}
