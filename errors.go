package jsonpick

import "fmt"

// Kind classifies the errors an Iterator can report.
type Kind int

const (
	// Lexical means malformed bytes at the token level: bad escape, bad
	// number, unknown keyword, stray byte.
	Lexical Kind = iota + 1

	// Structural means unbalanced brackets, missing comma or colon, a
	// value where a key was expected or a key where a value was expected.
	Structural

	// PointerSyntax means the pointer string is not a valid RFC 6901
	// JSON Pointer.
	PointerSyntax

	// PointerNotFound means the stream ended without the pointer matching
	// a container.
	PointerNotFound

	// PointerNotIterable means the pointer matched a scalar value.
	PointerNotIterable

	// Decode means the leaf decoder rejected a child's raw bytes.
	Decode

	// IO means the byte source failed.
	IO
)

func (k Kind) String() string {
	switch k {
	case Lexical:
		return "lexical error"
	case Structural:
		return "structural error"
	case PointerSyntax:
		return "pointer syntax error"
	case PointerNotFound:
		return "pointer not found"
	case PointerNotIterable:
		return "pointer not iterable"
	case Decode:
		return "decode error"
	case IO:
		return "input error"
	}
	return "unknown error"
}

// An Error is any error reported while iterating a document.  Offset is
// the byte offset from the start of the stream at which the error was
// detected.
type Error struct {
	Kind   Kind
	Offset int64
	Msg    string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s at offset %d: %s: %s", e.Kind, e.Offset, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s at offset %d: %s", e.Kind, e.Offset, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrLexical) and friends work: a bare kind
// sentinel matches any *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind && t.Offset == 0 && t.Msg == "" && t.Err == nil
}

// Sentinels for use with errors.Is.
var (
	ErrLexical            = &Error{Kind: Lexical}
	ErrStructural         = &Error{Kind: Structural}
	ErrPointerSyntax      = &Error{Kind: PointerSyntax}
	ErrPointerNotFound    = &Error{Kind: PointerNotFound}
	ErrPointerNotIterable = &Error{Kind: PointerNotIterable}
	ErrDecode             = &Error{Kind: Decode}
	ErrIO                 = &Error{Kind: IO}
)

func lexErrorf(offset int64, format string, args ...any) *Error {
	return &Error{Kind: Lexical, Offset: offset, Msg: fmt.Sprintf(format, args...)}
}

func structuralErrorf(offset int64, format string, args ...any) *Error {
	return &Error{Kind: Structural, Offset: offset, Msg: fmt.Sprintf(format, args...)}
}

func notFoundErrorf(offset int64, format string, args ...any) *Error {
	return &Error{Kind: PointerNotFound, Offset: offset, Msg: fmt.Sprintf(format, args...)}
}
