package jsonpick

import (
	"fmt"
	"strings"
)

// A Pointer is a parsed RFC 6901 JSON Pointer: the sequence of reference
// tokens from the document root to the target container.  The empty
// Pointer designates the root.  Tokens are stored decoded ("~1" and "~0"
// already rewritten); a numeric token such as "0" matches either the
// object key "0" or array index 0, decided by the container it applies to.
type Pointer []string

// ParsePointer parses an RFC 6901 pointer string.  The empty string
// designates the document root; any other pointer must start with '/'.
func ParsePointer(s string) (Pointer, error) {
	if s == "" {
		return nil, nil
	}
	if s[0] != '/' {
		return nil, &Error{
			Kind: PointerSyntax,
			Msg:  fmt.Sprintf("pointer %q must be empty or start with '/'", s),
		}
	}
	parts := strings.Split(s[1:], "/")
	p := make(Pointer, len(parts))
	for i, part := range parts {
		// "~1" before "~0", so that "~01" decodes to "~1" and not "/"
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		p[i] = part
	}
	return p, nil
}

// String re-encodes the pointer in RFC 6901 syntax.
func (p Pointer) String() string {
	if len(p) == 0 {
		return ""
	}
	var b strings.Builder
	for _, tok := range p {
		b.WriteByte('/')
		tok = strings.ReplaceAll(tok, "~", "~0")
		tok = strings.ReplaceAll(tok, "/", "~1")
		b.WriteString(tok)
	}
	return b.String()
}
