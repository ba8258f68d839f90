package jsonpick

import (
	"errors"
	"testing"
)

func TestParsePointer(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Pointer
	}{
		{"root", "", nil},
		{"empty key", "/", Pointer{""}},
		{"single token", "/a", Pointer{"a"}},
		{"two tokens", "/a/b", Pointer{"a", "b"}},
		{"numeric token", "/0/items", Pointer{"0", "items"}},
		{"empty middle token", "/a//b", Pointer{"a", "", "b"}},
		{"escaped slash", "/a~1b", Pointer{"a/b"}},
		{"escaped tilde", "/m~0n", Pointer{"m~n"}},
		{"tilde then digit one", "/~01", Pointer{"~1"}},
		{"both escapes", "/~1~0", Pointer{"/~"}},
		{"dashed token", "/fruits-key", Pointer{"fruits-key"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParsePointer(tt.input)
			assertNoError(t, err)
			assertDeepEqual(t, p, tt.expected, "parsed pointer")
		})
	}
}

func TestParsePointerSyntaxError(t *testing.T) {
	for _, input := range []string{"a", "a/b", "~1", " /a"} {
		_, err := ParsePointer(input)
		assertKind(t, err, PointerSyntax)
		assertTrue(t, errors.Is(err, ErrPointerSyntax), "errors.Is should match ErrPointerSyntax")
	}
}

func TestParsePointerIdempotent(t *testing.T) {
	for _, input := range []string{"", "/", "/a/b", "/~0~1/x", "/a//"} {
		p1, err := ParsePointer(input)
		assertNoError(t, err)
		p2, err := ParsePointer(input)
		assertNoError(t, err)
		assertDeepEqual(t, p1, p2, "pointers parsed from the same string")
	}
}

func TestPointerString(t *testing.T) {
	for _, input := range []string{"", "/", "/a/b", "/a~1b/m~0n", "/~01", "/a//"} {
		p, err := ParsePointer(input)
		assertNoError(t, err)
		if got := p.String(); got != input {
			t.Fatalf("expected %q, got %q", input, got)
		}
	}
}
