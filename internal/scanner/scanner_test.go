package scanner

import (
	"strings"
	"testing"
	"testing/iotest"
)

func strScanner(s string) *Scanner {
	return NewScanner(strings.NewReader(s))
}

func assertRead(t *testing.T, s *Scanner, xb byte, xerr error) {
	t.Helper()
	b, err := s.Read()
	if b != xb {
		t.Fatalf("Read: expected b = %q, got %q", xb, b)
	}
	if err != xerr {
		t.Fatalf("Read: expected err = %s, got %s", xerr, err)
	}
}

func assertPeek(t *testing.T, s *Scanner, xb byte, xerr error) {
	t.Helper()
	b, err := s.Peek()
	if b != xb {
		t.Fatalf("Peek: expected b = %q, got %q", xb, b)
	}
	if err != xerr {
		t.Fatalf("Peek: expected err = %s, got %s", xerr, err)
	}
}

func assertOffset(t *testing.T, s *Scanner, offset int64) {
	t.Helper()
	if s.Offset() != offset {
		t.Fatalf("Offset: expected %d, got %d", offset, s.Offset())
	}
}

func assertEndToken(t *testing.T, s *Scanner, tokStr string) {
	t.Helper()
	tok := s.EndToken()
	if string(tok) != tokStr {
		t.Fatalf("EndToken: expected %q got %q", tokStr, tok)
	}
}

func TestSimple(t *testing.T) {
	scanner := strScanner("bonjour")
	assertRead(t, scanner, 'b', nil)
	assertRead(t, scanner, 'o', nil)
	assertOffset(t, scanner, 2)
	assertPeek(t, scanner, 'n', nil)
	assertOffset(t, scanner, 2)
	assertRead(t, scanner, 'n', nil)
	assertOffset(t, scanner, 3)
	scanner.Back()
	assertOffset(t, scanner, 2)
	assertRead(t, scanner, 'n', nil)
	assertOffset(t, scanner, 3)

	if start := scanner.StartToken(); start != 3 {
		t.Fatalf("StartToken: expected offset 3, got %d", start)
	}
	assertRead(t, scanner, 'j', nil)
	assertRead(t, scanner, 'o', nil)
	assertRead(t, scanner, 'u', nil)
	assertRead(t, scanner, 'r', nil)
	assertOffset(t, scanner, 7)
	assertRead(t, scanner, EOF, nil)
	scanner.Back()
	assertRead(t, scanner, EOF, nil)
	assertOffset(t, scanner, 7)
	assertEndToken(t, scanner, "jour")
}

func TestSkipSpaceAndPeek(t *testing.T) {
	scanner := strScanner("  \t\r\n  x  ")
	b, err := scanner.SkipSpaceAndPeek()
	if b != 'x' || err != nil {
		t.Fatalf("expected ('x', nil), got (%q, %s)", b, err)
	}
	assertOffset(t, scanner, 7)
	assertRead(t, scanner, 'x', nil)
	b, err = scanner.SkipSpaceAndPeek()
	if b != EOF || err != nil {
		t.Fatalf("expected (EOF, nil), got (%q, %s)", b, err)
	}
	assertOffset(t, scanner, 10)
}

func TestTokenAcrossRefills(t *testing.T) {
	// A token longer than the buffer must be stitched together from the
	// recorded parts.
	input := strings.Repeat("a", 100)
	scanner := NewScannerSize(strings.NewReader("  "+input+"!"), 16)
	b, err := scanner.SkipSpaceAndPeek()
	if b != 'a' || err != nil {
		t.Fatalf("expected ('a', nil), got (%q, %s)", b, err)
	}
	if start := scanner.StartToken(); start != 2 {
		t.Fatalf("StartToken: expected offset 2, got %d", start)
	}
	for i := 0; i < 100; i++ {
		assertRead(t, scanner, 'a', nil)
	}
	assertEndToken(t, scanner, input)
	assertRead(t, scanner, '!', nil)
	assertOffset(t, scanner, 103)
}

func TestOneByteChunks(t *testing.T) {
	scanner := NewScanner(iotest.OneByteReader(strings.NewReader("abc def")))
	assertRead(t, scanner, 'a', nil)
	assertRead(t, scanner, 'b', nil)
	assertRead(t, scanner, 'c', nil)
	b, err := scanner.SkipSpaceAndPeek()
	if b != 'd' || err != nil {
		t.Fatalf("expected ('d', nil), got (%q, %s)", b, err)
	}
	scanner.StartToken()
	assertRead(t, scanner, 'd', nil)
	assertRead(t, scanner, 'e', nil)
	assertRead(t, scanner, 'f', nil)
	assertEndToken(t, scanner, "def")
	assertRead(t, scanner, EOF, nil)
}

func TestBackAcrossRefill(t *testing.T) {
	scanner := NewScannerSize(strings.NewReader(strings.Repeat("xy", 20)), 16)
	var last byte
	for i := 0; i < 20; i++ {
		b, err := scanner.Read()
		if err != nil {
			t.Fatal("unexpected error")
		}
		last = b
	}
	scanner.Back()
	b, err := scanner.Read()
	if err != nil {
		t.Fatal("unexpected error")
	}
	if b != last {
		t.Fatalf("expected %q after Back, got %q", last, b)
	}
	assertOffset(t, scanner, 20)
}
