package jsonpick

import (
	"errors"
	"io"
	"reflect"
	"testing"
)

func assertTrue(t *testing.T, cond bool, msg string) {
	t.Helper()
	if !cond {
		t.Fatalf("assertion failed: %s", msg)
	}
}

func assertFalse(t *testing.T, cond bool, msg string) {
	t.Helper()
	if cond {
		t.Fatalf("assertion failed: %s", msg)
	}
}

func assertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
}

func assertKind(t *testing.T, err error, kind Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s, got no error", kind)
	}
	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("expected *Error, got %T: %s", err, err)
	}
	if e.Kind != kind {
		t.Fatalf("expected %s, got %s", kind, err)
	}
}

func assertDeepEqual(t *testing.T, got, expected any, msg string) {
	t.Helper()
	if !reflect.DeepEqual(got, expected) {
		t.Fatalf("%s: expected %#v, got %#v", msg, expected, got)
	}
}

// A chunkReader delivers its contents in chunks of at most size bytes, to
// exercise lexemes split at arbitrary positions.
type chunkReader struct {
	data []byte
	size int
}

func (r *chunkReader) Read(p []byte) (int, error) {
	if len(r.data) == 0 {
		return 0, io.EOF
	}
	n := r.size
	if n > len(r.data) {
		n = len(r.data)
	}
	if n > len(p) {
		n = len(p)
	}
	copy(p, r.data[:n])
	r.data = r.data[n:]
	return n, nil
}

// collectItems drains the iterator and returns the yielded items together
// with the error that ended iteration, if any.
func collectItems(t *testing.T, it *Iterator) ([]Item, error) {
	t.Helper()
	var items []Item
	for it.Advance() {
		items = append(items, it.Item())
	}
	return items, it.Err()
}

func mustIterate(t *testing.T, document string, pointer string, opts ...Option) []Item {
	t.Helper()
	opts = append(opts, WithPointer(pointer))
	it, err := FromString(document, opts...)
	assertNoError(t, err)
	items, err := collectItems(t, it)
	assertNoError(t, err)
	return items
}
