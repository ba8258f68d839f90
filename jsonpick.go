package jsonpick

import (
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/delmare/jsonpick/internal/scanner"
)

// An Option configures an Iterator at construction time.
type Option func(*config)

type config struct {
	pointer string
	decoder Decoder
	bufSize int
}

// WithPointer selects the container to iterate with an RFC 6901 JSON
// Pointer.  The default is the empty pointer, which designates the
// document root.
func WithPointer(pointer string) Option {
	return func(cfg *config) {
		cfg.pointer = pointer
	}
}

// WithDecoder replaces the decoder used to materialize child values.
func WithDecoder(decoder Decoder) Option {
	return func(cfg *config) {
		cfg.decoder = decoder
	}
}

// WithBufferSize sets the size of the read buffer.  Small buffers are
// mostly useful in tests.
func WithBufferSize(size int) Option {
	return func(cfg *config) {
		cfg.bufSize = size
	}
}

// FromReader returns an Iterator over the JSON document read from r.  The
// reader is not closed by the iterator.
func FromReader(r io.Reader, opts ...Option) (*Iterator, error) {
	return newIterator(r, nil, opts)
}

// FromFile returns an Iterator over the JSON document in the named file.
// The iterator owns the file handle: it is closed when iteration ends,
// whether normally, on error, or via Close.
func FromFile(path string, opts ...Option) (*Iterator, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &Error{Kind: IO, Msg: "opening " + path, Err: err}
	}
	it, err := newIterator(f, f, opts)
	if err != nil {
		f.Close()
		return nil, err
	}
	return it, nil
}

// FromBytes returns an Iterator over an in-memory JSON document.
func FromBytes(data []byte, opts ...Option) (*Iterator, error) {
	return newIterator(bytes.NewReader(data), nil, opts)
}

// FromString returns an Iterator over an in-memory JSON document.
func FromString(data string, opts ...Option) (*Iterator, error) {
	return newIterator(strings.NewReader(data), nil, opts)
}

func newIterator(r io.Reader, closer io.Closer, opts []Option) (*Iterator, error) {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	pointer, err := ParsePointer(cfg.pointer)
	if err != nil {
		return nil, err
	}
	if cfg.decoder == nil {
		cfg.decoder = DefaultDecoder()
	}
	var scanr *scanner.Scanner
	if cfg.bufSize > 0 {
		scanr = scanner.NewScannerSize(r, cfg.bufSize)
	} else {
		scanr = scanner.NewScanner(r)
	}
	return &Iterator{
		lex:     newLexer(scanr),
		decoder: cfg.decoder,
		pointer: pointer,
		closer:  closer,
	}, nil
}
