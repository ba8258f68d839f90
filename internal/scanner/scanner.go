package scanner

import (
	"io"
	"slices"
)

// A Scanner reads bytes one at a time from an io.Reader, whatever the size
// of the chunks the reader delivers them in.  It supports going back one
// byte, recording the raw bytes of a token in progress across buffer
// refills, and reports the absolute byte offset of the current position
// from the start of the stream.
type Scanner struct {
	reader io.Reader
	buf    []byte

	// The first unfilled position in buf
	// 0 <= fillIndex <= len(buf)
	fillIndex int

	// Current position in buf
	// 0 <= currentIndex <= fillIndex
	currentIndex int

	// Absolute offset of the current position from the start of the
	// stream.
	offset int64

	// Position in buf of the currently recorded token.
	// -1 means not recording a token
	// 0 means there may be token parts no longer in the buffer
	// tokenStartIndex <= currentIndex
	tokenStartIndex int

	// Parts of a token that no longer fit in the read buffer.
	tokenParts [][]byte

	err error

	// Tracks how many EOFs have been read.  This is required to make
	// Back() work after an EOF has been read.
	eofCount int

	// True after a successful Read, false after Back.
	canBack bool
}

func NewScanner(reader io.Reader) *Scanner {
	return NewScannerSize(reader, defaultBufSize)
}

func NewScannerSize(reader io.Reader, size int) *Scanner {
	if size < minBufSize {
		size = minBufSize
	}
	return &Scanner{
		reader:          reader,
		buf:             make([]byte, size),
		tokenStartIndex: -1,
	}
}

func (s *Scanner) fillBuf() {
	if s.fillIndex == len(s.buf) {
		var baseIndex int
		// If we are recording a token then we try to shift the buffer so the
		// token remains wholly in the buffer.
		if s.tokenStartIndex > 0 {
			baseIndex = s.tokenStartIndex
			s.tokenStartIndex = 0
		} else if s.currentIndex >= lookBackSize {
			baseIndex = s.currentIndex - lookBackSize
			if s.tokenStartIndex >= 0 {
				// At this point s.tokenStartIndex is 0
				newTokenBytes := make([]byte, baseIndex)
				copy(newTokenBytes, s.buf)
				s.tokenParts = append(s.tokenParts, newTokenBytes)
			}
		}
		if baseIndex > 0 {
			copy(s.buf, s.buf[baseIndex:s.fillIndex])
			s.fillIndex -= baseIndex
			s.currentIndex -= baseIndex
		}
	}
	for i := maxConsecutiveEmptyReads; i > 0; i-- {
		n, err := s.reader.Read(s.buf[s.fillIndex:])
		s.fillIndex += n
		if err != nil {
			s.err = err
			return
		}
		if n > 0 {
			return
		}
	}
	s.err = io.ErrNoProgress
}

// Read returns the next byte in the stream.  At the end of the stream it
// returns the EOF sentinel with a nil error; reading past the end keeps
// returning EOF.  A non-nil error means the underlying reader failed.
func (s *Scanner) Read() (byte, error) {
	if s.currentIndex >= s.fillIndex {
		s.fillBuf()
	}
	if s.currentIndex < s.fillIndex {
		b := s.buf[s.currentIndex]
		s.currentIndex++
		s.offset++
		s.canBack = true
		return b, nil
	}
	if s.err == io.EOF {
		s.eofCount++
		return EOF, nil
	}
	return 0, s.err
}

// Offset returns the absolute byte offset of the next unread byte, counted
// from the start of the stream.
func (s *Scanner) Offset() int64 {
	return s.offset
}

// StartToken begins recording the raw bytes of a token at the current
// position and returns its starting offset.
func (s *Scanner) StartToken() int64 {
	if s.tokenStartIndex >= 0 {
		panic("already in record mode")
	}
	s.tokenStartIndex = s.currentIndex
	return s.offset
}

// EndToken stops recording and returns the recorded bytes.
func (s *Scanner) EndToken() []byte {
	if s.tokenStartIndex < 0 {
		panic("not in record mode")
	}
	if s.tokenParts == nil {
		tokBytes := slices.Clone(s.buf[s.tokenStartIndex:s.currentIndex])
		s.tokenStartIndex = -1
		return tokBytes
	}
	// Precalculate the size of the token so it doesn't have to be grown
	// mid-concatenation
	tokLen := s.currentIndex - s.tokenStartIndex
	for _, p := range s.tokenParts {
		tokLen += len(p)
	}
	tokBytes := make([]byte, 0, tokLen)
	for _, c := range s.tokenParts {
		tokBytes = append(tokBytes, c...)
	}
	tokBytes = append(tokBytes, s.buf[s.tokenStartIndex:s.currentIndex]...)
	s.tokenStartIndex = -1
	s.tokenParts = nil
	return tokBytes
}

// Back makes the last byte read available for reading again.  Only one byte
// of lookback is available.
func (s *Scanner) Back() {
	if s.eofCount > 0 {
		s.eofCount--
		return
	}
	if s.currentIndex <= 0 || s.currentIndex <= s.tokenStartIndex {
		panic("cannot go back from start")
	}
	if !s.canBack {
		panic("cannot go back twice")
	}
	s.canBack = false
	s.currentIndex--
	s.offset--
}

// Peek returns the next byte without consuming it.
func (s *Scanner) Peek() (byte, error) {
	if s.currentIndex >= s.fillIndex {
		s.fillBuf()
	}
	if s.currentIndex < s.fillIndex {
		return s.buf[s.currentIndex], nil
	}
	return s.errOrEOF()
}

func (s *Scanner) errOrEOF() (byte, error) {
	if s.err == io.EOF {
		return EOF, nil
	}
	return 0, s.err
}

// SkipSpaceAndPeek skips JSON whitespace and returns the first byte that
// follows it, without consuming that byte.
func (s *Scanner) SkipSpaceAndPeek() (byte, error) {
	for {
		for i, b := range s.buf[s.currentIndex:s.fillIndex] {
			switch b {
			case ' ', '\t', '\n', '\r':
				s.offset++
			default:
				s.currentIndex += i
				return b, nil
			}
		}
		s.currentIndex = s.fillIndex
		s.fillBuf()
		if s.currentIndex >= s.fillIndex {
			return s.errOrEOF()
		}
	}
}

const (
	lookBackSize             = 1
	maxConsecutiveEmptyReads = 100
	defaultBufSize           = 8192
	minBufSize               = 16
)

// 0xFF is a byte that should not appear in a UTF-8 encoded stream of bytes.
const EOF byte = 0xFF
