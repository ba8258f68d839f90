package jsonpick

import (
	"github.com/delmare/jsonpick/internal/scanner"
	"github.com/delmare/jsonpick/token"
)

// A lexer turns the byte stream into a sequence of tokens.  It is a pure
// tokenizer: commas and colons are emitted as tokens and grammar is left
// to the driver.  Scalars carry the exact source bytes (strings keep
// their quotes) so values can be rebuilt byte for byte.
type lexer struct {
	scanr *scanner.Scanner
}

func newLexer(scanr *scanner.Scanner) *lexer {
	return &lexer{scanr: scanr}
}

// next returns the next token together with the byte offset at which it
// starts.  At a clean end of stream it returns a nil token and a nil
// error.
func (l *lexer) next() (token.Token, int64, error) {
	b, err := l.scanr.SkipSpaceAndPeek()
	if err != nil {
		return nil, l.scanr.Offset(), l.ioError(err)
	}
	off := l.scanr.Offset()
	switch b {
	case scanner.EOF:
		return nil, off, nil
	case '{':
		l.scanr.Read()
		return &token.StartObject{}, off, nil
	case '}':
		l.scanr.Read()
		return &token.EndObject{}, off, nil
	case '[':
		l.scanr.Read()
		return &token.StartArray{}, off, nil
	case ']':
		l.scanr.Read()
		return &token.EndArray{}, off, nil
	case ',':
		l.scanr.Read()
		return &token.Comma{}, off, nil
	case ':':
		l.scanr.Read()
		return &token.Colon{}, off, nil
	case '"':
		return l.scanString()
	case 't':
		return l.scanKeyword(trueBytes, token.TrueScalar)
	case 'f':
		return l.scanKeyword(falseBytes, token.FalseScalar)
	case 'n':
		return l.scanKeyword(nullBytes, token.NullScalar)
	default:
		if b == '-' || b >= '0' && b <= '9' {
			return l.scanNumber()
		}
		return nil, off, lexErrorf(off, "unexpected byte %q", b)
	}
}

// The opening quote has been peeked but not consumed.
func (l *lexer) scanString() (token.Token, int64, error) {
	start := l.scanr.StartToken()
	l.scanr.Read()
	unescaped := true
	for {
		b, err := l.scanr.Read()
		if err != nil {
			return nil, start, l.ioError(err)
		}
		switch b {
		case scanner.EOF:
			return nil, start, lexErrorf(l.scanr.Offset(), "unexpected end of input in string")
		case '"':
			s := token.NewScalar(token.String, l.scanr.EndToken())
			if unescaped {
				s.TypeAndFlags |= token.UnescapedMask
			}
			return s, start, nil
		case '\\':
			unescaped = false
			x, err := l.scanr.Read()
			if err != nil {
				return nil, start, l.ioError(err)
			}
			switch x {
			case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
			case 'u':
				for i := 0; i < 4; i++ {
					h, err := l.scanr.Read()
					if err != nil {
						return nil, start, l.ioError(err)
					}
					if h == scanner.EOF {
						return nil, start, lexErrorf(l.scanr.Offset(), "unexpected end of input in string")
					}
					if !(h >= '0' && h <= '9' || h >= 'a' && h <= 'f' || h >= 'A' && h <= 'F') {
						return nil, start, lexErrorf(l.scanr.Offset()-1, "expected hex digit, got %q", h)
					}
				}
			case scanner.EOF:
				return nil, start, lexErrorf(l.scanr.Offset(), "unexpected end of input in string")
			default:
				return nil, start, lexErrorf(l.scanr.Offset()-1, "invalid escape character %q", x)
			}
		default:
			if b < 0x20 {
				return nil, start, lexErrorf(l.scanr.Offset()-1, "invalid control character in string")
			}
		}
	}
}

// The first byte of the keyword has been peeked but not consumed.
func (l *lexer) scanKeyword(word []byte, scalar *token.Scalar) (token.Token, int64, error) {
	start := l.scanr.Offset()
	for _, xb := range word {
		b, err := l.scanr.Read()
		if err != nil {
			return nil, start, l.ioError(err)
		}
		if b == scanner.EOF {
			return nil, start, lexErrorf(l.scanr.Offset(), "unexpected end of input")
		}
		if b != xb {
			return nil, start, lexErrorf(start, "expected %q", word)
		}
	}
	return scalar, start, nil
}

// The leading '-' or digit has been peeked but not consumed.  The byte
// terminating the number is not consumed.
func (l *lexer) scanNumber() (token.Token, int64, error) {
	start := l.scanr.StartToken()
	b, err := l.scanr.Read()
	if err != nil {
		return nil, start, l.ioError(err)
	}

	// Sign part
	if b == '-' {
		b, err = l.scanr.Read()
		if err != nil {
			return nil, start, l.ioError(err)
		}
	}

	// Integer part
	if b == '0' {
		b, err = l.scanr.Read()
		if err != nil {
			return nil, start, l.ioError(err)
		}
	} else if b >= '1' && b <= '9' {
		b, _, err = l.readDigits()
		if err != nil {
			return nil, start, err
		}
	} else {
		return nil, start, l.numberError(b)
	}

	// Fraction part
	if b == '.' {
		var n int
		b, n, err = l.readDigits()
		if err != nil {
			return nil, start, err
		}
		if n == 0 {
			return nil, start, l.numberError(b)
		}
	}

	// Exponent part
	if b == 'e' || b == 'E' {
		pb, err := l.scanr.Peek()
		if err != nil {
			return nil, start, l.ioError(err)
		}
		if pb == '+' || pb == '-' {
			l.scanr.Read()
		}
		var n int
		b, n, err = l.readDigits()
		if err != nil {
			return nil, start, err
		}
		if n == 0 {
			return nil, start, l.numberError(b)
		}
	}
	l.scanr.Back()
	return token.NewScalar(token.Number, l.scanr.EndToken()), start, nil
}

func (l *lexer) readDigits() (byte, int, error) {
	var n int
	for {
		b, err := l.scanr.Read()
		if err != nil {
			return 0, n, l.ioError(err)
		}
		if b < '0' || b > '9' {
			return b, n, nil
		}
		n++
	}
}

func (l *lexer) numberError(b byte) error {
	if b == scanner.EOF {
		return lexErrorf(l.scanr.Offset(), "unexpected end of input in number")
	}
	return lexErrorf(l.scanr.Offset()-1, "malformed number: unexpected %q", b)
}

func (l *lexer) ioError(err error) error {
	return &Error{Kind: IO, Offset: l.scanr.Offset(), Msg: "reading input", Err: err}
}

var (
	trueBytes  = []byte("true")
	falseBytes = []byte("false")
	nullBytes  = []byte("null")
)
