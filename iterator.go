package jsonpick

import (
	"io"
	"strconv"

	"github.com/delmare/jsonpick/internal/debug"
	"github.com/delmare/jsonpick/token"
)

// Item is one direct child of the target container.
type Item struct {

	// Key is the decoded object key of the child.  It is only meaningful
	// when the target container is an object (see Iterator.ObjectTarget:
	// an object key can itself be the empty string).
	Key string

	// Index is the zero-based position of the child within the target.
	Index int

	// Value is the decoded child value.
	Value any
}

// An Iterator yields the direct children of the container designated by a
// JSON Pointer, one per Advance call, reading just enough of the input
// each time to produce the next child.  Memory usage is bounded by the
// nesting depth of the document plus the size of one child, however large
// the document is.
//
// An Iterator is single use and not safe for concurrent use.
type Iterator struct {
	lex     *lexer
	decoder Decoder
	pointer Pointer

	// Closes the byte source (set for file sources).  Nil once released.
	closer io.Closer

	state        iterState
	objectTarget bool
	index        int
	item         Item
	raw          []byte
	err          error
}

type iterState int

const (
	stateSeek iterState = iota
	stateFirstItem
	stateNextItem
	stateDone
	stateFailed
)

// Advance moves the iterator to the next child of the target container,
// returning true if there is one.  It returns false at the end of the
// sequence or on error; Err tells which.  The first call locates the
// target container, consuming the input up to its opening token.
func (it *Iterator) Advance() bool {
	switch it.state {
	case stateDone, stateFailed:
		return false
	case stateSeek:
		if err := it.seekTarget(); err != nil {
			return it.fail(err)
		}
	}
	ok, err := it.nextItem()
	if err != nil {
		return it.fail(err)
	}
	if !ok {
		it.state = stateDone
		it.releaseSource()
		return false
	}
	return true
}

// Item returns the child the last successful Advance moved to.
func (it *Iterator) Item() Item {
	return it.item
}

// ObjectTarget reports whether the target container is an object (its
// children have keys) rather than an array (its children have indices).
// Its value is only meaningful once Advance has been called.
func (it *Iterator) ObjectTarget() bool {
	return it.objectTarget
}

// Err returns the error that stopped iteration, or nil if the sequence
// ended normally (or has not ended yet).
func (it *Iterator) Err() error {
	return it.err
}

// Close releases the byte source.  It is a no-op for iterators over
// readers and in-memory data, and after the source has already been
// released.  Close is idempotent; the iterator yields no items after it.
func (it *Iterator) Close() error {
	if it.state != stateFailed {
		it.state = stateDone
	}
	return it.releaseSource()
}

func (it *Iterator) fail(err error) bool {
	it.err = err
	it.state = stateFailed
	it.releaseSource()
	return false
}

func (it *Iterator) releaseSource() error {
	if it.closer == nil {
		return nil
	}
	c := it.closer
	it.closer = nil
	return c.Close()
}

// seekTarget consumes input until the target container opens, descending
// along the pointer and skipping non-matching siblings.
func (it *Iterator) seekTarget() error {
	tok, off, err := it.lex.next()
	if err != nil {
		return err
	}
	for depth := 0; ; depth++ {
		if tok == nil {
			return notFoundErrorf(off, "document ended before pointer %q matched", it.pointer)
		}
		if depth == len(it.pointer) {
			switch tok.(type) {
			case *token.StartObject:
				it.objectTarget = true
			case *token.StartArray:
				it.objectTarget = false
			case *token.Scalar:
				return &Error{
					Kind:   PointerNotIterable,
					Offset: off,
					Msg:    "pointer " + strconv.Quote(it.pointer.String()) + " matches a scalar value",
				}
			default:
				return structuralErrorf(off, "expected value, got %s", tok)
			}
			debug.Printf("target container found at offset %d", off)
			it.state = stateFirstItem
			return nil
		}
		want := it.pointer[depth]
		switch tok.(type) {
		case *token.StartObject:
			tok, off, err = it.seekInObject(want)
		case *token.StartArray:
			tok, off, err = it.seekInArray(want)
		case *token.Scalar:
			return notFoundErrorf(off, "pointer %q does not match: cannot descend into a scalar", it.pointer)
		default:
			return structuralErrorf(off, "expected value, got %s", tok)
		}
		if err != nil {
			return err
		}
	}
}

// seekInObject is called just after the object's opening brace.  It
// consumes members until it finds the key want, returning the first token
// of that key's value.  Other members are skipped with their structure
// validated.
func (it *Iterator) seekInObject(want string) (token.Token, int64, error) {
	tok, off, err := it.lex.next()
	if err != nil {
		return nil, 0, err
	}
	for first := true; ; first = false {
		if tok == nil {
			return nil, 0, structuralErrorf(off, "unexpected end of input inside object")
		}
		if _, ok := tok.(*token.EndObject); ok {
			if !first {
				return nil, 0, structuralErrorf(off, "expected object key, got '}'")
			}
			return nil, 0, notFoundErrorf(off, "object has no key %q", want)
		}
		key, ok := tok.(*token.Scalar)
		if !ok || key.Type() != token.String {
			return nil, 0, structuralErrorf(off, "expected object key, got %s", tok)
		}
		if err := it.expectColon(nil); err != nil {
			return nil, 0, err
		}
		vtok, voff, err := it.lex.next()
		if err != nil {
			return nil, 0, err
		}
		if vtok == nil {
			return nil, 0, structuralErrorf(voff, "unexpected end of input inside object")
		}
		if key.ToString() == want {
			return vtok, voff, nil
		}
		if err := it.walkValue(vtok, voff, nil); err != nil {
			return nil, 0, err
		}
		sep, soff, err := it.lex.next()
		if err != nil {
			return nil, 0, err
		}
		switch sep.(type) {
		case *token.Comma:
			tok, off, err = it.lex.next()
			if err != nil {
				return nil, 0, err
			}
		case *token.EndObject:
			return nil, 0, notFoundErrorf(soff, "object has no key %q", want)
		case nil:
			return nil, 0, structuralErrorf(soff, "unexpected end of input inside object")
		default:
			return nil, 0, structuralErrorf(soff, "expected ',' or '}', got %s", sep)
		}
	}
}

// seekInArray is called just after the array's opening bracket.  The
// reference token want matches the element whose stringified index equals
// it; a non-numeric token matches nothing and the array is consumed to
// its end.
func (it *Iterator) seekInArray(want string) (token.Token, int64, error) {
	tok, off, err := it.lex.next()
	if err != nil {
		return nil, 0, err
	}
	for index := 0; ; index++ {
		if tok == nil {
			return nil, 0, structuralErrorf(off, "unexpected end of input inside array")
		}
		if _, ok := tok.(*token.EndArray); ok {
			if index > 0 {
				return nil, 0, structuralErrorf(off, "expected value, got ']'")
			}
			return nil, 0, notFoundErrorf(off, "array has no index %q", want)
		}
		if strconv.Itoa(index) == want {
			return tok, off, nil
		}
		if err := it.walkValue(tok, off, nil); err != nil {
			return nil, 0, err
		}
		sep, soff, err := it.lex.next()
		if err != nil {
			return nil, 0, err
		}
		switch sep.(type) {
		case *token.Comma:
			tok, off, err = it.lex.next()
			if err != nil {
				return nil, 0, err
			}
		case *token.EndArray:
			return nil, 0, notFoundErrorf(soff, "array has no index %q", want)
		case nil:
			return nil, 0, structuralErrorf(soff, "unexpected end of input inside array")
		default:
			return nil, 0, structuralErrorf(soff, "expected ',' or ']', got %s", sep)
		}
	}
}

// nextItem yields the next direct child of the target container, or
// (false, nil) when the target's closing token is reached.
func (it *Iterator) nextItem() (bool, error) {
	tok, off, err := it.lex.next()
	if err != nil {
		return false, err
	}
	if tok == nil {
		return false, structuralErrorf(off, "unexpected end of input inside target container")
	}
	if it.state == stateFirstItem {
		it.state = stateNextItem
		if it.atTargetEnd(tok) {
			return false, nil
		}
	} else {
		switch tok.(type) {
		case *token.Comma:
			tok, off, err = it.lex.next()
			if err != nil {
				return false, err
			}
			if tok == nil {
				return false, structuralErrorf(off, "unexpected end of input inside target container")
			}
		default:
			if it.atTargetEnd(tok) {
				return false, nil
			}
			if it.objectTarget {
				return false, structuralErrorf(off, "expected ',' or '}', got %s", tok)
			}
			return false, structuralErrorf(off, "expected ',' or ']', got %s", tok)
		}
	}

	it.raw = it.raw[:0]
	emit := func(t token.Token) {
		it.raw = appendTokenBytes(it.raw, t)
	}

	var valueOff int64
	if it.objectTarget {
		key, ok := tok.(*token.Scalar)
		if !ok || key.Type() != token.String {
			return false, structuralErrorf(off, "expected object key, got %s", tok)
		}
		it.item.Key = key.ToString()
		if err := it.expectColon(nil); err != nil {
			return false, err
		}
		vtok, voff, err := it.lex.next()
		if err != nil {
			return false, err
		}
		if vtok == nil {
			return false, structuralErrorf(voff, "unexpected end of input inside target container")
		}
		valueOff = voff
		if err := it.walkValue(vtok, voff, emit); err != nil {
			return false, err
		}
	} else {
		it.item.Key = ""
		valueOff = off
		if err := it.walkValue(tok, off, emit); err != nil {
			return false, err
		}
	}

	value, err := it.decoder.Decode(it.raw)
	if err != nil {
		return false, &Error{Kind: Decode, Offset: valueOff, Msg: "decoding child value", Err: err}
	}
	it.item.Index = it.index
	it.item.Value = value
	it.index++
	return true, nil
}

func (it *Iterator) atTargetEnd(tok token.Token) bool {
	if it.objectTarget {
		_, ok := tok.(*token.EndObject)
		return ok
	}
	_, ok := tok.(*token.EndArray)
	return ok
}

// walkValue consumes one complete JSON value whose first token is tok,
// validating its structure.  Every consumed token, including tok, is
// passed to emit when emit is not nil.  The container stack is a slice of
// booleans (true for objects), so memory stays proportional to nesting
// depth however large the value is.
func (it *Iterator) walkValue(tok token.Token, off int64, emit func(token.Token)) error {
	var stack []bool
value:
	for {
		switch tok.(type) {
		case *token.Scalar:
			if emit != nil {
				emit(tok)
			}
		case *token.StartObject:
			if emit != nil {
				emit(tok)
			}
			ntok, noff, err := it.lex.next()
			if err != nil {
				return err
			}
			if ntok == nil {
				return structuralErrorf(noff, "unexpected end of input inside object")
			}
			if _, ok := ntok.(*token.EndObject); ok {
				if emit != nil {
					emit(ntok)
				}
			} else {
				if err := it.walkKey(ntok, noff, emit); err != nil {
					return err
				}
				stack = append(stack, true)
				tok, off, err = it.lex.next()
				if err != nil {
					return err
				}
				if tok == nil {
					return structuralErrorf(off, "unexpected end of input inside object")
				}
				continue value
			}
		case *token.StartArray:
			if emit != nil {
				emit(tok)
			}
			ntok, noff, err := it.lex.next()
			if err != nil {
				return err
			}
			if ntok == nil {
				return structuralErrorf(noff, "unexpected end of input inside array")
			}
			if _, ok := ntok.(*token.EndArray); ok {
				if emit != nil {
					emit(ntok)
				}
			} else {
				stack = append(stack, false)
				tok, off = ntok, noff
				continue value
			}
		default:
			return structuralErrorf(off, "expected value, got %s", tok)
		}

		// A value is complete: unwind separators and container ends.
		for {
			if len(stack) == 0 {
				return nil
			}
			sep, soff, err := it.lex.next()
			if err != nil {
				return err
			}
			if sep == nil {
				return structuralErrorf(soff, "unexpected end of input inside value")
			}
			inObject := stack[len(stack)-1]
			switch sep.(type) {
			case *token.Comma:
				if emit != nil {
					emit(sep)
				}
				ntok, noff, err := it.lex.next()
				if err != nil {
					return err
				}
				if ntok == nil {
					return structuralErrorf(noff, "unexpected end of input inside value")
				}
				if inObject {
					if err := it.walkKey(ntok, noff, emit); err != nil {
						return err
					}
					ntok, noff, err = it.lex.next()
					if err != nil {
						return err
					}
					if ntok == nil {
						return structuralErrorf(noff, "unexpected end of input inside value")
					}
				}
				tok, off = ntok, noff
				continue value
			case *token.EndObject:
				if !inObject {
					return structuralErrorf(soff, "expected ']', got '}'")
				}
				if emit != nil {
					emit(sep)
				}
				stack = stack[:len(stack)-1]
			case *token.EndArray:
				if inObject {
					return structuralErrorf(soff, "expected '}', got ']'")
				}
				if emit != nil {
					emit(sep)
				}
				stack = stack[:len(stack)-1]
			default:
				return structuralErrorf(soff, "expected ',' or end of container, got %s", sep)
			}
		}
	}
}

// walkKey validates and emits an object key and its colon.
func (it *Iterator) walkKey(tok token.Token, off int64, emit func(token.Token)) error {
	key, ok := tok.(*token.Scalar)
	if !ok || key.Type() != token.String {
		return structuralErrorf(off, "expected object key, got %s", tok)
	}
	if emit != nil {
		emit(tok)
	}
	return it.expectColon(emit)
}

// expectColon consumes the ':' after an object key.
func (it *Iterator) expectColon(emit func(token.Token)) error {
	tok, off, err := it.lex.next()
	if err != nil {
		return err
	}
	if tok == nil {
		return structuralErrorf(off, "unexpected end of input, expected ':'")
	}
	if _, ok := tok.(*token.Colon); !ok {
		return structuralErrorf(off, "expected ':', got %s", tok)
	}
	if emit != nil {
		emit(tok)
	}
	return nil
}

// appendTokenBytes appends the source byte rendering of tok to dst.  The
// concatenation of the renderings of a value's tokens is that value with
// inter-token whitespace removed, which decodes identically.
func appendTokenBytes(dst []byte, tok token.Token) []byte {
	switch t := tok.(type) {
	case *token.Scalar:
		return append(dst, t.Bytes...)
	case *token.StartObject:
		return append(dst, '{')
	case *token.EndObject:
		return append(dst, '}')
	case *token.StartArray:
		return append(dst, '[')
	case *token.EndArray:
		return append(dst, ']')
	case *token.Comma:
		return append(dst, ',')
	case *token.Colon:
		return append(dst, ':')
	}
	return dst
}
