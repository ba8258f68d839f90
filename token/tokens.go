package token

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// A Token is one lexical item of a JSON document.  The full token set is
//
//	{        -> StartObject
//	}        -> EndObject
//	[        -> StartArray
//	]        -> EndArray
//	,        -> Comma
//	:        -> Colon
//	scalars  -> Scalar (raw source bytes, strings keep their quotes)
//
// so the byte-for-byte content of any JSON value can be rebuilt from its
// token sequence.
type Token interface {
	fmt.Stringer
}

// StartObject represents the start of a JSON object (introduced by '{').
type StartObject struct{}

func (s *StartObject) String() string {
	return "StartObject"
}

var _ Token = &StartObject{}

// EndObject represents the end of a JSON object (introduced by '}').
type EndObject struct{}

func (e *EndObject) String() string {
	return "EndObject"
}

var _ Token = &EndObject{}

// StartArray represents the start of a JSON array (introduced by '[').
type StartArray struct{}

func (s *StartArray) String() string {
	return "StartArray"
}

var _ Token = &StartArray{}

// EndArray represents the end of a JSON array (introduced by ']').
type EndArray struct{}

func (e *EndArray) String() string {
	return "EndArray"
}

var _ Token = &EndArray{}

// Comma represents the ',' separating array elements and object members.
type Comma struct{}

func (c *Comma) String() string {
	return "Comma"
}

var _ Token = &Comma{}

// Colon represents the ':' separating an object key from its value.
type Colon struct{}

func (c *Colon) String() string {
	return "Colon"
}

var _ Token = &Colon{}

// Scalar is the type used to represent all scalar JSON values, i.e.
// - strings
// - numbers
// - booleans (two values)
// - null (a single value)
//
// The type is encoded in the TypeAndFlags field, while the Bytes field
// contains the literal representation of the value as found in the input.
type Scalar struct {

	// Literal representation of the value, e.g.
	// - the string "foo" is represented as []byte("\"foo\"")
	// - the number 123.5 is represented as []byte("123.5")
	// - the boolean true is represented as []byte("true")
	Bytes []byte

	// Type of the value together with the unescaped flag
	TypeAndFlags uint8
}

var _ Token = &Scalar{}

func NewScalar(tp ScalarType, bytes []byte) *Scalar {
	return &Scalar{
		Bytes:        bytes,
		TypeAndFlags: uint8(tp),
	}
}

func (s *Scalar) Type() ScalarType {
	return ScalarType(s.TypeAndFlags & TypeMask)
}

// IsUnescaped reports whether a string scalar is known to contain no
// escape sequences, in which case its content is Bytes without the quotes.
func (s *Scalar) IsUnescaped() bool {
	return UnescapedMask&s.TypeAndFlags != 0
}

func (s *Scalar) String() string {
	return fmt.Sprintf("Scalar(%s)", s.Bytes)
}

// ToString returns the string a string scalar represents.  It panics if
// the scalar is not a string.
func (s *Scalar) ToString() string {
	if s.IsUnescaped() {
		return string(s.Bytes[1 : len(s.Bytes)-1])
	}
	return decodeLiteral(s.Bytes).(string)
}

// ToGo returns the Go value the scalar represents (string, float64, bool
// or nil).
func (s *Scalar) ToGo() any {
	if s.IsUnescaped() {
		return string(s.Bytes[1 : len(s.Bytes)-1])
	}
	return decodeLiteral(s.Bytes)
}

// The scalar bytes come from the lexer so they are well-formed JSON and
// decoding cannot fail.
func decodeLiteral(b []byte) any {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		panic(err)
	}
	return v
}

// ScalarType encodes the four possible JSON scalar types.
type ScalarType uint8

const (
	Null               = 0x0 // the type of JSON null
	Boolean            = 0x1 // a JSON boolean
	Number             = 0x2 // a JSON number
	String  ScalarType = 0x3 // a JSON string
)

const (
	TypeMask      = 0b011
	UnescapedMask = 0b100
)

var (
	trueBytes  = []byte("true")
	falseBytes = []byte("false")
	nullBytes  = []byte("null")
)

var (
	TrueScalar  = NewScalar(Boolean, trueBytes)
	FalseScalar = NewScalar(Boolean, falseBytes)
	NullScalar  = NewScalar(Null, nullBytes)
)
