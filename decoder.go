package jsonpick

import (
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/valyala/fastjson"
)

// A Decoder materializes one complete JSON value from its raw source
// bytes.  The driver hands it the exact bytes of each direct child of the
// target container.
type Decoder interface {
	Decode(data []byte) (any, error)
}

// DefaultDecoder returns the decoder used when none is configured: JSON
// objects become map[string]any, arrays []any, numbers float64.
func DefaultDecoder() Decoder {
	return jsonValueDecoder{}
}

type jsonValueDecoder struct{}

func (jsonValueDecoder) Decode(data []byte) (any, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// FastDecoder returns a decoder backed by valyala/fastjson.  It reuses
// its parser between calls, which makes it a good fit when the target
// container has many small children.  It produces the same value shapes
// as DefaultDecoder.
func FastDecoder() Decoder {
	return &fastValueDecoder{}
}

type fastValueDecoder struct {
	parser fastjson.Parser
}

func (d *fastValueDecoder) Decode(data []byte) (any, error) {
	v, err := d.parser.ParseBytes(data)
	if err != nil {
		return nil, err
	}
	return fastjsonToGo(v)
}

func fastjsonToGo(v *fastjson.Value) (any, error) {
	switch v.Type() {
	case fastjson.TypeNull:
		return nil, nil
	case fastjson.TypeTrue:
		return true, nil
	case fastjson.TypeFalse:
		return false, nil
	case fastjson.TypeNumber:
		return v.Float64()
	case fastjson.TypeString:
		b, err := v.StringBytes()
		if err != nil {
			return nil, err
		}
		return string(b), nil
	case fastjson.TypeArray:
		elts, err := v.Array()
		if err != nil {
			return nil, err
		}
		out := make([]any, 0, len(elts))
		for _, elt := range elts {
			g, err := fastjsonToGo(elt)
			if err != nil {
				return nil, err
			}
			out = append(out, g)
		}
		return out, nil
	case fastjson.TypeObject:
		obj, err := v.Object()
		if err != nil {
			return nil, err
		}
		out := make(map[string]any, obj.Len())
		var visitErr error
		obj.Visit(func(key []byte, elt *fastjson.Value) {
			if visitErr != nil {
				return
			}
			g, err := fastjsonToGo(elt)
			if err != nil {
				visitErr = err
				return
			}
			out[string(key)] = g
		})
		if visitErr != nil {
			return nil, visitErr
		}
		return out, nil
	}
	return nil, fmt.Errorf("unexpected value type %v", v.Type())
}
