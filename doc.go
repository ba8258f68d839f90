package jsonpick

// Package jsonpick iterates the direct children of one container in an
// arbitrarily large JSON document, in constant memory.
//
// The container is selected with an RFC 6901 JSON Pointer.  When it is an
// object the iterator yields (key, value) pairs; when it is an array it
// yields (index, value) pairs, always in source order.  The input is read
// incrementally, whatever the chunk sizes the source delivers, and at no
// point is more than one child's value held in memory:
//
//	it, err := jsonpick.FromFile("fruit.json", jsonpick.WithPointer("/fruits"))
//	if err != nil {
//	    ...
//	}
//	defer it.Close()
//	for it.Advance() {
//	    item := it.Item()
//	    fmt.Println(item.Key, item.Value)
//	}
//	if err := it.Err(); err != nil {
//	    ...
//	}
//
// The package is organized into sub-packages:
//
// - token: the closed token set the lexer produces
// - internal/scanner: chunk-tolerant byte scanning
//
// Child values are materialized by a pluggable Decoder; the default is
// backed by goccy/go-json and an alternative backed by valyala/fastjson
// is available via FastDecoder.
//
// The jsonpick CLI utility in cmd/jsonpick exposes the iterator on the
// command line.  You can install it with:
//
//	go install github.com/delmare/jsonpick/cmd/jsonpick
