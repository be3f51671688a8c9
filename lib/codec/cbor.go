// Copyright 2026 The Quill Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"io"
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

// The package-level modes are built once at startup. Encoding uses
// Core Deterministic Encoding (RFC 8949 §4.2): sorted map keys,
// smallest integer encoding, no indefinite-length items, so the same
// logical event always produces identical bytes. Decoding accepts
// standard CBOR and ignores unknown fields for forward compatibility.
var (
	encMode = mustEncMode()
	decMode = mustDecMode()
)

func mustEncMode() cbor.EncMode {
	options := cbor.CoreDetEncOptions()
	// The ref identifier types carry their value in an unexported
	// field and expose it through MarshalText. Encode them as CBOR
	// text strings; the default struct encoding would produce an
	// empty map and lose the identifier.
	options.TextMarshaler = cbor.TextMarshalerTextString
	mode, err := options.EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}
	return mode
}

func mustDecMode() cbor.DecMode {
	mode, err := cbor.DecOptions{
		// When the decode target is any, produce map[string]any
		// rather than CBOR's default map[interface{}]interface{}.
		// Quill data never has non-string map keys, and
		// map[string]any is what encoding/json interoperates with.
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
		// Counterpart of TextMarshalerTextString above: text strings
		// decode into TextUnmarshaler types (the ref identifiers),
		// re-validating on the way in.
		TextUnmarshaler: cbor.TextUnmarshalerTextString,
	}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}
	return mode
}

// Marshal encodes v to deterministic CBOR.
func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal decodes CBOR data into v.
func Unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}

// Encoder and Decoder are stream codecs over the package modes.
// Aliases so callers import only lib/codec, not the CBOR library.
type (
	Encoder = cbor.Encoder
	Decoder = cbor.Decoder
)

// NewEncoder returns a deterministic CBOR encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return encMode.NewEncoder(w)
}

// NewDecoder returns a CBOR decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return decMode.NewDecoder(r)
}
