// Copyright 2026 The Quill Authors
// SPDX-License-Identifier: Apache-2.0

package event

// Algorithm identifies the encryption scheme of an m.room.encrypted
// content payload. It is the inner discriminator of the encrypted
// family: the tag value determines which variant schema every other
// content field must follow.
//
// Algorithm is a named string type carrying the exact wire value.
// Typed content values never store an Algorithm field — the tag is
// derived from the variant's concrete type, so tag and variant cannot
// disagree.
type Algorithm string

const (
	// AlgorithmOlmV1 is Olm, the one-to-one double-ratchet scheme.
	// Its ciphertext is a map keyed by recipient device identity key.
	AlgorithmOlmV1 Algorithm = "m.olm.v1.curve25519-aes-sha2"

	// AlgorithmMegolmV1 is Megolm, the group-session scheme used for
	// room messages. Its ciphertext is a single opaque string.
	AlgorithmMegolmV1 Algorithm = "m.megolm.v1.aes-sha2"
)

// IsSupported reports whether a names an algorithm this package can
// decode. Custom algorithm values are well-formed tags but are not
// supported by the encrypted content family — decoding one fails
// with ErrCodeUnsupportedDiscriminator rather than producing an
// opaque payload.
func (a Algorithm) IsSupported() bool {
	switch a {
	case AlgorithmOlmV1, AlgorithmMegolmV1:
		return true
	}
	return false
}

// String returns the wire tag (e.g., "m.megolm.v1.aes-sha2").
func (a Algorithm) String() string { return string(a) }
