// Copyright 2026 The Quill Authors
// SPDX-License-Identifier: Apache-2.0

package event

import (
	"errors"
	"strconv"
)

// Decode failure classification codes. Each decode error carries
// exactly one of these; callers branch with IsDecodeError rather
// than matching message text.
const (
	// ErrCodeMissingDiscriminator: the discriminator field is absent
	// from the payload (e.g., content with no "algorithm" key).
	ErrCodeMissingDiscriminator = "missing_discriminator"

	// ErrCodeInvalidDiscriminator: the discriminator is present but
	// not a string, or not shaped like any recognizable tag. This is
	// garbage input, as opposed to a well-formed tag this package
	// does not handle.
	ErrCodeInvalidDiscriminator = "invalid_discriminator"

	// ErrCodeUnsupportedDiscriminator: the discriminator is a
	// syntactically valid tag, but names a scheme outside the closed
	// set this family decodes (e.g., a custom encryption algorithm).
	// Distinct from ErrCodeInvalidDiscriminator so that callers can
	// tell "recognized but unsupported here" from malformed input.
	ErrCodeUnsupportedDiscriminator = "unsupported_discriminator"

	// ErrCodeVariantDecodeFailure: the discriminator selected a
	// variant, but the variant's own required-field validation
	// failed. The error's Tag preserves the discriminator that chose
	// the failing branch.
	ErrCodeVariantDecodeFailure = "variant_decode_failure"

	// ErrCodeEnvelopeDecodeFailure: the outer event envelope is
	// missing or has a malformed required field (event_id, sender,
	// origin_server_ts, content), independent of any content decode.
	ErrCodeEnvelopeDecodeFailure = "envelope_decode_failure"
)

// DecodeError describes why a wire payload could not be decoded into
// a typed event or content value. Callers use errors.As to extract
// the structured information, or IsDecodeError for a single code:
//
//	var decodeErr *event.DecodeError
//	if errors.As(err, &decodeErr) {
//	    if decodeErr.Code == event.ErrCodeUnsupportedDiscriminator { ... }
//	}
type DecodeError struct {
	// Code classifies the failure; one of the ErrCode* constants.
	Code string
	// Field is the wire field at fault ("algorithm", "sender_key",
	// "origin_server_ts", ...). Empty when the whole payload is
	// unparseable.
	Field string
	// Tag is the discriminator value that was read, when one was.
	// For variant decode failures this is the tag that selected the
	// failing branch.
	Tag string
	// Err is the underlying cause, when this error wraps one.
	Err error
}

func (e *DecodeError) Error() string {
	message := "event: " + e.Code
	if e.Field != "" {
		message += ": field " + strconv.Quote(e.Field)
	}
	if e.Tag != "" {
		message += ": tag " + strconv.Quote(e.Tag)
	}
	if e.Err != nil {
		message += ": " + e.Err.Error()
	}
	return message
}

func (e *DecodeError) Unwrap() error { return e.Err }

// IsDecodeError checks whether err is a *DecodeError with the given
// classification code.
func IsDecodeError(err error, code string) bool {
	var decodeErr *DecodeError
	if errors.As(err, &decodeErr) {
		return decodeErr.Code == code
	}
	return false
}

// errMissingField is the shared cause for required-field validation
// failures inside a variant decode.
var errMissingField = errors.New("required field missing")
