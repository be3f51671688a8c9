// Copyright 2026 The Quill Authors
// SPDX-License-Identifier: Apache-2.0

package event

import (
	"encoding/json"

	"github.com/quill-im/quill/lib/ref"
)

// Unsigned carries additional key-value pairs attached to an event by
// the homeserver at delivery time, outside any signature. The wire
// field is optional; typed events always hold a value, defaulting to
// the empty Unsigned when the field is absent.
type Unsigned struct {
	// Age is the time since the event was sent, in milliseconds,
	// computed by the delivering homeserver.
	Age int64 `json:"age,omitempty"`

	// TransactionID echoes the client-chosen transaction ID on
	// events that the requesting client itself sent.
	TransactionID string `json:"transaction_id,omitempty"`
}

// IsZero reports whether u is the default (empty) unsigned data.
// Encoding omits the field entirely in that case.
func (u Unsigned) IsZero() bool { return u == Unsigned{} }

// rawEnvelope mirrors the wire shape of a room event envelope
// field-for-field, including optionality: room_id and unsigned may be
// absent, everything else is required. Content is kept undecoded —
// resolving it belongs to the family's discriminated decoder, not to
// the envelope phase.
//
// Required fields use presence-preserving representations (pointer,
// zero-checkable ref types) so that validation can tell a missing
// field from a zero value.
type rawEnvelope struct {
	Type           ref.EventType   `json:"type"`
	Content        json.RawMessage `json:"content"`
	EventID        ref.EventID     `json:"event_id"`
	OriginServerTS *int64          `json:"origin_server_ts"`
	RoomID         ref.RoomID      `json:"room_id"`
	Sender         ref.UserID      `json:"sender"`
	Unsigned       *Unsigned       `json:"unsigned"`
}

// decodeRawEnvelope is phase one of the two-phase event decode: a
// wire-faithful parse plus required-field validation. This is the
// only phase that fails on envelope problems, and it never looks
// inside content — envelope errors and content errors stay disjoint.
//
// The wire "type" field is recorded but not validated here: the
// caller already dispatched on it (or knows the expected kind), and
// the outer type and any inner content discriminator are independent.
func decodeRawEnvelope(data []byte) (rawEnvelope, error) {
	var raw rawEnvelope
	if err := json.Unmarshal(data, &raw); err != nil {
		return rawEnvelope{}, &DecodeError{Code: ErrCodeEnvelopeDecodeFailure, Err: err}
	}
	if len(raw.Content) == 0 {
		return rawEnvelope{}, &DecodeError{Code: ErrCodeEnvelopeDecodeFailure, Field: "content", Err: errMissingField}
	}
	if raw.EventID.IsZero() {
		return rawEnvelope{}, &DecodeError{Code: ErrCodeEnvelopeDecodeFailure, Field: "event_id", Err: errMissingField}
	}
	if raw.OriginServerTS == nil {
		return rawEnvelope{}, &DecodeError{Code: ErrCodeEnvelopeDecodeFailure, Field: "origin_server_ts", Err: errMissingField}
	}
	if raw.Sender.IsZero() {
		return rawEnvelope{}, &DecodeError{Code: ErrCodeEnvelopeDecodeFailure, Field: "sender", Err: errMissingField}
	}
	return raw, nil
}

// unsignedOrDefault is the phase-two defaulting rule for the unsigned
// side data: absent on the wire becomes the empty value, so typed
// events always present a populated Unsigned.
func (r rawEnvelope) unsignedOrDefault() Unsigned {
	if r.Unsigned == nil {
		return Unsigned{}
	}
	return *r.Unsigned
}
