// Copyright 2026 The Quill Authors
// SPDX-License-Identifier: Apache-2.0

package event

import (
	"encoding/json"

	"github.com/quill-im/quill/lib/ref"
)

// Matrix event type tags this package decodes. These are the outer
// "type" field values of the wire envelope.
const (
	// TypeRoomEncrypted is an encrypted room event; its content is
	// discriminated a second time by the "algorithm" field.
	TypeRoomEncrypted ref.EventType = "m.room.encrypted"

	// TypeRoomMessage is a plain room message; its content is
	// discriminated a second time by the "msgtype" field.
	TypeRoomMessage ref.EventType = "m.room.message"

	// TypePresence is an ephemeral presence update. It has no room
	// envelope — just a sender and content.
	TypePresence ref.EventType = "m.presence"
)

// Event is the capability shared by every typed event: report the
// wire "type" tag and expose the content payload without the caller
// knowing the concrete event kind. A router, logger, or timeline
// renderer works against this interface; code that knows the kind
// uses the concrete struct's fields directly.
type Event interface {
	// EventType returns the wire "type" tag for this event kind.
	// Each concrete kind returns its own constant.
	EventType() ref.EventType

	// EventContent returns the event's content payload. The dynamic
	// type depends on the event kind (EncryptedContent,
	// MessageContent, PresenceContent).
	EventContent() any
}

// eventDecoders maps the outer "type" discriminator to the decoder
// for that event kind. The table is fixed at build time and read-only
// afterwards; adding an event kind means adding one entry and one
// typed event, never touching DecodeEvent.
var eventDecoders = map[ref.EventType]func([]byte) (Event, error){
	TypeRoomEncrypted: func(data []byte) (Event, error) { return DecodeEncryptedEvent(data) },
	TypeRoomMessage:   func(data []byte) (Event, error) { return DecodeMessageEvent(data) },
	TypePresence:      func(data []byte) (Event, error) { return DecodePresenceEvent(data) },
}

// DecodeEvent inspects the outer "type" discriminator and decodes
// data into the matching typed event. Event types outside the
// decoder table are rejected with ErrCodeUnsupportedDiscriminator;
// a missing or non-string "type" is ErrCodeMissingDiscriminator or
// ErrCodeInvalidDiscriminator respectively.
func DecodeEvent(data []byte) (Event, error) {
	tag, err := readDiscriminator(data, "type")
	if err != nil {
		return nil, err
	}
	decode, ok := eventDecoders[ref.EventType(tag)]
	if !ok {
		return nil, &DecodeError{Code: ErrCodeUnsupportedDiscriminator, Field: "type", Tag: tag}
	}
	return decode(data)
}

// readDiscriminator extracts the named string discriminator from a
// JSON object and validates its shape. Shared by the outer event-type
// dispatch and the per-family content dispatch — the two levels have
// identical tag semantics, only the field name differs.
func readDiscriminator(data []byte, field string) (string, error) {
	var object map[string]json.RawMessage
	if err := json.Unmarshal(data, &object); err != nil {
		return "", &DecodeError{Code: ErrCodeInvalidDiscriminator, Field: field, Err: err}
	}
	rawTag, present := object[field]
	if !present {
		return "", &DecodeError{Code: ErrCodeMissingDiscriminator, Field: field}
	}
	var tag string
	if err := json.Unmarshal(rawTag, &tag); err != nil {
		return "", &DecodeError{Code: ErrCodeInvalidDiscriminator, Field: field, Err: err}
	}
	if !wellFormedTag(tag) {
		return "", &DecodeError{Code: ErrCodeInvalidDiscriminator, Field: field, Tag: tag}
	}
	return tag, nil
}

// wellFormedTag reports whether s is syntactically a plausible
// discriminator tag: a dotted, namespaced identifier of printable
// ASCII, like "m.room.message" or "com.example.custom". The
// distinction matters for diagnostics — a well-formed but unknown
// tag is unsupported_discriminator, anything else is
// invalid_discriminator.
func wellFormedTag(s string) bool {
	if s == "" {
		return false
	}
	segments := 1
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == '.' {
			if i == start {
				return false // empty segment
			}
			if i < len(s) {
				segments++
				start = i + 1
			}
			continue
		}
		if s[i] <= ' ' || s[i] > '~' {
			return false
		}
	}
	return segments >= 2
}
