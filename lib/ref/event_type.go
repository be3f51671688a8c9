// Copyright 2026 The Quill Authors
// SPDX-License-Identifier: Apache-2.0

package ref

// EventType identifies a Matrix timeline, state, or ephemeral event
// type (e.g., "m.room.encrypted", "m.presence"). Constants for the
// event kinds Quill decodes live in lib/event.
//
// EventType is a named string type, not a struct wrapper: event types
// are opaque identifiers that need no parsing or validation. The type
// exists purely for compile-time safety — preventing accidental use
// of some other string (a state key, an algorithm tag) where an event
// type is expected.
type EventType string

// String returns the event type string (e.g., "m.room.encrypted").
func (t EventType) String() string { return string(t) }
