// Copyright 2026 The Quill Authors
// SPDX-License-Identifier: Apache-2.0

// Package event is Quill's typed-event layer: it decodes the
// self-describing JSON events of the Matrix wire format into
// strongly-typed values and re-encodes them losslessly.
//
// Every event carries an outer "type" discriminator selecting the
// event kind, and some content families carry a second discriminator
// selecting the payload schema within the kind — "algorithm" for
// m.room.encrypted, "msgtype" for m.room.message. [DecodeEvent]
// dispatches on the outer tag; each family's content decoder
// dispatches on the inner one. Both levels use a static lookup table
// fixed at build time, so adding an event kind or a payload variant
// means adding one table entry and one type, never touching the
// dispatch logic.
//
// Decoding is two-phase. Phase one parses a wire-faithful raw shape
// that mirrors the JSON field-for-field, including optionality, and
// is the only phase that can fail on missing or malformed fields.
// Phase two is a total projection into the public typed shape:
// absent optional fields take their defaults (an event without
// "unsigned" gets the empty [Unsigned] value) and content decode is
// delegated to the family's discriminated decoder. The split keeps
// envelope-shape errors and content errors apart in the error
// taxonomy.
//
// All decode failures are returned as [*DecodeError] values carrying
// a classification code, the wire field at fault, and the
// discriminator tag when one had been selected — enough for a caller
// to render a diagnostic without re-inspecting the raw bytes. The
// package never logs, never retries, and never produces partial
// output: a decode call returns either a complete, internally
// consistent value or an error.
//
// Typed values are immutable by convention: construct once at decode
// time (or directly, for sending), then read or re-encode. Decode
// and encode are pure functions over their inputs; concurrent calls
// share nothing but the static dispatch tables.
package event
