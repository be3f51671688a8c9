// Copyright 2026 The Quill Authors
// SPDX-License-Identifier: Apache-2.0

// Package ref provides strongly typed, immutable Matrix identifier
// values: event IDs, room IDs, user IDs, device IDs, and event type
// tags.
//
// Identifiers arrive as opaque strings on the wire (homeserver
// responses, /sync payloads, event envelopes) and are parsed into
// these types exactly once, at the boundary. Everything downstream —
// the typed-event layer in lib/event, application code, re-encoding —
// handles validated values and never re-checks or mutates them.
//
// All constructors validate their inputs and return errors for
// malformed identifiers. Once constructed, a ref is immutable; the
// zero value of each type is "unset" and reports true from IsZero.
//
// The canonical serialization form is the full Matrix identifier
// ("$event", "!room:server", "@user:server"). JSON and CBOR
// marshaling both use this form via encoding.TextMarshaler.
package ref
