// Copyright 2026 The Quill Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides Quill's standard CBOR encoding configuration.
//
// Quill uses two serialization formats with a clear boundary:
//
//   - JSON for the external interface: the Matrix client-server wire
//     format that lib/event decodes and encodes.
//   - CBOR for internal protocols: typed events and batches handed
//     between processes, cached sync snapshots, and other data that
//     never leaves the local deployment.
//
// This package provides the shared CBOR encoding and decoding modes
// so that every Quill package encodes identically without duplicating
// configuration. The encoder uses Core Deterministic Encoding
// (RFC 8949 §4.2): sorted map keys, smallest integer encoding, no
// indefinite-length items. Same logical data always produces
// identical bytes.
//
// For buffer-oriented operations:
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// For stream-oriented operations (sockets, pipes):
//
//	encoder := codec.NewEncoder(conn)
//	decoder := codec.NewDecoder(conn)
//
// MarshalCompressed and UnmarshalCompressed wrap the CBOR encoding in
// a zstd frame for bulk payloads (event batches, room snapshots)
// where the repetitive JSON-derived structure compresses well.
package codec
