// Copyright 2026 The Quill Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// Zstd compression: level 3 (the "default" level — good ratio
// without excessive CPU). Event batches are JSON-derived structures
// with heavily repeated keys, which zstd handles well.

// zstdEncoder and zstdDecoder are reused across calls to avoid
// repeated initialization overhead. zstd.Encoder and zstd.Decoder
// are safe for concurrent use.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedDefault),
	)
	if err != nil {
		panic("codec: zstd encoder initialization failed: " + err.Error())
	}

	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("codec: zstd decoder initialization failed: " + err.Error())
	}
}

// MarshalCompressed encodes v to CBOR and wraps the result in a zstd
// frame. Use for bulk payloads (event batches, room snapshots) where
// size matters more than per-call latency.
func MarshalCompressed(v any) ([]byte, error) {
	data, err := Marshal(v)
	if err != nil {
		return nil, err
	}
	return zstdEncoder.EncodeAll(data, nil), nil
}

// UnmarshalCompressed decodes a zstd frame produced by
// MarshalCompressed and unmarshals the contained CBOR into v.
func UnmarshalCompressed(data []byte, v any) error {
	decompressed, err := zstdDecoder.DecodeAll(data, nil)
	if err != nil {
		return fmt.Errorf("zstd decompress: %w", err)
	}
	return Unmarshal(decompressed, v)
}
