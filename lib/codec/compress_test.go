// Copyright 2026 The Quill Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// batchEntry is a wire-shaped event record: the realistic payload for
// compressed encoding (repeated keys compress well).
type batchEntry struct {
	Type           string `json:"type"`
	EventID        string `json:"event_id"`
	Sender         string `json:"sender"`
	OriginServerTS int64  `json:"origin_server_ts"`
	Body           string `json:"body"`
}

func TestCompressedRoundtrip(t *testing.T) {
	batch := make([]batchEntry, 0, 64)
	for i := 0; i < 64; i++ {
		batch = append(batch, batchEntry{
			Type:           "m.room.message",
			EventID:        fmt.Sprintf("$evt%d", i),
			Sender:         "@alice:example.org",
			OriginServerTS: 1_700_000_000_000 + int64(i),
			Body:           "the quick brown fox jumps over the lazy dog",
		})
	}

	compressed, err := MarshalCompressed(batch)
	if err != nil {
		t.Fatalf("MarshalCompressed: %v", err)
	}

	plain, err := Marshal(batch)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if len(compressed) >= len(plain) {
		t.Errorf("compressed size %d not smaller than plain size %d", len(compressed), len(plain))
	}

	var decoded []batchEntry
	if err := UnmarshalCompressed(compressed, &decoded); err != nil {
		t.Fatalf("UnmarshalCompressed: %v", err)
	}
	if diff := cmp.Diff(batch, decoded); diff != "" {
		t.Errorf("roundtrip mismatch (-want +got):\n%s", diff)
	}
}

func TestUnmarshalCompressedRejectsGarbage(t *testing.T) {
	var out any
	if err := UnmarshalCompressed([]byte("not a zstd frame"), &out); err == nil {
		t.Error("UnmarshalCompressed accepted garbage input")
	}
}
