// Copyright 2026 The Quill Authors
// SPDX-License-Identifier: Apache-2.0

package ref

import (
	"encoding/json"
	"testing"
)

func TestParseEventID(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		// Valid: room version 4+ hash-based IDs.
		{"$abc123xyz", false},
		{"$VGhpcyBpcyBhIHRlc3Q", false},
		// Valid: legacy format with server.
		{"$something:server.local", false},
		// Invalid: empty.
		{"", true},
		// Invalid: wrong sigil.
		{"!abc123", true},
		{"@abc123", true},
		{"#abc123", true},
		{"abc123", true},
		// Invalid: only the prefix.
		{"$", true},
	}

	for _, test := range tests {
		_, err := ParseEventID(test.input)
		if (err != nil) != test.wantErr {
			t.Errorf("ParseEventID(%q): err=%v, wantErr=%v", test.input, err, test.wantErr)
		}
	}
}

func TestEventIDJSONRoundTrip(t *testing.T) {
	original := MustParseEventID("$abc123xyz")

	if original.String() != "$abc123xyz" {
		t.Errorf("String() = %q, want %q", original.String(), "$abc123xyz")
	}
	if original.IsZero() {
		t.Error("IsZero() = true for valid EventID")
	}

	type wrapper struct {
		EventID EventID `json:"event_id"`
	}
	data, err := json.Marshal(wrapper{EventID: original})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"event_id":"$abc123xyz"}`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}

	var decoded wrapper
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded.EventID != original {
		t.Errorf("round trip = %v, want %v", decoded.EventID, original)
	}
}

func TestParseRoomID(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"!abc123:example.org", false},
		{"!a:b", false},
		{"", true},
		{"abc123:example.org", true},
		{"$abc123:example.org", true},
		// Missing server suffix.
		{"!abc123", true},
		{"!abc123:", true},
		// Empty local part.
		{"!:example.org", true},
	}

	for _, test := range tests {
		_, err := ParseRoomID(test.input)
		if (err != nil) != test.wantErr {
			t.Errorf("ParseRoomID(%q): err=%v, wantErr=%v", test.input, err, test.wantErr)
		}
	}
}

func TestParseUserID(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"@alice:example.org", false},
		{"@bot/ops:chat.example.org", false},
		{"", true},
		{"alice:example.org", true},
		{"@alice", true},
		{"@:example.org", true},
		{"@alice:", true},
	}

	for _, test := range tests {
		_, err := ParseUserID(test.input)
		if (err != nil) != test.wantErr {
			t.Errorf("ParseUserID(%q): err=%v, wantErr=%v", test.input, err, test.wantErr)
		}
	}
}

func TestUserIDParts(t *testing.T) {
	u := MustParseUserID("@alice:example.org")
	if got := u.Localpart(); got != "alice" {
		t.Errorf("Localpart() = %q, want %q", got, "alice")
	}
	if got := u.Server(); got != "example.org" {
		t.Errorf("Server() = %q, want %q", got, "example.org")
	}
}

func TestDeviceID(t *testing.T) {
	if _, err := ParseDeviceID(""); err == nil {
		t.Error("ParseDeviceID(\"\") succeeded, want error")
	}

	d := MustParseDeviceID("JLAFKJWSCS")
	if d.String() != "JLAFKJWSCS" {
		t.Errorf("String() = %q, want %q", d.String(), "JLAFKJWSCS")
	}
	if d.IsZero() {
		t.Error("IsZero() = true for valid DeviceID")
	}

	var zero DeviceID
	if !zero.IsZero() {
		t.Error("IsZero() = false for zero DeviceID")
	}
	if _, err := zero.MarshalText(); err == nil {
		t.Error("MarshalText on zero DeviceID succeeded, want error")
	}
}

func TestZeroValueMarshaling(t *testing.T) {
	// Zero identifiers marshal to empty text and unmarshaling empty
	// text restores the zero value, so optional envelope fields
	// round-trip without special casing.
	type wrapper struct {
		RoomID RoomID `json:"room_id,omitempty"`
	}
	data, err := json.Marshal(wrapper{})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var decoded wrapper
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !decoded.RoomID.IsZero() {
		t.Errorf("round-tripped zero RoomID = %v, want zero", decoded.RoomID)
	}
}
