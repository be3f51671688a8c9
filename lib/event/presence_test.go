// Copyright 2026 The Quill Authors
// SPDX-License-Identifier: Apache-2.0

package event

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/quill-im/quill/lib/ref"
)

func TestPresenceEventDecode(t *testing.T) {
	t.Parallel()
	data := []byte(`{
		"type": "m.presence",
		"sender": "@example:localhost",
		"content": {
			"avatar_url": "mxc://localhost/wefuiwegh8742w",
			"currently_active": false,
			"last_active_ago": 2478593,
			"presence": "online",
			"status_msg": "Making cupcakes"
		}
	}`)

	decoded, err := DecodePresenceEvent(data)
	if err != nil {
		t.Fatalf("DecodePresenceEvent: %v", err)
	}
	want := &PresenceEvent{
		Content: PresenceContent{
			Presence:      PresenceOnline,
			AvatarURL:     "mxc://localhost/wefuiwegh8742w",
			LastActiveAgo: 2478593,
			StatusMsg:     "Making cupcakes",
		},
		Sender: ref.MustParseUserID("@example:localhost"),
	}
	if !reflect.DeepEqual(decoded, want) {
		t.Errorf("decoded = %+v, want %+v", decoded, want)
	}
	if decoded.EventType() != TypePresence {
		t.Errorf("EventType() = %q, want %q", decoded.EventType(), TypePresence)
	}
}

func TestPresenceStates(t *testing.T) {
	t.Parallel()
	known := []PresenceState{
		PresenceOnline, PresenceOffline, PresenceUnavailable,
		PresenceFreeForChat, PresenceHidden,
	}
	for _, state := range known {
		if !state.IsKnown() {
			t.Errorf("IsKnown(%q) = false, want true", state)
		}
		data := []byte(`{"sender": "@a:b.org", "content": {"presence": "` + string(state) + `"}}`)
		decoded, err := DecodePresenceEvent(data)
		if err != nil {
			t.Errorf("state %q: %v", state, err)
			continue
		}
		if decoded.Content.Presence != state {
			t.Errorf("state %q decoded as %q", state, decoded.Content.Presence)
		}
	}
	if PresenceState("away").IsKnown() {
		t.Error(`IsKnown("away") = true, want false`)
	}
}

func TestPresenceEventDecodeErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		input    string
		wantCode string
	}{
		{
			name:     "missing sender",
			input:    `{"content": {"presence": "online"}}`,
			wantCode: ErrCodeEnvelopeDecodeFailure,
		},
		{
			name:     "missing content",
			input:    `{"sender": "@a:b.org"}`,
			wantCode: ErrCodeEnvelopeDecodeFailure,
		},
		{
			name:     "missing presence state",
			input:    `{"sender": "@a:b.org", "content": {"status_msg": "hi"}}`,
			wantCode: ErrCodeVariantDecodeFailure,
		},
		{
			name:     "unknown presence state",
			input:    `{"sender": "@a:b.org", "content": {"presence": "away"}}`,
			wantCode: ErrCodeVariantDecodeFailure,
		},
		{
			name:     "wrong content field type",
			input:    `{"sender": "@a:b.org", "content": {"presence": "online", "last_active_ago": "soon"}}`,
			wantCode: ErrCodeVariantDecodeFailure,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := DecodePresenceEvent([]byte(test.input))
			if err == nil {
				t.Fatal("decode succeeded, want error")
			}
			if !IsDecodeError(err, test.wantCode) {
				t.Fatalf("error = %v, want code %q", err, test.wantCode)
			}
		})
	}
}

// Variant failures inside presence content carry the event type as
// their tag, since m.presence has no inner discriminator of its own.
func TestPresenceVariantErrorTag(t *testing.T) {
	t.Parallel()
	_, err := DecodePresenceEvent([]byte(`{"sender": "@a:b.org", "content": {"presence": "away"}}`))
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("error %v is not a *DecodeError", err)
	}
	if decodeErr.Tag != "m.presence" {
		t.Errorf("error tag = %q, want %q", decodeErr.Tag, "m.presence")
	}
	if decodeErr.Field != "presence" {
		t.Errorf("error field = %q, want %q", decodeErr.Field, "presence")
	}
}

func TestPresenceEventRoundTrip(t *testing.T) {
	t.Parallel()
	original := &PresenceEvent{
		Content: PresenceContent{
			Presence:        PresenceUnavailable,
			DisplayName:     "Alice",
			LastActiveAgo:   90_000,
			CurrentlyActive: false,
		},
		Sender: ref.MustParseUserID("@alice:example.org"),
	}

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Unmarshal to map: %v", err)
	}
	assertField(t, raw, "type", "m.presence")

	var decoded PresenceEvent
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !reflect.DeepEqual(&decoded, original) {
		t.Errorf("round trip = %+v, want %+v", &decoded, original)
	}
}
