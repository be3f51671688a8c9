// Copyright 2026 The Quill Authors
// SPDX-License-Identifier: Apache-2.0

package event

import (
	"encoding/json"
	"fmt"

	"github.com/quill-im/quill/lib/ref"
)

// PresenceState describes a user's connectivity and availability for
// chat. Values are the exact wire strings.
type PresenceState string

const (
	// PresenceOnline: connected to the service.
	PresenceOnline PresenceState = "online"

	// PresenceOffline: disconnected from the service.
	PresenceOffline PresenceState = "offline"

	// PresenceUnavailable: connected but not available for chat.
	PresenceUnavailable PresenceState = "unavailable"

	// PresenceFreeForChat: connected and explicitly available.
	// Legacy state still seen from older servers.
	PresenceFreeForChat PresenceState = "free_for_chat"

	// PresenceHidden: connected but invisible to other users.
	// Legacy state still seen from older servers.
	PresenceHidden PresenceState = "hidden"
)

// IsKnown reports whether s is one of the defined presence states.
func (s PresenceState) IsKnown() bool {
	switch s {
	case PresenceOnline, PresenceOffline, PresenceUnavailable,
		PresenceFreeForChat, PresenceHidden:
		return true
	}
	return false
}

// PresenceEvent informs the client of a user's presence change. It is
// an ephemeral event: no room, no event ID, no timestamp — just the
// sender and the presence content.
type PresenceEvent struct {
	// Content is the presence payload.
	Content PresenceContent

	// Sender is the user whose presence changed.
	Sender ref.UserID
}

// EventType implements Event.
func (e *PresenceEvent) EventType() ref.EventType { return TypePresence }

// EventContent implements Event.
func (e *PresenceEvent) EventContent() any { return e.Content }

// PresenceContent carries the presence state for a single user.
// Presence is the only required field; everything else is
// best-effort profile and activity data.
type PresenceContent struct {
	// Presence is the user's current state.
	Presence PresenceState `json:"presence"`

	// AvatarURL is the user's current avatar, when known.
	AvatarURL string `json:"avatar_url,omitempty"`

	// DisplayName is the user's current display name, when known.
	DisplayName string `json:"displayname,omitempty"`

	// LastActiveAgo is milliseconds since the user last performed
	// some action. Zero when unknown or when the user is active now.
	LastActiveAgo int64 `json:"last_active_ago,omitempty"`

	// StatusMsg is an optional user-set status message.
	StatusMsg string `json:"status_msg,omitempty"`

	// CurrentlyActive is true when the user is actively using a
	// client right now, not just connected and idle.
	CurrentlyActive bool `json:"currently_active,omitempty"`
}

// errUnknownPresence is the cause recorded when the wire carries a
// presence state outside the closed set.
func errUnknownPresence(s PresenceState) error {
	return fmt.Errorf("unknown presence state %q", s)
}

// rawPresenceEvent mirrors the presence wire shape: an outer type
// tag, the sender, and the content object. Presence events have no
// room envelope, so decodeRawEnvelope does not apply.
type rawPresenceEvent struct {
	Sender  ref.UserID      `json:"sender"`
	Content json.RawMessage `json:"content"`
}

// rawPresenceContent tracks presence-field presence with a pointer so
// a missing state is distinguishable from an empty string.
type rawPresenceContent struct {
	Presence        *PresenceState `json:"presence"`
	AvatarURL       string         `json:"avatar_url"`
	DisplayName     string         `json:"displayname"`
	LastActiveAgo   int64          `json:"last_active_ago"`
	StatusMsg       string         `json:"status_msg"`
	CurrentlyActive bool           `json:"currently_active"`
}

// DecodePresenceEvent decodes an m.presence event. An unknown
// presence state is a variant decode failure — the state set is
// closed the same way the algorithm set is.
func DecodePresenceEvent(data []byte) (*PresenceEvent, error) {
	var raw rawPresenceEvent
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &DecodeError{Code: ErrCodeEnvelopeDecodeFailure, Err: err}
	}
	if raw.Sender.IsZero() {
		return nil, &DecodeError{Code: ErrCodeEnvelopeDecodeFailure, Field: "sender", Err: errMissingField}
	}
	if len(raw.Content) == 0 {
		return nil, &DecodeError{Code: ErrCodeEnvelopeDecodeFailure, Field: "content", Err: errMissingField}
	}

	var content rawPresenceContent
	if err := json.Unmarshal(raw.Content, &content); err != nil {
		return nil, &DecodeError{Code: ErrCodeVariantDecodeFailure, Tag: string(TypePresence), Err: err}
	}
	if content.Presence == nil {
		return nil, &DecodeError{Code: ErrCodeVariantDecodeFailure, Tag: string(TypePresence), Field: "presence", Err: errMissingField}
	}
	if !content.Presence.IsKnown() {
		return nil, &DecodeError{Code: ErrCodeVariantDecodeFailure, Tag: string(TypePresence), Field: "presence", Err: errUnknownPresence(*content.Presence)}
	}

	return &PresenceEvent{
		Content: PresenceContent{
			Presence:        *content.Presence,
			AvatarURL:       content.AvatarURL,
			DisplayName:     content.DisplayName,
			LastActiveAgo:   content.LastActiveAgo,
			StatusMsg:       content.StatusMsg,
			CurrentlyActive: content.CurrentlyActive,
		},
		Sender: raw.Sender,
	}, nil
}

// UnmarshalJSON implements json.Unmarshaler via DecodePresenceEvent.
func (e *PresenceEvent) UnmarshalJSON(data []byte) error {
	decoded, err := DecodePresenceEvent(data)
	if err != nil {
		return err
	}
	*e = *decoded
	return nil
}

// MarshalJSON writes the event with its "type" discriminator first.
func (e *PresenceEvent) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ref.EventType   `json:"type"`
		Sender  ref.UserID      `json:"sender"`
		Content PresenceContent `json:"content"`
	}{TypePresence, e.Sender, e.Content})
}
