// Copyright 2026 The Quill Authors
// SPDX-License-Identifier: Apache-2.0

package event

import (
	"encoding/json"

	"github.com/quill-im/quill/lib/ref"
)

// Message msgtype tags this package decodes. The msgtype is the inner
// discriminator of the m.room.message family, playing the same role
// "algorithm" plays for the encrypted family.
const (
	MsgTypeText   = "m.text"
	MsgTypeEmote  = "m.emote"
	MsgTypeNotice = "m.notice"
)

// MessageEvent is an m.room.message timeline event: the uniform room
// envelope around one message content payload.
type MessageEvent struct {
	// Content is the message payload, one of the closed set of
	// msgtype variants.
	Content MessageContent

	// EventID is the server-assigned identifier for this event.
	EventID ref.EventID

	// OriginServerTS is the time the originating homeserver sent the
	// event, in milliseconds since the Unix epoch.
	OriginServerTS int64

	// RoomID identifies the room this event belongs to. Zero when
	// the event was delivered outside a room timeline.
	RoomID ref.RoomID

	// Sender is the user who sent this event.
	Sender ref.UserID

	// Unsigned is side data attached by the homeserver. The empty
	// value when absent on the wire.
	Unsigned Unsigned
}

// EventType implements Event.
func (e *MessageEvent) EventType() ref.EventType { return TypeRoomMessage }

// EventContent implements Event.
func (e *MessageEvent) EventContent() any { return e.Content }

// MessageContent is the payload of an m.room.message event: a closed
// variant set over the supported msgtypes (TextContent, EmoteContent,
// NoticeContent). The msgtype tag is derived from the concrete type,
// never stored beside the data.
//
// Like EncryptedContent, the set is closed but additive; type
// switches should carry a default arm.
type MessageContent interface {
	// MsgType returns the tag identifying this payload's message
	// kind.
	MsgType() string

	// isMessageContent marks the closed variant set.
	isMessageContent()
}

// TextContent is an m.text message: ordinary conversational text.
type TextContent struct {
	// Body is the plain-text message body.
	Body string

	// Format and FormattedBody carry an optional alternate
	// rendering of the body. The only format in common use is
	// "org.matrix.custom.html". Both empty when no alternate
	// rendering was sent.
	Format        string
	FormattedBody string
}

// MsgType implements MessageContent.
func (TextContent) MsgType() string { return MsgTypeText }

func (TextContent) isMessageContent() {}

// MarshalJSON writes the msgtype tag first, then the content fields.
func (c TextContent) MarshalJSON() ([]byte, error) {
	return marshalTextStyle(MsgTypeText, c.Body, c.Format, c.FormattedBody)
}

// EmoteContent is an m.emote message: an action performed by the
// sender, conventionally rendered as "* sender body".
type EmoteContent struct {
	Body          string
	Format        string
	FormattedBody string
}

// MsgType implements MessageContent.
func (EmoteContent) MsgType() string { return MsgTypeEmote }

func (EmoteContent) isMessageContent() {}

// MarshalJSON writes the msgtype tag first, then the content fields.
func (c EmoteContent) MarshalJSON() ([]byte, error) {
	return marshalTextStyle(MsgTypeEmote, c.Body, c.Format, c.FormattedBody)
}

// NoticeContent is an m.notice message: automated output (from bots,
// bridges) that clients render subdued and never auto-respond to.
type NoticeContent struct {
	Body          string
	Format        string
	FormattedBody string
}

// MsgType implements MessageContent.
func (NoticeContent) MsgType() string { return MsgTypeNotice }

func (NoticeContent) isMessageContent() {}

// MarshalJSON writes the msgtype tag first, then the content fields.
func (c NoticeContent) MarshalJSON() ([]byte, error) {
	return marshalTextStyle(MsgTypeNotice, c.Body, c.Format, c.FormattedBody)
}

// marshalTextStyle encodes the shared wire shape of the text-style
// message variants: msgtype first, required body, optional formatting
// pair.
func marshalTextStyle(msgType, body, format, formattedBody string) ([]byte, error) {
	return json.Marshal(struct {
		MsgType       string `json:"msgtype"`
		Body          string `json:"body"`
		Format        string `json:"format,omitempty"`
		FormattedBody string `json:"formatted_body,omitempty"`
	}{msgType, body, format, formattedBody})
}

// messageDecoders maps each supported msgtype to its variant's strict
// decoder. Fixed at build time.
var messageDecoders = map[string]func([]byte) (MessageContent, error){
	MsgTypeText: func(data []byte) (MessageContent, error) {
		return decodeTextStyle(MsgTypeText, data, func(body, format, formatted string) MessageContent {
			return TextContent{Body: body, Format: format, FormattedBody: formatted}
		})
	},
	MsgTypeEmote: func(data []byte) (MessageContent, error) {
		return decodeTextStyle(MsgTypeEmote, data, func(body, format, formatted string) MessageContent {
			return EmoteContent{Body: body, Format: format, FormattedBody: formatted}
		})
	},
	MsgTypeNotice: func(data []byte) (MessageContent, error) {
		return decodeTextStyle(MsgTypeNotice, data, func(body, format, formatted string) MessageContent {
			return NoticeContent{Body: body, Format: format, FormattedBody: formatted}
		})
	},
}

// DecodeMessageContent inspects the "msgtype" discriminator and
// decodes data into the matching variant. Well-formed msgtypes
// outside the supported set (media messages, custom types) fail with
// ErrCodeUnsupportedDiscriminator.
func DecodeMessageContent(data []byte) (MessageContent, error) {
	tag, err := readDiscriminator(data, "msgtype")
	if err != nil {
		return nil, err
	}
	decode, ok := messageDecoders[tag]
	if !ok {
		return nil, &DecodeError{Code: ErrCodeUnsupportedDiscriminator, Field: "msgtype", Tag: tag}
	}
	return decode(data)
}

// rawTextStyleContent mirrors the shared wire shape of the text-style
// variants. Body presence is tracked with a pointer; the formatting
// pair is optional and defaults to empty.
type rawTextStyleContent struct {
	Body          *string `json:"body"`
	Format        string  `json:"format"`
	FormattedBody string  `json:"formatted_body"`
}

func decodeTextStyle(msgType string, data []byte, construct func(body, format, formatted string) MessageContent) (MessageContent, error) {
	var raw rawTextStyleContent
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &DecodeError{Code: ErrCodeVariantDecodeFailure, Tag: msgType, Err: err}
	}
	if raw.Body == nil {
		return nil, &DecodeError{Code: ErrCodeVariantDecodeFailure, Tag: msgType, Field: "body", Err: errMissingField}
	}
	return construct(*raw.Body, raw.Format, raw.FormattedBody), nil
}

// DecodeMessageEvent decodes a full m.room.message event: envelope
// phase, then content resolution via DecodeMessageContent.
func DecodeMessageEvent(data []byte) (*MessageEvent, error) {
	raw, err := decodeRawEnvelope(data)
	if err != nil {
		return nil, err
	}
	content, err := DecodeMessageContent(raw.Content)
	if err != nil {
		return nil, err
	}
	return &MessageEvent{
		Content:        content,
		EventID:        raw.EventID,
		OriginServerTS: *raw.OriginServerTS,
		RoomID:         raw.RoomID,
		Sender:         raw.Sender,
		Unsigned:       raw.unsignedOrDefault(),
	}, nil
}

// UnmarshalJSON implements json.Unmarshaler via DecodeMessageEvent.
func (e *MessageEvent) UnmarshalJSON(data []byte) error {
	decoded, err := DecodeMessageEvent(data)
	if err != nil {
		return err
	}
	*e = *decoded
	return nil
}

// MarshalJSON writes the event with its "type" discriminator first,
// then the envelope fields.
func (e *MessageEvent) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type           ref.EventType  `json:"type"`
		Content        MessageContent `json:"content"`
		EventID        ref.EventID    `json:"event_id"`
		OriginServerTS int64          `json:"origin_server_ts"`
		RoomID         ref.RoomID     `json:"room_id,omitzero"`
		Sender         ref.UserID     `json:"sender"`
		Unsigned       Unsigned       `json:"unsigned,omitzero"`
	}{TypeRoomMessage, e.Content, e.EventID, e.OriginServerTS, e.RoomID, e.Sender, e.Unsigned})
}
