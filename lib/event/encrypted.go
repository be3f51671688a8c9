// Copyright 2026 The Quill Authors
// SPDX-License-Identifier: Apache-2.0

package event

import (
	"encoding/json"

	"github.com/quill-im/quill/lib/ref"
)

// EncryptedEvent is an m.room.encrypted timeline event: the uniform
// room envelope around one encrypted content payload. Ciphertext is
// opaque here — decryption is a caller concern, this layer only
// transcodes.
//
// For to-device delivery the content travels without a room envelope;
// decode it directly with DecodeEncryptedContent. In that context
// there is no RoomID (the zero value).
type EncryptedEvent struct {
	// Content is the encrypted payload, one of the closed set of
	// algorithm variants.
	Content EncryptedContent

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

	// Unsigned is side data attached by the homeserver, not covered
	// by any signature. The empty value when absent on the wire.
	Unsigned Unsigned
}

// EventType implements Event.
func (e *EncryptedEvent) EventType() ref.EventType { return TypeRoomEncrypted }

// EventContent implements Event.
func (e *EncryptedEvent) EventContent() any { return e.Content }

// EncryptedContent is the payload of an m.room.encrypted event: a
// closed variant set over the supported encryption algorithms.
// Exactly two implementations exist, OlmV1Content and
// MegolmV1Content. The algorithm tag is derived from the concrete
// type via the Algorithm method and is never stored beside the data,
// so a value whose tag disagrees with its variant cannot be
// constructed.
//
// The set is closed but additive: future releases may add algorithms
// without treating it as a breaking change, so type switches over
// EncryptedContent should carry a default arm.
type EncryptedContent interface {
	// Algorithm returns the tag identifying this payload's
	// encryption scheme.
	Algorithm() Algorithm

	// isEncryptedContent marks the closed variant set.
	isEncryptedContent()
}

// OlmV1Content is the payload of an event encrypted with
// m.olm.v1.curve25519-aes-sha2.
type OlmV1Content struct {
	// SenderKey is the Curve25519 identity key of the sending device.
	SenderKey string

	// Ciphertext maps each recipient device's Curve25519 identity
	// key to the message encrypted for that device.
	Ciphertext map[string]OlmCiphertext
}

// OlmCiphertext is one per-device encrypted message within an Olm
// payload.
type OlmCiphertext struct {
	// Body is the opaque ciphertext.
	Body string `json:"body"`

	// MessageType is the Olm message type: 0 for a pre-key message,
	// 1 for a normal message. The wire key is "type".
	MessageType uint64 `json:"type"`
}

// Algorithm implements EncryptedContent.
func (OlmV1Content) Algorithm() Algorithm { return AlgorithmOlmV1 }

func (OlmV1Content) isEncryptedContent() {}

// MarshalJSON writes the algorithm tag first, then the variant's
// fields in fixed order. The tag comes from the variant identity, not
// from stored state, so the encoded form is consistent by
// construction.
func (c OlmV1Content) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Algorithm  Algorithm                `json:"algorithm"`
		Ciphertext map[string]OlmCiphertext `json:"ciphertext"`
		SenderKey  string                   `json:"sender_key"`
	}{c.Algorithm(), c.Ciphertext, c.SenderKey})
}

// MegolmV1Content is the payload of an event encrypted with
// m.megolm.v1.aes-sha2.
type MegolmV1Content struct {
	// Ciphertext is the opaque encrypted content of the event.
	Ciphertext string

	// SenderKey is the Curve25519 identity key of the sending device.
	SenderKey string

	// DeviceID identifies the sending device.
	DeviceID ref.DeviceID

	// SessionID identifies the Megolm session that encrypted the
	// message.
	SessionID string
}

// Algorithm implements EncryptedContent.
func (MegolmV1Content) Algorithm() Algorithm { return AlgorithmMegolmV1 }

func (MegolmV1Content) isEncryptedContent() {}

// MarshalJSON writes the algorithm tag first, then the variant's
// fields in fixed order.
func (c MegolmV1Content) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Algorithm  Algorithm    `json:"algorithm"`
		Ciphertext string       `json:"ciphertext"`
		SenderKey  string       `json:"sender_key"`
		DeviceID   ref.DeviceID `json:"device_id"`
		SessionID  string       `json:"session_id"`
	}{c.Algorithm(), c.Ciphertext, c.SenderKey, c.DeviceID, c.SessionID})
}

// encryptedDecoders maps each supported algorithm to its variant's
// strict decoder. Fixed at build time; adding an algorithm means
// adding one entry and one content type.
var encryptedDecoders = map[Algorithm]func([]byte) (EncryptedContent, error){
	AlgorithmOlmV1:    decodeOlmContent,
	AlgorithmMegolmV1: decodeMegolmContent,
}

// DecodeEncryptedContent inspects the "algorithm" discriminator and
// decodes data into the matching variant. A well-formed algorithm
// tag outside the supported set — including every custom algorithm —
// fails with ErrCodeUnsupportedDiscriminator; the encrypted family
// does not carry payloads it cannot describe.
func DecodeEncryptedContent(data []byte) (EncryptedContent, error) {
	tag, err := readDiscriminator(data, "algorithm")
	if err != nil {
		return nil, err
	}
	decode, ok := encryptedDecoders[Algorithm(tag)]
	if !ok {
		return nil, &DecodeError{Code: ErrCodeUnsupportedDiscriminator, Field: "algorithm", Tag: tag}
	}
	return decode(data)
}

// rawOlmContent mirrors the Olm wire schema field-for-field. Pointer
// fields record presence so validation can tell a missing field from
// a zero value.
type rawOlmContent struct {
	Ciphertext map[string]rawOlmCiphertext `json:"ciphertext"`
	SenderKey  *string                     `json:"sender_key"`
}

type rawOlmCiphertext struct {
	Body        *string `json:"body"`
	MessageType *uint64 `json:"type"`
}

func decodeOlmContent(data []byte) (EncryptedContent, error) {
	var raw rawOlmContent
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &DecodeError{Code: ErrCodeVariantDecodeFailure, Tag: string(AlgorithmOlmV1), Err: err}
	}
	if raw.SenderKey == nil {
		return nil, &DecodeError{Code: ErrCodeVariantDecodeFailure, Tag: string(AlgorithmOlmV1), Field: "sender_key", Err: errMissingField}
	}
	if raw.Ciphertext == nil {
		return nil, &DecodeError{Code: ErrCodeVariantDecodeFailure, Tag: string(AlgorithmOlmV1), Field: "ciphertext", Err: errMissingField}
	}
	ciphertext := make(map[string]OlmCiphertext, len(raw.Ciphertext))
	for deviceKey, message := range raw.Ciphertext {
		if message.Body == nil {
			return nil, &DecodeError{Code: ErrCodeVariantDecodeFailure, Tag: string(AlgorithmOlmV1), Field: "ciphertext." + deviceKey + ".body", Err: errMissingField}
		}
		if message.MessageType == nil {
			return nil, &DecodeError{Code: ErrCodeVariantDecodeFailure, Tag: string(AlgorithmOlmV1), Field: "ciphertext." + deviceKey + ".type", Err: errMissingField}
		}
		ciphertext[deviceKey] = OlmCiphertext{Body: *message.Body, MessageType: *message.MessageType}
	}
	return OlmV1Content{SenderKey: *raw.SenderKey, Ciphertext: ciphertext}, nil
}

// rawMegolmContent mirrors the Megolm wire schema field-for-field.
type rawMegolmContent struct {
	Ciphertext *string       `json:"ciphertext"`
	SenderKey  *string       `json:"sender_key"`
	DeviceID   *ref.DeviceID `json:"device_id"`
	SessionID  *string       `json:"session_id"`
}

func decodeMegolmContent(data []byte) (EncryptedContent, error) {
	var raw rawMegolmContent
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &DecodeError{Code: ErrCodeVariantDecodeFailure, Tag: string(AlgorithmMegolmV1), Err: err}
	}
	if raw.Ciphertext == nil {
		return nil, &DecodeError{Code: ErrCodeVariantDecodeFailure, Tag: string(AlgorithmMegolmV1), Field: "ciphertext", Err: errMissingField}
	}
	if raw.SenderKey == nil {
		return nil, &DecodeError{Code: ErrCodeVariantDecodeFailure, Tag: string(AlgorithmMegolmV1), Field: "sender_key", Err: errMissingField}
	}
	if raw.DeviceID == nil || raw.DeviceID.IsZero() {
		return nil, &DecodeError{Code: ErrCodeVariantDecodeFailure, Tag: string(AlgorithmMegolmV1), Field: "device_id", Err: errMissingField}
	}
	if raw.SessionID == nil {
		return nil, &DecodeError{Code: ErrCodeVariantDecodeFailure, Tag: string(AlgorithmMegolmV1), Field: "session_id", Err: errMissingField}
	}
	return MegolmV1Content{
		Ciphertext: *raw.Ciphertext,
		SenderKey:  *raw.SenderKey,
		DeviceID:   *raw.DeviceID,
		SessionID:  *raw.SessionID,
	}, nil
}

// DecodeEncryptedEvent decodes a full m.room.encrypted event: phase
// one parses the wire-faithful envelope, phase two projects it into
// the typed event, delegating content resolution to
// DecodeEncryptedContent. The outer "type" field, if present, is not
// checked against the content's algorithm — the two discriminators
// are independent.
func DecodeEncryptedEvent(data []byte) (*EncryptedEvent, error) {
	raw, err := decodeRawEnvelope(data)
	if err != nil {
		return nil, err
	}
	content, err := DecodeEncryptedContent(raw.Content)
	if err != nil {
		return nil, err
	}
	return &EncryptedEvent{
		Content:        content,
		EventID:        raw.EventID,
		OriginServerTS: *raw.OriginServerTS,
		RoomID:         raw.RoomID,
		Sender:         raw.Sender,
		Unsigned:       raw.unsignedOrDefault(),
	}, nil
}

// UnmarshalJSON implements json.Unmarshaler via DecodeEncryptedEvent.
func (e *EncryptedEvent) UnmarshalJSON(data []byte) error {
	decoded, err := DecodeEncryptedEvent(data)
	if err != nil {
		return err
	}
	*e = *decoded
	return nil
}

// MarshalJSON writes the event with its "type" discriminator first,
// then the envelope fields. RoomID is omitted when zero (to-device
// context) and Unsigned when empty, mirroring the decode defaults.
func (e *EncryptedEvent) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type           ref.EventType    `json:"type"`
		Content        EncryptedContent `json:"content"`
		EventID        ref.EventID      `json:"event_id"`
		OriginServerTS int64            `json:"origin_server_ts"`
		RoomID         ref.RoomID       `json:"room_id,omitzero"`
		Sender         ref.UserID       `json:"sender"`
		Unsigned       Unsigned         `json:"unsigned,omitzero"`
	}{TypeRoomEncrypted, e.Content, e.EventID, e.OriginServerTS, e.RoomID, e.Sender, e.Unsigned})
}
