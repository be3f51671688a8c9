// Copyright 2026 The Quill Authors
// SPDX-License-Identifier: Apache-2.0

package ref

import "fmt"

// UserID is a validated Matrix user ID (e.g., "@alice:example.org").
//
// Structurally a user ID is the '@' sigil, a non-empty localpart, and
// a ':'-separated server name. Quill validates only that structure; it
// imposes no homeserver-specific localpart grammar, so user IDs from
// any server parse.
//
// UserID is an immutable value type. The zero value is not valid;
// use IsZero to check.
type UserID struct {
	id        string
	localpart string
	server    string
}

// ParseUserID validates and wraps a raw Matrix user ID string,
// splitting out the localpart and server name. The split happens at
// the first colon; localparts from old room versions may themselves
// contain colons beyond it.
func ParseUserID(raw string) (UserID, error) {
	localpart, server, err := parseMatrixID(raw)
	if err != nil {
		return UserID{}, err
	}
	return UserID{id: raw, localpart: localpart, server: server}, nil
}

// MustParseUserID is like ParseUserID but panics on error. Use in
// tests and static initialization where the input is known-valid.
func MustParseUserID(raw string) UserID {
	u, err := ParseUserID(raw)
	if err != nil {
		panic(fmt.Sprintf("ref.MustParseUserID(%q): %v", raw, err))
	}
	return u
}

// String returns the full user ID string (e.g., "@alice:example.org").
func (u UserID) String() string { return u.id }

// IsZero reports whether the UserID is the zero value (uninitialized).
func (u UserID) IsZero() bool { return u.id == "" }

// Localpart returns the portion between the '@' sigil and the first
// ':' (e.g., "alice"). Empty for the zero value.
func (u UserID) Localpart() string { return u.localpart }

// Server returns the server name after the first ':' (e.g.,
// "example.org"). Empty for the zero value.
func (u UserID) Server() string { return u.server }

// MarshalText implements encoding.TextMarshaler. The zero value
// marshals to empty text so optional fields can round-trip.
func (u UserID) MarshalText() ([]byte, error) {
	return []byte(u.id), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, re-validating
// the identifier on the way in. Empty input restores the zero value.
func (u *UserID) UnmarshalText(data []byte) error {
	if len(data) == 0 {
		*u = UserID{}
		return nil
	}
	parsed, err := ParseUserID(string(data))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}
