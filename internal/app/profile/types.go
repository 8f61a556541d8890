/*
Package profile contains the core state of the service: the single cached GitHub profile record,
the actions that change it, and the pure reducer that decides whether an action replaces it.

This file defines the UserProfile record, the raw lookup Payload, and the Action tagged variant.
*/
package profile

import (
	"context"
	"errors"
)

// UserProfile is the one profile record the service holds.
// Empty fields mean "absent"; the zero value is the default record used before any lookup succeeded.
// JSON tags match the durable slot format.
type UserProfile struct {
	// Name is the display name of the GitHub account.
	Name string `json:"name"`

	// AvatarURL is the URL of the account's avatar image.
	AvatarURL string `json:"avatar_url"`

	// ProfileURL is the public web page of the account.
	ProfileURL string `json:"html_url"`

	// Username is the account login.
	Username string `json:"username"`
}

// IsEmpty reports whether the record holds no resolved account.
func (p UserProfile) IsEmpty() bool {
	return p == UserProfile{}
}

// Payload is the raw, pre-normalization data returned by a profile lookup.
type Payload struct {
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
	HTMLURL   string `json:"html_url"`
	Login     string `json:"login"`
}

// ActionKind tags the variant of an Action.
type ActionKind string

const (
	// ActionChangeUser replaces the current record with the one carried in the payload,
	// unless the payload describes the account already stored.
	ActionChangeUser ActionKind = "CHANGE_USER"
)

// Action is a request to transition the profile state.
type Action struct {
	Kind    ActionKind `json:"type"`
	Payload Payload    `json:"payload"`
}

// ChangeUser builds a CHANGE_USER action for the given payload.
func ChangeUser(payload Payload) Action {
	return Action{Kind: ActionChangeUser, Payload: payload}
}

// Store is the durable slot the container mirrors its record into.
// Load never fails: an absent or undecodable slot yields the zero UserProfile.
type Store interface {
	Load(ctx context.Context) UserProfile
	Save(ctx context.Context, p UserProfile) error
}

// Lookup resolves a username into a lookup payload.
type Lookup interface {
	Lookup(ctx context.Context, username string) (Payload, error)
}

// Observer is notified with the new record after every dispatch.
type Observer func(p UserProfile)

// Lookup errors. None of them ever reaches Reduce; a failed lookup leaves the state untouched.
var (
	ErrEmptyUsername    = errors.New("profile: username is empty")
	ErrUserNotFound     = errors.New("profile: user not found")
	ErrLookupFailed     = errors.New("profile: lookup failed")
	ErrMalformedPayload = errors.New("profile: malformed lookup payload")
	ErrSuperseded       = errors.New("profile: lookup superseded by a newer search")
)
