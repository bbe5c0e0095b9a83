package config

import (
	"fmt"
	"time"
)

// AccessTokenExpiryBuffer is the safety margin applied when deciding whether
// a stored access token is still usable. Tokens within this window of their
// expiry are treated as already expired to absorb clock skew and in-flight
// request latency.
const AccessTokenExpiryBuffer = time.Minute

// Credential holds the OAuth2 material for the Google Calendar API.
// ClientID and ClientSecret identify the application; RefreshToken is the
// long-lived grant obtained once via the authorization-code exchange;
// AccessToken is the short-lived bearer token minted from it.
type Credential struct {
	ClientID     string `json:"clientId"`
	ClientSecret string `json:"clientSecret"`
	RefreshToken string `json:"refreshToken"`
	AccessToken  string `json:"accessToken"`

	// AccessTokenExpiry is the absolute expiry instant of AccessToken in
	// epoch milliseconds. Zero means no access token has been issued yet.
	AccessTokenExpiry int64 `json:"accessTokenExpiry"`
}

// HasClientCredentials reports whether both the client ID and secret are set.
func (c Credential) HasClientCredentials() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

// HasUsableAccessToken reports whether the stored access token can be used
// as of the given instant. The token must be non-empty and its expiry must
// lie strictly beyond now plus the expiry buffer.
func (c Credential) HasUsableAccessToken(now time.Time) bool {
	if c.AccessToken == "" {
		return false
	}
	return c.AccessTokenExpiry > now.Add(AccessTokenExpiryBuffer).UnixMilli()
}

// CalendarSource is one configured remote calendar. Order is the position in
// the configured list; it determines tie-break precedence when merging events
// and is user-controlled, never sorted automatically.
type CalendarSource struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Order int    `json:"order"`
}

// Settings is the persisted application state: the OAuth credential plus the
// ordered list of calendar sources. It serializes as a single flat JSON blob.
type Settings struct {
	Credential
	Sources []CalendarSource `json:"sources"`
}

// AddSource returns a new source list with a source for the given calendar ID
// appended at the end. The input slice is not modified.
func AddSource(sources []CalendarSource, id, label string) []CalendarSource {
	out := make([]CalendarSource, 0, len(sources)+1)
	out = append(out, sources...)
	out = append(out, CalendarSource{ID: id, Label: label, Order: len(sources)})
	return renumber(out)
}

// RemoveSource returns a new source list with the source at the given
// position removed and the remaining sources renumbered. The input slice is
// not modified.
func RemoveSource(sources []CalendarSource, position int) ([]CalendarSource, error) {
	if position < 0 || position >= len(sources) {
		return nil, fmt.Errorf("source position %d out of range [0, %d)", position, len(sources))
	}
	out := make([]CalendarSource, 0, len(sources)-1)
	out = append(out, sources[:position]...)
	out = append(out, sources[position+1:]...)
	return renumber(out), nil
}

// MoveSource returns a new source list with the source at position from
// relocated to position to, preserving the relative order of the others.
// The input slice is not modified.
func MoveSource(sources []CalendarSource, from, to int) ([]CalendarSource, error) {
	if from < 0 || from >= len(sources) {
		return nil, fmt.Errorf("source position %d out of range [0, %d)", from, len(sources))
	}
	if to < 0 || to >= len(sources) {
		return nil, fmt.Errorf("source position %d out of range [0, %d)", to, len(sources))
	}
	out := make([]CalendarSource, 0, len(sources))
	out = append(out, sources...)
	moved := out[from]
	out = append(out[:from], out[from+1:]...)
	out = append(out[:to], append([]CalendarSource{moved}, out[to:]...)...)
	return renumber(out), nil
}

// renumber reassigns Order to match list position after an edit.
func renumber(sources []CalendarSource) []CalendarSource {
	for i := range sources {
		sources[i].Order = i
	}
	return sources
}
