// Package auth manages the OAuth2 credential lifecycle for the Google
// Calendar API.
//
// The Manager guarantees that callers obtain a currently valid bearer token
// without knowing about refresh mechanics: a stored token within one minute
// of expiry is treated as stale and exchanged for a fresh one using the
// long-lived refresh token. The one-time authorization-code bootstrap lives
// here as well.
//
// Every credential change is persisted through the config store before the
// triggering operation reports success, so a crash immediately afterwards
// cannot silently lose a freshly obtained token.
package auth
