// Package config holds the persisted application settings: the OAuth2
// credential for the Google Calendar API and the ordered list of calendar
// sources to aggregate.
//
// Settings serialize as a single flat JSON blob stored under the user's XDG
// config directory. The source-list edit operations (AddSource, RemoveSource,
// MoveSource) are functional: they return a new, renumbered slice and never
// mutate their input.
package config
