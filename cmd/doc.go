// Package cmd implements the command-line interface for daybrief.
//
// This package provides the following commands:
//   - brief: Fetch one UTC day's events from all configured calendars and insert the rendered brief
//   - auth: Configure the OAuth client, print the consent URL and exchange the authorization code
//   - sources: List, add, remove and reorder the configured calendar sources
//   - version: Display version information
//
// The brief command is the default command when no subcommand is specified.
package cmd
