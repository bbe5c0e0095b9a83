// Package notify is the user-notification boundary. The orchestrating
// command translates every terminal failure and partial-failure diagnostic
// into a message through a Notifier; the core packages never touch it.
package notify
