// Package document is the insertion boundary for rendered briefs.
//
// A Sink receives the finished text block and places it at its destination:
// appended to a notes file or written to stdout. The core never sees past
// this seam; a sink without a destination reports ErrNoTarget.
package document
