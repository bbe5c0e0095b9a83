package calendar

import (
	"fmt"
	"time"

	"github.com/DoubleTimeOnly/daybrief/internal/config"
)

// NoTitlePlaceholder is substituted for events the upstream API returns
// without a summary.
const NoTitlePlaceholder = "(No title)"

const dateLayout = "2006-01-02"

// NormalizedEvent is the uniform record one upstream event is reduced to for
// merging and rendering. It is constructed fresh per aggregation request and
// discarded after rendering.
type NormalizedEvent struct {
	Title    string
	IsAllDay bool

	// Start is the parsed start instant. Nil when the upstream event carried
	// neither a timed start nor a date.
	Start *time.Time

	// RawStart is the start string exactly as received upstream. Rendering
	// never re-formats or timezone-converts it.
	RawStart string

	Description string
	SourceLabel string
	SourceOrder int
}

// SourceFailure is a non-fatal, per-source diagnostic recorded when one
// configured calendar fails to respond within a multi-source aggregation.
type SourceFailure struct {
	Source config.CalendarSource
	Err    error
}

func (f SourceFailure) Error() string {
	name := f.Source.Label
	if name == "" {
		name = f.Source.ID
	}
	return fmt.Sprintf("calendar %q: %v", name, f.Err)
}

func (f SourceFailure) Unwrap() error {
	return f.Err
}

// DayEvents is the merged, sorted result of one aggregation request.
type DayEvents struct {
	// Date is the requested calendar day (UTC).
	Date time.Time

	// Events holds all normalized events across all sources in final order.
	Events []NormalizedEvent

	// Failures records the sources that could not be queried, in configured
	// order. A failed source contributes zero events but does not abort the
	// aggregation.
	Failures []SourceFailure

	// SourceCount is the number of configured sources the request covered.
	SourceCount int
}

// Empty reports whether no source returned any event. This is the
// distinguished "no events" outcome, not an error.
func (d *DayEvents) Empty() bool {
	return len(d.Events) == 0
}

// DateString returns the requested day formatted as YYYY-MM-DD.
func (d *DayEvents) DateString() string {
	return d.Date.UTC().Format(dateLayout)
}

// FormattedOutput is the rendered text block plus its summary counts.
type FormattedOutput struct {
	Text        string
	EventCount  int
	SourceCount int
}
