package calendar

import (
	"fmt"
	"strings"
)

// Render builds the markdown text block for one aggregated day: a header
// naming the date followed by one line per event in final order.
//
// Start markers are emitted verbatim as received upstream; all-day events get
// the literal "All day" marker instead. The bracketed source label is omitted
// when the source has none.
func Render(day *DayEvents) FormattedOutput {
	var b strings.Builder

	fmt.Fprintf(&b, "## Events for %s\n\n", day.DateString())
	for _, event := range day.Events {
		writeEventLine(&b, event)
	}

	return FormattedOutput{
		Text:        b.String(),
		EventCount:  len(day.Events),
		SourceCount: day.SourceCount,
	}
}

func writeEventLine(b *strings.Builder, event NormalizedEvent) {
	fmt.Fprintf(b, "- **%s**", event.Title)
	if event.SourceLabel != "" {
		fmt.Fprintf(b, " [%s]", event.SourceLabel)
	}
	switch {
	case event.IsAllDay:
		b.WriteString(" (All day)")
	case event.RawStart != "":
		fmt.Fprintf(b, " (%s)", event.RawStart)
	}
	b.WriteString("\n")

	if event.Description != "" {
		fmt.Fprintf(b, "  %s\n", event.Description)
	}
}
