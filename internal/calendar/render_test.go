package calendar

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, layout, value string) time.Time {
	t.Helper()
	ts, err := time.Parse(layout, value)
	require.NoError(t, err)
	return ts
}

func TestRender_Scenario(t *testing.T) {
	// Source A "Work" (order 0) has a timed standup; source B "Personal"
	// (order 1) has an all-day birthday. The all-day event renders first.
	standupStart := mustParse(t, time.RFC3339, "2024-03-15T09:00:00Z")
	birthdayStart := mustParse(t, "2006-01-02", "2024-03-15")

	result := &DayEvents{
		Date: mustParse(t, "2006-01-02", "2024-03-15"),
		Events: []NormalizedEvent{
			{Title: "Birthday", IsAllDay: true, Start: &birthdayStart, RawStart: "2024-03-15", SourceLabel: "Personal", SourceOrder: 1},
			{Title: "Standup", Start: &standupStart, RawStart: "2024-03-15T09:00:00Z", SourceLabel: "Work", SourceOrder: 0},
		},
		SourceCount: 2,
	}

	out := Render(result)

	want := "## Events for 2024-03-15\n" +
		"\n" +
		"- **Birthday** [Personal] (All day)\n" +
		"- **Standup** [Work] (2024-03-15T09:00:00Z)\n"
	assert.Equal(t, want, out.Text)
	assert.Equal(t, 2, out.EventCount)
	assert.Equal(t, 2, out.SourceCount)
}

func TestRender_LabelOmittedWhenEmpty(t *testing.T) {
	result := &DayEvents{
		Date: mustParse(t, "2006-01-02", "2024-03-15"),
		Events: []NormalizedEvent{
			{Title: "Standup", RawStart: "2024-03-15T09:00:00Z"},
		},
		SourceCount: 1,
	}

	out := Render(result)

	assert.Contains(t, out.Text, "- **Standup** (2024-03-15T09:00:00Z)\n")
	assert.NotContains(t, out.Text, "[")
}

func TestRender_DescriptionIndented(t *testing.T) {
	result := &DayEvents{
		Date: mustParse(t, "2006-01-02", "2024-03-15"),
		Events: []NormalizedEvent{
			{Title: "Birthday", IsAllDay: true, RawStart: "2024-03-15", Description: "bring cake"},
		},
		SourceCount: 1,
	}

	out := Render(result)

	lines := strings.Split(strings.TrimRight(out.Text, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "- **Birthday** (All day)", lines[2])
	assert.Equal(t, "  bring cake", lines[3])
}

func TestRender_RawStartNotReformatted(t *testing.T) {
	// The start marker is the upstream string verbatim, offsets included.
	result := &DayEvents{
		Date: mustParse(t, "2006-01-02", "2024-03-15"),
		Events: []NormalizedEvent{
			{Title: "Call", RawStart: "2024-03-15T09:00:00+02:00"},
		},
		SourceCount: 1,
	}

	out := Render(result)
	assert.Contains(t, out.Text, "(2024-03-15T09:00:00+02:00)")
}

func TestRender_NoStartMarkerWithoutRawStart(t *testing.T) {
	result := &DayEvents{
		Date: mustParse(t, "2006-01-02", "2024-03-15"),
		Events: []NormalizedEvent{
			{Title: "Floating"},
		},
		SourceCount: 1,
	}

	out := Render(result)
	assert.Contains(t, out.Text, "- **Floating**\n")
	assert.NotContains(t, out.Text, "(")
}

func TestRender_EmptyDay(t *testing.T) {
	result := &DayEvents{
		Date:        mustParse(t, "2006-01-02", "2024-03-15"),
		SourceCount: 2,
	}

	out := Render(result)
	assert.Equal(t, "## Events for 2024-03-15\n\n", out.Text)
	assert.Zero(t, out.EventCount)
}
