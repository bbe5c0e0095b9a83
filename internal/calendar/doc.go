// Package calendar retrieves and aggregates Google Calendar events.
//
// The Client issues bounded, read-only event-list queries against the Google
// Calendar API. The Aggregator runs one query per configured source for a
// single UTC day, normalizes the results into uniform records, merges them
// under a deterministic total ordering (all-day first, then start instant,
// then configured source order) and Render turns the merged sequence into a
// markdown text block.
//
// Per-source failures are collected as diagnostics rather than aborting the
// aggregation, so one broken calendar never hides the others.
//
// Example usage:
//
//	agg := calendar.NewAggregator()
//	day, err := agg.FetchDay(ctx, date, sources, accessToken)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	out := calendar.Render(day)
//	fmt.Print(out.Text)
package calendar
