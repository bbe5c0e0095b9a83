package calendar

import (
	"cmp"
	"context"
	"errors"
	"log/slog"
	"slices"
	"time"

	calendar "google.golang.org/api/calendar/v3"

	"github.com/DoubleTimeOnly/daybrief/internal/config"
	"github.com/DoubleTimeOnly/daybrief/internal/instrumentation"
	"github.com/DoubleTimeOnly/daybrief/internal/logging"
)

// ErrNoSourcesConfigured is returned before any network access when the
// aggregation request carries no calendar sources.
var ErrNoSourcesConfigured = errors.New("no calendar sources configured")

// EventLister is the single-calendar query the aggregator issues per source.
// *Client satisfies it; tests substitute fakes.
type EventLister interface {
	ListDayEvents(ctx context.Context, calendarID string, timeMin, timeMax time.Time) ([]*calendar.Event, error)
}

// ListerFactory builds an EventLister from a bearer token.
type ListerFactory func(ctx context.Context, accessToken string) (EventLister, error)

// Aggregator retrieves one day's events across all configured sources,
// normalizes them and merges them into one deterministically ordered
// sequence.
type Aggregator struct {
	newLister ListerFactory
	logger    *slog.Logger
	metrics   *instrumentation.Metrics
}

// AggregatorOption configures an Aggregator.
type AggregatorOption func(*Aggregator)

// WithListerFactory overrides how per-request listers are built. Used by
// tests.
func WithListerFactory(factory ListerFactory) AggregatorOption {
	return func(a *Aggregator) { a.newLister = factory }
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) AggregatorOption {
	return func(a *Aggregator) { a.logger = logger }
}

// WithMetrics sets the metrics recorder.
func WithMetrics(metrics *instrumentation.Metrics) AggregatorOption {
	return func(a *Aggregator) { a.metrics = metrics }
}

// NewAggregator creates an event aggregator. By default each request builds
// a real Calendar client from the supplied access token.
func NewAggregator(opts ...AggregatorOption) *Aggregator {
	a := &Aggregator{
		newLister: func(ctx context.Context, accessToken string) (EventLister, error) {
			return NewClient(ctx, accessToken)
		},
		logger:  slog.Default(),
		metrics: &instrumentation.Metrics{},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// FetchDay retrieves, normalizes and sorts all events of the given UTC
// calendar day across the configured sources, in configured order.
//
// A failing source is non-fatal: it is recorded as a SourceFailure diagnostic
// and contributes zero events while the remaining sources are still queried.
// One broken calendar subscription must not block visibility into the others.
func (a *Aggregator) FetchDay(ctx context.Context, day time.Time, sources []config.CalendarSource, accessToken string) (*DayEvents, error) {
	logger := logging.WithOperation(a.logger, "fetch_day")

	if len(sources) == 0 {
		return nil, ErrNoSourcesConfigured
	}

	lister, err := a.newLister(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	timeMin, timeMax := dayBounds(day)

	result := &DayEvents{
		Date:        timeMin,
		SourceCount: len(sources),
	}

	// Sources are queried one at a time in configured order so the diagnostic
	// ordering stays deterministic.
	for _, src := range sources {
		started := time.Now()
		items, err := lister.ListDayEvents(ctx, src.ID, timeMin, timeMax)
		if err != nil {
			a.metrics.RecordSourceFetch(ctx, instrumentation.ResultError, time.Since(started))
			logger.Warn("calendar source failed, continuing with remaining sources",
				logging.Calendar(src.ID),
				logging.Source(src.Label),
				logging.Err(err))
			result.Failures = append(result.Failures, SourceFailure{Source: src, Err: err})
			continue
		}
		a.metrics.RecordSourceFetch(ctx, instrumentation.ResultSuccess, time.Since(started))

		for _, item := range items {
			result.Events = append(result.Events, normalizeEvent(item, src))
		}
		logger.Debug("calendar source fetched",
			logging.Calendar(src.ID),
			logging.Events(len(items)))
	}

	slices.SortStableFunc(result.Events, compareEvents)

	logger.Info("day aggregated",
		logging.Date(result.DateString()),
		logging.Events(len(result.Events)),
		slog.Int("failed_sources", len(result.Failures)))
	return result, nil
}

// dayBounds computes the UTC day boundaries for the event-list query. No
// local-timezone adjustment is applied.
func dayBounds(day time.Time) (time.Time, time.Time) {
	d := day.UTC()
	start := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 59, 0, time.UTC)
	return start, end
}

// normalizeEvent reduces one upstream event to the uniform record used for
// merging. An event is all-day iff it carries only a start date and no timed
// start.
func normalizeEvent(event *calendar.Event, src config.CalendarSource) NormalizedEvent {
	n := NormalizedEvent{
		Title:       NoTitlePlaceholder,
		SourceLabel: src.Label,
		SourceOrder: src.Order,
	}
	if event == nil {
		return n
	}

	if event.Summary != "" {
		n.Title = event.Summary
	}
	n.Description = event.Description

	if event.Start != nil {
		switch {
		case event.Start.DateTime != "":
			n.RawStart = event.Start.DateTime
			if t, err := time.Parse(time.RFC3339, event.Start.DateTime); err == nil {
				n.Start = &t
			}
		case event.Start.Date != "":
			n.IsAllDay = true
			n.RawStart = event.Start.Date
			if t, err := time.Parse(dateLayout, event.Start.Date); err == nil {
				n.Start = &t
			}
		}
	}
	return n
}

// compareEvents is the total merge ordering: all-day events strictly before
// timed ones, then earlier start instant, then ascending configured source
// order. Events without a resolvable instant sort after those with one
// within the same class. Combined with a stable sort this makes the output
// order independent of input permutation.
func compareEvents(a, b NormalizedEvent) int {
	if a.IsAllDay != b.IsAllDay {
		if a.IsAllDay {
			return -1
		}
		return 1
	}
	if c := compareStarts(a.Start, b.Start); c != 0 {
		return c
	}
	return cmp.Compare(a.SourceOrder, b.SourceOrder)
}

func compareStarts(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	default:
		return a.Compare(*b)
	}
}
