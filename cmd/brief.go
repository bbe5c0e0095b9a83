package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/DoubleTimeOnly/daybrief/internal/auth"
	"github.com/DoubleTimeOnly/daybrief/internal/calendar"
	"github.com/DoubleTimeOnly/daybrief/internal/document"
	"github.com/DoubleTimeOnly/daybrief/internal/instrumentation"
	"github.com/DoubleTimeOnly/daybrief/internal/notify"
)

const dateLayout = "2006-01-02"

func newBriefCmd() *cobra.Command {
	var dateFlag string
	var noteFile string

	cmd := &cobra.Command{
		Use:   "brief",
		Short: "Fetch one day's events and insert the rendered brief",
		Long: `Fetch the events of one UTC calendar day from every configured calendar
source, merge them into a single ordered text block and append it to the
notes file given with --note (stdout when omitted).

A single failing calendar does not abort the brief: its events are skipped
and a warning names the source.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			notifier := newNotifier()

			day, err := parseDate(dateFlag)
			if err != nil {
				notifier.Errorf("Invalid date %q: expected YYYY-MM-DD", dateFlag)
				return err
			}

			provider, err := instrumentation.NewProvider(ctx,
				instrumentation.NewConfig("daybrief", version, flagMetrics))
			if err != nil {
				return fmt.Errorf("failed to initialize instrumentation: %w", err)
			}
			defer provider.Shutdown(ctx)

			var sink document.Sink
			if noteFile != "" {
				sink = document.NewFileSink(noteFile)
			} else {
				sink = document.NewWriterSink(os.Stdout)
			}

			return runBrief(ctx, day, sink, notifier, provider.Metrics())
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Calendar day to brief, YYYY-MM-DD (default: today, UTC)")
	cmd.Flags().StringVar(&noteFile, "note", "", "Notes file to append the brief to (default: stdout)")
	return cmd
}

// runBrief is the top-level orchestration: token, aggregation, rendering,
// insertion. It translates every terminal failure and every per-source
// diagnostic into a user notification.
func runBrief(ctx context.Context, day time.Time, sink document.Sink, notifier notify.Notifier, metrics *instrumentation.Metrics) error {
	logger := newLogger()

	settings, store, err := loadSettings()
	if err != nil {
		notifier.Errorf("Could not load settings: %v", err)
		return err
	}

	manager := auth.NewManager(settings, store,
		auth.WithLogger(logger),
		auth.WithMetrics(metrics))

	if err := manager.EnsureValidAccessToken(ctx); err != nil {
		notifyAuthError(notifier, err)
		return err
	}

	aggregator := calendar.NewAggregator(
		calendar.WithLogger(logger),
		calendar.WithMetrics(metrics))

	result, err := aggregator.FetchDay(ctx, day, settings.Sources, manager.AccessToken())
	if err != nil {
		if errors.Is(err, calendar.ErrNoSourcesConfigured) {
			notifier.Errorf("No calendar sources configured. Add one with 'daybrief sources add <calendar-id>'.")
		} else {
			notifier.Errorf("Could not fetch events: %v", err)
		}
		return err
	}

	for _, failure := range result.Failures {
		notifier.Warnf("Skipped %s", failure.Error())
	}

	if result.Empty() {
		notifier.Infof("No events on %s.", result.DateString())
		return nil
	}

	out := calendar.Render(result)
	if err := sink.Insert(out.Text); err != nil {
		if errors.Is(err, document.ErrNoTarget) {
			notifier.Errorf("No insertion target for the brief.")
		} else {
			notifier.Errorf("Could not insert brief: %v", err)
		}
		return err
	}

	notifier.Infof("Inserted %d events from %d calendars for %s.",
		out.EventCount, out.SourceCount, result.DateString())
	return nil
}

// notifyAuthError maps the token-manager error taxonomy to user guidance.
func notifyAuthError(notifier notify.Notifier, err error) {
	var transport *auth.TransportError
	switch {
	case errors.Is(err, auth.ErrNotAuthenticated):
		notifier.Errorf("Not authenticated. Run 'daybrief auth url', then 'daybrief auth exchange <code>'.")
	case errors.Is(err, auth.ErrMissingCredentials):
		notifier.Errorf("OAuth client not configured. Run 'daybrief auth configure' or set GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET.")
	case errors.Is(err, auth.ErrRefreshRejected):
		notifier.Errorf("Google rejected the token refresh. Re-authenticate with 'daybrief auth url'.")
	case errors.As(err, &transport):
		notifier.Errorf("Could not reach Google: %v. Try again.", transport.Err)
	default:
		notifier.Errorf("Authentication failed: %v", err)
	}
}

// parseDate parses a YYYY-MM-DD flag value; empty means today in UTC.
func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Now().UTC(), nil
	}
	day, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", value, err)
	}
	return day, nil
}
