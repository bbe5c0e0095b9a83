package cmd

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DoubleTimeOnly/daybrief/internal/auth"
)

func TestParseDate(t *testing.T) {
	day, err := parseDate("2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), day)

	_, err = parseDate("15.03.2024")
	assert.Error(t, err)
	_, err = parseDate("2024-13-01")
	assert.Error(t, err)
}

func TestParseDate_EmptyMeansToday(t *testing.T) {
	day, err := parseDate("")
	require.NoError(t, err)
	assert.Equal(t, time.Now().UTC().Format(dateLayout), day.Format(dateLayout))
}

// recordingNotifier captures notifications for assertions.
type recordingNotifier struct {
	infos, warns, errors []string
}

func (n *recordingNotifier) Infof(format string, args ...interface{}) {
	n.infos = append(n.infos, fmt.Sprintf(format, args...))
}

func (n *recordingNotifier) Warnf(format string, args ...interface{}) {
	n.warns = append(n.warns, fmt.Sprintf(format, args...))
}

func (n *recordingNotifier) Errorf(format string, args ...interface{}) {
	n.errors = append(n.errors, fmt.Sprintf(format, args...))
}

func TestNotifyAuthError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"not authenticated", auth.ErrNotAuthenticated, "daybrief auth url"},
		{"missing credentials", auth.ErrMissingCredentials, "GOOGLE_CLIENT_ID"},
		{"refresh rejected", auth.ErrRefreshRejected, "Re-authenticate"},
		{"transport", &auth.TransportError{Op: "token refresh", Err: assert.AnError}, "Try again"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notifier := &recordingNotifier{}
			notifyAuthError(notifier, tt.err)

			require.Len(t, notifier.errors, 1)
			assert.Contains(t, notifier.errors[0], tt.want)
		})
	}
}
