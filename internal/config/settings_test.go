package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasUsableAccessToken(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)

	tests := []struct {
		name string
		cred Credential
		want bool
	}{
		{
			name: "empty token",
			cred: Credential{AccessTokenExpiry: now.Add(time.Hour).UnixMilli()},
			want: false,
		},
		{
			name: "expiry in the past",
			cred: Credential{AccessToken: "tok", AccessTokenExpiry: now.Add(-time.Hour).UnixMilli()},
			want: false,
		},
		{
			name: "expiry inside the buffer",
			cred: Credential{AccessToken: "tok", AccessTokenExpiry: now.Add(30 * time.Second).UnixMilli()},
			want: false,
		},
		{
			name: "expiry exactly at the buffer edge",
			cred: Credential{AccessToken: "tok", AccessTokenExpiry: now.Add(time.Minute).UnixMilli()},
			want: false,
		},
		{
			name: "expiry one millisecond beyond the buffer",
			cred: Credential{AccessToken: "tok", AccessTokenExpiry: now.Add(time.Minute).UnixMilli() + 1},
			want: true,
		},
		{
			name: "expiry far in the future",
			cred: Credential{AccessToken: "tok", AccessTokenExpiry: now.Add(time.Hour).UnixMilli()},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cred.HasUsableAccessToken(now))
		})
	}
}

func TestHasClientCredentials(t *testing.T) {
	assert.False(t, Credential{}.HasClientCredentials())
	assert.False(t, Credential{ClientID: "id"}.HasClientCredentials())
	assert.False(t, Credential{ClientSecret: "secret"}.HasClientCredentials())
	assert.True(t, Credential{ClientID: "id", ClientSecret: "secret"}.HasClientCredentials())
}

func testSources() []CalendarSource {
	return []CalendarSource{
		{ID: "work@example.com", Label: "Work", Order: 0},
		{ID: "primary", Label: "Personal", Order: 1},
		{ID: "team@example.com", Label: "Team", Order: 2},
	}
}

func sourceIDs(sources []CalendarSource) []string {
	ids := make([]string, len(sources))
	for i, src := range sources {
		ids[i] = src.ID
	}
	return ids
}

func assertRenumbered(t *testing.T, sources []CalendarSource) {
	t.Helper()
	for i, src := range sources {
		assert.Equal(t, i, src.Order)
	}
}

func TestAddSource(t *testing.T) {
	original := testSources()
	out := AddSource(original, "new@example.com", "New")

	require.Len(t, out, 4)
	assert.Equal(t, "new@example.com", out[3].ID)
	assert.Equal(t, "New", out[3].Label)
	assertRenumbered(t, out)

	// Input remains untouched.
	assert.Equal(t, testSources(), original)
}

func TestRemoveSource(t *testing.T) {
	original := testSources()

	out, err := RemoveSource(original, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"work@example.com", "team@example.com"}, sourceIDs(out))
	assertRenumbered(t, out)
	assert.Equal(t, testSources(), original)

	_, err = RemoveSource(original, 3)
	assert.Error(t, err)
	_, err = RemoveSource(original, -1)
	assert.Error(t, err)
}

func TestMoveSource(t *testing.T) {
	tests := []struct {
		name     string
		from, to int
		want     []string
	}{
		{"down the list", 0, 2, []string{"primary", "team@example.com", "work@example.com"}},
		{"up the list", 2, 0, []string{"team@example.com", "work@example.com", "primary"}},
		{"adjacent swap", 0, 1, []string{"primary", "work@example.com", "team@example.com"}},
		{"no-op move", 1, 1, []string{"work@example.com", "primary", "team@example.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			original := testSources()
			out, err := MoveSource(original, tt.from, tt.to)
			require.NoError(t, err)
			assert.Equal(t, tt.want, sourceIDs(out))
			assertRenumbered(t, out)
			assert.Equal(t, testSources(), original)
		})
	}

	_, err := MoveSource(testSources(), 5, 0)
	assert.Error(t, err)
	_, err = MoveSource(testSources(), 0, 5)
	assert.Error(t, err)
}
