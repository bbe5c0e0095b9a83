package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	calendar "google.golang.org/api/calendar/v3"

	"github.com/DoubleTimeOnly/daybrief/internal/config"
	"github.com/DoubleTimeOnly/daybrief/internal/instrumentation"
	"github.com/DoubleTimeOnly/daybrief/internal/logging"
)

const (
	// redirectOOB is the out-of-band redirect URI for installed applications:
	// the provider displays the authorization code for the user to paste.
	redirectOOB = "urn:ietf:wg:oauth:2.0:oob"

	// defaultExpirySeconds is assumed when the token response omits expires_in.
	defaultExpirySeconds = 3600
)

// tokenResponse is the JSON body returned by the OAuth2 token endpoint.
// refresh_token is present only for the authorization-code grant.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	Scope        string `json:"scope"`
}

// Manager owns the OAuth2 credential lifecycle: it hands out valid access
// tokens, refreshing transparently when the stored one is stale, and runs the
// one-time authorization-code bootstrap.
//
// Manager is not safe for concurrent use. It assumes at most one in-flight
// top-level request against the same credential; overlapping calls would each
// issue a refresh and race on the persisted state.
type Manager struct {
	settings   *config.Settings
	store      config.Store
	httpClient *http.Client
	tokenURL   string
	now        func() time.Time
	logger     *slog.Logger
	metrics    *instrumentation.Metrics
}

// Option configures a Manager.
type Option func(*Manager)

// WithHTTPClient sets the HTTP client used for token endpoint calls.
func WithHTTPClient(client *http.Client) Option {
	return func(m *Manager) { m.httpClient = client }
}

// WithTokenURL overrides the provider token endpoint. Used by tests.
func WithTokenURL(tokenURL string) Option {
	return func(m *Manager) { m.tokenURL = tokenURL }
}

// WithClock overrides the time source. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) { m.logger = logger }
}

// WithMetrics sets the metrics recorder.
func WithMetrics(metrics *instrumentation.Metrics) Option {
	return func(m *Manager) { m.metrics = metrics }
}

// NewManager creates a token manager operating on the given settings.
// Credential changes are written through the store before any operation
// reports success.
func NewManager(settings *config.Settings, store config.Store, opts ...Option) *Manager {
	m := &Manager{
		settings:   settings,
		store:      store,
		httpClient: http.DefaultClient,
		tokenURL:   google.Endpoint.TokenURL,
		now:        time.Now,
		logger:     slog.Default(),
		metrics:    &instrumentation.Metrics{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// oauthConfig builds the oauth2 client configuration from the stored
// credential. Scope is read-only calendar access.
func (m *Manager) oauthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     m.settings.ClientID,
		ClientSecret: m.settings.ClientSecret,
		Endpoint:     google.Endpoint,
		RedirectURL:  redirectOOB,
		Scopes:       []string{calendar.CalendarReadonlyScope},
	}
}

// AuthCodeURL returns the provider consent URL the user must visit to obtain
// an authorization code.
func (m *Manager) AuthCodeURL() (string, error) {
	if !m.settings.HasClientCredentials() {
		return "", ErrMissingCredentials
	}
	return m.oauthConfig().AuthCodeURL("state", oauth2.AccessTypeOffline), nil
}

// AccessToken returns the currently stored access token. Call
// EnsureValidAccessToken first.
func (m *Manager) AccessToken() string {
	return m.settings.AccessToken
}

// EnsureValidAccessToken guarantees the stored access token is usable when it
// returns nil. If the token is already within its validity window no network
// call is made. Otherwise a refresh-token exchange is performed and the
// updated credential is persisted before success is reported.
func (m *Manager) EnsureValidAccessToken(ctx context.Context) error {
	logger := logging.WithOperation(m.logger, "ensure_access_token")

	if m.settings.RefreshToken == "" {
		return ErrNotAuthenticated
	}

	if m.settings.HasUsableAccessToken(m.now()) {
		logger.Debug("access token still valid, skipping refresh")
		return nil
	}

	form := url.Values{
		"client_id":     {m.settings.ClientID},
		"client_secret": {m.settings.ClientSecret},
		"refresh_token": {m.settings.RefreshToken},
		"grant_type":    {"refresh_token"},
	}

	resp, err := m.postToken(ctx, "token refresh", form)
	if err != nil {
		m.metrics.RecordTokenRefresh(ctx, instrumentation.ResultError)
		return err
	}
	if resp.AccessToken == "" {
		m.metrics.RecordTokenRefresh(ctx, instrumentation.ResultRejected)
		logger.Warn("token refresh rejected, credential left unchanged")
		return ErrRefreshRejected
	}

	now := m.now()
	m.settings.AccessToken = resp.AccessToken
	m.settings.AccessTokenExpiry = expiryMillis(now, resp.ExpiresIn)

	if err := m.store.Save(m.settings); err != nil {
		return fmt.Errorf("failed to persist refreshed credential: %w", err)
	}

	m.metrics.RecordTokenRefresh(ctx, instrumentation.ResultSuccess)
	logger.Info("access token refreshed",
		slog.String("access_token", logging.SanitizeToken(resp.AccessToken)),
		slog.Time("expiry", time.UnixMilli(m.settings.AccessTokenExpiry)))
	return nil
}

// ExchangeAuthorizationCode trades a user-supplied authorization code for the
// initial refresh and access token pair and persists the full credential.
// This is the one-time bootstrap; it is never called from the fetch path.
func (m *Manager) ExchangeAuthorizationCode(ctx context.Context, code string) error {
	logger := logging.WithOperation(m.logger, "exchange_authorization_code")

	if !m.settings.HasClientCredentials() {
		return ErrMissingCredentials
	}

	form := url.Values{
		"client_id":     {m.settings.ClientID},
		"client_secret": {m.settings.ClientSecret},
		"code":          {code},
		"redirect_uri":  {redirectOOB},
		"grant_type":    {"authorization_code"},
	}

	resp, err := m.postToken(ctx, "authorization code exchange", form)
	if err != nil {
		m.metrics.RecordAuthExchange(ctx, instrumentation.ResultError)
		return err
	}
	if resp.RefreshToken == "" {
		m.metrics.RecordAuthExchange(ctx, instrumentation.ResultRejected)
		logger.Warn("authorization code exchange rejected, credential left unchanged")
		return ErrExchangeRejected
	}

	now := m.now()
	m.settings.RefreshToken = resp.RefreshToken
	m.settings.AccessToken = resp.AccessToken
	m.settings.AccessTokenExpiry = expiryMillis(now, resp.ExpiresIn)

	if err := m.store.Save(m.settings); err != nil {
		return fmt.Errorf("failed to persist credential: %w", err)
	}

	m.metrics.RecordAuthExchange(ctx, instrumentation.ResultSuccess)
	logger.Info("authorization code exchanged",
		slog.String("refresh_token", logging.SanitizeToken(resp.RefreshToken)),
		slog.String("access_token", logging.SanitizeToken(resp.AccessToken)))
	return nil
}

// postToken performs one form-encoded POST against the token endpoint and
// decodes the JSON response. A response that parses but denies the grant is
// not an error here; callers inspect the returned fields. Network failures
// and non-parseable bodies surface as *TransportError.
func (m *Manager) postToken(ctx context.Context, op string, form url.Values) (*tokenResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := m.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &TransportError{Op: op, Err: fmt.Errorf("failed to read token response: %w", err)}
	}

	var resp tokenResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &TransportError{Op: op, Err: fmt.Errorf("failed to parse token response: %w", err)}
	}
	return &resp, nil
}

// expiryMillis computes the absolute expiry instant in epoch milliseconds
// from the instant of the exchange and the provider-reported lifetime.
func expiryMillis(now time.Time, expiresIn int64) int64 {
	if expiresIn <= 0 {
		expiresIn = defaultExpirySeconds
	}
	return now.UnixMilli() + expiresIn*1000
}
