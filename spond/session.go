package spond

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DefaultAPIURL is the base URL of the Spond core API.
const DefaultAPIURL = "https://api.spond.com/core/v1/"

// Session owns the Spond credentials and the bearer token obtained
// from login. It performs the login call itself and produces the
// authenticated header set every other call attaches.
//
// A Session is not safe for concurrent use: the token and credentials
// are written without locking, matching the single-writer model the
// rest of the client assumes.
type Session struct {
	email      string
	password   string
	apiURL     string
	token      string
	httpClient *http.Client
}

// Option configures a Session.
type Option func(*Session)

// WithAPIURL overrides the API base URL. The URL must end with a
// trailing slash; paths are appended directly.
func WithAPIURL(apiURL string) Option {
	return func(s *Session) { s.apiURL = apiURL }
}

// WithHTTPClient sets the HTTP client used for every request. Timeouts
// and transport settings are the caller's to choose; the session adds
// none of its own.
func WithHTTPClient(client *http.Client) Option {
	return func(s *Session) { s.httpClient = client }
}

// NewSession creates a session for the given Spond account.
func NewSession(email, password string, opts ...Option) *Session {
	s := &Session{
		email:      email,
		password:   password,
		apiURL:     DefaultAPIURL,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Email returns the account email.
func (s *Session) Email() string { return s.email }

// APIURL returns the API base URL.
func (s *Session) APIURL() string { return s.apiURL }

// Token returns the current bearer token, empty until login.
func (s *Session) Token() string { return s.token }

// SetCredentials replaces the account credentials. It does not clear
// the token; pair with SetToken("") to force a fresh login.
func (s *Session) SetCredentials(email, password string) {
	s.email = email
	s.password = password
}

// SetToken stores a token directly. An empty string invalidates the
// session so the next authenticated call logs in again.
func (s *Session) SetToken(token string) { s.token = token }

// AuthHeaders returns the header set attached to authenticated calls.
// When no token is held the Authorization value carries a literal
// "null" placeholder rather than being withheld; this leniency is part
// of the session's contract and is not an error at this layer.
func (s *Session) AuthHeaders() map[string]string {
	token := s.token
	if token == "" {
		token = "null"
	}
	return map[string]string{
		"content-type":  "application/json",
		"Authorization": "Bearer " + token,
	}
}

// Login authenticates against the Spond API and stores the returned
// token. It fails with *AuthError when the response carries no token;
// the error embeds the response body. Login never retries.
func (s *Session) Login(ctx context.Context) error {
	body, err := json.Marshal(map[string]string{
		"email":    s.email,
		"password": s.password,
	})
	if err != nil {
		return fmt.Errorf("failed to encode login request: %w", err)
	}

	respBody, err := s.do(ctx, http.MethodPost, s.apiURL+"login",
		map[string]string{"Content-Type": "application/json"}, body)
	if err != nil {
		return err
	}

	var loginResult struct {
		LoginToken string `json:"loginToken"`
	}
	if err := json.Unmarshal(respBody, &loginResult); err != nil {
		return fmt.Errorf("failed to decode login response: %w", err)
	}

	if loginResult.LoginToken == "" {
		return &AuthError{Body: string(respBody)}
	}

	s.token = loginResult.LoginToken
	return nil
}

// EnsureAuth is the guard every authenticated operation runs first: a
// no-op when a token is already held, otherwise a single login whose
// failure propagates to the caller unchanged.
func (s *Session) EnsureAuth(ctx context.Context) error {
	if s.token != "" {
		return nil
	}
	return s.Login(ctx)
}

// do issues one HTTP request and reads the full response body. The
// body is returned regardless of status code; the Spond service
// reports failures inside JSON bodies and this client leaves their
// interpretation to each operation. Only transport and read failures
// become errors.
func (s *Session) do(ctx context.Context, method, url string, headers map[string]string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range headers {
		req.Header.Set(key, value)
	}

	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)

	zerolog.Ctx(ctx).Debug().
		Str("method", method).
		Str("url", url).
		Str("request_id", requestID).
		Msg("dispatching request")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return respBody, nil
}
