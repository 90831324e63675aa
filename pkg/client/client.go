package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"parley/pkg/domain"
)

// TokenSource yields the current session token, or "" when there is no
// session. The session store satisfies this, so the client never reads
// ambient state.
type TokenSource interface {
	Token() string
}

// StaticToken is a fixed-value TokenSource, mostly useful in tests.
type StaticToken string

func (t StaticToken) Token() string { return string(t) }

// AuthResponse is the payload returned by register and login.
type AuthResponse struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
	Token string `json:"token"`
}

type credentialsRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type sendMessageRequest struct {
	Text string `json:"text"`
}

// Client is the chat backend API client. Every method is a single
// request/response round trip: no retries, no backoff.
type Client struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
	log        zerolog.Logger
}

// New creates a new API client. tokens may be nil for a client that
// only performs register/login.
func New(baseURL string, tokens TokenSource) *Client {
	return &Client{
		baseURL: baseURL,
		tokens:  tokens,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: zerolog.Nop(),
	}
}

// WithLogger sets the structured logger used for per-request events
// and returns the client for chaining.
func (c *Client) WithLogger(log zerolog.Logger) *Client {
	c.log = log
	return c
}

// Register creates a new account and returns its session token.
// Rejections (e.g. a duplicate login) come back as KindValidation with
// the server's message.
func (c *Client) Register(ctx context.Context, login, password string) (*AuthResponse, error) {
	var resp AuthResponse
	err := c.doRequest(ctx, http.MethodPost, "/api/register/", credentialsRequest{Login: login, Password: password}, &resp)
	if err != nil {
		return nil, fmt.Errorf("client.Register: %w", classify(err, KindValidation))
	}
	return &resp, nil
}

// Login exchanges credentials for a session token. Bad credentials come
// back as KindAuth.
func (c *Client) Login(ctx context.Context, login, password string) (*AuthResponse, error) {
	var resp AuthResponse
	err := c.doRequest(ctx, http.MethodPost, "/api/login/", credentialsRequest{Login: login, Password: password}, &resp)
	if err != nil {
		return nil, fmt.Errorf("client.Login: %w", classify(err, KindAuth))
	}
	return &resp, nil
}

// GetProfile returns the authenticated user's identity.
func (c *Client) GetProfile(ctx context.Context) (*domain.User, error) {
	var u domain.User
	if err := c.get(ctx, "/api/profile/", &u); err != nil {
		return nil, fmt.Errorf("client.GetProfile: %w", classify(err, KindValidation))
	}
	return &u, nil
}

// ListMessages fetches all messages in server order.
func (c *Client) ListMessages(ctx context.Context) ([]domain.Message, error) {
	var msgs []domain.Message
	if err := c.get(ctx, "/api/messages/", &msgs); err != nil {
		return nil, fmt.Errorf("client.ListMessages: %w", classify(err, KindValidation))
	}
	return msgs, nil
}

// SendMessage posts a new message and returns the created record.
// Empty text is rejected server-side as KindValidation.
func (c *Client) SendMessage(ctx context.Context, text string) (*domain.Message, error) {
	var msg domain.Message
	err := c.doRequest(ctx, http.MethodPost, "/api/messages/", sendMessageRequest{Text: text}, &msg)
	if err != nil {
		return nil, fmt.Errorf("client.SendMessage: %w", classify(err, KindValidation))
	}
	return &msg, nil
}

// statusError is the raw HTTP failure before classification.
type statusError struct {
	code    int
	message string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.code, e.message)
}

// classify maps a raw failure onto the error taxonomy. 401 on an
// authenticated call is KindUnauthorized; login/register pass their own
// kind for 4xx (the backend answers 401 to bad login credentials, which
// is not a session failure). fallback covers the remaining 4xx range.
func classify(err error, fallback Kind) error {
	var se *statusError
	if !errors.As(err, &se) {
		return err // already an *APIError (network) or a local failure
	}
	switch {
	case se.code >= 500:
		return &APIError{Kind: KindServer, StatusCode: se.code, Message: se.message}
	case se.code == http.StatusUnauthorized && fallback != KindAuth:
		return &APIError{Kind: KindUnauthorized, StatusCode: se.code, Message: se.message}
	default:
		return &APIError{Kind: fallback, StatusCode: se.code, Message: se.message}
	}
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.doRequest(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if tok := c.tokens.Token(); tok != "" {
			req.Header.Set("Authorization", "Token "+tok)
		}
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn().Str("request_id", requestID).Str("method", method).Str("path", path).
			Dur("duration", time.Since(start)).Err(err).Msg("request failed")
		return &APIError{Kind: KindNetwork, Message: err.Error()}
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	c.log.Debug().Str("request_id", requestID).Str("method", method).Str("path", path).
		Int("status", resp.StatusCode).Dur("duration", time.Since(start)).Msg("request")

	if resp.StatusCode >= 400 {
		return &statusError{code: resp.StatusCode, message: readErrorMessage(resp.Body)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// readErrorMessage extracts the user-facing text from an error body.
// Priority: "error" field, then "message" field, then the raw body.
func readErrorMessage(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, 1<<20)) // 1 MB max error body
	if err != nil {
		return fmt.Sprintf("failed to read body: %v", err)
	}
	var apiErr struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &apiErr) == nil {
		if apiErr.Error != "" {
			return apiErr.Error
		}
		if apiErr.Message != "" {
			return apiErr.Message
		}
	}
	return string(body)
}
