package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/toolsmith-labs/toolsmith/internal/tool"
)

const (
	loginPath    = "/api/v1/auth/login"
	registerPath = "/api/v1/tools"

	// lifecycleStatus is the status a freshly scaffolded tool is
	// registered under.
	lifecycleStatus = "active"

	defaultAttempts    = 3
	defaultBackoffUnit = time.Second
)

// identifierPattern mirrors the registry's server-side identifier rule.
var identifierPattern = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// Session is the proof of a successful login. Register calls require one,
// so the authentication order is visible in the types rather than hidden
// in client state.
type Session struct {
	Token string
	Email string
}

// Registration is the server's answer to a successful registration.
type Registration struct {
	ToolID    string
	CreatedAt time.Time
	Message   string
}

// Announcer is called before each backoff delay with the upcoming attempt
// number and the delay about to be slept.
type Announcer func(attempt int, delay time.Duration)

// Client talks to the remote tool registry.
type Client struct {
	baseURL    string
	httpClient *http.Client
	attempts   int
	unit       time.Duration
	announce   Announcer
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithBackoffUnit sets the base delay unit for retry backoff.
func WithBackoffUnit(unit time.Duration) Option {
	return func(cl *Client) {
		cl.unit = unit
	}
}

// WithAnnouncer sets the callback invoked before each retry delay.
func WithAnnouncer(fn Announcer) Option {
	return func(cl *Client) {
		cl.announce = fn
	}
}

// NewClient creates a registry client for the given base URL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		attempts:   defaultAttempts,
		unit:       defaultBackoffUnit,
		announce:   func(int, time.Duration) {},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the registry endpoint this client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Validate mirrors the registry's server-side contract checks so obviously
// doomed payloads never generate network traffic. It aggregates every
// violation, like the local metadata validator does.
func (c *Client) Validate(meta *tool.Metadata) error {
	var issues []tool.FieldError
	if !identifierPattern.MatchString(meta.Identifier) {
		issues = append(issues, tool.FieldError{
			Field:   "identifier",
			Message: "must be a kebab-case slug",
		})
	}
	if len(meta.Permissions) == 0 {
		issues = append(issues, tool.FieldError{
			Field:   "permissions",
			Message: "at least one permission is required",
		})
	}
	if len(meta.Features) == 0 {
		issues = append(issues, tool.FieldError{
			Field:   "features",
			Message: "at least one feature is required",
		})
	}
	if len(issues) > 0 {
		return &tool.ValidationError{Issues: issues}
	}
	return nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Data struct {
		AccessToken string `json:"accessToken"`
	} `json:"data"`
}

// Authenticate logs in and returns a session carrying the access token.
// 401 and 403 are terminal; network failures and 5xx responses are
// retried under the client's backoff policy.
func (c *Client) Authenticate(ctx context.Context, email, password string) (*Session, error) {
	if email == "" {
		return nil, fmt.Errorf("authenticating: email is required")
	}
	if password == "" {
		return nil, fmt.Errorf("authenticating: password is required")
	}

	var session *Session
	err := c.doWithRetry(ctx, func() error {
		status, body, err := c.postJSON(ctx, loginPath, "", loginRequest{Email: email, Password: password})
		if err != nil {
			return err
		}
		switch {
		case status == http.StatusOK:
			var resp loginResponse
			if err := json.Unmarshal(body, &resp); err != nil {
				return fmt.Errorf("parsing login response: %w", err)
			}
			if resp.Data.AccessToken == "" {
				return fmt.Errorf("login response carried no access token")
			}
			session = &Session{Token: resp.Data.AccessToken, Email: email}
			return nil
		case status == http.StatusUnauthorized:
			return ErrInvalidCredentials
		case status == http.StatusForbidden:
			return ErrAccountLocked
		case status >= 500:
			return &retryableError{fmt.Errorf("registry returned status %d", status)}
		default:
			return fmt.Errorf("registry returned unexpected status %d: %s", status, strings.TrimSpace(string(body)))
		}
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

type registerRequest struct {
	ToolID       string   `json:"toolId"`
	Name         string   `json:"name"`
	Version      string   `json:"version"`
	Description  string   `json:"description"`
	Route        string   `json:"route"`
	APIBase      string   `json:"apiBase"`
	Permissions  []string `json:"permissions"`
	Status       string   `json:"status"`
	ManifestJSON string   `json:"manifestJson"`
}

type registerResponse struct {
	Data struct {
		ToolID    string    `json:"toolId"`
		CreatedAt time.Time `json:"createdAt"`
	} `json:"data"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error   string       `json:"error"`
	Details []FieldIssue `json:"details"`
}

// Register submits the tool to the registry. The descriptor is embedded in
// the payload as a JSON string; passing nil embeds the metadata itself.
// 400 surfaces the server's field issues, 409 means the identifier is
// taken, and transport failures or 5xx responses are retried.
func (c *Client) Register(ctx context.Context, session *Session, meta *tool.Metadata, descriptor any) (*Registration, error) {
	if session == nil || session.Token == "" {
		return nil, fmt.Errorf("registering tool: not authenticated")
	}
	if err := c.Validate(meta); err != nil {
		return nil, err
	}

	if descriptor == nil {
		descriptor = meta
	}
	manifestJSON, err := json.Marshal(descriptor)
	if err != nil {
		return nil, fmt.Errorf("encoding tool descriptor: %w", err)
	}

	payload := registerRequest{
		ToolID:       meta.Identifier,
		Name:         meta.DisplayName,
		Version:      meta.Version,
		Description:  meta.Description,
		Route:        meta.Route(),
		APIBase:      meta.APIBasePath(),
		Permissions:  meta.Permissions,
		Status:       lifecycleStatus,
		ManifestJSON: string(manifestJSON),
	}

	var registration *Registration
	err = c.doWithRetry(ctx, func() error {
		status, body, err := c.postJSON(ctx, registerPath, session.Token, payload)
		if err != nil {
			return err
		}
		switch {
		case status == http.StatusCreated:
			var resp registerResponse
			if err := json.Unmarshal(body, &resp); err != nil {
				return fmt.Errorf("parsing registration response: %w", err)
			}
			registration = &Registration{
				ToolID:    resp.Data.ToolID,
				CreatedAt: resp.Data.CreatedAt,
				Message:   resp.Message,
			}
			return nil
		case status == http.StatusBadRequest:
			var resp errorResponse
			if err := json.Unmarshal(body, &resp); err != nil || len(resp.Details) == 0 {
				return &ServerValidationError{}
			}
			return &ServerValidationError{Issues: resp.Details}
		case status == http.StatusUnauthorized:
			return ErrInvalidCredentials
		case status == http.StatusConflict:
			return ErrAlreadyRegistered
		case status >= 500:
			return &retryableError{fmt.Errorf("registry returned status %d", status)}
		default:
			return fmt.Errorf("registry returned unexpected status %d: %s", status, strings.TrimSpace(string(body)))
		}
	})
	if err != nil {
		return nil, err
	}
	return registration, nil
}

// postJSON performs one POST attempt and hands back the raw status and
// body. Transport errors come back marked retryable; status mapping is
// the caller's business.
func (c *Client) postJSON(ctx context.Context, path, token string, body any) (int, []byte, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return 0, nil, fmt.Errorf("encoding request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return 0, nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, &retryableError{fmt.Errorf("calling registry: %w", err)}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, &retryableError{fmt.Errorf("reading registry response: %w", err)}
	}
	return resp.StatusCode, respBody, nil
}
