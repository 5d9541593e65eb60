// Package api is the authenticated resource client: it issues REST calls
// against the portal backend, attaching the current bearer credential at
// call time and normalizing every failure into a typed *Error.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rbmoura/sysportal/internal/client/models"
	"github.com/rbmoura/sysportal/internal/common"
)

// TokenSource supplies the current bearer token. It is consulted on every
// request, never cached, so a call issued after logout cannot carry a stale
// credential. An empty token means "send no Authorization header".
type TokenSource interface {
	Token() string
}

// Client is the backend surface the rest of the client programs against.
type Client interface {
	Login(ctx context.Context, email, password string) (LoginResult, error)
	Register(ctx context.Context, email, password, confirmPassword string) error
	ListSystems(ctx context.Context) ([]models.System, error)
	GetSystem(ctx context.Context, id string) (*models.System, error)
	UpdateSystem(ctx context.Context, id string, patch models.SystemPatch) (*models.System, error)
	DeleteSystem(ctx context.Context, id string) error
}

// LoginResult is the payload of a successful POST /auth/login.
type LoginResult struct {
	Token string          `json:"token"`
	User  models.Identity `json:"user"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type errorBody struct {
	Message string `json:"message"`
}

// HTTPClient implements Client over net/http. It performs no retries and no
// request deduplication; two invocations of the same logical operation are
// two independent requests.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
}

// NewHTTPClient builds a client for the given base URL. The timeout bounds
// each individual request so a hung connection cannot leave a login in
// flight forever.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// UseTokenSource wires the credential source. Set once during startup,
// after the session manager exists.
func (c *HTTPClient) UseTokenSource(ts TokenSource) {
	c.tokens = ts
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (LoginResult, error) {
	var res LoginResult
	err := c.do(ctx, http.MethodPost, "/auth/login", loginRequest{Email: email, Password: password}, &res)
	if err != nil {
		// Any 4xx on the login call is a credential rejection.
		var apiErr *Error
		if errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500 {
			apiErr.Kind = KindAuthentication
		}
		return LoginResult{}, err
	}
	return res, nil
}

func (c *HTTPClient) Register(ctx context.Context, email, password, confirmPassword string) error {
	body := registerRequest{Email: email, Password: password, ConfirmPassword: confirmPassword}
	return c.do(ctx, http.MethodPost, "/auth/register", body, nil)
}

func (c *HTTPClient) ListSystems(ctx context.Context) ([]models.System, error) {
	var systems []models.System
	if err := c.do(ctx, http.MethodGet, "/systems", nil, &systems); err != nil {
		return nil, err
	}
	return systems, nil
}

func (c *HTTPClient) GetSystem(ctx context.Context, id string) (*models.System, error) {
	var system models.System
	if err := c.do(ctx, http.MethodGet, "/systems/"+id, nil, &system); err != nil {
		return nil, err
	}
	return &system, nil
}

func (c *HTTPClient) UpdateSystem(ctx context.Context, id string, patch models.SystemPatch) (*models.System, error) {
	var system models.System
	if err := c.do(ctx, http.MethodPatch, "/systems/"+id, patch, &system); err != nil {
		return nil, err
	}
	return &system, nil
}

func (c *HTTPClient) DeleteSystem(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/systems/"+id, nil, nil)
}

// do performs one request: marshals body (if any), injects the bearer
// credential read from the token source at call time, and translates the
// outcome into either the decoded out value or a typed *Error.
func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &Error{Kind: KindTransport, Message: fmt.Sprintf("encode request: %v", err)}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &Error{Kind: KindTransport, Message: err.Error()}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set(common.AuthorizationHeader, common.BearerPrefix+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Kind: KindTransport, Message: err.Error()}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Kind: KindTransport, Status: resp.StatusCode, Message: err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{
			Kind:    kindFromStatus(resp.StatusCode),
			Status:  resp.StatusCode,
			Message: messageFromBody(data, resp.StatusCode),
		}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return &Error{Kind: KindTransport, Status: resp.StatusCode, Message: fmt.Sprintf("decode response: %v", err)}
		}
	}
	return nil
}

// messageFromBody extracts the backend's "message" field, falling back to
// the HTTP status text when the body is empty or not JSON.
func messageFromBody(data []byte, status int) string {
	var eb errorBody
	if err := json.Unmarshal(data, &eb); err == nil && eb.Message != "" {
		return eb.Message
	}
	return http.StatusText(status)
}
