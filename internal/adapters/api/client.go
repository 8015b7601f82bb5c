// Package api is the HTTP client for the coaching REST API. It attaches the
// session's bearer token, refreshes it once on 401 and maps responses by
// content type.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/session"
)

// ErrAuthenticationRequired means the session could not be (re)authenticated.
// The token store has already been cleared; callers send the user to /login.
var ErrAuthenticationRequired = errors.New("Authentication required")

// DefaultMessage is used when a failed response carries no usable detail.
const DefaultMessage = "Request failed"

// DefaultTimeout bounds a single round trip.
const DefaultTimeout = 15 * time.Second

// RequestError is a non-2xx response from the API.
type RequestError struct {
	StatusCode int
	Message    string
}

func (e *RequestError) Error() string {
	return e.Message
}

// StatusCode returns the HTTP status of a *RequestError in err's chain, or 0.
func StatusCode(err error) int {
	var re *RequestError
	if errors.As(err, &re) {
		return re.StatusCode
	}
	return 0
}

// Tokens is the per-session token store the client reads and updates.
type Tokens interface {
	Load(ctx context.Context) session.TokenPair
	Save(ctx context.Context, pair session.TokenPair) error
	Clear(ctx context.Context)
}

// Kind classifies a successful response body.
type Kind int

const (
	KindJSON Kind = iota
	KindBlob
	KindText
)

// Result is a successful response.
type Result struct {
	Kind        Kind
	StatusCode  int
	ContentType string
	// Data is the parsed JSON document for KindJSON (nil for an empty body).
	Data any
	// Raw is the undecoded body for every kind.
	Raw []byte
}

// Text returns the body as a string.
func (r Result) Text() string {
	return string(r.Raw)
}

// RawBody is sent verbatim with its own content type (multipart, binary).
type RawBody struct {
	ContentType string
	Data        []byte
}

// RequestOptions tunes a single request.
type RequestOptions struct {
	// SkipAuth sends no bearer token and disables the refresh-on-401 path.
	SkipAuth bool
	Query    url.Values
	Header   http.Header
}

// Config configures a Client.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Observer   Observer
}

// Client talks to the coaching API on behalf of a browser session.
// It is safe for concurrent use; per-session state lives in Tokens.
type Client struct {
	baseURL  string
	http     *http.Client
	observer Observer
	refresh  singleflight.Group
}

// NewClient builds a client for cfg.BaseURL.
// PRE: cfg.BaseURL is an absolute URL without a trailing slash requirement
// POST: returns a client with a bounded per-request timeout
func NewClient(cfg Config) *Client {
	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}
	obs := cfg.Observer
	if obs == nil {
		obs = NopObserver{}
	}
	return &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		http:     hc,
		observer: obs,
	}
}

// BaseURL returns the API root every path is joined to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Request performs one API call with the refresh-once policy.
// PRE: path starts with "/"; tokens belongs to the calling session
// POST: on 401 (SkipAuth false) at most one refresh and one retry happen;
// failure to refresh clears tokens and returns ErrAuthenticationRequired
func (c *Client) Request(ctx context.Context, tokens Tokens, method, path string, body any, opts RequestOptions) (Result, error) {
	payload, contentType, err := encodeBody(body)
	if err != nil {
		return Result{}, err
	}

	access := ""
	if !opts.SkipAuth {
		access = tokens.Load(ctx).AccessToken
	}

	resp, err := c.send(ctx, method, path, payload, contentType, access, opts)
	if err != nil {
		return Result{}, err
	}

	if resp.StatusCode == http.StatusUnauthorized && !opts.SkipAuth {
		resp.Body.Close()
		newAccess, ok := c.refreshAccess(ctx, tokens, access)
		if !ok {
			tokens.Clear(ctx)
			return Result{}, ErrAuthenticationRequired
		}
		resp, err = c.send(ctx, method, path, payload, contentType, newAccess, opts)
		if err != nil {
			return Result{}, err
		}
	}
	defer resp.Body.Close()

	return readResult(resp)
}

// Do performs Request and decodes a JSON result into out (when non-nil).
func (c *Client) Do(ctx context.Context, tokens Tokens, method, path string, in, out any, opts RequestOptions) error {
	res, err := c.Request(ctx, tokens, method, path, in, opts)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if res.Kind != KindJSON {
		return fmt.Errorf("%s %s: expected JSON, got %q", method, path, res.ContentType)
	}
	if len(bytes.TrimSpace(res.Raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(res.Raw, out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	return nil
}

func encodeBody(body any) ([]byte, string, error) {
	switch b := body.(type) {
	case nil:
		return nil, "", nil
	case RawBody:
		return b.Data, b.ContentType, nil
	case *RawBody:
		return b.Data, b.ContentType, nil
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			return nil, "", fmt.Errorf("encode request body: %w", err)
		}
		return raw, "application/json", nil
	}
}

func (c *Client) send(ctx context.Context, method, path string, payload []byte, contentType, access string, opts RequestOptions) (*http.Response, error) {
	target := c.baseURL + path
	if len(opts.Query) > 0 {
		sep := "?"
		if strings.Contains(path, "?") {
			sep = "&"
		}
		target += sep + opts.Query.Encode()
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	for k, vs := range opts.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if access != "" {
		req.Header.Set("Authorization", "Bearer "+access)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	c.observer.ObserveRequest(method, RouteLabel(path), status, time.Since(start))
	if err != nil {
		slog.Warn("api_request", "event", "transport_error", "method", method, "path", path, "error", err)
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	return resp, nil
}

type refreshResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// refreshAccess returns an access token to retry with after a 401 for sent.
// When another request of the session already replaced sent, the stored token
// is reused without a refresh. Concurrent refreshes of the same token share
// one API call, and the rotated pair is saved before the call is released.
func (c *Client) refreshAccess(ctx context.Context, tokens Tokens, sent string) (string, bool) {
	current := tokens.Load(ctx)
	if current.AccessToken != "" && current.AccessToken != sent {
		slog.Debug("auth_event", "event", "refresh_skipped")
		return current.AccessToken, true
	}
	if !current.HasRefresh() {
		c.observer.ObserveRefresh(RefreshNoToken)
		return "", false
	}

	v, err, shared := c.refresh.Do(current.RefreshToken, func() (any, error) {
		flightCtx := context.WithoutCancel(ctx)
		pair, err := c.exchange(flightCtx, current.RefreshToken)
		if err != nil {
			return nil, err
		}
		if err := tokens.Save(flightCtx, pair); err != nil {
			slog.Warn("auth_event", "event", "refresh_save_failed", "error", err)
		}
		return pair, nil
	})
	if err != nil {
		c.observer.ObserveRefresh(RefreshFailed)
		slog.Info("auth_event", "event", "refresh_failed", "error", err)
		return "", false
	}
	pair := v.(session.TokenPair)
	c.observer.ObserveRefresh(RefreshSuccess)
	slog.Debug("auth_event", "event", "refresh_success", "shared", shared)
	return pair.AccessToken, true
}

func (c *Client) exchange(ctx context.Context, refreshToken string) (session.TokenPair, error) {
	payload, _ := json.Marshal(map[string]string{"refresh_token": refreshToken})
	resp, err := c.send(ctx, http.MethodPost, "/auth/refresh", payload, "application/json", "", RequestOptions{SkipAuth: true})
	if err != nil {
		return session.TokenPair{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return session.TokenPair{}, &RequestError{StatusCode: resp.StatusCode, Message: "refresh rejected"}
	}
	var out refreshResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return session.TokenPair{}, fmt.Errorf("decode refresh response: %w", err)
	}
	if out.AccessToken == "" {
		return session.TokenPair{}, errors.New("refresh response has no access token")
	}
	if out.RefreshToken == "" {
		out.RefreshToken = refreshToken
	}
	return session.TokenPair{AccessToken: out.AccessToken, RefreshToken: out.RefreshToken}, nil
}

func readResult(resp *http.Response) (Result, error) {
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Result{}, &RequestError{StatusCode: resp.StatusCode, Message: errorMessage(raw)}
	}

	ct := resp.Header.Get("Content-Type")
	res := Result{StatusCode: resp.StatusCode, ContentType: ct, Raw: raw}
	switch {
	case strings.Contains(ct, "application/json"):
		res.Kind = KindJSON
		if len(bytes.TrimSpace(raw)) > 0 {
			if err := json.Unmarshal(raw, &res.Data); err != nil {
				return Result{}, fmt.Errorf("decode response: %w", err)
			}
		}
	case strings.Contains(ct, "application/pdf"), strings.Contains(ct, "text/csv"):
		res.Kind = KindBlob
	default:
		res.Kind = KindText
	}
	return res, nil
}

// errorMessage extracts "detail" from an error body. A validation list
// ([{"msg": ...}]) is joined; anything else falls back to DefaultMessage.
func errorMessage(raw []byte) string {
	var body struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(raw, &body); err != nil || len(body.Detail) == 0 {
		return DefaultMessage
	}

	var text string
	if err := json.Unmarshal(body.Detail, &text); err == nil {
		if text == "" {
			return DefaultMessage
		}
		return text
	}

	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(body.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			if it.Msg != "" {
				msgs = append(msgs, it.Msg)
			}
		}
		if len(msgs) > 0 {
			return strings.Join(msgs, "; ")
		}
	}
	return DefaultMessage
}
