package speaker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// API defines the control server operations used by the dispatch layer.
// This interface is implemented by *Client and can be used for testing.
type API interface {
	SendAction(ctx context.Context, action string) (Call, error)
	SendReset(ctx context.Context, subAction string) (Call, error)
	SetVolume(ctx context.Context, level string) (Call, error)
	PlayStream(ctx context.Context, link string) (Call, error)
	PlayOfflineSong(ctx context.Context, device, song string) (Call, error)
	FetchDevices(ctx context.Context) ([]Device, Call, error)
	FetchSongs(ctx context.Context, device string) ([]Song, Call, error)
}

// Ensure Client implements API at compile time.
var _ API = (*Client)(nil)

var (
	// ErrUnexpectedStatus is wrapped when the server answers with status >= 400.
	ErrUnexpectedStatus = errors.New("unexpected status")
	// ErrDecode is wrapped when a JSON body could not be parsed.
	ErrDecode = errors.New("decode response")
)

// Call identifies a single request sent to the control server.
type Call struct {
	ID     string
	Method string
	Path   string
}

// Client talks to the speaker control server over HTTP.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	newID     func() string
}

const (
	defaultServer    = "127.0.0.1:7070"
	defaultUserAgent = "speakerctl/0.1"
	requestIDHeader  = "X-Request-ID"
)

// NewClient builds a Client for the server host:port (or URL). A zero timeout
// leaves requests bounded only by ctx.
func NewClient(server string, timeout time.Duration) (*Client, error) {
	base, err := parseBaseURL(server)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL:   base,
		http:      &http.Client{Timeout: timeout},
		userAgent: defaultUserAgent,
		newID:     func() string { return uuid.New().String() },
	}, nil
}

// BaseURL returns the normalized server URL.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// SendAction posts /{action}. The action is taken as written, so a query
// such as "play?ytb=abc" reaches the server as a query.
func (c *Client) SendAction(ctx context.Context, action string) (Call, error) {
	rel, err := url.Parse("/" + action)
	if err != nil {
		return Call{Method: http.MethodPost, Path: "/" + action}, fmt.Errorf("parse action %q: %w", action, err)
	}
	if rel.Scheme != "" || rel.Host != "" {
		return Call{Method: http.MethodPost, Path: "/" + action}, fmt.Errorf("parse action %q: not a relative path", action)
	}
	return c.do(ctx, http.MethodPost, rel, nil, nil)
}

// SendReset posts /reset_smart_speaker/{subAction}.
func (c *Client) SendReset(ctx context.Context, subAction string) (Call, error) {
	return c.do(ctx, http.MethodPost, joinPath("reset_smart_speaker", subAction), nil, nil)
}

// SetVolume posts /volume/{level}. The level is forwarded verbatim.
func (c *Client) SetVolume(ctx context.Context, level string) (Call, error) {
	return c.do(ctx, http.MethodPost, joinPath("volume", level), nil, nil)
}

// PlayStream asks the server to stream link.
func (c *Client) PlayStream(ctx context.Context, link string) (Call, error) {
	return c.do(ctx, http.MethodPatch, joinPath("playyoutube"), StreamRequest{Link: link}, nil)
}

// PlayOfflineSong starts playback of song from device.
func (c *Client) PlayOfflineSong(ctx context.Context, device, song string) (Call, error) {
	return c.do(ctx, http.MethodPut, joinPath("playOfflineSong", device, song), nil, nil)
}

// FetchDevices lists the mounted storage devices.
func (c *Client) FetchDevices(ctx context.Context) ([]Device, Call, error) {
	var payload DeviceListResponse
	call, err := c.do(ctx, http.MethodGet, joinPath("getdevice"), nil, &payload)
	if err != nil {
		return nil, call, err
	}
	return payload.Status, call, nil
}

// FetchSongs lists the offline songs stored on device.
func (c *Client) FetchSongs(ctx context.Context, device string) ([]Song, Call, error) {
	var payload SongListResponse
	call, err := c.do(ctx, http.MethodGet, joinPath("getOfflineSong", device), nil, &payload)
	if err != nil {
		return nil, call, err
	}
	return payload.Status, call, nil
}

func (c *Client) do(ctx context.Context, method string, rel *url.URL, body, dest any) (Call, error) {
	path := rel.Path
	if rel.RawQuery != "" {
		path += "?" + rel.RawQuery
	}
	if c == nil || c.baseURL == nil {
		return Call{Method: method, Path: path}, fmt.Errorf("client is nil")
	}
	call := Call{ID: c.newID(), Method: method, Path: path}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return call, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return call, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if dest != nil {
		req.Header.Set("Accept", "application/json")
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(requestIDHeader, call.ID)

	resp, err := c.http.Do(req)
	if err != nil {
		return call, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return call, fmt.Errorf("api %s %s: %w %d", method, path, ErrUnexpectedStatus, resp.StatusCode)
	}
	if dest == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return call, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return call, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return call, nil
}

// joinPath builds an absolute path from segments. Each segment is escaped on
// the wire so names containing spaces or slashes stay a single segment.
func joinPath(segments ...string) *url.URL {
	raw := make([]string, len(segments))
	for i, seg := range segments {
		raw[i] = url.PathEscape(seg)
	}
	return &url.URL{
		Path:    "/" + strings.Join(segments, "/"),
		RawPath: "/" + strings.Join(raw, "/"),
	}
}

func parseBaseURL(server string) (*url.URL, error) {
	trimmed := strings.TrimSpace(server)
	if trimmed == "" {
		trimmed = defaultServer
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse server %q: %w", server, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse server %q: missing host", server)
	}
	u.Path = ""
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
