package speaker

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

type recordedRequest struct {
	Method      string
	Path        string
	RawPath     string
	Query       string
	Body        string
	ContentType string
	UserAgent   string
	RequestID   string
}

type recorder struct {
	mu   sync.Mutex
	reqs []recordedRequest
}

func (r *recorder) add(req *http.Request) {
	body, _ := io.ReadAll(req.Body)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reqs = append(r.reqs, recordedRequest{
		Method:      req.Method,
		Path:        req.URL.Path,
		RawPath:     req.URL.EscapedPath(),
		Query:       req.URL.RawQuery,
		Body:        string(body),
		ContentType: req.Header.Get("Content-Type"),
		UserAgent:   req.Header.Get("User-Agent"),
		RequestID:   req.Header.Get(requestIDHeader),
	})
}

func (r *recorder) all() []recordedRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]recordedRequest(nil), r.reqs...)
}

func newTestServer(t *testing.T, handler http.HandlerFunc) (*Client, *recorder) {
	t.Helper()
	rec := &recorder{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.add(r)
		if handler != nil {
			handler(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, 2*time.Second)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	return c, rec
}

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" {
		t.Fatalf("scheme = %q, want http", u.Scheme)
	}
	if u.Host != defaultServer {
		t.Fatalf("host = %q, want %q", u.Host, defaultServer)
	}

	u, err = parseBaseURL("http://speaker.local:5000/control?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}
}

func TestParseBaseURL_MissingHostFails(t *testing.T) {
	if _, err := parseBaseURL("http://"); err == nil {
		t.Fatalf("parseBaseURL returned nil error, want error")
	}
}

func TestClient_CommandRoutes(t *testing.T) {
	t.Parallel()

	c, rec := newTestServer(t, nil)
	ctx := context.Background()

	tests := []struct {
		name       string
		call       func() (Call, error)
		wantMethod string
		wantPath   string
	}{
		{"action", func() (Call, error) { return c.SendAction(ctx, "pause") }, http.MethodPost, "/pause"},
		{"reset", func() (Call, error) { return c.SendReset(ctx, "soft") }, http.MethodPost, "/reset_smart_speaker/soft"},
		{"volume", func() (Call, error) { return c.SetVolume(ctx, "42") }, http.MethodPost, "/volume/42"},
		{"volume keyword", func() (Call, error) { return c.SetVolume(ctx, "up") }, http.MethodPost, "/volume/up"},
		{"play song", func() (Call, error) { return c.PlayOfflineSong(ctx, "usb2", "track.mp3") }, http.MethodPut, "/playOfflineSong/usb2/track.mp3"},
	}

	for i, tt := range tests {
		call, err := tt.call()
		if err != nil {
			t.Fatalf("%s: returned error: %v", tt.name, err)
		}
		if call.Method != tt.wantMethod || call.Path != tt.wantPath {
			t.Fatalf("%s: call = %+v, want %s %s", tt.name, call, tt.wantMethod, tt.wantPath)
		}
		reqs := rec.all()
		if len(reqs) != i+1 {
			t.Fatalf("%s: server saw %d requests, want %d", tt.name, len(reqs), i+1)
		}
		got := reqs[i]
		if got.Method != tt.wantMethod || got.Path != tt.wantPath {
			t.Fatalf("%s: request = %s %s, want %s %s", tt.name, got.Method, got.Path, tt.wantMethod, tt.wantPath)
		}
		if got.Body != "" {
			t.Fatalf("%s: body = %q, want empty", tt.name, got.Body)
		}
		if !strings.HasPrefix(got.UserAgent, "speakerctl/") {
			t.Fatalf("%s: User-Agent = %q, want speakerctl/*", tt.name, got.UserAgent)
		}
		if got.RequestID == "" || got.RequestID != call.ID {
			t.Fatalf("%s: X-Request-ID = %q, want %q", tt.name, got.RequestID, call.ID)
		}
	}
}

func TestClient_SendActionKeepsQueryAsWritten(t *testing.T) {
	t.Parallel()

	tests := []struct {
		action    string
		wantPath  string
		wantQuery string
		wantCall  string
	}{
		{"play?ytb=abc", "/play", "ytb=abc", "/play?ytb=abc"},
		{"say?mrl=file:///tmp/hello.wav", "/say", "mrl=file:///tmp/hello.wav", "/say?mrl=file:///tmp/hello.wav"},
		{"beep?mrl=a%20b.wav", "/beep", "mrl=a%20b.wav", "/beep?mrl=a%20b.wav"},
		{"restore_softvolume", "/restore_softvolume", "", "/restore_softvolume"},
	}

	for _, tt := range tests {
		t.Run(tt.action, func(t *testing.T) {
			c, rec := newTestServer(t, nil)
			call, err := c.SendAction(context.Background(), tt.action)
			if err != nil {
				t.Fatalf("SendAction returned error: %v", err)
			}
			if call.Path != tt.wantCall {
				t.Fatalf("call.Path = %q, want %q", call.Path, tt.wantCall)
			}
			got := rec.all()[0]
			if got.Method != http.MethodPost || got.RawPath != tt.wantPath || got.Query != tt.wantQuery {
				t.Fatalf("request = %s %s ? %s, want POST %s ? %s", got.Method, got.RawPath, got.Query, tt.wantPath, tt.wantQuery)
			}
		})
	}
}

func TestClient_SendActionRejectsOtherHosts(t *testing.T) {
	t.Parallel()

	c, rec := newTestServer(t, nil)
	if _, err := c.SendAction(context.Background(), "/elsewhere.example/pause"); err == nil {
		t.Fatal("SendAction returned nil error, want relative path error")
	}
	if n := len(rec.all()); n != 0 {
		t.Fatalf("server saw %d requests, want 0", n)
	}
}

func TestClient_PlayStreamSendsJSONBody(t *testing.T) {
	t.Parallel()

	c, rec := newTestServer(t, nil)
	link := "https://www.youtube.com/watch?v=abc&t=10"
	if _, err := c.PlayStream(context.Background(), link); err != nil {
		t.Fatalf("PlayStream returned error: %v", err)
	}

	reqs := rec.all()
	if len(reqs) != 1 {
		t.Fatalf("server saw %d requests, want 1", len(reqs))
	}
	got := reqs[0]
	if got.Method != http.MethodPatch || got.Path != "/playyoutube" {
		t.Fatalf("request = %s %s, want PATCH /playyoutube", got.Method, got.Path)
	}
	if got.ContentType != "application/json" {
		t.Fatalf("Content-Type = %q, want application/json", got.ContentType)
	}
	var body map[string]string
	if err := json.Unmarshal([]byte(got.Body), &body); err != nil {
		t.Fatalf("body %q is not JSON: %v", got.Body, err)
	}
	if len(body) != 1 || body["link"] != link {
		t.Fatalf("body = %v, want {link: %q}", body, link)
	}
}

func TestClient_EscapesPathSegments(t *testing.T) {
	t.Parallel()

	c, rec := newTestServer(t, nil)
	if _, err := c.PlayOfflineSong(context.Background(), "USB DISK", "a/b song.mp3"); err != nil {
		t.Fatalf("PlayOfflineSong returned error: %v", err)
	}
	got := rec.all()[0]
	if got.RawPath != "/playOfflineSong/USB%20DISK/a%2Fb%20song.mp3" {
		t.Fatalf("escaped path = %q, want segments escaped", got.RawPath)
	}
}

func TestClient_FetchListsDecodesStatus(t *testing.T) {
	t.Parallel()

	c, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/getdevice":
			_, _ = w.Write([]byte(`{"status":[{"name":"usb1"},{"name":"usb2"}]}`))
		case "/getOfflineSong/usb1":
			_, _ = w.Write([]byte(`{"status":[{"name":"song.mp3","size":12}]}`))
		case "/getOfflineSong/empty":
			_, _ = w.Write([]byte(`{"status":[]}`))
		default:
			http.NotFound(w, r)
		}
	})
	ctx := context.Background()

	devices, call, err := c.FetchDevices(ctx)
	if err != nil {
		t.Fatalf("FetchDevices returned error: %v", err)
	}
	if call.Method != http.MethodGet || call.Path != "/getdevice" {
		t.Fatalf("FetchDevices call = %+v, want GET /getdevice", call)
	}
	if len(devices) != 2 || devices[0].Name != "usb1" || devices[1].Name != "usb2" {
		t.Fatalf("FetchDevices = %#v, want usb1, usb2", devices)
	}

	songs, _, err := c.FetchSongs(ctx, "usb1")
	if err != nil {
		t.Fatalf("FetchSongs returned error: %v", err)
	}
	if len(songs) != 1 || songs[0].Name != "song.mp3" {
		t.Fatalf("FetchSongs = %#v, want song.mp3", songs)
	}

	songs, _, err = c.FetchSongs(ctx, "empty")
	if err != nil {
		t.Fatalf("FetchSongs(empty) returned error: %v", err)
	}
	if len(songs) != 0 {
		t.Fatalf("FetchSongs(empty) = %#v, want none", songs)
	}
}

func TestClient_HTTPErrorAndDecodeError(t *testing.T) {
	t.Parallel()

	c, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/getdevice":
			_, _ = w.Write([]byte("<html>not json</html>"))
		default:
			http.Error(w, "nope", http.StatusInternalServerError)
		}
	})

	_, _, err := c.FetchDevices(context.Background())
	if !errors.Is(err, ErrDecode) {
		t.Fatalf("FetchDevices error = %v, want ErrDecode", err)
	}

	_, err = c.SendAction(context.Background(), "stop")
	if !errors.Is(err, ErrUnexpectedStatus) || !strings.Contains(err.Error(), "500") {
		t.Fatalf("SendAction error = %v, want status 500 error", err)
	}
}

func TestClient_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	addr := server.URL
	server.Close()

	c, err := NewClient(addr, time.Second)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.SetVolume(context.Background(), "10")
	if err == nil || !strings.Contains(err.Error(), "execute request") {
		t.Fatalf("SetVolume error = %v, want execute request error", err)
	}
}

func TestIsKnownAction(t *testing.T) {
	tests := map[string]bool{
		"pause":              true,
		"restore_hardvolume": true,
		"play?ytb=abc":       true,
		"say?mrl=hello.wav":  true,
		"beep?mrl=a.wav":     true,
		"play":               false,
		"dance":              false,
	}
	for in, want := range tests {
		if got := IsKnownAction(in); got != want {
			t.Errorf("IsKnownAction(%q) = %v, want %v", in, got, want)
		}
	}
}
