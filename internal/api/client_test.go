package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	pErrors "github.com/darkai/darkchat/internal/errors"
	"github.com/darkai/darkchat/internal/logger"
)

func TestMain(m *testing.M) {
	logger.Reset()
	logger.Init(os.DevNull)
	code := m.Run()
	logger.Reset()
	os.Exit(code)
}

// newTestClient starts a server running handler and returns a client for it.
func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(srv.URL, 5*time.Second)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	return c
}

func decodeBody(t *testing.T, r *http.Request, v any) {
	t.Helper()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		t.Errorf("failed to decode request body: %v", err)
	}
}

func TestChat_Success(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/chat/" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("Content-Type = %q", r.Header.Get("Content-Type"))
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("missing X-Request-ID header")
		}
		var req ChatRequest
		decodeBody(t, r, &req)
		if req.Message != "hi" || !req.CodeMode {
			t.Errorf("unexpected body %+v", req)
		}
		io.WriteString(w, `{"bot_response":"Hello"}`)
	})

	resp, err := c.Chat(context.Background(), ChatRequest{Message: "hi", CodeMode: true})
	if err != nil {
		t.Fatalf("Chat returned error: %v", err)
	}
	if resp.BotResponse != "Hello" {
		t.Errorf("BotResponse = %q, want %q", resp.BotResponse, "Hello")
	}
}

func TestChat_ErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		kind    pErrors.Kind
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				io.WriteString(w, `{"error":"model overloaded"}`)
			},
			kind: pErrors.KindRejected,
		},
		{
			name: "not json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				io.WriteString(w, "<html>oops</html>")
			},
			kind: pErrors.KindMalformed,
		},
		{
			name: "missing field",
			handler: func(w http.ResponseWriter, r *http.Request) {
				io.WriteString(w, `{"reply":"wrong shape"}`)
			},
			kind: pErrors.KindMalformed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, tt.handler)
			_, err := c.Chat(context.Background(), ChatRequest{Message: "hi"})
			if !pErrors.Is(err, tt.kind) {
				t.Errorf("kind = %v, want %v (err: %v)", pErrors.GetKind(err), tt.kind, err)
			}
		})
	}
}

func TestChat_RejectedCarriesMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"message":"message is required"}`)
	})

	_, err := c.Chat(context.Background(), ChatRequest{})
	httpErr, ok := AsHTTPError(err)
	if !ok {
		t.Fatalf("expected HTTPError inside %v", err)
	}
	if httpErr.StatusCode != http.StatusBadRequest || httpErr.Message != "message is required" {
		t.Errorf("unexpected HTTPError %+v", httpErr)
	}
}

func TestNewHTTPError_TruncatesOnRuneBoundary(t *testing.T) {
	body := "a" + strings.Repeat("é", maxErrorBody)

	httpErr := newHTTPError(http.StatusBadGateway, []byte(body))
	if !utf8.ValidString(httpErr.Body) {
		t.Fatal("truncated body is not valid UTF-8")
	}
	if len(httpErr.Body) != maxErrorBody-1 {
		t.Errorf("len(Body) = %d, want %d", len(httpErr.Body), maxErrorBody-1)
	}
	if !strings.HasPrefix(body, httpErr.Body) {
		t.Error("truncated body should be a prefix of the original")
	}
}

func TestChat_ResponseTooLarge(t *testing.T) {
	orig := maxResponseBody
	maxResponseBody = 32
	defer func() { maxResponseBody = orig }()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"bot_response":"`+strings.Repeat("x", 64)+`"}`)
	})

	_, err := c.Chat(context.Background(), ChatRequest{Message: "hi"})
	if !pErrors.Is(err, pErrors.KindMalformed) {
		t.Errorf("kind = %v, want malformed (err: %v)", pErrors.GetKind(err), err)
	}
}

func TestChat_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c, err := NewClient(url, time.Second)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.Chat(context.Background(), ChatRequest{Message: "hi"})
	if !pErrors.Is(err, pErrors.KindNetwork) {
		t.Errorf("kind = %v, want network (err: %v)", pErrors.GetKind(err), err)
	}
}

func TestChat_Timeout(t *testing.T) {
	release := make(chan struct{})
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := c.Chat(ctx, ChatRequest{Message: "hi"})
	if !pErrors.Is(err, pErrors.KindTimeout) {
		t.Errorf("kind = %v, want timeout (err: %v)", pErrors.GetKind(err), err)
	}
}

func TestChat_Canceled(t *testing.T) {
	started := make(chan struct{})
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.Copy(io.Discard, r.Body)
		close(started)
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()
	_, err := c.Chat(ctx, ChatRequest{Message: "hi"})
	if !pErrors.Is(err, pErrors.KindCanceled) {
		t.Errorf("kind = %v, want canceled (err: %v)", pErrors.GetKind(err), err)
	}
}

func TestGenerateImage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate-image/" {
			t.Errorf("path = %q", r.URL.Path)
		}
		var req ImageRequest
		decodeBody(t, r, &req)
		if req.Prompt != "a cat" {
			t.Errorf("Prompt = %q", req.Prompt)
		}
		io.WriteString(w, `{"file_name":"abc.png"}`)
	})

	resp, err := c.GenerateImage(context.Background(), ImageRequest{Prompt: "a cat"})
	if err != nil {
		t.Fatalf("GenerateImage returned error: %v", err)
	}
	if resp.FileName != "abc.png" {
		t.Errorf("FileName = %q", resp.FileName)
	}
}

func TestTextToSpeech(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req SpeechRequest
		decodeBody(t, r, &req)
		if req.Text != "hola" || req.Lang != "es" {
			t.Errorf("unexpected body %+v", req)
		}
		io.WriteString(w, `{"audio_url":"/media/out.mp3"}`)
	})

	resp, err := c.TextToSpeech(context.Background(), SpeechRequest{Text: "hola", Lang: "es"})
	if err != nil {
		t.Fatalf("TextToSpeech returned error: %v", err)
	}
	if resp.AudioURL != "/media/out.mp3" {
		t.Errorf("AudioURL = %q", resp.AudioURL)
	}
}

func TestAuth_NestedUsernameAndPlainBodies(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantUser string
	}{
		{"top level", `{"username":"neo"}`, "neo"},
		{"nested", `{"user":{"username":"trinity"}}`, "trinity"},
		{"plain text", `OTP sent`, ""},
		{"empty", ``, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				io.WriteString(w, tt.body)
			})
			resp, err := c.Auth(context.Background(), AuthRequest{Action: ActionSignIn})
			if err != nil {
				t.Fatalf("Auth returned error: %v", err)
			}
			if resp.Username != tt.wantUser {
				t.Errorf("Username = %q, want %q", resp.Username, tt.wantUser)
			}
		})
	}
}

func TestAuth_OmitsEmptyFields(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var raw map[string]any
		decodeBody(t, r, &raw)
		if raw["action"] != "verify" || raw["otp"] != "123456" {
			t.Errorf("unexpected body %v", raw)
		}
		if _, ok := raw["password"]; ok {
			t.Error("password should be omitted from verify")
		}
	})

	if _, err := c.Auth(context.Background(), AuthRequest{Action: ActionVerify, Email: "a@b.co", OTP: "123456"}); err != nil {
		t.Fatalf("Auth returned error: %v", err)
	}
}

func TestDownload(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/media/out.mp3" {
			io.WriteString(w, "ID3audio")
			return
		}
		http.NotFound(w, r)
	})

	var buf bytes.Buffer
	n, err := c.Download(context.Background(), "/media/out.mp3", &buf)
	if err != nil {
		t.Fatalf("Download returned error: %v", err)
	}
	if n != 8 || buf.String() != "ID3audio" {
		t.Errorf("Download wrote %d bytes %q", n, buf.String())
	}

	_, err = c.Download(context.Background(), "/missing", &buf)
	if !pErrors.Is(err, pErrors.KindRejected) {
		t.Errorf("expected rejection for missing file, got %v", err)
	}
}

func TestResolve(t *testing.T) {
	c, err := NewClient("https://darkai.example.com/app", time.Second)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if got := c.Resolve("api/chat/"); got != "https://darkai.example.com/app/api/chat/" {
		t.Errorf("Resolve = %q", got)
	}
	if got := c.BaseURL(); got != "https://darkai.example.com/app/" {
		t.Errorf("BaseURL = %q", got)
	}
}
