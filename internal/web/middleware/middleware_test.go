package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JonMunkholm/anonhelper/internal/config"
	"github.com/JonMunkholm/anonhelper/internal/logging"
)

func echoIP(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte(ClientIP(r)))
}

func TestTrustedRealIP(t *testing.T) {
	tests := []struct {
		name     string
		trusted  []string
		remote   string
		headers  map[string]string
		expected string
	}{
		{
			name:     "no trusted proxies ignores headers",
			remote:   "203.0.113.5:4000",
			headers:  map[string]string{"X-Real-IP": "1.2.3.4"},
			expected: "203.0.113.5",
		},
		{
			name:     "trusted proxy with X-Real-IP",
			trusted:  []string{"10.0.0.0/8"},
			remote:   "10.1.2.3:4000",
			headers:  map[string]string{"X-Real-IP": "198.51.100.7"},
			expected: "198.51.100.7",
		},
		{
			name:     "trusted proxy with X-Forwarded-For chain",
			trusted:  []string{"10.0.0.0/8"},
			remote:   "10.1.2.3:4000",
			headers:  map[string]string{"X-Forwarded-For": "198.51.100.8, 10.1.1.1"},
			expected: "198.51.100.8",
		},
		{
			name:     "untrusted source keeps remote address",
			trusted:  []string{"10.0.0.0/8"},
			remote:   "203.0.113.9:4000",
			headers:  map[string]string{"X-Real-IP": "1.2.3.4"},
			expected: "203.0.113.9",
		},
		{
			name:     "single IP entry",
			trusted:  []string{"127.0.0.1"},
			remote:   "127.0.0.1:5555",
			headers:  map[string]string{"X-Real-IP": "198.51.100.10"},
			expected: "198.51.100.10",
		},
		{
			name:     "invalid header value ignored",
			trusted:  []string{"10.0.0.0/8"},
			remote:   "10.1.2.3:4000",
			headers:  map[string]string{"X-Real-IP": "not-an-ip"},
			expected: "10.1.2.3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := TrustedRealIP(tt.trusted)(http.HandlerFunc(echoIP))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if got := rec.Body.String(); got != tt.expected {
				t.Errorf("client IP = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestAPIKeyAuth(t *testing.T) {
	cfg := &config.SecurityConfig{RequireAPIKey: true, APIKeys: []string{"k1", "k2"}}
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })
	h := APIKeyAuth(cfg)(ok)

	tests := []struct {
		name   string
		method string
		header map[string]string
		want   int
	}{
		{"missing key", http.MethodGet, nil, http.StatusUnauthorized},
		{"wrong key", http.MethodGet, map[string]string{"X-API-Key": "nope"}, http.StatusForbidden},
		{"header key", http.MethodGet, map[string]string{"X-API-Key": "k2"}, http.StatusNoContent},
		{"bearer token", http.MethodPost, map[string]string{"Authorization": "Bearer k1"}, http.StatusNoContent},
		{"preflight passes", http.MethodOptions, nil, http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/catalog", nil)
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}

	open := APIKeyAuth(&config.SecurityConfig{})(ok)
	rec := httptest.NewRecorder()
	open.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/catalog", nil))
	if rec.Code != http.StatusNoContent {
		t.Errorf("auth disabled: status = %d, want 204", rec.Code)
	}
}

func TestIsValidAPIKey(t *testing.T) {
	if isValidAPIKey("x", nil) {
		t.Error("no configured keys should reject everything")
	}
	if !isValidAPIKey("b", []string{"a", "b"}) {
		t.Error("second key should match")
	}
	if isValidAPIKey("", []string{"a"}) {
		t.Error("empty key should not match")
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(logging.New(&buf, "info", "text"))
	t.Cleanup(func() { slog.SetDefault(prev) })

	h := Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("short and stout"))
	}))

	req := httptest.NewRequest(http.MethodPost, "/classify", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	req.Header.Set("User-Agent", "tester")
	h.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	for _, want := range []string{"level=WARN", "status=418", "bytes=15", "path=/classify", "ip=192.0.2.1", "user_agent=tester"} {
		if !strings.Contains(out, want) {
			t.Errorf("log %q missing %s", out, want)
		}
	}
}
