package middlewares

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unrolled/render"

	"github.com/Rakhulsr/go-storefront/app/helpers"
	"github.com/Rakhulsr/go-storefront/app/testutil"
	"github.com/Rakhulsr/go-storefront/app/utils/metrics"
)

type stubAuth map[string]*helpers.Identity

func (s stubAuth) Authenticate(token string) (*helpers.Identity, error) {
	if identity, ok := s[token]; ok {
		return identity, nil
	}
	return nil, errors.New("rejected")
}

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body helpers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error
}

func TestBearerToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, "", BearerToken(req))

	req.Header.Set("Authorization", "Bearer abc.def")
	assert.Equal(t, "abc.def", BearerToken(req))

	req.Header.Set("Authorization", "bearer   xyz ")
	assert.Equal(t, "xyz", BearerToken(req))

	req.Header.Set("Authorization", "Basic Zm9v")
	assert.Equal(t, "", BearerToken(req))
}

func TestRequireAdmin(t *testing.T) {
	auth := stubAuth{
		"admin-token":  {ID: 1, Username: "web", Role: "admin"},
		"viewer-token": {ID: 2, Username: "guest", Role: "viewer"},
	}

	var seen *helpers.Identity
	handler := RequireAdmin(auth, render.New())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = helpers.IdentityFrom(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	cases := []struct {
		header string
		status int
		msg    string
	}{
		{"", http.StatusUnauthorized, "No token provided"},
		{"Bearer nope", http.StatusUnauthorized, "Invalid token"},
		{"Bearer viewer-token", http.StatusUnauthorized, "Admin access required"},
		{"Bearer admin-token", http.StatusNoContent, ""},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodPost, "/api/products", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, tc.status, rec.Code, tc.header)
		if tc.msg != "" {
			assert.Equal(t, tc.msg, decodeError(t, rec))
		}
	}
	require.NotNil(t, seen)
	assert.Equal(t, "web", seen.Username)
}

func TestCORS(t *testing.T) {
	handler := CORS("https://shop.example, https://admin.example/")(http.HandlerFunc(okHandler))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://admin.example")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, "https://admin.example", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/api/products", nil)
	req.Header.Set("Origin", "https://shop.example")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestCORSWildcard(t *testing.T) {
	handler := CORS("*")(http.HandlerFunc(okHandler))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestLoginRateLimiter(t *testing.T) {
	log, hook := testutil.NewLogger()
	limiter := NewLoginRateLimiter(2, 0, render.New(), log)
	handler := limiter.Handler(http.HandlerFunc(okHandler))

	send := func(addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1:1111"))
	assert.Equal(t, http.StatusOK, send("10.0.0.1:2222"))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1:3333"))
	assert.Equal(t, http.StatusOK, send("10.0.0.2:1111"))
	assert.NotNil(t, hook.LastEntry())
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.1:5555"
	assert.Equal(t, "192.0.2.1", ClientIP(req, 0))

	// spoofed first hop, real client appended by the single trusted proxy
	req.Header.Set("X-Forwarded-For", "198.51.100.9, 203.0.113.7")
	assert.Equal(t, "192.0.2.1", ClientIP(req, 0))
	assert.Equal(t, "203.0.113.7", ClientIP(req, 1))
	assert.Equal(t, "198.51.100.9", ClientIP(req, 2))
	assert.Equal(t, "198.51.100.9", ClientIP(req, 5))
}

func TestLoginRateLimiterIgnoresSpoofedForwardedFor(t *testing.T) {
	log, _ := testutil.NewLogger()
	handler := NewLoginRateLimiter(1, 1, render.New(), log).Handler(http.HandlerFunc(okHandler))

	send := func(forwarded string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		req.RemoteAddr = "10.0.0.254:443"
		req.Header.Set("X-Forwarded-For", forwarded)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, send("1.1.1.1, 203.0.113.7"))
	assert.Equal(t, http.StatusTooManyRequests, send("2.2.2.2, 203.0.113.7"))
	assert.Equal(t, http.StatusOK, send("203.0.113.8"))
}

func TestRequestLoggerUsesRouteTemplate(t *testing.T) {
	log, hook := testutil.NewLogger()
	m := metrics.New()

	router := mux.NewRouter()
	router.Use(RequestLogger(log, m))
	router.HandleFunc("/api/products/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/products/9", nil))

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, http.StatusNotFound, entry.Data["status"])
	assert.Equal(t, "/api/products/9", entry.Data["path"])

	body := httptest.NewRecorder()
	m.Handler().ServeHTTP(body, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, body.Body.String(), `route="/api/products/{id}"`)
}
