package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"clientbook/internal/auth"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuthRouter(t *testing.T) (*gin.Engine, *auth.Verifier) {
	t.Helper()
	v, err := auth.NewVerifier("test-secret", "clientbook", time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	r := gin.New()
	r.Use(AuthMiddleware(v))
	r.GET("/me", func(c *gin.Context) {
		id, ok := Identity(c)
		fromReq, reqOK := auth.FromContext(c.Request.Context())
		if !ok || !reqOK || id != fromReq {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, id.UID)
	})
	return r, v
}

func TestAuthMiddleware(t *testing.T) {
	r, v := newAuthRouter(t)
	good, _ := v.Issue(auth.Identity{UID: "user-1", Email: "a@b.co"})

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"empty bearer", "Bearer ", http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
		{"valid", "Bearer " + good, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tt.want, w.Body.String())
			}
			if tt.want == http.StatusOK && w.Body.String() != "user-1" {
				t.Errorf("body = %q", w.Body.String())
			}
		})
	}
}

func TestRateLimit(t *testing.T) {
	rl := NewRateLimiter(0.001, 2)
	defer rl.Stop()

	r := gin.New()
	r.Use(RateLimit(rl))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	if codes[0] != http.StatusNoContent || codes[1] != http.StatusNoContent || codes[2] != http.StatusTooManyRequests {
		t.Errorf("codes = %v", codes)
	}

	// a different address has its own bucket
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Errorf("second client status = %d", w.Code)
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if got := w.Header().Get(RequestIDHeader); got == "" || got != w.Body.String() {
		t.Errorf("header %q body %q", got, w.Body.String())
	}

	const fixed = "4f1c2d8e-9b7a-4c1e-8f3a-2b6d5e9c0a11"
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, fixed)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Header().Get(RequestIDHeader) != fixed {
		t.Errorf("incoming id not echoed: %q", w.Header().Get(RequestIDHeader))
	}
}
