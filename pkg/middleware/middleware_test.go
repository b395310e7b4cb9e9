package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"tripplanner/pkg/utils"
)

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(TraceIDMiddleware())
	handlers = append(handlers, func(c *gin.Context) {
		s, _ := SessionFrom(c)
		c.String(http.StatusOK, s.Email)
	})
	r.GET("/private", handlers...)
	return r
}

func TestJWTAuthMiddleware(t *testing.T) {
	issuer := utils.NewTokenIssuer("secret", time.Hour)
	r := newEngine(JWTAuthMiddleware(issuer))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/private", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("missing header: code = %d", w.Code)
	}
	if w.Header().Get(TraceHeader) == "" {
		t.Fatal("trace id header not set")
	}

	token, _, err := issuer.CreateToken("sara@example.com", "Sara")
	if err != nil {
		t.Fatalf("CreateToken: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK || w.Body.String() != "sara@example.com" {
		t.Fatalf("valid token: code = %d body = %q", w.Code, w.Body.String())
	}
}

func TestRateLimiter(t *testing.T) {
	r := newEngine(NewRateLimiter(1, 2).Limit())
	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/private", nil))
		codes = append(codes, w.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("codes = %v, want [200 200 429]", codes)
	}
}
