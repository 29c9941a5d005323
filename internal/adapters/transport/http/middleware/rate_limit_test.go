package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/repwise/auth-service/internal/adapters/transport/http/middleware"
)

func TestRateLimitPerIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.RateLimitPerIP(1, 2, 100, time.Hour))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	hit := func(addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = addr
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	// burst of 2 allowed, third call limited
	if code := hit("1.2.3.4:1000"); code != http.StatusOK {
		t.Fatalf("first call: %d", code)
	}
	if code := hit("1.2.3.4:1000"); code != http.StatusOK {
		t.Fatalf("second call: %d", code)
	}
	if code := hit("1.2.3.4:1000"); code != http.StatusTooManyRequests {
		t.Fatalf("third call should be limited, got %d", code)
	}

	// another IP has its own budget
	if code := hit("5.6.7.8:1000"); code != http.StatusOK {
		t.Fatalf("other ip: %d", code)
	}
}
