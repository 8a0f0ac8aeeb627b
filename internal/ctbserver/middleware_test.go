package ctbserver

import (
	"bytes"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestRequestIDMiddleware_GeneratesWhenAbsent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(requestIDMiddleware(requestIDHeaderKey))
	r.GET("/healthz", func(c *gin.Context) {
		if c.GetString(requestIDHeaderKey) == "" {
			t.Fatalf("request id missing from context")
		}
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Header().Get(requestIDHeaderKey) == "" {
		t.Fatalf("request id missing from response header")
	}
}

func TestRequestIDMiddleware_KeepsCallerProvidedID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(requestIDMiddleware(requestIDHeaderKey))
	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeaderKey, "rid-42")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get(requestIDHeaderKey); got != "rid-42" {
		t.Fatalf("request id=%q", got)
	}
}

func TestRequestLogger_IncludesDispatchFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var out bytes.Buffer
	l := log.New(&out, "", 0)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(requestIDHeaderKey, "rid-1")
		c.Set(ctxPostType, "message")
		c.Set(ctxMatchKey, "group")
		c.Next()
	})
	r.Use(requestLogger(l, false, requestIDHeaderKey))
	r.POST("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	line := out.String()
	for _, want := range []string{"request_id=rid-1", "post_type=message", "match_key=group", "POST /"} {
		if !strings.Contains(line, want) {
			t.Fatalf("missing %q in log line %q", want, line)
		}
	}
}
