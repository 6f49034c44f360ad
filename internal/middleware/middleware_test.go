package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"internship_admin/internal/controller"
	"internship_admin/internal/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
}

func TestRequestIDMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	var seen string
	r.GET("/", func(c *gin.Context) {
		seen = logger.GetRequestID(c.Request.Context())
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, w.Header().Get(HeaderRequestID))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", seen)
}

func TestConfirmationMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(ConfirmationMiddleware())
	var answer bool
	r.DELETE("/x", func(c *gin.Context) {
		answer = controller.ContextConfirmer{}.Confirm(c.Request.Context(), "Delete this student?")
		c.Status(http.StatusOK)
	})

	cases := []struct {
		name   string
		target string
		header string
		want   bool
	}{
		{"none", "/x", "", false},
		{"query", "/x?confirm=true", "", true},
		{"query false", "/x?confirm=false", "true", false},
		{"header", "/x", "1", true},
		{"garbage", "/x?confirm=maybe", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodDelete, tc.target, nil)
			if tc.header != "" {
				req.Header.Set(HeaderConfirm, tc.header)
			}
			r.ServeHTTP(httptest.NewRecorder(), req)
			assert.Equal(t, tc.want, answer)
		})
	}
	assert.False(t, controller.ContextConfirmer{}.Confirm(context.Background(), ""))
}

func TestCORSMiddleware_Preflight(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"http://admin.local"}))
	called := false
	r.PUT("/admin/students/1", func(c *gin.Context) {
		called = true
		c.Status(http.StatusOK)
	})
	r.OPTIONS("/admin/students/1", func(c *gin.Context) { called = true })

	req := httptest.NewRequest(http.MethodOptions, "/admin/students/1", nil)
	req.Header.Set("Origin", "http://admin.local")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "http://admin.local", w.Header().Get("Access-Control-Allow-Origin"))
	assert.False(t, called)

	req = httptest.NewRequest(http.MethodPut, "/admin/students/1", nil)
	req.Header.Set("Origin", "http://evil.local")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.True(t, called)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
