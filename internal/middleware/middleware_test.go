package middleware

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fencyatf/Products-Backend/internal/account"
	"github.com/fencyatf/Products-Backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubVerifier accepts exactly one token.
type stubVerifier struct {
	valid string
	email string
}

func (s stubVerifier) Verify(token string) (*util.Claims, error) {
	switch token {
	case "":
		return nil, account.ErrTokenMissing
	case s.valid:
		return &util.Claims{User: s.email}, nil
	default:
		return nil, fmt.Errorf("%w: bad signature", account.ErrTokenInvalid)
	}
}

func newAuthEngine() *gin.Engine {
	r := gin.New()
	r.GET("/private", AuthMiddleware(stubVerifier{valid: "good", email: "a@x.com"}), func(c *gin.Context) {
		user, _ := CurrentUser(c)
		c.String(http.StatusOK, user)
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	r := newAuthEngine()

	tests := []struct {
		name   string
		header string
		query  string
		status int
		body   string
	}{
		{"bearer header", "Bearer good", "", http.StatusOK, "a@x.com"},
		{"lowercase scheme", "bearer good", "", http.StatusOK, "a@x.com"},
		{"query fallback", "", "good", http.StatusOK, "a@x.com"},
		{"missing", "", "", http.StatusUnauthorized, "Token not provided"},
		{"wrong scheme", "Basic good", "", http.StatusUnauthorized, "Token not provided"},
		{"invalid", "Bearer forged", "", http.StatusForbidden, "Invalid token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := "/private"
			if tt.query != "" {
				target += "?token=" + tt.query
			}
			req := httptest.NewRequest(http.MethodGet, target, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.body)
		})
	}
}

func TestCurrentUser_Unset(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	_, ok := CurrentUser(c)
	assert.False(t, ok)
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	r := gin.New()
	r.Use(RequestLogger(log))
	r.GET("/items/:id", func(c *gin.Context) {
		c.String(http.StatusOK, RequestID(c))
	})

	req := httptest.NewRequest(http.MethodGet, "/items/7", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	reqID := w.Header().Get(RequestIDHeader)
	_, err := uuid.Parse(reqID)
	require.NoError(t, err)
	assert.Equal(t, reqID, w.Body.String())

	out := buf.String()
	for _, s := range []string{"level=INFO", "request_id=" + reqID, "method=GET", "path=/items/:id", "status=200"} {
		assert.True(t, strings.Contains(out, s), "expected %q in %s", s, out)
	}
}

func TestRequestLogger_ReusesIncomingID(t *testing.T) {
	log := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	r := gin.New()
	r.Use(RequestLogger(log))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	incoming := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, incoming)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, incoming, w.Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "not-a-uuid")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.NotEqual(t, "not-a-uuid", w.Header().Get(RequestIDHeader))
}

func TestRequestLogger_WarnsOnClientErrors(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	r := gin.New()
	r.Use(RequestLogger(log))
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Contains(t, buf.String(), "level=WARN")
}

func TestCORS_AllowAll(t *testing.T) {
	r := gin.New()
	r.Use(CORS("*"))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://anywhere.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_List(t *testing.T) {
	r := gin.New()
	r.Use(CORS("https://a.example.com, https://b.example.com"))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, origin := range []string{"https://a.example.com", "https://b.example.com"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", origin)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, origin, w.Header().Get("Access-Control-Allow-Origin"))
	}
}
