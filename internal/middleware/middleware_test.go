package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSession struct {
	authenticated bool
	logouts       int
	allowed       map[string]bool
}

func (f *fakeSession) IsAuthenticated() bool { return f.authenticated }
func (f *fakeSession) Can(perm string) bool  { return f.allowed[perm] }

func (f *fakeSession) Logout() {
	f.logouts++
	f.authenticated = false
}

func init() {
	gin.SetMode(gin.TestMode)
}

func guardedRouter(s *fakeSession) *gin.Engine {
	r := gin.New()
	ok := func(c *gin.Context) { c.String(http.StatusOK, "ok") }
	r.GET("/compte", RequireSession(s), ok)
	r.GET("/api/auth/me", RequireSession(s), ok)
	r.GET("/api/admin", RequireSession(s), RequirePermission(s, "admin"), ok)
	return r
}

func TestRequireSession_Authenticated(t *testing.T) {
	s := &fakeSession{authenticated: true}
	w := httptest.NewRecorder()

	guardedRouter(s).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/compte", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, s.logouts)
}

func TestRequireSession_RedirectsToLogin(t *testing.T) {
	s := &fakeSession{}
	w := httptest.NewRecorder()

	guardedRouter(s).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/compte?onglet=commandes", nil))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login?returnUrl=%2Fcompte%3Fonglet%3Dcommandes", w.Header().Get("Location"))
	assert.Equal(t, 1, s.logouts)
}

func TestRequireSession_APIGetsJSON(t *testing.T) {
	s := &fakeSession{}
	w := httptest.NewRecorder()

	guardedRouter(s).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Non authentifié","redirect":"/login?returnUrl=%2Fapi%2Fauth%2Fme"}`, w.Body.String())
	assert.Equal(t, 1, s.logouts)
}

func TestRequirePermission(t *testing.T) {
	s := &fakeSession{authenticated: true, allowed: map[string]bool{"nav": true}}
	w := httptest.NewRecorder()
	guardedRouter(s).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/admin", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)

	s.allowed["admin"] = true
	w = httptest.NewRecorder()
	guardedRouter(s).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/admin", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := w.Header().Get(RequestIDHeader)
	require.NotEmpty(t, generated)
	assert.Equal(t, generated, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "3f1c6a52-8a2e-4d7b-9a43-2b6f0f1d9c11")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "3f1c6a52-8a2e-4d7b-9a43-2b6f0f1d9c11", w.Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "pas-un-uuid")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.NotEqual(t, "pas-un-uuid", w.Header().Get(RequestIDHeader))
}

func TestOriginAllowed(t *testing.T) {
	check := OriginAllowed([]string{"http://localhost:4200"})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.True(t, check(req))

	req.Header.Set("Origin", "http://localhost:4200")
	assert.True(t, check(req))

	req.Header.Set("Origin", "http://evil.test")
	assert.False(t, check(req))

	assert.True(t, OriginAllowed(nil)(req))
	assert.True(t, OriginAllowed([]string{"*"})(req))
}

func TestCORS_Preflight(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"http://localhost:4200"}))
	r.GET("/api/cart", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/api/cart", nil)
	req.Header.Set("Origin", "http://localhost:4200")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:4200", w.Header().Get("Access-Control-Allow-Origin"))
}
