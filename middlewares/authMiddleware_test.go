package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spotsolve-be/metrics"
	"spotsolve-be/models"
	authUtils "spotsolve-be/utils"
)

const secret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func router() *gin.Engine {
	r := gin.New()
	r.GET("/whoami", AuthMiddleware(secret), func(c *gin.Context) {
		id, role, _ := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"id": id, "role": role})
	})
	r.GET("/admin", AuthMiddleware(secret), RequireRole(models.Admin, "admins only"), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func token(t *testing.T, role models.Role) string {
	t.Helper()
	tok, err := authUtils.GenerateToken("user-1", role, secret, time.Hour)
	require.NoError(t, err)
	return tok
}

func TestAuthMiddlewareBearer(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, models.Citizen))
	w := httptest.NewRecorder()
	router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"user-1","role":"citizen"}`, w.Body.String())
}

func TestAuthMiddlewareCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: token(t, models.Admin)})
	w := httptest.NewRecorder()
	router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"user-1","role":"admin"}`, w.Body.String())
}

func TestAuthMiddlewareRejects(t *testing.T) {
	for name, header := range map[string]string{
		"missing": "",
		"garbage": "Bearer nope",
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			w := httptest.NewRecorder()
			router().ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestRequireRole(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, models.Citizen))
	w := httptest.NewRecorder()
	router().ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, models.Admin))
	w = httptest.NewRecorder()
	router().ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestMetricsAndRequestID(t *testing.T) {
	m := metrics.New()
	r := gin.New()
	r.Use(RequestID(), Metrics(m))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("/ping", "GET", "200")))
}
