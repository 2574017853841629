package cors

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func corsRouter(origins []string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(New(origins))
	r.POST("/api/register", func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})
	return r
}

func doRequest(r http.Handler, method, origin string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/api/register", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCORSAllowsConfiguredOrigin(t *testing.T) {
	r := corsRouter([]string{"https://reg.example.com"})

	w := doRequest(r, http.MethodPost, "https://reg.example.com")

	assert.Equal(t, "https://reg.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORSIgnoresUnknownOrigin(t *testing.T) {
	r := corsRouter([]string{"https://reg.example.com"})

	w := doRequest(r, http.MethodPost, "https://evil.example.com")

	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORSWildcardWithoutCredentials(t *testing.T) {
	r := corsRouter(nil)

	w := doRequest(r, http.MethodPost, "https://anywhere.example.com")

	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORSPreflight(t *testing.T) {
	r := corsRouter(nil)

	w := doRequest(r, http.MethodOptions, "https://reg.example.com")

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "GET, POST, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "X-Request-ID")
}
