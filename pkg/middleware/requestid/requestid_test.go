package requestid

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func idRouter(capture *string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())
	r.GET("/", func(c *gin.Context) {
		*capture = Value(c)
		c.Status(http.StatusOK)
	})
	return r
}

func TestMiddlewareGeneratesID(t *testing.T) {
	var captured string
	r := idRouter(&captured)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotEmpty(t, captured)
	assert.Equal(t, captured, w.Header().Get("X-Request-ID"))
	_, err := uuid.Parse(captured)
	assert.NoError(t, err)
}

func TestMiddlewareHonorsIncomingID(t *testing.T) {
	var captured string
	r := idRouter(&captured)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "frontend-retry-7")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "frontend-retry-7", captured)
	assert.Equal(t, "frontend-retry-7", w.Header().Get("X-Request-ID"))
}
