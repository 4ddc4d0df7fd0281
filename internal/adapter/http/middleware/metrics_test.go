package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestHTTPMetrics_CountsByRoute(t *testing.T) {
	m := NewHTTPMetrics(prometheus.NewRegistry())

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/api/v1/claims/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/api/v1/claims/a", "/api/v1/claims/b", "/nowhere"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("/api/v1/claims/:id", "GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("unmatched", "GET", "404")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.duration))
}
