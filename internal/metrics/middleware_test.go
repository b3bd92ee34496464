package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_LabelsByRoutePattern(t *testing.T) {
	router := chi.NewRouter()
	router.Use(Middleware)
	router.Get("/challenges/{challengeID}/flag", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// Distinct challenge ids must collapse into one label value
	for _, path := range []string{"/challenges/net-1/flag", "/challenges/net-2/flag"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("GET", path, nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	got := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/challenges/{challengeID}/flag", "200"))
	assert.Equal(t, float64(2), got)

	perID := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/challenges/net-1/flag", "200"))
	assert.Zero(t, perID, "raw paths must not appear as label values")
}

func TestRoutePattern_FallbackOutsideRouter(t *testing.T) {
	req := httptest.NewRequest("GET", "/anything", nil)
	assert.Equal(t, "unmatched", routePattern(req))
}
