package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordOrderPlaced(t *testing.T) {
	// Arrange
	before := testutil.ToFloat64(ordersPlacedTotal)

	// Act
	RecordOrderPlaced(90.00)
	RecordOrderPlaced(12.50)

	// Assert
	assert.InDelta(t, before+2, testutil.ToFloat64(ordersPlacedTotal), 0.001)
}

func TestMiddleware(t *testing.T) {
	t.Run("Counts Requests By Status And Path Pattern", func(t *testing.T) {
		// Arrange
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/medicines/42", nil)
		req.SetPathValue("id", "42")
		recorder := httptest.NewRecorder()

		counter := httpRequestsTotal.WithLabelValues("418", http.MethodGet, "/api/v1/medicines/{id}")
		before := testutil.ToFloat64(counter)

		// Act
		Middleware(next).ServeHTTP(recorder, req)

		// Assert
		assert.Equal(t, http.StatusTeapot, recorder.Code)
		assert.InDelta(t, before+1, testutil.ToFloat64(counter), 0.001)
	})

	t.Run("Unparameterized Path Is Kept As Is", func(t *testing.T) {
		// Arrange
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		recorder := httptest.NewRecorder()

		counter := httpRequestsTotal.WithLabelValues("200", http.MethodGet, "/health")
		before := testutil.ToFloat64(counter)

		// Act
		Middleware(next).ServeHTTP(recorder, req)

		// Assert
		assert.InDelta(t, before+1, testutil.ToFloat64(counter), 0.001)
	})
}
