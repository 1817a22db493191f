package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveRecommendationCountsByStateAndOutcome(t *testing.T) {
	before := testutil.ToFloat64(recommendationsTotal.WithLabelValues("HIGH", "ok"))
	ObserveRecommendation("HIGH", "ok", 2, 3*time.Millisecond)
	after := testutil.ToFloat64(recommendationsTotal.WithLabelValues("HIGH", "ok"))
	if after-before != 1 {
		t.Fatalf("expected counter to increase by 1, got %v", after-before)
	}
}

func TestHandlerRendersPrometheusText(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ObserveHTTPRequest(http.MethodGet, "/api/v1/health", http.StatusOK)

	r := gin.New()
	r.GET("/metrics", Handler())

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	body := resp.Body.String()
	for _, name := range []string{"recommendations_total", "http_requests_total"} {
		if !strings.Contains(body, name) {
			t.Fatalf("expected %s in metrics output", name)
		}
	}
}
