package beverages

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewHandler(NewService(NewMemoryRepo(nil))).RegisterRoutes(router.Group("/api/v1"))
	return router
}

func TestListBeveragesFilters(t *testing.T) {
	router := newTestRouter()

	tests := []struct {
		name      string
		query     string
		wantCode  int
		wantCount int
	}{
		{name: "all", query: "", wantCode: http.StatusOK, wantCount: 20},
		{name: "tired under 3", query: "?mood=tired&max_price=3.00", wantCode: http.StatusOK, wantCount: 2},
		{name: "happy", query: "?mood=Happy", wantCode: http.StatusOK, wantCount: 12},
		{name: "bad mood", query: "?mood=sleepy", wantCode: http.StatusBadRequest},
		{name: "bad price", query: "?max_price=-1", wantCode: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/beverages"+tt.query, nil)
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, req)
			if resp.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d: %s", tt.wantCode, resp.Code, resp.Body.String())
			}
			if tt.wantCode != http.StatusOK {
				return
			}
			var body struct {
				Items []BeverageResponse `json:"items"`
				Count int                `json:"count"`
			}
			if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Count != tt.wantCount || len(body.Items) != tt.wantCount {
				t.Fatalf("expected %d items, got %d", tt.wantCount, body.Count)
			}
		})
	}
}

func TestGetBeverage(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/beverages/10", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var body BeverageResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Name != "Grande Chai Tea Latte" || body.Price != "5.45" || body.Category != "Tea" {
		t.Fatalf("unexpected beverage %+v", body)
	}

	for path, want := range map[string]int{
		"/api/v1/beverages/404": http.StatusNotFound,
		"/api/v1/beverages/abc": http.StatusBadRequest,
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != want {
			t.Fatalf("%s: expected %d, got %d", path, want, resp.Code)
		}
	}
}
