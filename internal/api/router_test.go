package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/jengzang/mapmaker-go/internal/handler"
	"github.com/jengzang/mapmaker-go/internal/heatmap"
	"github.com/jengzang/mapmaker-go/internal/models"
	"github.com/jengzang/mapmaker-go/internal/oracle"
	"github.com/jengzang/mapmaker-go/internal/routing"
	"github.com/jengzang/mapmaker-go/internal/service"
)

type emptyStore struct{}

func (emptyStore) ListByType(context.Context, string) ([]models.PointOfInterest, error) { return nil, nil }
func (emptyStore) ListAll(context.Context) ([]models.PointOfInterest, error)            { return nil, nil }
func (emptyStore) CountByType(context.Context, string) (int64, error)                  { return 0, nil }

func newTestRouter(requireAuth bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	routes := service.NewRouteService(routing.NewPlanner(oracle.StraightLine{}, routing.Options{}, nil), "local")
	heat := service.NewHeatmapService(emptyStore{}, nil, heatmap.DefaultSmoothedGrid(), nil)
	return SetupRouter(Options{RequireAuth: requireAuth, JWTSecret: "s"}, Handlers{
		Route:   handler.NewRouteHandler(routes, nil),
		Heatmap: handler.NewHeatmapHandler(heat, nil),
	})
}

func get(r http.Handler, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestRouterEndpoints(t *testing.T) {
	r := newTestRouter(false)

	assert.Equal(t, http.StatusOK, get(r, "/health").Code)
	assert.Equal(t, http.StatusOK, get(r, "/metrics").Code)

	w := get(r, "/api/v1/routing/status")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"local"`)

	w = get(r, "/api/v1/thematic-route?points=55.19,30.2;55.2,30.22&profile=foot")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"LineString"`)

	w = get(r, "/api/v1/thematic-route?points=NaN,30.2%3B55.2,30.22&profile=foot")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"invalid_request"`)

	w = get(r, "/api/v1/heatmap-data?type=restaurant")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"noData":true`)

	w = get(r, "/api/v1/heatmap/all")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"FeatureCollection"`)
}

func TestRouterRequiresAuth(t *testing.T) {
	r := newTestRouter(true)

	assert.Equal(t, http.StatusOK, get(r, "/health").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "/api/v1/routing/status").Code)
}
