package router

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"ad-widget/internal/infrastructure/display"
	"ad-widget/internal/infrastructure/metrics"
	"ad-widget/internal/render"
	svcMocks "ad-widget/internal/service/mocks"
	"ad-widget/pkg/logger"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupWidgetRoutes_ProxiesImages(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("image:" + r.URL.Path))
	}))
	defer backend.Close()

	backendURL, err := url.Parse(backend.URL)
	require.NoError(t, err)

	loggers, err := logger.New(io.Discard, "info")
	require.NoError(t, err)

	r := chi.NewRouter()
	SetupWidgetRoutes(r, new(svcMocks.MockAdDisplayService), display.NewPage(render.Options{}), loggers,
		metrics.NewHandlerMetrics(prometheus.NewRegistry()), backendURL)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/images/shoes.jpg", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image:/static/images/shoes.jpg", rec.Body.String())

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
