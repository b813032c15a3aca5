package router

import (
	"net/http/httputil"
	"net/url"

	"ad-widget/internal/delivery/handler"
	"ad-widget/internal/infrastructure/display"
	"ad-widget/internal/infrastructure/metrics"
	"ad-widget/internal/service"
	"ad-widget/pkg/logger"

	"github.com/go-chi/chi/v5"
)

// SetupWidgetRoutes mounts the widget page and its actions. Image requests
// are proxied to backend when it is set.
func SetupWidgetRoutes(widgetRouter *chi.Mux, adService service.AdDisplayService, page display.Display, loggers *logger.Loggers, metrics *metrics.HandlerMetrics, backend *url.URL) {
	widgetHandler := handler.NewWidgetHandler(adService, page, loggers, metrics)

	widgetRouter.Get("/", widgetHandler.Page)
	widgetRouter.Get("/widget/state", widgetHandler.State)
	widgetRouter.Post("/widget/dislike/{id}", widgetHandler.Dislike)
	widgetRouter.Post("/widget/reload", widgetHandler.Reload)

	if backend != nil {
		widgetRouter.Handle("/static/images/*", httputil.NewSingleHostReverseProxy(backend))
	}
}
