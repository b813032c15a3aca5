package handler

import (
	"context"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"ad-widget/internal/infrastructure/display"
	"ad-widget/internal/infrastructure/metrics"
	"ad-widget/internal/service"
	"ad-widget/pkg/logger"
	"ad-widget/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Recommended for you</title>
{{if .Refresh}}<meta http-equiv="refresh" content="1">{{end}}
<style>
.ad-card { margin-bottom: 1rem; opacity: 1; transition: opacity .4s ease, transform .4s ease; }
.ad-card img { width: 100%; height: 180px; object-fit: cover; }
.ad-card.fade-out { opacity: 0; transform: scale(.96); }
</style>
</head>
<body>
<div id="spinner" style="display: {{if .Loading}}block{{else}}none{{end}}">Loading ads…</div>
<div class="row" id="ads-container">{{.Cards}}</div>
</body>
</html>
`))

type pageData struct {
	Loading bool
	Refresh bool
	Cards   template.HTML
}

type stateResponse struct {
	State   service.State `json:"state"`
	Loading bool          `json:"loading"`
	Cards   []int64       `json:"cards"`
}

type WidgetHandler struct {
	service service.AdDisplayService
	display display.Display
	logger  *logger.Loggers
	metrics *metrics.HandlerMetrics
	tracer  trace.Tracer
}

func NewWidgetHandler(service service.AdDisplayService, display display.Display, logger *logger.Loggers, metrics *metrics.HandlerMetrics) *WidgetHandler {
	tracer := otel.Tracer("ad-widget/handler")
	return &WidgetHandler{
		service: service,
		display: display,
		logger:  logger,
		metrics: metrics,
		tracer:  tracer,
	}
}

func (h *WidgetHandler) observe(method, endpoint string, startTime time.Time, status *string) {
	duration := time.Since(startTime).Seconds()
	h.metrics.RequestCount.WithLabelValues(method, endpoint, *status).Inc()
	h.metrics.RequestDuration.WithLabelValues(method, endpoint, *status).Observe(duration)
}

// Page renders the widget as it currently is. While a load or a fade is in
// progress the page asks the browser to refresh itself.
func (h *WidgetHandler) Page(w http.ResponseWriter, r *http.Request) {
	_, span := h.tracer.Start(r.Context(), "Page")
	defer span.End()

	status := "success"
	defer h.observe("GET", "/", time.Now(), &status)

	snap := h.display.Snapshot()

	refresh := snap.Loading
	for _, c := range snap.Cards {
		if c.Fading {
			refresh = true
			break
		}
	}

	span.SetAttributes(attribute.Int("ads.rendered", len(snap.Cards)))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, pageData{
		Loading: snap.Loading,
		Refresh: refresh,
		Cards:   template.HTML(snap.Markup),
	}); err != nil {
		status = "error"
		span.RecordError(err)
		h.logger.ErrorLogger.Error("failed to render page", utils.Err(err))
	}
}

func (h *WidgetHandler) State(w http.ResponseWriter, r *http.Request) {
	_, span := h.tracer.Start(r.Context(), "State")
	defer span.End()

	status := "success"
	defer h.observe("GET", "/widget/state", time.Now(), &status)

	snap := h.display.Snapshot()

	ids := make([]int64, 0, len(snap.Cards))
	for _, c := range snap.Cards {
		ids = append(ids, c.Ad.ID)
	}

	span.SetAttributes(attribute.Int("ads.rendered", len(ids)))

	utils.RespondWithJSON(w, http.StatusOK, stateResponse{
		State:   h.service.State(),
		Loading: snap.Loading,
		Cards:   ids,
	})
}

// Dislike starts the dismiss action bound to the card and redirects back to
// the page. The action outlives the request. Only an unparseable id is
// answered with an error.
func (h *WidgetHandler) Dislike(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "Dislike")
	defer span.End()

	status := "success"
	defer h.observe("POST", "/widget/dislike/{id}", time.Now(), &status)

	idParam := chi.URLParam(r, "id")
	if idParam == "" {
		status = "error"
		utils.RespondWithErrorJSON(w, http.StatusBadRequest, "missing id parameter")
		return
	}

	id, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil {
		status = "error"
		utils.RespondWithErrorJSON(w, http.StatusBadRequest, "invalid id parameter")
		return
	}

	span.SetAttributes(attribute.Int64("ad.id", id))

	// The page the user clicked may be older than the current render. The
	// dislike is still recorded and the list reloaded.
	dismiss := func(ctx context.Context) error {
		return h.service.Dismiss(ctx, id)
	}
	if card, ok := h.display.Card(id); ok && card.Dismiss != nil {
		dismiss = card.Dismiss
	} else {
		span.SetAttributes(attribute.Bool("ad.stale", true))
	}

	bg := context.WithoutCancel(ctx)
	go func() {
		_ = dismiss(bg)
	}()

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *WidgetHandler) Reload(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "Reload")
	defer span.End()

	status := "success"
	defer h.observe("POST", "/widget/reload", time.Now(), &status)

	bg := context.WithoutCancel(ctx)
	go func() {
		_ = h.service.Load(bg)
	}()

	utils.RespondWithJSON(w, http.StatusAccepted, map[string]string{"message": "reload started"})
}
