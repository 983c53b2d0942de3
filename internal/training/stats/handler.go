package stats

import (
	"context"
	"net/http"

	"github.com/2beens/footsies/internal/auth"
	"github.com/2beens/footsies/internal/telemetry/tracing"
	"github.com/2beens/footsies/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=stats_test

type statsService interface {
	Dashboard(ctx context.Context, userID string) (*Dashboard, error)
	Metrics(ctx context.Context, userID string, r Range) ([]DailyMetrics, error)
}

type Handler struct {
	service statsService
}

func NewHandler(service statsService) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/stats", h.HandleDashboard).Methods("GET", "OPTIONS").Name("stats-dashboard")
	router.HandleFunc("/stats/metrics", h.HandleMetrics).Methods("GET", "OPTIONS").Name("stats-metrics")
}

func (h *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.stats.dashboard")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	dashboard, err := h.service.Dashboard(ctx, userID)
	if err != nil {
		log.Errorf("stats dashboard [%s]: %s", userID, err)
		http.Error(w, "could not load stats", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, dashboard, http.StatusOK)
}

func (h *Handler) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.stats.metrics")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	rng, err := ParseRange(r.URL.Query().Get("range"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rows, err := h.service.Metrics(ctx, userID, rng)
	if err != nil {
		log.Errorf("stats metrics [%s]: %s", userID, err)
		http.Error(w, "could not load metrics", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, rows, http.StatusOK)
}
