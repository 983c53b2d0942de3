package analysis

import (
	"context"
	"errors"
	"net/http"

	"github.com/2beens/footsies/internal/auth"
	"github.com/2beens/footsies/internal/profile"
	"github.com/2beens/footsies/internal/skills"
	"github.com/2beens/footsies/internal/telemetry/tracing"
	"github.com/2beens/footsies/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=analysis_test

type analysisService interface {
	Report(ctx context.Context, userID string) (*Report, error)
	SkillReport(ctx context.Context, userID, skillName string) (*SkillReport, error)
}

type Handler struct {
	service analysisService
}

func NewHandler(service analysisService) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/analysis", h.HandleReport).Methods("GET", "OPTIONS").Name("analysis-report")
	router.HandleFunc("/analysis/skills/{skill}", h.HandleSkillReport).Methods("GET", "OPTIONS").Name("analysis-skill")
}

func (h *Handler) HandleReport(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.analysis.report")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	report, err := h.service.Report(ctx, userID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			http.Error(w, "profile not found", http.StatusNotFound)
			return
		}
		log.Errorf("analysis report [%s]: %s", userID, err)
		http.Error(w, "could not load analysis", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, report, http.StatusOK)
}

func (h *Handler) HandleSkillReport(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.analysis.skill_report")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	report, err := h.service.SkillReport(ctx, userID, mux.Vars(r)["skill"])
	if err != nil {
		if errors.Is(err, skills.ErrUnknownSkill) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		log.Errorf("analysis skill report [%s]: %s", userID, err)
		http.Error(w, "could not load analysis", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, report, http.StatusOK)
}
