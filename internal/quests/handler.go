package quests

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/2beens/footsies/internal/auth"
	"github.com/2beens/footsies/internal/profile"
	"github.com/2beens/footsies/internal/skills"
	"github.com/2beens/footsies/internal/telemetry/tracing"
	"github.com/2beens/footsies/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=quests_test

type questsService interface {
	Board(ctx context.Context, userID string) (*Board, error)
	Modules(ctx context.Context, userID, skillName string) ([]Module, error)
	CompleteQuest(ctx context.Context, userID string, questID int) (*Completion, error)
	CompleteModule(ctx context.Context, userID, skillName string, moduleID int) (*Completion, error)
}

type Handler struct {
	service questsService
}

func NewHandler(service questsService) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/quests", h.HandleBoard).Methods("GET", "OPTIONS").Name("quests-board")
	router.HandleFunc("/quests/{id}/complete", h.HandleCompleteQuest).Methods("POST", "OPTIONS").Name("quests-complete")
	router.HandleFunc("/modules/{skill}", h.HandleModules).Methods("GET", "OPTIONS").Name("modules-list")
	router.HandleFunc("/modules/{skill}/{id}/complete", h.HandleCompleteModule).Methods("POST", "OPTIONS").Name("modules-complete")
}

func (h *Handler) HandleBoard(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.quests.board")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	board, err := h.service.Board(ctx, userID)
	if err != nil {
		writeError(w, userID, "quest board", "could not load quests", err)
		return
	}

	pkg.WriteJSON(w, board, http.StatusOK)
}

func (h *Handler) HandleModules(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.quests.modules")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	modules, err := h.service.Modules(ctx, userID, mux.Vars(r)["skill"])
	if err != nil {
		writeError(w, userID, "training modules", "could not load modules", err)
		return
	}

	pkg.WriteJSON(w, modules, http.StatusOK)
}

func (h *Handler) HandleCompleteQuest(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.quests.complete_quest")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	questID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid quest id", http.StatusBadRequest)
		return
	}

	completion, err := h.service.CompleteQuest(ctx, userID, questID)
	if err != nil {
		writeError(w, userID, "complete quest", "could not save progress", err)
		return
	}

	pkg.WriteJSON(w, completion, http.StatusOK)
}

func (h *Handler) HandleCompleteModule(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.quests.complete_module")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	moduleID, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, "invalid module id", http.StatusBadRequest)
		return
	}

	completion, err := h.service.CompleteModule(ctx, userID, vars["skill"], moduleID)
	if err != nil {
		writeError(w, userID, "complete module", "could not save progress", err)
		return
	}

	pkg.WriteJSON(w, completion, http.StatusOK)
}

func writeError(w http.ResponseWriter, userID, op, failure string, err error) {
	switch {
	case errors.Is(err, ErrModuleLocked):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, ErrQuestNotFound), errors.Is(err, skills.ErrUnknownSkill):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, profile.ErrProfileNotFound):
		http.Error(w, "profile not found", http.StatusNotFound)
	default:
		log.Errorf("%s [%s]: %s", op, userID, err)
		http.Error(w, failure, http.StatusInternalServerError)
	}
}
