package session

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/2beens/footsies/internal/auth"
	"github.com/2beens/footsies/internal/skills"
	"github.com/2beens/footsies/internal/telemetry/tracing"
	"github.com/2beens/footsies/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=session_test

type sessionTracker interface {
	InitializeSession(userID string, opts Options) error
	Current(userID string) (Accumulator, bool)
}

type sessionPersister interface {
	SaveCurrentSession(ctx context.Context, userID string) SaveResult
	SaveAndEndSession(ctx context.Context, userID string) SaveResult
}

type sessionService interface {
	LogManual(ctx context.Context, userID string, entry ManualEntry) (*Session, error)
	List(ctx context.Context, userID string, limit int) ([]Session, error)
}

type Handler struct {
	tracker   sessionTracker
	persister sessionPersister
	service   sessionService
}

func NewHandler(tracker sessionTracker, persister sessionPersister, service sessionService) *Handler {
	return &Handler{
		tracker:   tracker,
		persister: persister,
		service:   service,
	}
}

func (h *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/sessions/start", h.HandleStart).Methods("POST", "OPTIONS").Name("session-start")
	router.HandleFunc("/sessions/current", h.HandleCurrent).Methods("GET", "OPTIONS").Name("session-current")
	router.HandleFunc("/sessions/save", h.HandleSave).Methods("POST", "OPTIONS").Name("session-save")
	router.HandleFunc("/sessions/end", h.HandleEnd).Methods("POST", "OPTIONS").Name("session-end")
	router.HandleFunc("/sessions", h.HandleLogManual).Methods("POST", "OPTIONS").Name("session-log-manual")
	router.HandleFunc("/sessions", h.HandleList).Methods("GET", "OPTIONS").Name("session-list")
}

type CurrentResponse struct {
	Active  bool         `json:"active"`
	Session *Accumulator `json:"session,omitempty"`
}

type SaveResponse struct {
	Status  Status   `json:"status"`
	Session *Session `json:"session,omitempty"`
	Error   string   `json:"error,omitempty"`
}

func (h *Handler) HandleStart(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.session.start")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var opts Options
	if err := json.NewDecoder(r.Body).Decode(&opts); err != nil && !errors.Is(err, io.EOF) {
		log.Errorf("session start, unmarshal json params: %s", err)
		http.Error(w, "invalid session options", http.StatusBadRequest)
		return
	}

	if err := h.tracker.InitializeSession(userID, opts); err != nil {
		if errors.Is(err, ErrInvalidEntry) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Errorf("session start [%s]: %s", userID, err)
		http.Error(w, "could not start session", http.StatusInternalServerError)
		return
	}

	h.writeCurrent(w, userID)
}

func (h *Handler) HandleCurrent(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.session.current")
	defer span.End()

	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	h.writeCurrent(w, userID)
}

func (h *Handler) writeCurrent(w http.ResponseWriter, userID string) {
	acc, active := h.tracker.Current(userID)
	resp := CurrentResponse{Active: active}
	if active {
		resp.Session = &acc
	}
	pkg.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) HandleSave(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.session.save")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	writeSaveResult(w, h.persister.SaveCurrentSession(ctx, userID))
}

func (h *Handler) HandleEnd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.session.end")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	writeSaveResult(w, h.persister.SaveAndEndSession(ctx, userID))
}

func writeSaveResult(w http.ResponseWriter, res SaveResult) {
	resp := SaveResponse{
		Status:  res.Status,
		Session: res.Session,
	}
	statusCode := http.StatusOK
	switch res.Status {
	case StatusSaved:
		statusCode = http.StatusCreated
		if res.Err != nil {
			resp.Error = "session saved, profile not updated"
		}
	case StatusFailed:
		statusCode = http.StatusInternalServerError
		resp.Error = "could not save session"
	}
	pkg.WriteJSON(w, resp, statusCode)
}

func (h *Handler) HandleLogManual(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.session.log_manual")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var entry ManualEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		log.Errorf("log manual session, unmarshal json params: %s", err)
		http.Error(w, "invalid session entry", http.StatusBadRequest)
		return
	}

	stored, err := h.service.LogManual(ctx, userID, entry)
	if err != nil {
		if errors.Is(err, ErrInvalidEntry) || errors.Is(err, skills.ErrUnknownSkill) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Errorf("log manual session [%s]: %s", userID, err)
		http.Error(w, "could not save session", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, stored, http.StatusCreated)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.session.list")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	limit := 0
	if limitParam := r.URL.Query().Get("limit"); limitParam != "" {
		var err error
		limit, err = strconv.Atoi(limitParam)
		if err != nil || limit < 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
	}

	sessions, err := h.service.List(ctx, userID, limit)
	if err != nil {
		log.Errorf("list sessions [%s]: %s", userID, err)
		http.Error(w, "could not load sessions", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, sessions, http.StatusOK)
}
