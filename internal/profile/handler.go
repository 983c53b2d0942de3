package profile

import (
	"context"
	"errors"
	"net/http"

	"github.com/2beens/footsies/internal/auth"
	"github.com/2beens/footsies/internal/telemetry/tracing"
	"github.com/2beens/footsies/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=profile_test

type profileService interface {
	Get(ctx context.Context, userID string) (*Profile, error)
	IsUsernameAvailable(ctx context.Context, username string) (bool, error)
}

type Handler struct {
	service profileService
}

func NewHandler(service profileService) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/profile", h.HandleGet).Methods("GET", "OPTIONS").Name("profile")
	router.HandleFunc("/username/{username}/available", h.HandleUsernameAvailable).Methods("GET", "OPTIONS").Name("username-available")
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profile.get")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	p, err := h.service.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			http.Error(w, "profile not found", http.StatusNotFound)
			return
		}
		log.Errorf("get profile [%s]: %s", userID, err)
		http.Error(w, "could not load profile", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, p, http.StatusOK)
}

func (h *Handler) HandleUsernameAvailable(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profile.username_available")
	defer span.End()

	username := mux.Vars(r)["username"]
	if username == "" {
		http.Error(w, "username missing", http.StatusBadRequest)
		return
	}

	available, err := h.service.IsUsernameAvailable(ctx, username)
	if err != nil {
		log.Errorf("username available [%s]: %s", username, err)
		http.Error(w, "could not check username", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, struct {
		Username  string `json:"username"`
		Available bool   `json:"available"`
	}{
		Username:  username,
		Available: available,
	}, http.StatusOK)
}
