package misc

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/2beens/footsies/internal/auth"
	"github.com/2beens/footsies/internal/middleware"
	"github.com/2beens/footsies/internal/profile"
	"github.com/2beens/footsies/internal/telemetry/metrics"
	"github.com/2beens/footsies/internal/telemetry/tracing"
	"github.com/2beens/footsies/internal/training/session"
	"github.com/2beens/footsies/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=misc_test

type profileService interface {
	Signup(ctx context.Context, username, email, password string) (*profile.Profile, error)
	Authenticate(ctx context.Context, username, password string) (*profile.Profile, error)
}

type authService interface {
	Login(ctx context.Context, userID string, createdAt time.Time) (string, error)
	Logout(ctx context.Context, token string) (string, error)
}

type sessionTracker interface {
	InitializeSession(userID string, opts session.Options) error
}

type sessionPersister interface {
	SaveAndEndSession(ctx context.Context, userID string) session.SaveResult
}

type Handler struct {
	profiles    profileService
	authService authService
	tracker     sessionTracker
	persister   sessionPersister
	versionInfo string
	nowFunc     func() time.Time
}

type HandlerParams struct {
	Profiles    profileService
	AuthService authService
	Tracker     sessionTracker
	Persister   sessionPersister
	VersionInfo string
}

func NewHandler(params HandlerParams) *Handler {
	return &Handler{
		profiles:    params.Profiles,
		authService: params.AuthService,
		tracker:     params.Tracker,
		persister:   params.Persister,
		versionInfo: params.VersionInfo,
		nowFunc:     time.Now,
	}
}

func (h *Handler) SetupRoutes(
	mainRouter *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	metricsManager *metrics.Manager,
	allowedPerMin int,
) {
	mainRouter.HandleFunc("/", h.handleRoot).Methods("GET", "POST", "OPTIONS").Name("root")
	mainRouter.HandleFunc("/health", h.handleRoot).Methods("GET", "OPTIONS").Name("health")
	mainRouter.HandleFunc("/version", h.handleGetVersionInfo).Methods("GET").Name("version")

	// rate limit the signup and login endpoints to prevent abuse
	signupLimit := middleware.RateLimit(rateLimiter, "signup", allowedPerMin, metricsManager)
	loginLimit := middleware.RateLimit(rateLimiter, "login", allowedPerMin, metricsManager)
	mainRouter.
		Handle("/signup", signupLimit(http.HandlerFunc(h.handleSignup))).
		Methods("POST", "OPTIONS").Name("signup")
	mainRouter.
		Handle("/login", loginLimit(http.HandlerFunc(h.handleLogin))).
		Methods("POST", "OPTIONS").Name("login")
	mainRouter.
		HandleFunc("/logout", h.handleLogout).
		Methods("POST", "OPTIONS").Name("logout")
}

func (h *Handler) handleRoot(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, "I'm OK")
}

func (h *Handler) handleGetVersionInfo(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, h.versionInfo)
}

type credentials struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// readCredentials accepts both a JSON body and a posted form.
func readCredentials(r *http.Request) (credentials, error) {
	var creds credentials
	if r.Header.Get("Content-Type") == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			return credentials{}, err
		}
		return creds, nil
	}

	if err := r.ParseForm(); err != nil {
		return credentials{}, err
	}
	return credentials{
		Username: r.Form.Get("username"),
		Email:    r.Form.Get("email"),
		Password: r.Form.Get("password"),
	}, nil
}

func (h *Handler) handleSignup(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "miscHandler.signup")
	defer span.End()

	creds, err := readCredentials(r)
	if err != nil {
		log.Errorf("signup, read params: %s", err)
		http.Error(w, "signup failed", http.StatusBadRequest)
		return
	}

	p, err := h.profiles.Signup(ctx, creds.Username, creds.Email, creds.Password)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		switch {
		case errors.Is(err, profile.ErrUsernameTaken):
			http.Error(w, "username taken", http.StatusConflict)
		case errors.Is(err, profile.ErrInvalidSignup):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			log.Errorf("signup [%s]: %s", creds.Username, err)
			http.Error(w, "signup failed", http.StatusInternalServerError)
		}
		return
	}

	span.SetAttributes(attribute.String("user.id", p.ID))
	pkg.WriteJSON(w, p, http.StatusCreated)
}

type LoginResponse struct {
	Token   string           `json:"token"`
	Profile *profile.Profile `json:"profile"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "miscHandler.login")
	defer span.End()

	creds, err := readCredentials(r)
	if err != nil {
		log.Errorf("login, read params: %s", err)
		http.Error(w, "login failed", http.StatusBadRequest)
		return
	}

	if creds.Username == "" {
		http.Error(w, "error, username empty", http.StatusBadRequest)
		return
	}
	if creds.Password == "" {
		http.Error(w, "error, password empty", http.StatusBadRequest)
		return
	}

	p, err := h.profiles.Authenticate(ctx, creds.Username, creds.Password)
	if err != nil {
		if errors.Is(err, profile.ErrInvalidCredentials) {
			log.Tracef("failed login attempt for user: %s", creds.Username)
			http.Error(w, "error, wrong credentials", http.StatusBadRequest)
			return
		}
		log.Errorf("login [%s]: %s", creds.Username, err)
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}

	token, err := h.authService.Login(ctx, p.ID, h.nowFunc())
	if err != nil {
		log.Errorf("login failed, generate token error: %s", err)
		http.Error(w, "generate token error", http.StatusInternalServerError)
		return
	}

	// a fresh sign-in starts a fresh training session
	if err := h.tracker.InitializeSession(p.ID, session.Options{}); err != nil {
		log.Errorf("login [%s], initialize session: %s", p.ID, err)
	}

	span.SetAttributes(attribute.String("user.id", p.ID))
	log.Tracef("new login success: %s", p.ID)
	pkg.WriteJSON(w, LoginResponse{Token: token, Profile: p}, http.StatusOK)
}

type LogoutResponse struct {
	Session session.Status `json:"session"`
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "miscHandler.logout")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	authToken := r.Header.Get(middleware.AuthTokenHeader)
	if !ok || authToken == "" {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	// flush whatever was trained before the token goes away
	res := h.persister.SaveAndEndSession(ctx, userID)
	if res.Err != nil {
		log.Errorf("logout [%s], save session: %s", userID, res.Err)
	}

	if _, err := h.authService.Logout(ctx, authToken); err != nil {
		if errors.Is(err, auth.ErrNotLoggedIn) {
			http.Error(w, "no can do", http.StatusUnauthorized)
			return
		}
		log.Errorf("logout [%s]: %s", userID, err)
		http.Error(w, "logout failed", http.StatusInternalServerError)
		return
	}

	log.Tracef("logout for [%s] success", userID)
	pkg.WriteJSON(w, LogoutResponse{Session: res.Status}, http.StatusOK)
}
