package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/2beens/footsies/internal/auth"
	"github.com/2beens/footsies/internal/config"
	"github.com/2beens/footsies/internal/middleware"
	"github.com/2beens/footsies/internal/misc"
	"github.com/2beens/footsies/internal/profile"
	"github.com/2beens/footsies/internal/progression"
	"github.com/2beens/footsies/internal/quests"
	"github.com/2beens/footsies/internal/skills"
	"github.com/2beens/footsies/internal/telemetry/metrics"
	"github.com/2beens/footsies/internal/telemetry/tracing"
	"github.com/2beens/footsies/internal/training/analysis"
	"github.com/2beens/footsies/internal/training/session"
	"github.com/2beens/footsies/internal/training/stats"

	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
)

const loginSessionsCleanupInterval = 8 * time.Hour

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config  *config.Config
	storage *Storage

	redisClient  *redis.Client
	loginChecker *auth.LoginChecker
	authService  *auth.Service

	// domain
	registry  *skills.Registry
	profiles  *profile.Service
	tracker   *session.Tracker
	persister *session.Persister
	sessions  *session.Service
	stats     *stats.Service
	analysis  *analysis.Service
	quests    *quests.Service

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	VersionInfo             string
	RedisPassword           string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	st, err := OpenStorage(ctx, params.Config, params.HoneycombTracingEnabled)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	promRegistry := metrics.SetupPrometheus(st.collectors...)
	metricsManager := metrics.NewManager("footsies", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0) // will be set to 1 when all is set and ran

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(params.Config.RedisHost, params.Config.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "footsies-backend", rdb)
	if err != nil {
		return nil, err
	}

	s := &Server{
		config:      params.Config,
		storage:     st,
		versionInfo: params.VersionInfo,

		redisClient:  rdb,
		authService:  auth.NewService(auth.DefaultTTL, rdb),
		loginChecker: auth.NewLoginChecker(auth.DefaultTTL, rdb),

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}

	if err := s.setupServices(); err != nil {
		return nil, err
	}

	go s.cleanupLoginSessions(ctx)

	return s, nil
}

// setupServices builds the domain services on top of the opened storage.
func (s *Server) setupServices() error {
	registry, err := skills.NewRegistry(s.config.Skills.Extra...)
	if err != nil {
		return fmt.Errorf("skills registry: %w", err)
	}

	policy, err := progression.NewPolicy(progression.PolicyParams{
		Name:     s.config.Progression.GrowthPolicy,
		FlatStep: s.config.Progression.FlatStep,
		Base:     s.config.Progression.FormulaBase,
		PerLevel: s.config.Progression.FormulaPerLevel,
	})
	if err != nil {
		return fmt.Errorf("growth policy: %w", err)
	}

	clock := session.SystemClock{}

	s.registry = registry
	s.profiles = profile.NewService(
		s.storage.Profiles,
		progression.NewEngine(policy),
		registry,
		s.metricsManager,
	)
	s.stats = stats.NewService(stats.ServiceParams{
		Sessions:       s.storage.Sessions,
		Registry:       registry,
		Clock:          clock,
		CacheSizeMB:    s.config.Stats.CacheSizeMB,
		CacheTTL:       time.Duration(s.config.Stats.CacheTTLSeconds) * time.Second,
		MetricsManager: s.metricsManager,
	})
	s.tracker = session.NewTracker(clock, registry, s.metricsManager)
	s.persister = session.NewPersister(session.PersisterParams{
		Tracker:        s.tracker,
		Store:          s.storage.Sessions,
		Profiles:       s.profiles,
		StatsCache:     s.stats,
		MetricsManager: s.metricsManager,
		Policy: session.Policy{
			DedupeWindow:    time.Duration(s.config.Sessions.DedupeWindowSeconds) * time.Second,
			ClearOnFailure:  s.config.Sessions.ClearOnFailure,
			EndClearsAlways: s.config.SessionsEndClearsAlways(),
		},
	})
	s.sessions = session.NewService(s.storage.Sessions, s.profiles, s.stats, registry, clock)
	s.analysis = analysis.NewService(s.profiles, s.stats, registry)
	s.quests = quests.NewService(quests.ServiceParams{
		Profiles:       s.profiles,
		Tracker:        s.tracker,
		Registry:       registry,
		MetricsManager: s.metricsManager,
	})

	log.Debugf("skills registered: %v", registry.All())
	return nil
}

func (s *Server) routerSetup() (*mux.Router, error) {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("footsies-router"))

	reqRateLimiter := redis_rate.NewLimiter(s.redisClient)
	miscHandler := misc.NewHandler(misc.HandlerParams{
		Profiles:    s.profiles,
		AuthService: s.authService,
		Tracker:     s.tracker,
		Persister:   s.persister,
		VersionInfo: s.versionInfo,
	})
	miscHandler.SetupRoutes(r, reqRateLimiter, s.metricsManager, s.config.LoginRateLimitAllowedPerMin)

	profile.NewHandler(s.profiles).SetupRoutes(r)
	session.NewHandler(s.tracker, s.persister, s.sessions).SetupRoutes(r)
	stats.NewHandler(s.stats).SetupRoutes(r)
	analysis.NewHandler(s.analysis).SetupRoutes(r)
	quests.NewHandler(s.quests).SetupRoutes(r)

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.loginChecker)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins))
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.LimitAndDrainRequest(middleware.DefaultMaxBodyBytes))

	return r, nil
}

func (s *Server) Serve(host string, port int) {
	router, err := s.routerSetup()
	if err != nil {
		log.Fatalf("failed to setup router: %s", err)
	}

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.InstrumentMetricHandler(
		s.promRegistry,
		promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}),
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	// stop taking requests before the stores go away
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown http server")
		}
		log.Warnln("server shut down")
	}

	if s.persister != nil {
		saved, err := s.persister.FlushAll(ctx)
		if err != nil {
			log.Errorf("flush training sessions: %s", err)
		}
		log.Infof("flushed %d training sessions", saved)
	}

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if err := s.storage.Close(); err != nil {
		log.Errorf("failed to close storage: %s", err)
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown metrics http server")
		}
		log.Warnln("metrics server shut down")
	}
}

func (s *Server) cleanupLoginSessions(ctx context.Context) {
	ticker := time.NewTicker(loginSessionsCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.authService.ScanAndClean(ctx)
		}
	}
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
