package main

import (
	"context"
	"flag"
	"os"
	"os/exec"
	"os/signal"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/2beens/footsies/internal"
	"github.com/2beens/footsies/internal/config"
	"github.com/2beens/footsies/internal/logging"
	"github.com/2beens/footsies/pkg"

	log "github.com/sirupsen/logrus"
)

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	flag.Parse()

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config [%s]: %s", *configPath, err)
	}

	logging.Setup(logging.LoggerSetupParams{
		LogFileName:      cfg.LogsPath,
		LogToStdout:      cfg.LogToStdout,
		LogLevel:         cfg.LogLevel,
		LogFormatJSON:    cfg.LogFormatJSON,
		Environment:      cfg.Environment,
		SentryEnabled:    cfg.SentryEnabled,
		SentryDSN:        os.Getenv("SENTRY_DSN"),
		SentryServerName: "footsies-service",
	})

	log.WithFields(log.Fields{
		"env":     cfg.Environment,
		"port":    cfg.Port,
		"storage": cfg.StorageDriver,
		"growth":  cfg.Progression.GrowthPolicy,
	}).Info("footsies starting")

	version := versionInfo()
	log.Debugf("running version: %s", version)

	redisPassword := os.Getenv("FOOTSIES_REDIS_PASS")
	if redisPassword == "" {
		log.Warnln("redis password not set, use FOOTSIES_REDIS_PASS")
	}

	honeycombEnabled := os.Getenv("HONEYCOMB_ENABLED") == "true"
	if honeycombEnabled {
		if os.Getenv("HONEYCOMB_API_KEY") == "" {
			log.Warnln("HONEYCOMB_API_KEY env var not set")
		}
		if os.Getenv("OTEL_SERVICE_NAME") == "" {
			log.Warnln("OTEL_SERVICE_NAME env var not set")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server, err := internal.NewServer(
		ctx,
		internal.NewServerParams{
			Config:                  cfg,
			VersionInfo:             version,
			RedisPassword:           redisPassword,
			HoneycombTracingEnabled: honeycombEnabled,
		},
	)
	if err != nil {
		log.Fatalf("new server: %s", err)
	}

	server.Serve(cfg.Host, cfg.Port)

	<-ctx.Done()
	log.Warnln("shutdown signal received")

	// the tracker keeps sessions in memory only, flush them before going away
	server.GracefulShutdown()
}

// versionInfo prefers the vcs revision stamped in by go build, and falls back to
// asking git when running from a source checkout.
func versionInfo() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" && setting.Value != "" {
				return setting.Value
			}
		}
	}

	stdout, err := exec.Command("git", "rev-parse", "HEAD").Output()
	if err != nil {
		log.Tracef("git rev-parse: %s", err)
		return "unknown"
	}
	return strings.TrimSpace(pkg.BytesToString(stdout))
}
