package middleware

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/2beens/footsies/internal/telemetry/metrics"

	"github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"
)

// PanicRecovery turns a handler panic into a 500, so one broken route does not take the
// whole server down. Panics are counted per route template and sent to sentry.
func PanicRecovery(metricsManager *metrics.Manager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}

				route := routeTemplate(req)
				log.WithFields(log.Fields{
					"route":  route,
					"method": req.Method,
				}).Errorf("http: panic serving %s: %v\n%s", req.URL.Path, rec, debug.Stack())

				hub := sentry.CurrentHub().Clone()
				hub.Scope().SetRequest(req)
				hub.Scope().SetTag("route", route)
				if eventID := hub.Recover(rec); eventID != nil {
					hub.Flush(2 * time.Second)
				}

				if metricsManager != nil {
					metricsManager.CounterHandleRequestPanic.WithLabelValues(route).Inc()
				}
				http.Error(w, "internal error", http.StatusInternalServerError)
			}()

			next.ServeHTTP(w, req)
		})
	}
}
