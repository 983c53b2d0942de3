package session

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/footsies/internal/telemetry/metrics"
	"github.com/2beens/footsies/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/multierr"
)

type Status string

const (
	StatusNoop    Status = "noop"
	StatusSkipped Status = "skipped"
	StatusSaved   Status = "saved"
	StatusFailed  Status = "failed"
)

const DefaultDedupeWindow = 5 * time.Second

// SaveResult is the outcome of a save attempt. Failures are reported here,
// never as a returned error.
type SaveResult struct {
	Status  Status   `json:"status"`
	Session *Session `json:"session,omitempty"`
	Err     error    `json:"-"`
}

type Policy struct {
	// a save completed within this window makes the next one a no-op "skipped"
	DedupeWindow time.Duration
	// drop the accumulator when a save fails, instead of keeping it for a retry
	ClearOnFailure bool
	// SaveAndEndSession drops the accumulator even when the save failed
	EndClearsAlways bool
}

func DefaultPolicy() Policy {
	return Policy{
		DedupeWindow:    DefaultDedupeWindow,
		ClearOnFailure:  false,
		EndClearsAlways: true,
	}
}

type sessionAdder interface {
	Add(ctx context.Context, s *Session) (*Session, error)
}

type profileRecorder interface {
	RecordSession(ctx context.Context, userID string, at time.Time) error
}

type cacheInvalidator interface {
	Invalidate(userID string)
}

type PersisterParams struct {
	Tracker        *Tracker
	Store          sessionAdder
	Profiles       profileRecorder
	StatsCache     cacheInvalidator
	MetricsManager *metrics.Manager
	Policy         Policy
}

type Persister struct {
	tracker        *Tracker
	store          sessionAdder
	profiles       profileRecorder
	statsCache     cacheInvalidator
	metricsManager *metrics.Manager
	policy         Policy
}

func NewPersister(params PersisterParams) *Persister {
	return &Persister{
		tracker:        params.Tracker,
		store:          params.Store,
		profiles:       params.Profiles,
		statsCache:     params.StatsCache,
		metricsManager: params.MetricsManager,
		policy:         params.Policy,
	}
}

// SaveCurrentSession persists the user's accumulator as one session record.
// The stored record is the commit point: once it is written the accumulator is
// gone, even if updating the profile counters fails afterwards.
func (p *Persister) SaveCurrentSession(ctx context.Context, userID string) SaveResult {
	return p.save(ctx, userID, p.policy.DedupeWindow)
}

// FlushAll saves the pending session of every user, ignoring the dedupe window.
// Used on shutdown, since the accumulators only live in memory.
func (p *Persister) FlushAll(ctx context.Context) (saved int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.session.persister.flush")
	defer func() {
		span.SetAttributes(attribute.Int("saved", saved))
		tracing.EndSpanWithErrCheck(span, err)
	}()

	for _, userID := range p.tracker.PendingUsers() {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = multierr.Append(err, ctxErr)
			break
		}
		res := p.save(ctx, userID, 0)
		if res.Status == StatusSaved {
			saved++
		}
		if res.Err != nil {
			err = multierr.Append(err, fmt.Errorf("flush [%s]: %w", userID, res.Err))
		}
	}
	return saved, err
}

func (p *Persister) save(ctx context.Context, userID string, dedupeWindow time.Duration) (res SaveResult) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.session.persister.save")
	defer func() {
		span.SetAttributes(attribute.String("status", string(res.Status)))
		tracing.EndSpanWithErrCheck(span, res.Err)
	}()

	if userID == "" {
		return SaveResult{Status: StatusNoop}
	}

	now := p.tracker.Clock().Now().UTC()
	if removed := p.tracker.sweep(now, p.policy.DedupeWindow); removed > 0 {
		log.Tracef("save session [%s]: swept %d idle users", userID, removed)
	}
	acc, status := p.tracker.beginSave(userID, now, dedupeWindow)
	if status != "" {
		log.Tracef("save session [%s]: %s", userID, status)
		return SaveResult{Status: status}
	}

	stored, err := p.store.Add(ctx, acc.snapshot(userID, now))
	if err != nil {
		p.tracker.saveFailed(userID, acc, p.policy.ClearOnFailure)
		p.countSave(StatusFailed)
		log.Errorf("save session [%s]: %s", userID, err)
		return SaveResult{
			Status: StatusFailed,
			Err:    fmt.Errorf("store session: %w", err),
		}
	}

	p.tracker.saveSucceeded(userID, now)
	if p.statsCache != nil {
		p.statsCache.Invalidate(userID)
	}
	p.countSave(StatusSaved)

	res = SaveResult{
		Status:  StatusSaved,
		Session: stored,
	}
	if err := p.profiles.RecordSession(ctx, userID, stored.Timestamp); err != nil {
		log.Errorf("save session [%s]: session [%s] stored, profile not updated: %s", userID, stored.ID, err)
		res.Err = fmt.Errorf("record session on profile: %w", err)
	}
	return res
}

// SaveAndEndSession saves and then ends the session. With EndClearsAlways the
// accumulator is dropped whatever the save outcome was.
func (p *Persister) SaveAndEndSession(ctx context.Context, userID string) SaveResult {
	res := p.SaveCurrentSession(ctx, userID)
	if p.policy.EndClearsAlways || res.Status != StatusFailed {
		p.tracker.Clear(userID)
	}
	return res
}

func (p *Persister) countSave(status Status) {
	if p.metricsManager != nil {
		p.metricsManager.CounterSessionSaves.WithLabelValues(string(status)).Inc()
	}
}
