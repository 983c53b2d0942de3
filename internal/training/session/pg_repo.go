package session

import (
	"context"
	"fmt"

	"github.com/2beens/footsies/internal/skills"
	"github.com/2beens/footsies/internal/telemetry/tracing"
	"github.com/2beens/footsies/pkg"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

type PgRepo struct {
	db *pgxpool.Pool
}

func NewPgRepo(db *pgxpool.Pool) *PgRepo {
	return &PgRepo{
		db: db,
	}
}

func (r *PgRepo) Add(ctx context.Context, s *Session) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.session.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", s.UserID))

	stored := *s
	stored.ID = uuid.NewString()
	if stored.Metrics == nil {
		stored.Metrics = map[skills.Skill]int{}
	}
	if stored.SkillsChanged == nil {
		stored.SkillsChanged = []skills.Skill{}
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO training_session (
			id, user_id, timestamp, date, start_time, duration, metrics, skills_changed,
			title, skills_focus, intensity, notes
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`,
		stored.ID, stored.UserID, stored.Timestamp, stored.Date, stored.StartTime, stored.Duration,
		stored.Metrics, stored.SkillsChanged,
		stored.Title, stored.SkillsFocus, stored.Intensity, stored.Notes,
	)
	if err != nil {
		if pkg.IsForeignKeyViolationError(err) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownOwner, stored.UserID)
		}
		return nil, err
	}

	return &stored, nil
}

func (r *PgRepo) List(ctx context.Context, userID string, limit int) (_ []Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.session.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID), attribute.Int("limit", limit))

	var limitArg *int
	if limit > 0 {
		limitArg = &limit
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, timestamp, date, start_time, duration, metrics, skills_changed,
		       title, skills_focus, intensity, notes
		FROM training_session
		WHERE user_id = $1
		ORDER BY timestamp DESC
		LIMIT $2
	`, userID, limitArg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := make([]Session, 0)
	for rows.Next() {
		var s Session
		var metricsJSON, changedJSON []byte
		if err := rows.Scan(
			&s.ID, &s.UserID, &s.Timestamp, &s.Date, &s.StartTime, &s.Duration,
			&metricsJSON, &changedJSON,
			&s.Title, &s.SkillsFocus, &s.Intensity, &s.Notes,
		); err != nil {
			return nil, err
		}
		if err := decodeRecordJSON(&s, metricsJSON, changedJSON); err != nil {
			log.Warnf("session repo, list: %s", err)
		}
		sessions = append(sessions, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}
