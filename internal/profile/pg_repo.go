package profile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/footsies/internal/telemetry/tracing"
	"github.com/2beens/footsies/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

const profileColumns = `id, username, email, password_hash, xp, level, xp_threshold,
	skills, skill_levels, skill_thresholds, total_sessions, last_training_date, created_at`

type PgRepo struct {
	db *pgxpool.Pool
}

func NewPgRepo(db *pgxpool.Pool) *PgRepo {
	return &PgRepo{
		db: db,
	}
}

func (r *PgRepo) Create(ctx context.Context, p *Profile) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profile.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	_, err = r.db.Exec(ctx, `
		INSERT INTO profile (`+profileColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`,
		p.ID, p.Username, p.Email, p.PasswordHash,
		p.XP, p.Level, p.XPThreshold,
		p.Skills, p.SkillLevels, p.SkillThresholds,
		p.TotalSessions, p.LastTrainingDate, p.CreatedAt,
	)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return ErrUsernameTaken
		}
		return err
	}
	return nil
}

func (r *PgRepo) Get(ctx context.Context, id string) (_ *Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profile.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", id))

	return scanProfile(r.db.QueryRow(ctx, `
		SELECT `+profileColumns+`
		FROM profile
		WHERE id = $1
	`, id))
}

func (r *PgRepo) GetByUsername(ctx context.Context, username string) (_ *Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profile.get_by_username")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return scanProfile(r.db.QueryRow(ctx, `
		SELECT `+profileColumns+`
		FROM profile
		WHERE username = $1
	`, username))
}

func (r *PgRepo) UsernameExists(ctx context.Context, username string) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profile.username_exists")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var exists bool
	err = r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM profile WHERE username = $1)
	`, username).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PgRepo) UpdateProgress(ctx context.Context, id string, fn UpdateFunc) (_ *Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profile.update_progress")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", id))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				err = fmt.Errorf("failed to rollback transaction: %w: %w", rollbackErr, err)
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()

	p, err := scanProfile(tx.QueryRow(ctx, `
		SELECT `+profileColumns+`
		FROM profile
		WHERE id = $1
		FOR UPDATE
	`, id))
	if err != nil {
		return nil, err
	}

	if err := fn(p); err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx, `
		UPDATE profile
		SET xp = $2, level = $3, xp_threshold = $4,
		    skills = $5, skill_levels = $6, skill_thresholds = $7
		WHERE id = $1
	`,
		p.ID, p.XP, p.Level, p.XPThreshold,
		p.Skills, p.SkillLevels, p.SkillThresholds,
	)
	if err != nil {
		return nil, err
	}

	return p, nil
}

func (r *PgRepo) RecordSession(ctx context.Context, id string, at time.Time) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profile.record_session")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", id))

	tag, err := r.db.Exec(ctx, `
		UPDATE profile
		SET total_sessions = total_sessions + 1, last_training_date = $2
		WHERE id = $1
	`, id, at.UTC())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func scanProfile(row pgx.Row) (*Profile, error) {
	p := &Profile{}
	err := row.Scan(
		&p.ID, &p.Username, &p.Email, &p.PasswordHash,
		&p.XP, &p.Level, &p.XPThreshold,
		&p.Skills, &p.SkillLevels, &p.SkillThresholds,
		&p.TotalSessions, &p.LastTrainingDate, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return p, nil
}
