package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/footsies/internal/skills"
	"github.com/2beens/footsies/internal/telemetry/tracing"
	"github.com/2beens/footsies/pkg"

	"gorm.io/gorm"
)

// Record is the sqlite row of a profile. Skill maps are kept as JSON text.
type Record struct {
	ID               string `gorm:"primaryKey"`
	Username         string `gorm:"uniqueIndex;not null"`
	Email            string `gorm:"not null"`
	PasswordHash     string `gorm:"not null"`
	XP               int
	Level            int
	XPThreshold      int
	Skills           string
	SkillLevels      string
	SkillThresholds  string
	TotalSessions    int
	LastTrainingDate *time.Time
	CreatedAt        time.Time
}

func (Record) TableName() string {
	return "profile"
}

type GormRepo struct {
	db *gorm.DB
}

func NewGormRepo(db *gorm.DB) *GormRepo {
	return &GormRepo{
		db: db,
	}
}

func (r *GormRepo) Create(ctx context.Context, p *Profile) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profile.gorm.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rec, err := toRecord(p)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		if pkg.IsSQLiteUniqueViolationError(err) {
			return ErrUsernameTaken
		}
		return err
	}
	return nil
}

func (r *GormRepo) Get(ctx context.Context, id string) (_ *Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profile.gorm.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return r.first(r.db.WithContext(ctx), "id = ?", id)
}

func (r *GormRepo) GetByUsername(ctx context.Context, username string) (_ *Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profile.gorm.get_by_username")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return r.first(r.db.WithContext(ctx), "username = ?", username)
}

func (r *GormRepo) UsernameExists(ctx context.Context, username string) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profile.gorm.username_exists")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var count int64
	if err := r.db.WithContext(ctx).Model(&Record{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormRepo) UpdateProgress(ctx context.Context, id string, fn UpdateFunc) (_ *Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profile.gorm.update_progress")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var updated *Profile
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := r.first(tx, "id = ?", id)
		if err != nil {
			return err
		}
		if err := fn(p); err != nil {
			return err
		}

		rec, err := toRecord(p)
		if err != nil {
			return err
		}
		if err := tx.Model(&Record{}).Where("id = ?", id).Updates(map[string]any{
			"xp":               rec.XP,
			"level":            rec.Level,
			"xp_threshold":     rec.XPThreshold,
			"skills":           rec.Skills,
			"skill_levels":     rec.SkillLevels,
			"skill_thresholds": rec.SkillThresholds,
		}).Error; err != nil {
			return err
		}

		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *GormRepo) RecordSession(ctx context.Context, id string, at time.Time) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profile.gorm.record_session")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	res := r.db.WithContext(ctx).Model(&Record{}).Where("id = ?", id).Updates(map[string]any{
		"total_sessions":     gorm.Expr("total_sessions + 1"),
		"last_training_date": at.UTC(),
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *GormRepo) first(db *gorm.DB, query string, arg any) (*Profile, error) {
	var rec Record
	if err := db.Where(query, arg).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return fromRecord(&rec)
}

func toRecord(p *Profile) (*Record, error) {
	skillsJSON, err := json.Marshal(p.Skills)
	if err != nil {
		return nil, fmt.Errorf("marshal skills: %w", err)
	}
	levelsJSON, err := json.Marshal(p.SkillLevels)
	if err != nil {
		return nil, fmt.Errorf("marshal skill levels: %w", err)
	}
	thresholdsJSON, err := json.Marshal(p.SkillThresholds)
	if err != nil {
		return nil, fmt.Errorf("marshal skill thresholds: %w", err)
	}
	return &Record{
		ID:               p.ID,
		Username:         p.Username,
		Email:            p.Email,
		PasswordHash:     p.PasswordHash,
		XP:               p.XP,
		Level:            p.Level,
		XPThreshold:      p.XPThreshold,
		Skills:           string(skillsJSON),
		SkillLevels:      string(levelsJSON),
		SkillThresholds:  string(thresholdsJSON),
		TotalSessions:    p.TotalSessions,
		LastTrainingDate: p.LastTrainingDate,
		CreatedAt:        p.CreatedAt,
	}, nil
}

func fromRecord(rec *Record) (*Profile, error) {
	p := &Profile{
		ID:               rec.ID,
		Username:         rec.Username,
		Email:            rec.Email,
		PasswordHash:     rec.PasswordHash,
		XP:               rec.XP,
		Level:            rec.Level,
		XPThreshold:      rec.XPThreshold,
		Skills:           map[skills.Skill]int{},
		SkillLevels:      map[skills.Skill]int{},
		SkillThresholds:  map[skills.Skill]int{},
		TotalSessions:    rec.TotalSessions,
		LastTrainingDate: rec.LastTrainingDate,
		CreatedAt:        rec.CreatedAt.UTC(),
	}
	if p.LastTrainingDate != nil {
		ltd := p.LastTrainingDate.UTC()
		p.LastTrainingDate = &ltd
	}

	for target, raw := range map[*map[skills.Skill]int]string{
		&p.Skills:          rec.Skills,
		&p.SkillLevels:     rec.SkillLevels,
		&p.SkillThresholds: rec.SkillThresholds,
	} {
		if raw == "" {
			continue
		}
		if err := json.Unmarshal([]byte(raw), target); err != nil {
			return nil, fmt.Errorf("unmarshal profile [%s] skills: %w", rec.ID, err)
		}
	}
	return p, nil
}
