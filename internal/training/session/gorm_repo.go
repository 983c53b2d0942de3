package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/2beens/footsies/internal/skills"
	"github.com/2beens/footsies/internal/telemetry/tracing"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Record is the sqlite row of a training session.
type Record struct {
	ID            string    `gorm:"primaryKey"`
	UserID        string    `gorm:"index:ix_training_session_user_ts,priority:1;not null"`
	Timestamp     time.Time `gorm:"index:ix_training_session_user_ts,priority:2;not null"`
	Date          string    `gorm:"size:10;not null"`
	StartTime     time.Time
	Duration      int
	Metrics       string
	SkillsChanged string
	Title         string
	SkillsFocus   string
	Intensity     int
	Notes         string
}

func (Record) TableName() string {
	return "training_session"
}

type GormRepo struct {
	db *gorm.DB
}

func NewGormRepo(db *gorm.DB) *GormRepo {
	return &GormRepo{
		db: db,
	}
}

func (r *GormRepo) Add(ctx context.Context, s *Session) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.session.gorm.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	stored := *s
	stored.ID = uuid.NewString()

	rec, err := toRecord(&stored)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *GormRepo) List(ctx context.Context, userID string, limit int) (_ []Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.session.gorm.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	q := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var records []Record
	if err := q.Find(&records).Error; err != nil {
		return nil, err
	}

	sessions := make([]Session, 0, len(records))
	for i := range records {
		s, err := fromRecord(&records[i])
		if err != nil {
			// a broken row stays in the history, the aggregations skip it
			log.Warnf("session repo, list: %s", err)
		}
		sessions = append(sessions, *s)
	}
	return sessions, nil
}

func toRecord(s *Session) (*Record, error) {
	metrics := s.Metrics
	if metrics == nil {
		metrics = map[skills.Skill]int{}
	}
	metricsJSON, err := json.Marshal(metrics)
	if err != nil {
		return nil, fmt.Errorf("marshal metrics: %w", err)
	}
	changed := s.SkillsChanged
	if changed == nil {
		changed = []skills.Skill{}
	}
	changedJSON, err := json.Marshal(changed)
	if err != nil {
		return nil, fmt.Errorf("marshal skills changed: %w", err)
	}
	return &Record{
		ID:            s.ID,
		UserID:        s.UserID,
		Timestamp:     s.Timestamp.UTC(),
		Date:          s.Date,
		StartTime:     s.StartTime.UTC(),
		Duration:      s.Duration,
		Metrics:       string(metricsJSON),
		SkillsChanged: string(changedJSON),
		Title:         s.Title,
		SkillsFocus:   s.SkillsFocus,
		Intensity:     s.Intensity,
		Notes:         s.Notes,
	}, nil
}

func fromRecord(rec *Record) (*Session, error) {
	s := &Session{
		ID:          rec.ID,
		UserID:      rec.UserID,
		Timestamp:   rec.Timestamp.UTC(),
		Date:        rec.Date,
		StartTime:   rec.StartTime.UTC(),
		Duration:    rec.Duration,
		Title:       rec.Title,
		SkillsFocus: rec.SkillsFocus,
		Intensity:   rec.Intensity,
		Notes:       rec.Notes,
	}
	return s, decodeRecordJSON(s, []byte(rec.Metrics), []byte(rec.SkillsChanged))
}

// decodeRecordJSON fills the json columns of a stored session. On failure the
// session is left with nil Metrics so it is treated as unusable.
func decodeRecordJSON(s *Session, metrics, skillsChanged []byte) error {
	if len(metrics) > 0 {
		if err := json.Unmarshal(metrics, &s.Metrics); err != nil {
			s.Metrics = nil
			s.SkillsChanged = nil
			return fmt.Errorf("unmarshal session [%s] metrics: %w", s.ID, err)
		}
	}
	if len(skillsChanged) > 0 {
		if err := json.Unmarshal(skillsChanged, &s.SkillsChanged); err != nil {
			s.Metrics = nil
			s.SkillsChanged = nil
			return fmt.Errorf("unmarshal session [%s] skills changed: %w", s.ID, err)
		}
	}
	return nil
}
