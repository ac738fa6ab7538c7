package repository

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/postpilothq/postpilot/pilot/domain"
	"gorm.io/gorm"
)

// Single-row table; the service owns exactly one profile.
const profileRowID = 1

type profileRecord struct {
	ID               int    `gorm:"primaryKey"`
	Topics           string // JSON array
	Language         string
	Tone             string
	AutoPilotEnabled bool
}

func (profileRecord) TableName() string { return "profile" }

// GormProfileRepository persists the profile through GORM.
type GormProfileRepository struct {
	db *gorm.DB
}

func NewGormProfileRepository(db *gorm.DB) (*GormProfileRepository, error) {
	if err := db.AutoMigrate(&profileRecord{}); err != nil {
		return nil, err
	}
	repo := &GormProfileRepository{db: db}

	var rec profileRecord
	err := db.First(&rec, "id = ?", profileRowID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		rec = profileRecord{
			ID:       profileRowID,
			Topics:   "[]",
			Language: domain.DefaultLanguage,
			Tone:     string(domain.ToneProfessional),
		}
		if err := db.Create(&rec).Error; err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *GormProfileRepository) load(ctx context.Context) (profileRecord, []string, error) {
	var rec profileRecord
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", profileRowID).Error; err != nil {
		return rec, nil, err
	}
	var topics []string
	if rec.Topics != "" {
		if err := json.Unmarshal([]byte(rec.Topics), &topics); err != nil {
			return rec, nil, err
		}
	}
	return rec, topics, nil
}

func (r *GormProfileRepository) saveTopics(ctx context.Context, topics []string) error {
	data, err := json.Marshal(topics)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Model(&profileRecord{}).
		Where("id = ?", profileRowID).
		Update("topics", string(data)).Error
}

func (r *GormProfileRepository) Get(ctx context.Context) (domain.Profile, error) {
	rec, topics, err := r.load(ctx)
	if err != nil {
		return domain.Profile{}, err
	}
	return domain.Profile{
		Topics:           topics,
		Language:         rec.Language,
		Tone:             domain.Tone(rec.Tone),
		AutoPilotEnabled: rec.AutoPilotEnabled,
	}, nil
}

func (r *GormProfileRepository) AddTopic(ctx context.Context, topic string) error {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return domain.ErrEmptyTopic
	}
	_, topics, err := r.load(ctx)
	if err != nil {
		return err
	}
	for _, t := range topics {
		if strings.EqualFold(t, topic) {
			return domain.ErrDuplicateTopic
		}
	}
	return r.saveTopics(ctx, append(topics, topic))
}

func (r *GormProfileRepository) RemoveTopic(ctx context.Context, topic string) error {
	_, topics, err := r.load(ctx)
	if err != nil {
		return err
	}
	for i, t := range topics {
		if strings.EqualFold(t, topic) {
			return r.saveTopics(ctx, append(topics[:i], topics[i+1:]...))
		}
	}
	return nil
}

func (r *GormProfileRepository) SetLanguage(ctx context.Context, language string) error {
	return r.db.WithContext(ctx).Model(&profileRecord{}).
		Where("id = ?", profileRowID).
		Update("language", language).Error
}

func (r *GormProfileRepository) SetTone(ctx context.Context, tone domain.Tone) error {
	return r.db.WithContext(ctx).Model(&profileRecord{}).
		Where("id = ?", profileRowID).
		Update("tone", string(tone)).Error
}

func (r *GormProfileRepository) SetAutoPilot(ctx context.Context, enabled bool) error {
	return r.db.WithContext(ctx).Model(&profileRecord{}).
		Where("id = ?", profileRowID).
		Update("auto_pilot_enabled", enabled).Error
}
