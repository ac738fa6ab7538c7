package repository

import (
	"context"
	"errors"
	"time"

	"github.com/postpilothq/postpilot/pilot/domain"
	"gorm.io/gorm"
)

type postRecord struct {
	ID          string `gorm:"primaryKey"`
	Content     string `gorm:"not null"`
	Status      string `gorm:"index;not null"`
	ScheduledAt *time.Time
	CreatedAt   time.Time `gorm:"index"`
	LikeCount   int
	RepostCount int
}

func (postRecord) TableName() string { return "posts" }

// GormPostRepository persists the queue through GORM (sqlite or postgres).
type GormPostRepository struct {
	db *gorm.DB
}

func NewGormPostRepository(db *gorm.DB) (*GormPostRepository, error) {
	if err := db.AutoMigrate(&postRecord{}); err != nil {
		return nil, err
	}
	return &GormPostRepository{db: db}, nil
}

func toRecord(p domain.Post) postRecord {
	return postRecord{
		ID:          p.ID,
		Content:     p.Content,
		Status:      string(p.Status),
		ScheduledAt: p.ScheduledAt,
		CreatedAt:   p.CreatedAt,
		LikeCount:   p.LikeCount,
		RepostCount: p.RepostCount,
	}
}

func fromRecord(rec postRecord) domain.Post {
	return domain.Post{
		ID:          rec.ID,
		Content:     rec.Content,
		Status:      domain.PostStatus(rec.Status),
		ScheduledAt: rec.ScheduledAt,
		CreatedAt:   rec.CreatedAt,
		LikeCount:   rec.LikeCount,
		RepostCount: rec.RepostCount,
	}
}

func (r *GormPostRepository) Add(ctx context.Context, post domain.Post) error {
	rec := toRecord(post)
	return r.db.WithContext(ctx).Create(&rec).Error
}

func (r *GormPostRepository) List(ctx context.Context) ([]domain.Post, error) {
	var recs []postRecord
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&recs).Error; err != nil {
		return nil, err
	}
	posts := make([]domain.Post, 0, len(recs))
	for _, rec := range recs {
		posts = append(posts, fromRecord(rec))
	}
	return posts, nil
}

func (r *GormPostRepository) Get(ctx context.Context, id string) (domain.Post, error) {
	var rec postRecord
	err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Post{}, domain.ErrPostNotFound
	}
	if err != nil {
		return domain.Post{}, err
	}
	return fromRecord(rec), nil
}

func (r *GormPostRepository) Update(ctx context.Context, post domain.Post) error {
	rec := toRecord(post)
	res := r.db.WithContext(ctx).Model(&postRecord{}).Where("id = ?", post.ID).Updates(map[string]any{
		"content":      rec.Content,
		"status":       rec.Status,
		"scheduled_at": rec.ScheduledAt,
		"like_count":   rec.LikeCount,
		"repost_count": rec.RepostCount,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

func (r *GormPostRepository) Remove(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&postRecord{}, "id = ?", id).Error
}

func (r *GormPostRepository) ListDueScheduled(ctx context.Context, before time.Time) ([]domain.Post, error) {
	var recs []postRecord
	err := r.db.WithContext(ctx).
		Where("status = ? AND scheduled_at <= ?", string(domain.PostStatusScheduled), before).
		Order("scheduled_at ASC").
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	posts := make([]domain.Post, 0, len(recs))
	for _, rec := range recs {
		posts = append(posts, fromRecord(rec))
	}
	return posts, nil
}

func (r *GormPostRepository) NextScheduledAt(ctx context.Context) (time.Time, error) {
	var rec postRecord
	err := r.db.WithContext(ctx).
		Where("status = ?", string(domain.PostStatusScheduled)).
		Order("scheduled_at ASC").
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	if rec.ScheduledAt == nil {
		return time.Time{}, nil
	}
	return *rec.ScheduledAt, nil
}
