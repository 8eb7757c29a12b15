package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fund-insights/models"
)

// GormPosts keeps education posts in PostgreSQL.
type GormPosts struct {
	db *gorm.DB
}

func NewGormPosts(db *gorm.DB) *GormPosts {
	return &GormPosts{db: db}
}

// List orders by creation time; posts seeded together keep their seed order.
func (g *GormPosts) List(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	if err := g.db.WithContext(ctx).Order("created_at DESC, id ASC").Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

func (g *GormPosts) Create(ctx context.Context, p models.Post) (models.Post, error) {
	p.Normalize()
	if err := validatePost(p); err != nil {
		return models.Post{}, err
	}

	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("LOCK TABLE posts IN SHARE ROW EXCLUSIVE MODE").Error; err != nil {
			return fmt.Errorf("lock posts: %w", err)
		}
		var maxID int
		if err := tx.Model(&models.Post{}).Select("COALESCE(MAX(id), 0)").Scan(&maxID).Error; err != nil {
			return fmt.Errorf("next post id: %w", err)
		}
		p.ID = maxID + 1
		p.Likes = 0
		p.Comments = []string{}
		p.CreatedAt = time.Now()
		return tx.Create(&p).Error
	})
	if err != nil {
		return models.Post{}, fmt.Errorf("create post: %w", err)
	}
	return p, nil
}

func (g *GormPosts) Like(ctx context.Context, id int) (models.Post, error) {
	db := g.db.WithContext(ctx)
	res := db.Model(&models.Post{}).Where("id = ?", id).UpdateColumn("likes", gorm.Expr("likes + 1"))
	if res.Error != nil {
		return models.Post{}, fmt.Errorf("like post %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return models.Post{}, ErrPostNotFound
	}
	return firstByID[models.Post](db, id, ErrPostNotFound)
}

func (g *GormPosts) Comment(ctx context.Context, id int, text string) (models.Post, error) {
	text, err := validateComment(text)
	if err != nil {
		return models.Post{}, err
	}

	var p models.Post
	err = g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&p).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		if err != nil {
			return err
		}
		p.Comments = append(p.Comments, text)
		return tx.Model(&p).Select("comments").Updates(&p).Error
	})
	if errors.Is(err, ErrPostNotFound) {
		return models.Post{}, err
	}
	if err != nil {
		return models.Post{}, fmt.Errorf("comment on post %d: %w", id, err)
	}
	return p, nil
}

// GormModeration keeps the moderation desk in PostgreSQL.
type GormModeration struct {
	db *gorm.DB
}

func NewGormModeration(db *gorm.DB) *GormModeration {
	return &GormModeration{db: db}
}

func (g *GormModeration) Queue(ctx context.Context) (models.ModerationQueue, error) {
	db := g.db.WithContext(ctx)
	var q models.ModerationQueue
	if err := db.Order("id").Find(&q.Advisors).Error; err != nil {
		return q, fmt.Errorf("list advisors: %w", err)
	}
	if err := db.Order("id").Find(&q.Complaints).Error; err != nil {
		return q, fmt.Errorf("list complaints: %w", err)
	}
	if err := db.Order("id").Find(&q.FlaggedUsers).Error; err != nil {
		return q, fmt.Errorf("list flagged users: %w", err)
	}
	return q, nil
}

func (g *GormModeration) ApproveAdvisor(ctx context.Context, id int) (models.AdvisorApplication, error) {
	return setColumn[models.AdvisorApplication](g.db.WithContext(ctx), id, "status", models.AdvisorApproved)
}

func (g *GormModeration) CloseComplaint(ctx context.Context, id int) (models.Complaint, error) {
	return setColumn[models.Complaint](g.db.WithContext(ctx), id, "status", models.ComplaintClosed)
}

func (g *GormModeration) RemoveUser(ctx context.Context, id int) (models.FlaggedUser, error) {
	return setColumn[models.FlaggedUser](g.db.WithContext(ctx), id, "removed", true)
}

// setColumn sets one column on the row with id and returns the row.
func setColumn[T any](db *gorm.DB, id int, column string, value any) (T, error) {
	var zero T
	res := db.Model(new(T)).Where("id = ?", id).Update(column, value)
	if res.Error != nil {
		return zero, fmt.Errorf("update %s: %w", column, res.Error)
	}
	if res.RowsAffected == 0 {
		return zero, ErrCaseNotFound
	}
	return firstByID[T](db, id, ErrCaseNotFound)
}

func firstByID[T any](db *gorm.DB, id int, notFound error) (T, error) {
	var row T
	err := db.Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return row, notFound
	}
	if err != nil {
		return row, fmt.Errorf("reload %d: %w", id, err)
	}
	return row, nil
}
