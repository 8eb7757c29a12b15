package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"fund-insights/models"
)

// GormCatalog reads and appends funds in PostgreSQL.
type GormCatalog struct {
	db *gorm.DB
}

func NewGormCatalog(db *gorm.DB) *GormCatalog {
	return &GormCatalog{db: db}
}

func (g *GormCatalog) List(ctx context.Context) ([]models.Fund, error) {
	var funds []models.Fund
	if err := g.db.WithContext(ctx).Order("id").Find(&funds).Error; err != nil {
		return nil, fmt.Errorf("list funds: %w", err)
	}
	return funds, nil
}

func (g *GormCatalog) Get(ctx context.Context, id int) (models.Fund, error) {
	var f models.Fund
	err := g.db.WithContext(ctx).Where("id = ?", id).First(&f).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Fund{}, ErrFundNotFound
	}
	if err != nil {
		return models.Fund{}, fmt.Errorf("get fund %d: %w", id, err)
	}
	return f, nil
}

func (g *GormCatalog) Append(ctx context.Context, f models.Fund) (models.Fund, error) {
	if err := validate(f); err != nil {
		return models.Fund{}, err
	}

	tx := g.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return models.Fund{}, tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	// one appender at a time, so MAX(id)+1 stays unique
	if err := tx.Exec("LOCK TABLE funds IN SHARE ROW EXCLUSIVE MODE").Error; err != nil {
		tx.Rollback()
		return models.Fund{}, fmt.Errorf("lock funds: %w", err)
	}

	var maxID int
	if err := tx.Model(&models.Fund{}).Select("COALESCE(MAX(id), 0)").Scan(&maxID).Error; err != nil {
		tx.Rollback()
		return models.Fund{}, fmt.Errorf("next fund id: %w", err)
	}

	f.ID = maxID + 1
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now()
	}
	if err := tx.Create(&f).Error; err != nil {
		tx.Rollback()
		return models.Fund{}, fmt.Errorf("create fund: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return models.Fund{}, fmt.Errorf("commit fund: %w", err)
	}
	return f, nil
}
