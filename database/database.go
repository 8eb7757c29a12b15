package database

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"gorm.io/gorm"

	"fund-insights/models"
)

var (
	ErrInvalidBatchSize = fmt.Errorf("invalid batch size")
	ErrInvalidData      = fmt.Errorf("invalid data, expected slice")
)

// AutoMigrate creates or updates the catalog, education hub and moderation
// schema.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Fund{},
		&models.Post{},
		&models.AdvisorApplication{},
		&models.Complaint{},
		&models.FlaggedUser{},
	)
}

// CreateInBatches inserts a slice of records in chunks of batchSize inside a
// single transaction.
func CreateInBatches(db *gorm.DB, data interface{}, batchSize int) error {
	if batchSize <= 0 {
		return ErrInvalidBatchSize
	}

	slice := reflect.ValueOf(data)
	if slice.Kind() != reflect.Slice {
		return ErrInvalidData
	}

	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	total := slice.Len()
	for i := 0; i < total; i += batchSize {
		end := min(i+batchSize, total)

		chunk := slice.Slice(i, end).Interface()
		if err := tx.Create(chunk).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("batch insert failed: %w", err)
		}
	}

	return tx.Commit().Error
}

// SeedCatalog inserts funds when the catalog table is empty. It reports how
// many funds were inserted.
func SeedCatalog(ctx context.Context, db *gorm.DB, funds []models.Fund) (int, error) {
	var count int64
	if err := db.WithContext(ctx).Model(&models.Fund{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count funds: %w", err)
	}
	if count > 0 || len(funds) == 0 {
		return 0, nil
	}

	if err := CreateInBatches(db.WithContext(ctx), funds, 100); err != nil {
		return 0, err
	}
	return len(funds), nil
}

// SeedCommunity loads the education posts and the moderation lists into
// their tables when each is empty. Seeded posts share one creation time so
// they list in seed order.
func SeedCommunity(ctx context.Context, db *gorm.DB, posts []models.Post, q models.ModerationQueue) (int, error) {
	now := time.Now()
	seeded := make([]models.Post, len(posts))
	for i, p := range posts {
		p.CreatedAt = now
		seeded[i] = p
	}

	tables := []struct {
		model any
		rows  any
		n     int
	}{
		{&models.Post{}, seeded, len(seeded)},
		{&models.AdvisorApplication{}, q.Advisors, len(q.Advisors)},
		{&models.Complaint{}, q.Complaints, len(q.Complaints)},
		{&models.FlaggedUser{}, q.FlaggedUsers, len(q.FlaggedUsers)},
	}

	inserted := 0
	for _, t := range tables {
		var count int64
		if err := db.WithContext(ctx).Model(t.model).Count(&count).Error; err != nil {
			return inserted, fmt.Errorf("count %T: %w", t.model, err)
		}
		if count > 0 || t.n == 0 {
			continue
		}
		if err := CreateInBatches(db.WithContext(ctx), t.rows, 100); err != nil {
			return inserted, err
		}
		inserted += t.n
	}
	return inserted, nil
}
