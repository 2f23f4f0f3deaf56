// Package testutil opens throwaway databases for repository and service
// tests.
package testutil

import (
	"testing"

	"github.com/lshigami/examlens/database"
	"github.com/lshigami/examlens/internal/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB returns a migrated in-memory SQLite database. It holds a single
// connection, so code under test must use the transaction handle inside a
// transaction.
func NewDB(tb testing.TB) *gorm.DB {
	tb.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		tb.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		tb.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	tb.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.AutoMigrate(db); err != nil {
		tb.Fatalf("migrate: %v", err)
	}
	return db
}

func ptr[T any](v T) *T { return &v }

// SeedUpload inserts an upload owned by owner with questions whose answer
// keys are given in order. An empty key leaves the question unresolved.
func SeedUpload(tb testing.TB, db *gorm.DB, owner string, subject model.Subject, keys ...string) (*model.Upload, []model.Question) {
	tb.Helper()
	upload := &model.Upload{OwnerID: owner, Filename: "exam.pdf", Subject: subject}
	if err := db.Create(upload).Error; err != nil {
		tb.Fatalf("seed upload: %v", err)
	}
	if len(keys) == 0 {
		return upload, nil
	}
	questions := make([]model.Question, len(keys))
	for i, key := range keys {
		q := model.Question{
			UploadID:    upload.ID,
			Position:    i + 1,
			ContentType: "text",
			Stem:        "Question stem",
			OptionA:     ptr("first"),
			OptionB:     ptr("second"),
			OptionC:     ptr("third"),
		}
		if key != "" {
			q.CorrectAnswer = ptr(key)
		}
		questions[i] = q
	}
	if err := db.Create(&questions).Error; err != nil {
		tb.Fatalf("seed questions: %v", err)
	}
	return upload, questions
}
