package repository

import (
	"errors"

	"github.com/lshigami/examlens/internal/model"
	"gorm.io/gorm"
)

// ErrAlreadyCompleted is returned when a completion loses the race against
// another one.
var ErrAlreadyCompleted = errors.New("attempt already completed")

type AttemptRepository interface {
	WithTx(tx *gorm.DB) AttemptRepository
	Create(attempt *model.Attempt) error
	FindByID(id string) (*model.Attempt, error)
	FindByIDWithAnswers(id string) (*model.Attempt, error)
	Complete(attempt *model.Attempt) error
}

type attemptRepository struct {
	db *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) WithTx(tx *gorm.DB) AttemptRepository {
	return &attemptRepository{db: tx}
}

func (r *attemptRepository) Create(attempt *model.Attempt) error {
	return r.db.Omit("Upload", "Answers").Create(attempt).Error
}

func (r *attemptRepository) FindByID(id string) (*model.Attempt, error) {
	var attempt model.Attempt
	if err := r.db.First(&attempt, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *attemptRepository) FindByIDWithAnswers(id string) (*model.Attempt, error) {
	var attempt model.Attempt
	err := r.db.
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("attempt_answers.question_id ASC")
		}).
		First(&attempt, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

// Complete stamps the completion time and aggregates, but only on an attempt
// that is still open.
func (r *attemptRepository) Complete(attempt *model.Attempt) error {
	res := r.db.Model(&model.Attempt{}).
		Where("id = ? AND completed_at IS NULL", attempt.ID).
		Updates(map[string]any{
			"completed_at":       attempt.CompletedAt,
			"time_spent_seconds": attempt.TimeSpentSeconds,
			"correct_count":      attempt.CorrectCount,
			"incorrect_count":    attempt.IncorrectCount,
			"unanswered_count":   attempt.UnansweredCount,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAlreadyCompleted
	}
	return nil
}
