package repository

import (
	"github.com/lshigami/examlens/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AttemptAnswerRepository interface {
	WithTx(tx *gorm.DB) AttemptAnswerRepository
	Upsert(answer *model.AttemptAnswer) error
	FindByAttemptID(attemptID string) ([]model.AttemptAnswer, error)
	SaveResolved(answers []model.AttemptAnswer) error
}

type attemptAnswerRepository struct {
	db *gorm.DB
}

func NewAttemptAnswerRepository(db *gorm.DB) AttemptAnswerRepository {
	return &attemptAnswerRepository{db: db}
}

func (r *attemptAnswerRepository) WithTx(tx *gorm.DB) AttemptAnswerRepository {
	return &attemptAnswerRepository{db: tx}
}

// Upsert writes the user's selection for (attempt, question), updating the
// existing row when there is one.
func (r *attemptAnswerRepository) Upsert(answer *model.AttemptAnswer) error {
	return r.db.Omit("Question").Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "attempt_id"}, {Name: "question_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"selected_answer", "is_flagged", "answered_at", "updated_at"}),
	}).Create(answer).Error
}

func (r *attemptAnswerRepository) FindByAttemptID(attemptID string) ([]model.AttemptAnswer, error) {
	var answers []model.AttemptAnswer
	if err := r.db.Where("attempt_id = ?", attemptID).Order("question_id ASC").Find(&answers).Error; err != nil {
		return nil, err
	}
	return answers, nil
}

// SaveResolved writes scoring results: existing rows get their AI answer and
// correctness updated, rows without an ID are inserted.
func (r *attemptAnswerRepository) SaveResolved(answers []model.AttemptAnswer) error {
	var fresh []model.AttemptAnswer
	for i := range answers {
		a := &answers[i]
		if a.ID == 0 {
			fresh = append(fresh, *a)
			continue
		}
		err := r.db.Model(&model.AttemptAnswer{}).Where("id = ?", a.ID).Updates(map[string]any{
			"ai_answer":  a.AIAnswer,
			"is_correct": a.IsCorrect,
		}).Error
		if err != nil {
			return err
		}
	}
	if len(fresh) == 0 {
		return nil
	}
	return r.db.Omit("Question").Create(&fresh).Error
}
