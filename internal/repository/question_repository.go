package repository

import (
	"github.com/lshigami/examlens/internal/model"
	"gorm.io/gorm"
)

type QuestionRepository interface {
	WithTx(tx *gorm.DB) QuestionRepository
	CreateBatch(questions []model.Question) error
	FindByID(id uint) (*model.Question, error)
	FindByUploadID(uploadID string) ([]model.Question, error)
	CountByUploadID(uploadID string) (int64, error)
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) WithTx(tx *gorm.DB) QuestionRepository {
	return &questionRepository{db: tx}
}

// CreateBatch inserts every question in one statement.
func (r *questionRepository) CreateBatch(questions []model.Question) error {
	if len(questions) == 0 {
		return nil
	}
	return r.db.Create(&questions).Error
}

func (r *questionRepository) FindByID(id uint) (*model.Question, error) {
	var question model.Question
	if err := r.db.First(&question, id).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) FindByUploadID(uploadID string) ([]model.Question, error) {
	var questions []model.Question
	if err := r.db.Where("upload_id = ?", uploadID).Order("position ASC").Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) CountByUploadID(uploadID string) (int64, error) {
	var n int64
	err := r.db.Model(&model.Question{}).Where("upload_id = ?", uploadID).Count(&n).Error
	return n, err
}
