package repository

import (
	"github.com/lshigami/examlens/internal/model"
	"gorm.io/gorm"
)

// UploadSummary is an upload row plus the number of questions it holds.
type UploadSummary struct {
	model.Upload
	QuestionCount int
}

type UploadRepository interface {
	WithTx(tx *gorm.DB) UploadRepository
	Create(upload *model.Upload) error
	FindByID(id string) (*model.Upload, error)
	FindByOwnerWithQuestionCount(ownerID string) ([]UploadSummary, error)
	FindPublishedWithQuestionCount() ([]UploadSummary, error)
	SetPDFPath(id, path string) error
	SetPublished(id string, published bool) error
	Delete(id string) error
}

type uploadRepository struct {
	db *gorm.DB
}

func NewUploadRepository(db *gorm.DB) UploadRepository {
	return &uploadRepository{db: db}
}

func (r *uploadRepository) WithTx(tx *gorm.DB) UploadRepository {
	return &uploadRepository{db: tx}
}

func (r *uploadRepository) Create(upload *model.Upload) error {
	return r.db.Omit("Questions").Create(upload).Error
}

func (r *uploadRepository) FindByID(id string) (*model.Upload, error) {
	var upload model.Upload
	if err := r.db.First(&upload, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &upload, nil
}

const withQuestionCount = "uploads.*, (SELECT COUNT(*) FROM questions WHERE questions.upload_id = uploads.id) AS question_count"

func (r *uploadRepository) FindByOwnerWithQuestionCount(ownerID string) ([]UploadSummary, error) {
	var results []UploadSummary
	err := r.db.Model(&model.Upload{}).
		Select(withQuestionCount).
		Where("uploads.owner_id = ?", ownerID).
		Order("uploads.created_at DESC").
		Scan(&results).Error
	return results, err
}

func (r *uploadRepository) FindPublishedWithQuestionCount() ([]UploadSummary, error) {
	var results []UploadSummary
	err := r.db.Model(&model.Upload{}).
		Select(withQuestionCount).
		Where("uploads.published = ?", true).
		Order("uploads.created_at DESC").
		Scan(&results).Error
	return results, err
}

func (r *uploadRepository) SetPDFPath(id, path string) error {
	return r.db.Model(&model.Upload{}).Where("id = ?", id).Update("pdf_path", path).Error
}

func (r *uploadRepository) SetPublished(id string, published bool) error {
	res := r.db.Model(&model.Upload{}).Where("id = ?", id).Update("published", published)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the upload with its questions, its attempts and their
// answers, children first.
func (r *uploadRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		attemptIDs := tx.Model(&model.Attempt{}).Select("id").Where("upload_id = ?", id)
		if err := tx.Where("attempt_id IN (?)", attemptIDs).Delete(&model.AttemptAnswer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("upload_id = ?", id).Delete(&model.Attempt{}).Error; err != nil {
			return err
		}
		if err := tx.Where("upload_id = ?", id).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&model.Upload{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
