package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jinzhu/copier"
	"github.com/lshigami/examlens/internal/apperr"
	"github.com/lshigami/examlens/internal/classifier"
	"github.com/lshigami/examlens/internal/dto"
	"github.com/lshigami/examlens/internal/extraction"
	"github.com/lshigami/examlens/internal/model"
	"github.com/lshigami/examlens/internal/pdfpage"
	"github.com/lshigami/examlens/internal/repository"
	"github.com/lshigami/examlens/internal/storage"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type ExamService interface {
	ListByOwner(ownerID string) ([]dto.ExamSummary, error)
	ListPublished() ([]dto.ExamSummary, error)
	Get(examID, viewerID string) (*dto.ExamDetail, error)
	SetPublished(examID string, req dto.PublishRequest) (*dto.ExamSummary, error)
	Delete(ctx context.Context, examID, ownerID string) error
	Page(ctx context.Context, examID, viewerID string, page int) ([]byte, error)
}

type examService struct {
	uploadRepo   repository.UploadRepository
	questionRepo repository.QuestionRepository
	archive      storage.Archive
}

func NewExamService(uploadRepo repository.UploadRepository, questionRepo repository.QuestionRepository, archive storage.Archive) ExamService {
	return &examService{uploadRepo: uploadRepo, questionRepo: questionRepo, archive: archive}
}

func toSummary(u *model.Upload, questionCount int) dto.ExamSummary {
	return dto.ExamSummary{
		ID:            u.ID,
		OwnerID:       u.OwnerID,
		Filename:      u.Filename,
		Subject:       string(u.Subject),
		Published:     u.Published,
		HasPDF:        u.PDFPath != nil,
		QuestionCount: questionCount,
		CreatedAt:     u.CreatedAt,
	}
}

func toSummaries(rows []repository.UploadSummary) []dto.ExamSummary {
	out := make([]dto.ExamSummary, 0, len(rows))
	for i := range rows {
		out = append(out, toSummary(&rows[i].Upload, rows[i].QuestionCount))
	}
	return out
}

func (s *examService) ListByOwner(ownerID string) ([]dto.ExamSummary, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, apperr.Unauthenticated("Please sign in to see your exams.")
	}
	rows, err := s.uploadRepo.FindByOwnerWithQuestionCount(ownerID)
	if err != nil {
		return nil, apperr.Persistence("Could not load your exams.", err)
	}
	return toSummaries(rows), nil
}

func (s *examService) ListPublished() ([]dto.ExamSummary, error) {
	rows, err := s.uploadRepo.FindPublishedWithQuestionCount()
	if err != nil {
		return nil, apperr.Persistence("Could not load published exams.", err)
	}
	return toSummaries(rows), nil
}

func (s *examService) findUpload(examID string) (*model.Upload, error) {
	upload, err := s.uploadRepo.FindByID(examID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Exam not found.")
	}
	if err != nil {
		return nil, apperr.Persistence("Could not load the exam.", err)
	}
	return upload, nil
}

// findViewable loads an exam the viewer may see: a published one, or their own.
func (s *examService) findViewable(examID, viewerID string) (*model.Upload, error) {
	upload, err := s.findUpload(examID)
	if err != nil {
		return nil, err
	}
	if !upload.Published && upload.OwnerID != strings.TrimSpace(viewerID) {
		return nil, apperr.Forbidden("This exam is not published.")
	}
	return upload, nil
}

// Get returns the exam with its questions in order, each carrying render
// hints for its reference material.
func (s *examService) Get(examID, viewerID string) (*dto.ExamDetail, error) {
	upload, err := s.findViewable(examID, viewerID)
	if err != nil {
		return nil, err
	}
	questions, err := s.questionRepo.FindByUploadID(upload.ID)
	if err != nil {
		return nil, apperr.Persistence("Could not load the exam questions.", err)
	}

	detail := &dto.ExamDetail{
		ExamSummary: toSummary(upload, len(questions)),
		Questions:   make([]dto.QuestionView, 0, len(questions)),
	}
	for i := range questions {
		detail.Questions = append(detail.Questions, questionView(&questions[i], upload.PDFPath != nil))
	}
	return detail, nil
}

func questionView(q *model.Question, hasPDF bool) dto.QuestionView {
	var v dto.QuestionView
	copier.Copy(&v, q)
	v.QuestionNumber = q.Position
	v.HasAnswerKey = q.HasKnownAnswer()

	// Older rows kept the question sentence inside the code block.
	if v.Reference != nil && (v.Stem == "" || v.Stem == extraction.GenericStem) && classifier.IsCodeLike(*v.Reference) {
		if code, stem, ok := classifier.SplitTrailingQuestion(*v.Reference); ok {
			v.Reference = &code
			v.Stem = stem
		}
	}

	res := classifier.ClassifyOptional(v.Reference)
	v.Render = dto.RenderHints{
		Kind:          string(res.Kind),
		ReferenceHTML: res.HTML,
		HasLeftPanel:  res.HasPanel() || (hasPDF && q.PageNumber != nil),
	}
	return v
}

// SetPublished is owner-only.
func (s *examService) SetPublished(examID string, req dto.PublishRequest) (*dto.ExamSummary, error) {
	upload, err := s.findUpload(examID)
	if err != nil {
		return nil, err
	}
	if upload.OwnerID != strings.TrimSpace(req.UserEmail) {
		return nil, apperr.Forbidden("Only the owner can publish this exam.")
	}
	if err := s.uploadRepo.SetPublished(upload.ID, req.Published); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Exam not found.")
		}
		return nil, apperr.Persistence("Could not update the exam.", err)
	}
	upload.Published = req.Published

	count, err := s.questionRepo.CountByUploadID(upload.ID)
	if err != nil {
		return nil, apperr.Persistence("Could not load the exam questions.", err)
	}
	summary := toSummary(upload, int(count))
	log.Info().Str("upload_id", upload.ID).Bool("published", req.Published).Msg("Exam publish flag changed")
	return &summary, nil
}

// Delete is owner-only. It removes the exam and everything under it, then
// the archived PDF on a best-effort basis.
func (s *examService) Delete(ctx context.Context, examID, ownerID string) error {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return apperr.Unauthenticated("Please sign in to delete an exam.")
	}
	upload, err := s.findUpload(examID)
	if err != nil {
		return err
	}
	if upload.OwnerID != ownerID {
		return apperr.Forbidden("Only the owner can delete this exam.")
	}
	if err := s.uploadRepo.Delete(upload.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Exam not found.")
		}
		log.Error().Err(err).Str("upload_id", upload.ID).Msg("Failed to delete exam")
		return apperr.Persistence("Could not delete the exam.", err)
	}

	if upload.PDFPath != nil && s.archive != nil {
		delCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
		defer cancel()
		if err := s.archive.Delete(delCtx, *upload.PDFPath); err != nil {
			log.Warn().Err(err).Str("upload_id", upload.ID).Msg("Could not remove archived PDF")
		}
	}
	log.Info().Str("upload_id", upload.ID).Msg("Exam deleted")
	return nil
}

// Page cuts one page out of the archived PDF.
func (s *examService) Page(ctx context.Context, examID, viewerID string, page int) ([]byte, error) {
	upload, err := s.findViewable(examID, viewerID)
	if err != nil {
		return nil, err
	}
	if upload.PDFPath == nil || s.archive == nil {
		return nil, apperr.NotFound("No PDF is archived for this exam.")
	}

	data, err := s.archive.Get(ctx, *upload.PDFPath)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, apperr.NotFound("No PDF is archived for this exam.")
	}
	if err != nil {
		return nil, apperr.Persistence("Could not read the archived PDF.", err)
	}

	out, err := pdfpage.Extract(data, page)
	if errors.Is(err, pdfpage.ErrPageOutOfRange) {
		return nil, apperr.Validation("Page is out of range.")
	}
	if err != nil {
		return nil, apperr.Persistence("Could not render this page.", err)
	}
	return out, nil
}
