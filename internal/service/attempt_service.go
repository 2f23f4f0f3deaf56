package service

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/jinzhu/copier"
	"github.com/lshigami/examlens/internal/apperr"
	"github.com/lshigami/examlens/internal/dto"
	"github.com/lshigami/examlens/internal/model"
	"github.com/lshigami/examlens/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type AttemptService interface {
	Start(req dto.StartAttemptRequest) (*dto.AttemptDetail, error)
	SubmitAnswer(req dto.SubmitAnswerRequest) (*dto.AnswerView, error)
	Get(attemptID string) (*dto.AttemptDetail, error)
}

type attemptService struct {
	uploadRepo   repository.UploadRepository
	questionRepo repository.QuestionRepository
	attemptRepo  repository.AttemptRepository
	answerRepo   repository.AttemptAnswerRepository
	now          func() time.Time
}

func NewAttemptService(
	uploadRepo repository.UploadRepository,
	questionRepo repository.QuestionRepository,
	attemptRepo repository.AttemptRepository,
	answerRepo repository.AttemptAnswerRepository,
) AttemptService {
	return &attemptService{
		uploadRepo:   uploadRepo,
		questionRepo: questionRepo,
		attemptRepo:  attemptRepo,
		answerRepo:   answerRepo,
		now:          time.Now,
	}
}

// Start opens an attempt and snapshots the question count. Unpublished
// exams can only be taken by their owner.
func (s *attemptService) Start(req dto.StartAttemptRequest) (*dto.AttemptDetail, error) {
	owner := strings.TrimSpace(req.UserEmail)
	if owner == "" {
		return nil, apperr.Unauthenticated("Please sign in before starting an exam.")
	}
	upload, err := s.uploadRepo.FindByID(req.ExamID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Exam not found.")
	}
	if err != nil {
		return nil, apperr.Persistence("Could not load the exam.", err)
	}
	if !upload.Published && upload.OwnerID != owner {
		return nil, apperr.Forbidden("This exam is not published.")
	}

	count, err := s.questionRepo.CountByUploadID(upload.ID)
	if err != nil {
		return nil, apperr.Persistence("Could not load the exam questions.", err)
	}
	if count == 0 {
		return nil, apperr.Conflict(http.StatusConflict, "This exam has no questions.")
	}

	attempt := &model.Attempt{
		UploadID:       upload.ID,
		OwnerID:        owner,
		TotalQuestions: int(count),
		StartedAt:      s.now(),
	}
	if err := s.attemptRepo.Create(attempt); err != nil {
		log.Error().Err(err).Str("upload_id", upload.ID).Msg("Failed to create attempt")
		return nil, apperr.Persistence("Could not start the attempt. Please try again.", err)
	}
	log.Info().Str("attempt_id", attempt.ID).Str("upload_id", upload.ID).Msg("Attempt started")

	var resp dto.AttemptDetail
	copier.Copy(&resp, attempt)
	resp.Answers = []dto.AnswerView{}
	return &resp, nil
}

// normalizeSelection accepts A-E in any case, or nil/blank to clear.
func normalizeSelection(raw *string) (*string, error) {
	if raw == nil {
		return nil, nil
	}
	l := strings.ToUpper(strings.TrimSpace(*raw))
	if l == "" {
		return nil, nil
	}
	if !model.IsLetter(l) {
		return nil, apperr.Validation("Answer must be a letter from A to E, or null.")
	}
	return &l, nil
}

// SubmitAnswer records the selection for one question, replacing any earlier
// one for the same question.
func (s *attemptService) SubmitAnswer(req dto.SubmitAnswerRequest) (*dto.AnswerView, error) {
	selected, err := normalizeSelection(req.UserAnswer)
	if err != nil {
		return nil, err
	}

	attempt, err := s.attemptRepo.FindByID(req.AttemptID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Attempt not found.")
	}
	if err != nil {
		return nil, apperr.Persistence("Could not load the attempt.", err)
	}
	if attempt.IsCompleted() {
		return nil, apperr.Conflict(http.StatusBadRequest, "This attempt is already completed.")
	}

	question, err := s.questionRepo.FindByID(req.QuestionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Question not found.")
	}
	if err != nil {
		return nil, apperr.Persistence("Could not load the question.", err)
	}
	if question.UploadID != attempt.UploadID {
		return nil, apperr.Validation("This question is not part of the attempt's exam.")
	}

	now := s.now()
	answer := &model.AttemptAnswer{
		AttemptID:      attempt.ID,
		QuestionID:     question.ID,
		SelectedAnswer: selected,
		IsFlagged:      req.IsFlagged,
		AnsweredAt:     &now,
	}
	if err := s.answerRepo.Upsert(answer); err != nil {
		log.Error().Err(err).Str("attempt_id", attempt.ID).Uint("question_id", question.ID).Msg("Failed to save answer")
		return nil, apperr.Persistence("Could not save your answer. Please try again.", err)
	}

	var resp dto.AnswerView
	copier.Copy(&resp, answer)
	return &resp, nil
}

func (s *attemptService) Get(attemptID string) (*dto.AttemptDetail, error) {
	attempt, err := s.attemptRepo.FindByIDWithAnswers(attemptID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Attempt not found.")
	}
	if err != nil {
		return nil, apperr.Persistence("Could not load the attempt.", err)
	}

	var resp dto.AttemptDetail
	copier.Copy(&resp, attempt)
	if resp.Answers == nil {
		resp.Answers = []dto.AnswerView{}
	}
	return &resp, nil
}
