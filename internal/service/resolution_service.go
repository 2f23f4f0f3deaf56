package service

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/lshigami/examlens/internal/apperr"
	"github.com/lshigami/examlens/internal/dto"
	"github.com/lshigami/examlens/internal/llm"
	"github.com/lshigami/examlens/internal/metrics"
	"github.com/lshigami/examlens/internal/model"
	"github.com/lshigami/examlens/internal/prompt"
	"github.com/lshigami/examlens/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const (
	// ResolveBatchSize is how many unknown questions go into one solve call.
	ResolveBatchSize = 8

	solveTimeout = 90 * time.Second
)

type ResolutionService interface {
	Complete(ctx context.Context, attemptID string) (*dto.CompletionResponse, error)
}

type resolutionService struct {
	db           *gorm.DB
	uploadRepo   repository.UploadRepository
	questionRepo repository.QuestionRepository
	attemptRepo  repository.AttemptRepository
	answerRepo   repository.AttemptAnswerRepository
	solver       llm.Solver
	now          func() time.Time
}

func NewResolutionService(
	db *gorm.DB,
	uploadRepo repository.UploadRepository,
	questionRepo repository.QuestionRepository,
	attemptRepo repository.AttemptRepository,
	answerRepo repository.AttemptAnswerRepository,
	solver llm.Solver,
) ResolutionService {
	return &resolutionService{
		db:           db,
		uploadRepo:   uploadRepo,
		questionRepo: questionRepo,
		attemptRepo:  attemptRepo,
		answerRepo:   answerRepo,
		solver:       solver,
		now:          time.Now,
	}
}

// Complete finalizes an attempt: it infers missing answer keys, rescores
// every answer, backfills untouched questions and stamps the aggregates. An
// attempt is completed at most once.
func (s *resolutionService) Complete(ctx context.Context, attemptID string) (*dto.CompletionResponse, error) {
	attempt, err := s.attemptRepo.FindByID(attemptID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Attempt not found.")
	}
	if err != nil {
		return nil, apperr.Persistence("Could not load the attempt.", err)
	}
	if attempt.IsCompleted() {
		return nil, apperr.Conflict(http.StatusBadRequest, "This attempt has already been completed.")
	}

	upload, err := s.uploadRepo.FindByID(attempt.UploadID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("This exam no longer exists.")
	}
	if err != nil {
		return nil, apperr.Persistence("Could not load the exam.", err)
	}
	questions, err := s.questionRepo.FindByUploadID(upload.ID)
	if err != nil {
		return nil, apperr.Persistence("Could not load the exam questions.", err)
	}

	var unknown []model.Question
	for _, q := range questions {
		if !q.HasKnownAnswer() {
			unknown = append(unknown, q)
		}
	}
	resolved := s.resolve(ctx, upload.Subject, unknown)

	existing, err := s.answerRepo.FindByAttemptID(attempt.ID)
	if err != nil {
		return nil, apperr.Persistence("Could not load the answers.", err)
	}
	merged, byQuestion := mergeAnswers(attempt.ID, questions, existing, resolved)

	completedAt := s.now()
	score := ScoreAnswers(merged, attempt.StartedAt, completedAt)
	attempt.CompletedAt = &completedAt
	attempt.TimeSpentSeconds = score.TimeSpentSeconds
	attempt.CorrectCount = score.Correct
	attempt.IncorrectCount = score.Incorrect
	attempt.UnansweredCount = score.Unanswered

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.answerRepo.WithTx(tx).SaveResolved(merged); err != nil {
			return err
		}
		return s.attemptRepo.WithTx(tx).Complete(attempt)
	})
	if errors.Is(err, repository.ErrAlreadyCompleted) {
		return nil, apperr.Conflict(http.StatusBadRequest, "This attempt has already been completed.")
	}
	if err != nil {
		log.Error().Err(err).Str("attempt_id", attempt.ID).Msg("Failed to finalize attempt")
		return nil, apperr.Persistence("Could not save the results. Please try again.", err)
	}

	log.Info().
		Str("attempt_id", attempt.ID).
		Int("total", score.Total).
		Int("correct", score.Correct).
		Int("unknown_keys", len(unknown)).
		Int("resolved", len(resolved)).
		Msg("Attempt completed")
	return score.Response(Breakdown(questions, byQuestion)), nil
}

// mergeAnswers rescores existing answers and synthesizes an unanswered row
// for every question the user never touched. The AI letter is only recorded
// for questions without a known key.
func mergeAnswers(attemptID string, questions []model.Question, existing []model.AttemptAnswer, resolved map[uint]*string) ([]model.AttemptAnswer, map[uint]*model.AttemptAnswer) {
	byQuestion := make(map[uint]*model.AttemptAnswer, len(existing))
	for i := range existing {
		byQuestion[existing[i].QuestionID] = &existing[i]
	}

	merged := make([]model.AttemptAnswer, 0, len(questions))
	for i := range questions {
		q := &questions[i]
		a, ok := byQuestion[q.ID]
		if !ok {
			a = &model.AttemptAnswer{AttemptID: attemptID, QuestionID: q.ID}
		}
		if q.HasKnownAnswer() {
			a.AIAnswer = nil
		} else {
			a.AIAnswer = resolved[q.ID]
		}
		a.IsCorrect = IsCorrect(a.SelectedAnswer, EffectiveKey(q, a))
		merged = append(merged, *a)
	}

	out := make(map[uint]*model.AttemptAnswer, len(merged))
	for i := range merged {
		out[merged[i].QuestionID] = &merged[i]
	}
	return merged, out
}

// resolve asks the solver for the unknown keys, one batch at a time. A failed
// or unreadable batch leaves its questions unresolved and the next batch
// still runs.
func (s *resolutionService) resolve(ctx context.Context, subject model.Subject, unknown []model.Question) map[uint]*string {
	resolved := make(map[uint]*string)
	if len(unknown) == 0 {
		return resolved
	}
	if s.solver == nil {
		log.Warn().Int("unknown", len(unknown)).Msg("No resolver configured; unknown answer keys stay unresolved")
		return resolved
	}

	for start := 0; start < len(unknown); start += ResolveBatchSize {
		end := min(start+ResolveBatchSize, len(unknown))
		batch := unknown[start:end]

		items := make([]prompt.SolveItem, len(batch))
		for i := range batch {
			items[i] = prompt.SolveItemFromQuestion(&batch[i])
		}

		callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), solveTimeout)
		began := time.Now()
		raw, err := s.solver.Solve(callCtx, prompt.BuildSolvePrompt(subject, items))
		cancel()
		metrics.ObserveModelCall("resolution", began, err)
		if err != nil {
			log.Error().Err(err).Int("batch_start", start).Int("batch_size", len(batch)).Msg("Resolution batch failed; leaving it unresolved")
			continue
		}

		letters, stage := llm.ParseAnswerLetters(raw, len(batch))
		metrics.ResolutionParseStage.WithLabelValues(string(stage)).Inc()
		switch stage {
		case llm.StageLenient:
			log.Warn().Int("batch_start", start).Msg("Resolution batch was not a JSON array; scanned letters from text")
		case llm.StageNone:
			log.Error().Int("batch_start", start).Str("raw", truncateUTF8(raw, 200)).Msg("Resolution batch had no usable letters")
		}
		for i, l := range letters {
			if l != nil {
				resolved[batch[i].ID] = l
			}
		}
	}
	return resolved
}
