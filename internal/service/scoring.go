package service

import (
	"math"
	"time"

	"github.com/lshigami/examlens/internal/dto"
	"github.com/lshigami/examlens/internal/model"
)

// Score holds the aggregates stamped on a completed attempt.
type Score struct {
	Total            int
	Correct          int
	Incorrect        int
	Unanswered       int
	Percentage       int
	TimeSpentSeconds int
}

// ScoreAnswers aggregates final answers. An answer with no selection is
// unanswered; a selection that is not correct is incorrect.
func ScoreAnswers(answers []model.AttemptAnswer, startedAt, completedAt time.Time) Score {
	s := Score{Total: len(answers)}
	for _, a := range answers {
		switch {
		case a.SelectedAnswer == nil:
			s.Unanswered++
		case a.IsCorrect:
			s.Correct++
		default:
			s.Incorrect++
		}
	}
	s.Percentage = Percentage(s.Correct, s.Total)
	s.TimeSpentSeconds = ElapsedSeconds(startedAt, completedAt)
	return s
}

// Percentage is correct/total as a rounded whole percent, 0 for no questions.
func Percentage(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}

// ElapsedSeconds is end minus start in whole seconds, never negative.
func ElapsedSeconds(start, end time.Time) int {
	d := end.Sub(start)
	if d < 0 {
		return 0
	}
	return int(d / time.Second)
}

// EffectiveKey is the letter an answer is scored against: the extracted key
// when known, else the AI-inferred one.
func EffectiveKey(q *model.Question, a *model.AttemptAnswer) *string {
	if q.HasKnownAnswer() {
		return q.CorrectAnswer
	}
	if a != nil {
		return a.AIAnswer
	}
	return nil
}

// IsCorrect reports whether selected matches key. Unanswered is never correct.
func IsCorrect(selected, key *string) bool {
	return selected != nil && key != nil && *selected == *key
}

// Breakdown lists each question in order with the user's letter and the
// letter it was scored against.
func Breakdown(questions []model.Question, answers map[uint]*model.AttemptAnswer) []dto.BreakdownItem {
	items := make([]dto.BreakdownItem, 0, len(questions))
	for i := range questions {
		q := &questions[i]
		a := answers[q.ID]
		item := dto.BreakdownItem{
			QuestionNumber: q.Position,
			CorrectAnswer:  EffectiveKey(q, a),
		}
		if a != nil {
			item.UserAnswer = a.SelectedAnswer
			item.IsCorrect = a.IsCorrect
		}
		items = append(items, item)
	}
	return items
}

func (s Score) Response(breakdown []dto.BreakdownItem) *dto.CompletionResponse {
	return &dto.CompletionResponse{
		OK:               true,
		Total:            s.Total,
		CorrectCount:     s.Correct,
		IncorrectCount:   s.Incorrect,
		UnansweredCount:  s.Unanswered,
		Percentage:       s.Percentage,
		TimeSpentSeconds: s.TimeSpentSeconds,
		Breakdown:        breakdown,
	}
}
