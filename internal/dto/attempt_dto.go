package dto

import "time"

type AnswerView struct {
	QuestionID     uint       `json:"questionId"`
	SelectedAnswer *string    `json:"userAnswer"`
	IsFlagged      bool       `json:"isFlagged"`
	AIAnswer       *string    `json:"aiAnswer,omitempty"`
	IsCorrect      bool       `json:"isCorrect"`
	AnsweredAt     *time.Time `json:"answeredAt,omitempty"`
}

type AttemptDetail struct {
	ID               string       `json:"attemptId"`
	UploadID         string       `json:"examId"`
	OwnerID          string       `json:"userEmail"`
	TotalQuestions   int          `json:"totalQuestions"`
	StartedAt        time.Time    `json:"startedAt"`
	CompletedAt      *time.Time   `json:"completedAt,omitempty"`
	TimeSpentSeconds int          `json:"timeSpentSeconds"`
	CorrectCount     int          `json:"correctCount"`
	IncorrectCount   int          `json:"incorrectCount"`
	UnansweredCount  int          `json:"unansweredCount"`
	Answers          []AnswerView `json:"answers"`
}

type BreakdownItem struct {
	QuestionNumber int     `json:"questionNumber"`
	UserAnswer     *string `json:"userAnswer"`
	CorrectAnswer  *string `json:"correctAnswer"`
	IsCorrect      bool    `json:"isCorrect"`
}

// CompletionResponse is returned once when an attempt is finalized.
type CompletionResponse struct {
	OK               bool            `json:"ok"`
	Total            int             `json:"total"`
	CorrectCount     int             `json:"correctCount"`
	IncorrectCount   int             `json:"incorrectCount"`
	UnansweredCount  int             `json:"unansweredCount"`
	Percentage       int             `json:"percentage"`
	TimeSpentSeconds int             `json:"timeSpentSeconds"`
	Breakdown        []BreakdownItem `json:"breakdown"`
}
