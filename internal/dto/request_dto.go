package dto

// StartAttemptRequest begins a timed run over an exam.
type StartAttemptRequest struct {
	ExamID    string `json:"examId" binding:"required"`
	UserEmail string `json:"userEmail" binding:"required"`
}

// SubmitAnswerRequest records or changes one answer. A null userAnswer clears
// the selection.
type SubmitAnswerRequest struct {
	AttemptID  string  `json:"attemptId" binding:"required"`
	QuestionID uint    `json:"questionId" binding:"required"`
	UserAnswer *string `json:"userAnswer"`
	IsFlagged  bool    `json:"isFlagged"`
}

type CompleteAttemptRequest struct {
	AttemptID string `json:"attemptId" binding:"required"`
}

type PublishRequest struct {
	UserEmail string `json:"userEmail" binding:"required"`
	Published bool   `json:"published"`
}
