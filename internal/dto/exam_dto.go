package dto

import "time"

type ExtractResponse struct {
	ExamID string `json:"examId"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// ExamSummary is used for listing uploads.
type ExamSummary struct {
	ID            string    `json:"id"`
	OwnerID       string    `json:"ownerId"`
	Filename      string    `json:"filename"`
	Subject       string    `json:"subject"`
	Published     bool      `json:"published"`
	HasPDF        bool      `json:"hasPdf"`
	QuestionCount int       `json:"questionCount"`
	CreatedAt     time.Time `json:"createdAt"`
}

// RenderHints tell the viewer how to show a question's reference material.
type RenderHints struct {
	Kind          string `json:"kind"`
	ReferenceHTML string `json:"referenceHtml,omitempty"`
	HasLeftPanel  bool   `json:"hasLeftPanel"`
}

type QuestionView struct {
	ID             uint        `json:"id"`
	QuestionNumber int         `json:"questionNumber"`
	ContentType    string      `json:"contentType"`
	Stem           string      `json:"stem"`
	Reference      *string     `json:"reference"`
	OptionA        *string     `json:"optionA"`
	OptionB        *string     `json:"optionB"`
	OptionC        *string     `json:"optionC"`
	OptionD        *string     `json:"optionD"`
	OptionE        *string     `json:"optionE"`
	HasAnswerKey   bool        `json:"hasAnswerKey"`
	PageNumber     *int        `json:"pageNumber"`
	Precondition   *string     `json:"precondition"`
	Render         RenderHints `json:"render"`
}

type ExamDetail struct {
	ExamSummary
	Questions []QuestionView `json:"questions"`
}
