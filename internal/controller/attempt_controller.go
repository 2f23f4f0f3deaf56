package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/examlens/internal/dto"
	"github.com/lshigami/examlens/internal/service"
)

type AttemptController struct {
	attemptSvc    service.AttemptService
	resolutionSvc service.ResolutionService
}

func NewAttemptController(attemptSvc service.AttemptService, resolutionSvc service.ResolutionService) *AttemptController {
	return &AttemptController{attemptSvc: attemptSvc, resolutionSvc: resolutionSvc}
}

// Start godoc
// @Summary Start an attempt
// @Tags attempts
// @Accept json
// @Produce json
// @Param request body dto.StartAttemptRequest true "Exam and user"
// @Success 201 {object} dto.AttemptDetail
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 403 {object} dto.ErrorResponse "Exam not published"
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Failure 409 {object} dto.ErrorResponse "Exam has no questions"
// @Router /attempts [post]
func (ctrl *AttemptController) Start(c *gin.Context) {
	var req dto.StartAttemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err, "Invalid start request")
		return
	}
	attempt, err := ctrl.attemptSvc.Start(req)
	if err != nil {
		respondError(c, err, "Failed to start attempt")
		return
	}
	c.JSON(http.StatusCreated, attempt)
}

// SubmitAnswer godoc
// @Summary Save an answer
// @Description Records or replaces the answer for one question. A null userAnswer clears it.
// @Tags attempts
// @Accept json
// @Produce json
// @Param request body dto.SubmitAnswerRequest true "Answer"
// @Success 200 {object} dto.AnswerView
// @Failure 400 {object} dto.ErrorResponse "Invalid letter or completed attempt"
// @Failure 404 {object} dto.ErrorResponse "Attempt or question not found"
// @Router /attempts/answer [post]
func (ctrl *AttemptController) SubmitAnswer(c *gin.Context) {
	var req dto.SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err, "Invalid answer request")
		return
	}
	answer, err := ctrl.attemptSvc.SubmitAnswer(req)
	if err != nil {
		respondError(c, err, "Failed to save answer")
		return
	}
	c.JSON(http.StatusOK, answer)
}

// Complete godoc
// @Summary Complete an attempt
// @Description Infers missing answer keys, scores every question and finalizes the attempt. Runs once per attempt.
// @Tags attempts
// @Accept json
// @Produce json
// @Param request body dto.CompleteAttemptRequest true "Attempt"
// @Success 200 {object} dto.CompletionResponse
// @Failure 400 {object} dto.ErrorResponse "Already completed"
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /attempts/complete [post]
func (ctrl *AttemptController) Complete(c *gin.Context) {
	var req dto.CompleteAttemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err, "Invalid complete request")
		return
	}
	result, err := ctrl.resolutionSvc.Complete(c.Request.Context(), req.AttemptID)
	if err != nil {
		respondError(c, err, "Failed to complete attempt")
		return
	}
	c.JSON(http.StatusOK, result)
}

// Get godoc
// @Summary Get an attempt
// @Tags attempts
// @Produce json
// @Param attempt_id path string true "Attempt ID"
// @Success 200 {object} dto.AttemptDetail
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Router /attempts/{attempt_id} [get]
func (ctrl *AttemptController) Get(c *gin.Context) {
	attempt, err := ctrl.attemptSvc.Get(c.Param("attempt_id"))
	if err != nil {
		respondError(c, err, "Failed to get attempt")
		return
	}
	c.JSON(http.StatusOK, attempt)
}
