package controller

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/examlens/internal/apperr"
	"github.com/lshigami/examlens/internal/dto"
	"github.com/lshigami/examlens/internal/service"
)

// multipartOverhead leaves room for the form fields around the PDF.
const multipartOverhead = 1 << 20

type ExamController struct {
	extractionSvc service.ExtractionService
	examSvc       service.ExamService
}

func NewExamController(extractionSvc service.ExtractionService, examSvc service.ExamService) *ExamController {
	return &ExamController{extractionSvc: extractionSvc, examSvc: examSvc}
}

func uploadedFile(fh *multipart.FileHeader) *service.UploadedFile {
	return &service.UploadedFile{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}

// Extract godoc
// @Summary Upload an exam PDF
// @Description Extracts up to questionCount multiple-choice questions from the PDF with the AI model and stores them as a new exam.
// @Tags exams
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Exam PDF (max 50 MB)"
// @Param subject formData string true "AP_COMPUTER_SCIENCE_A, AP_STATISTICS, AP_CALCULUS_AB, AP_MACROECONOMICS or AP_US_HISTORY"
// @Param questionCount formData int true "Maximum number of questions to keep"
// @Param userEmail formData string true "Owner email"
// @Success 201 {object} dto.ExtractResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid upload"
// @Failure 401 {object} dto.ErrorResponse "Missing user"
// @Failure 422 {object} dto.ErrorResponse "No questions found"
// @Failure 429 {object} dto.ErrorResponse "Too many uploads"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Failure 502 {object} dto.ErrorResponse "AI model failure"
// @Router /exams [post]
func (ctrl *ExamController) Extract(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, service.MaxPDFBytes+multipartOverhead)

	in := service.ExtractInput{}
	fh, err := c.FormFile("file")
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		respondError(c, apperr.Validation("The PDF is larger than 50 MB."), "Upload body too large")
		return
	case err == nil:
		in.File = uploadedFile(fh)
	}
	in.Subject = c.PostForm("subject")
	in.QuestionCount = c.PostForm("questionCount")
	in.UserEmail = c.PostForm("userEmail")

	id, err := ctrl.extractionSvc.Extract(c.Request.Context(), in)
	if err != nil {
		respondError(c, err, "Extraction failed")
		return
	}
	c.JSON(http.StatusCreated, dto.ExtractResponse{ExamID: id})
}

// ListByOwner godoc
// @Summary List my exams
// @Tags exams
// @Produce json
// @Param userEmail query string true "Owner email"
// @Success 200 {array} dto.ExamSummary
// @Failure 401 {object} dto.ErrorResponse "Missing user"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /exams [get]
func (ctrl *ExamController) ListByOwner(c *gin.Context) {
	exams, err := ctrl.examSvc.ListByOwner(c.Query("userEmail"))
	if err != nil {
		respondError(c, err, "Failed to list exams")
		return
	}
	c.JSON(http.StatusOK, exams)
}

// ListPublished godoc
// @Summary List published exams
// @Tags exams
// @Produce json
// @Success 200 {array} dto.ExamSummary
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /exams/published [get]
func (ctrl *ExamController) ListPublished(c *gin.Context) {
	exams, err := ctrl.examSvc.ListPublished()
	if err != nil {
		respondError(c, err, "Failed to list published exams")
		return
	}
	c.JSON(http.StatusOK, exams)
}

// Get godoc
// @Summary Get an exam with its questions
// @Description Questions are ordered and carry render hints for their reference material.
// @Tags exams
// @Produce json
// @Param exam_id path string true "Exam ID"
// @Param userEmail query string false "Viewer email, required for unpublished exams"
// @Success 200 {object} dto.ExamDetail
// @Failure 403 {object} dto.ErrorResponse "Exam not published"
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /exams/{exam_id} [get]
func (ctrl *ExamController) Get(c *gin.Context) {
	exam, err := ctrl.examSvc.Get(c.Param("exam_id"), c.Query("userEmail"))
	if err != nil {
		respondError(c, err, "Failed to get exam")
		return
	}
	c.JSON(http.StatusOK, exam)
}

// SetPublished godoc
// @Summary Publish or unpublish an exam
// @Tags exams
// @Accept json
// @Produce json
// @Param exam_id path string true "Exam ID"
// @Param request body dto.PublishRequest true "Owner and flag"
// @Success 200 {object} dto.ExamSummary
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Router /exams/{exam_id}/publish [patch]
func (ctrl *ExamController) SetPublished(c *gin.Context) {
	var req dto.PublishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err, "Invalid publish request")
		return
	}
	summary, err := ctrl.examSvc.SetPublished(c.Param("exam_id"), req)
	if err != nil {
		respondError(c, err, "Failed to change publish flag")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Delete godoc
// @Summary Delete an exam
// @Description Removes the exam, its questions, attempts and answers, and the archived PDF.
// @Tags exams
// @Param exam_id path string true "Exam ID"
// @Param userEmail query string true "Owner email"
// @Success 204
// @Failure 401 {object} dto.ErrorResponse "Missing user"
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Router /exams/{exam_id} [delete]
func (ctrl *ExamController) Delete(c *gin.Context) {
	if err := ctrl.examSvc.Delete(c.Request.Context(), c.Param("exam_id"), c.Query("userEmail")); err != nil {
		respondError(c, err, "Failed to delete exam")
		return
	}
	c.Status(http.StatusNoContent)
}

// Page godoc
// @Summary Get one page of the original PDF
// @Tags exams
// @Produce application/pdf
// @Param exam_id path string true "Exam ID"
// @Param page path int true "1-based page number"
// @Param userEmail query string false "Viewer email, required for unpublished exams"
// @Success 200 {file} binary
// @Failure 400 {object} dto.ErrorResponse "Page out of range"
// @Failure 403 {object} dto.ErrorResponse "Exam not published"
// @Failure 404 {object} dto.ErrorResponse "No archived PDF"
// @Router /exams/{exam_id}/pages/{page} [get]
func (ctrl *ExamController) Page(c *gin.Context) {
	page, err := strconv.Atoi(c.Param("page"))
	if err != nil {
		badRequest(c, err, "Invalid page number")
		return
	}
	data, err := ctrl.examSvc.Page(c.Request.Context(), c.Param("exam_id"), c.Query("userEmail"), page)
	if err != nil {
		respondError(c, err, "Failed to render page")
		return
	}
	c.Header("Cache-Control", "private, max-age=3600")
	c.Data(http.StatusOK, "application/pdf", data)
}
