package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/examlens/internal/apperr"
	"github.com/lshigami/examlens/internal/dto"
	"github.com/lshigami/examlens/internal/middleware"
	"github.com/rs/zerolog/log"
)

// Controller groups the API handlers and mounts them on the router.
type Controller struct {
	exams       *ExamController
	attempts    *AttemptController
	health      *HealthController
	uploadLimit int
}

func NewController(exams *ExamController, attempts *AttemptController, health *HealthController, uploadsPerMinute int) *Controller {
	return &Controller{exams: exams, attempts: attempts, health: health, uploadLimit: uploadsPerMinute}
}

func (ctrl *Controller) RegisterRoutes(router *gin.Engine) {
	router.GET("/healthz", ctrl.health.Healthz)

	apiV1 := router.Group("/api/v1")
	{
		exams := apiV1.Group("/exams")
		exams.POST("", middleware.RateLimiter(ctrl.uploadLimit, time.Minute), ctrl.exams.Extract)
		exams.GET("", ctrl.exams.ListByOwner)
		exams.GET("/published", ctrl.exams.ListPublished)
		exams.GET("/:exam_id", ctrl.exams.Get)
		exams.PATCH("/:exam_id/publish", ctrl.exams.SetPublished)
		exams.DELETE("/:exam_id", ctrl.exams.Delete)
		exams.GET("/:exam_id/pages/:page", ctrl.exams.Page)

		attempts := apiV1.Group("/attempts")
		attempts.POST("", ctrl.attempts.Start)
		attempts.POST("/answer", ctrl.attempts.SubmitAnswer)
		attempts.POST("/complete", ctrl.attempts.Complete)
		attempts.GET("/:attempt_id", ctrl.attempts.Get)
	}
}

// respondError writes the client-safe status and message for err. Anything
// that is not a classified failure is logged and reported as a generic 500.
func respondError(c *gin.Context, err error, msg string) {
	status, userMsg := apperr.Describe(err)
	event := log.Warn()
	if status >= http.StatusInternalServerError {
		event = log.Error()
	}
	event.Err(err).Str("path", c.FullPath()).Int("status", status).Msg(msg)
	c.JSON(status, dto.ErrorResponse{Error: userMsg})
}

func badRequest(c *gin.Context, err error, msg string) {
	log.Warn().Err(err).Str("path", c.FullPath()).Msg(msg)
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: msg})
}
