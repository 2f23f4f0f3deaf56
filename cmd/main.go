package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lshigami/examlens/config"
	"github.com/lshigami/examlens/database"
	_ "github.com/lshigami/examlens/docs" // Swagger docs
	"github.com/lshigami/examlens/internal/controller"
	"github.com/lshigami/examlens/internal/llm"
	"github.com/lshigami/examlens/internal/logger"
	"github.com/lshigami/examlens/internal/metrics"
	"github.com/lshigami/examlens/internal/repository"
	"github.com/lshigami/examlens/internal/service"
	"github.com/lshigami/examlens/internal/storage"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title examlens API
// @version 1.0
// @description Upload AP exam PDFs, extract their multiple-choice questions with an AI model, and take timed attempts with AI-resolved answer keys.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "examlens",
		Short:         "Exam PDF question extraction and practice API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	f := root.PersistentFlags()
	f.String("port", "", "HTTP port (SERVER_PORT)")
	f.String("mode", "", "gin mode: debug or release (SERVER_MODE)")
	f.String("log-level", "", "Log level (LOG_LEVEL)")
	f.String("log-file", "", "Rotating log file path (LOG_FILE)")
	for key, flag := range map[string]string{
		"SERVER_PORT": "port",
		"SERVER_MODE": "mode",
		"LOG_LEVEL":   "log-level",
		"LOG_FILE":    "log-file",
	} {
		_ = viper.BindPFlag(key, f.Lookup(flag))
	}

	serve := serveCmd()
	root.AddCommand(serve, migrateCmd())
	root.RunE = serve.RunE
	return root
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fx.New(
				fx.Provide(
					config.NewConfig,
					database.NewDatabase,
					storage.NewArchive,
					llm.NewExtractor,
					llm.NewSolver,
					NewGinEngine,
				),

				fx.Provide(
					repository.NewUploadRepository,
					repository.NewQuestionRepository,
					repository.NewAttemptRepository,
					repository.NewAttemptAnswerRepository,
				),

				fx.Provide(
					service.NewExtractionService,
					service.NewExamService,
					service.NewAttemptService,
					service.NewResolutionService,
				),

				fx.Provide(
					controller.NewExamController,
					controller.NewAttemptController,
					controller.NewHealthController,
					func(exams *controller.ExamController, attempts *controller.AttemptController, health *controller.HealthController, cfg *config.Config) *controller.Controller {
						return controller.NewController(exams, attempts, health, cfg.Limits.ExtractPerMinute)
					},
				),

				fx.Invoke(ConfigureLogging),
				fx.Invoke(database.AutoMigrate),
				fx.Invoke(CloseModelClients),
				fx.Invoke(RegisterRoutesAndStartServer),
			)

			if err := app.Start(context.Background()); err != nil {
				log.Error().Err(err).Msg("Failed to start application")
				return err
			}
			<-app.Done()
			log.Info().Msg("Application shutting down gracefully...")

			stopCtx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
			defer cancel()
			return app.Stop(stopCtx)
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewConfig()
			if err != nil {
				return err
			}
			logger.Configure(cfg)
			db, err := database.NewDatabase(cfg)
			if err != nil {
				return err
			}
			if sqlDB, err := db.DB(); err == nil {
				defer sqlDB.Close()
			}
			return database.AutoMigrate(db)
		},
	}
}

func ConfigureLogging(cfg *config.Config) {
	logger.Configure(cfg)
	metrics.Init()
}

func NewGinEngine(cfg *config.Config) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()
	r.MaxMultipartMemory = 8 << 20

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())
	r.Use(metrics.MetricsMiddleware())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/metrics", metrics.PrometheusHandler())

	return r
}

// CloseModelClients releases the model connections when the app stops.
func CloseModelClients(lc fx.Lifecycle, extractor llm.Extractor, solver llm.Solver) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			for _, c := range []any{extractor, solver} {
				if closer, ok := c.(io.Closer); ok {
					if err := closer.Close(); err != nil {
						log.Warn().Err(err).Msg("Closing model client failed")
					}
				}
			}
			return nil
		},
	})
}

// RegisterRoutesAndStartServer mounts the API and ties the HTTP server to the
// fx lifecycle. Stopping drains requests first, then waits for pending PDF
// archive writes.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	ctrl *controller.Controller,
	extraction service.ExtractionService,
	db *gorm.DB,
) {
	ctrl.RegisterRoutes(router)

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
		// No write timeout: extraction holds the request while the model reads the PDF.
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("examlens API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			err := server.Shutdown(ctx)

			done := make(chan struct{})
			go func() {
				extraction.Wait()
				close(done)
			}()
			select {
			case <-done:
			case <-ctx.Done():
				log.Warn().Msg("Gave up waiting for PDF archive writes")
			}

			if sqlDB, dbErr := db.DB(); dbErr == nil {
				_ = sqlDB.Close()
			}
			return err
		},
	})
}
