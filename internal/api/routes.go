package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/mobilev/server/domain/repositories"
	"github.com/mobilev/server/internal/auth"
	"github.com/mobilev/server/internal/jobs"
	"github.com/mobilev/server/usecase"
)

// InitRoutes initializes all API routes
func InitRoutes(
	e *echo.Echo,
	analysisService *usecase.AnalysisService,
	dispatcher *jobs.Dispatcher,
	userRepo repositories.UserRepository,
	logger *zap.Logger,
) {
	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"service": "mobilev-server",
		})
	})

	// App API, JWT-protected
	v1 := e.Group("/api/v1", auth.Middleware(logger))

	v1.POST("/transcribe-analyse", func(c echo.Context) error {
		return transcribeAnalyse(c, analysisService, dispatcher, logger)
	})
	v1.POST("/get-analysis", func(c echo.Context) error {
		return getAnalysis(c, analysisService, logger)
	})
	v1.POST("/update-recording-scores", func(c echo.Context) error {
		return updateRecordingScores(c, analysisService, logger)
	})

	v1.GET("/get-names", func(c echo.Context) error {
		return getNames(c, userRepo, logger)
	})
	v1.GET("/get-scores", func(c echo.Context) error {
		return getScores(c, userRepo, logger)
	})
}
