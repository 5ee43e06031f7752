package api

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/mobilev/server/domain/entities"
	"github.com/mobilev/server/internal/auth"
	"github.com/mobilev/server/internal/jobs"
	"github.com/mobilev/server/usecase"
)

// transcribeAnalyse accepts a recording and enqueues the analysis job. The
// acknowledgement is returned before any pipeline stage runs; the app
// learns the outcome by polling get-analysis.
func transcribeAnalyse(c echo.Context, svc *usecase.AnalysisService, dispatcher *jobs.Dispatcher, logger *zap.Logger) error {
	var req SubmissionRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("failed to bind submission request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request format",
		})
	}

	duration, err := strconv.Atoi(req.Duration)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_duration",
			Message: "Duration must be a whole number of seconds",
		})
	}

	audio, err := base64.StdEncoding.DecodeString(req.AudioFile)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_audio",
			Message: "Audio payload must be base64 encoded",
		})
	}

	sub := &entities.Submission{
		UserID:       auth.UserID(c),
		DateRecorded: req.DateRecorded,
		Type:         entities.RecordingType(req.Type),
		Duration:     duration,
		Scores: [3]entities.Score{
			{Name: optional(req.Score1Name), Value: optional(req.Score1Value)},
			{Name: optional(req.Score2Name), Value: optional(req.Score2Value)},
			{Name: optional(req.Score3Name), Value: optional(req.Score3Value)},
		},
		Share: entities.SharePreference(req.ShareType),
		Audio: audio,
	}

	if err := sub.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_submission",
			Message: err.Error(),
		})
	}

	jobID, err := dispatcher.Enqueue(func(ctx context.Context) {
		svc.Process(ctx, sub)
	})
	if err != nil {
		if errors.Is(err, jobs.ErrQueueFull) {
			logger.Warn("submission rejected: queue full", zap.String("userID", sub.UserID))
			return c.JSON(http.StatusServiceUnavailable, ErrorResponse{
				Error:   "server_busy",
				Message: "Too many recordings are being processed, try again shortly",
			})
		}
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to accept recording",
		})
	}

	logger.Info("submission accepted",
		zap.String("userID", sub.UserID),
		zap.String("dateRecorded", sub.DateRecorded),
		zap.String("jobID", jobID))

	return c.String(http.StatusOK, "successful")
}

// getAnalysis reports the completion status for one recording.
func getAnalysis(c echo.Context, svc *usecase.AnalysisService, logger *zap.Logger) error {
	var req PollRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request format",
		})
	}

	result, err := svc.GetResult(c.Request().Context(), auth.UserID(c), req.DateRecorded)
	if err != nil {
		logger.Error("failed to look up analysis", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to look up analysis",
		})
	}

	if !result.HasPayload {
		return c.JSON(http.StatusOK, StatusResponse{Status: result.Status})
	}

	return c.JSON(http.StatusOK, AnalysisResponse{
		Status:     result.Status,
		WPM:        result.WPM,
		Transcript: result.Transcript,
		WordCloud:  result.WordCloud,
	})
}

// updateRecordingScores rewrites score values on the recording's shares.
func updateRecordingScores(c echo.Context, svc *usecase.AnalysisService, logger *zap.Logger) error {
	var req UpdateScoresRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request format",
		})
	}

	values := [3]*string{
		optional(req.NewScore1Value),
		optional(req.NewScore2Value),
		optional(req.NewScore3Value),
	}

	if err := svc.UpdateScores(c.Request().Context(), auth.UserID(c), req.DateRecorded, values); err != nil {
		logger.Error("failed to update scores", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to update scores",
		})
	}

	return c.String(http.StatusOK, "successful")
}

// optional maps the app's empty-string-as-absent convention to nil.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
