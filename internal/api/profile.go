package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/mobilev/server/domain/repositories"
	"github.com/mobilev/server/internal/auth"
)

// getNames returns the user's first name and their SRO's display name.
func getNames(c echo.Context, userRepo repositories.UserRepository, logger *zap.Logger) error {
	ctx := c.Request().Context()

	user, err := userRepo.GetByID(ctx, auth.UserID(c))
	if err != nil {
		logger.Error("failed to load user profile", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to load profile",
		})
	}
	if user == nil {
		return c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "unknown_user",
			Message: "No profile found for this account",
		})
	}

	resp := NamesResponse{FirstName: user.FirstName}

	sro, err := userRepo.GetSRO(ctx, user.SROID)
	if err != nil {
		logger.Error("failed to load SRO profile", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to load profile",
		})
	}
	if sro != nil {
		resp.SRO = sro.FullName()
	}

	return c.JSON(http.StatusOK, resp)
}

// getScores returns the score definitions allocated to the user, keyed by
// score ID.
func getScores(c echo.Context, userRepo repositories.UserRepository, logger *zap.Logger) error {
	user, err := userRepo.GetByID(c.Request().Context(), auth.UserID(c))
	if err != nil {
		logger.Error("failed to load user scores", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to load scores",
		})
	}
	if user == nil {
		return c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "unknown_user",
			Message: "No profile found for this account",
		})
	}

	scores := make(map[string]string, len(user.Scores))
	for _, def := range user.Scores {
		scores[def.ScoreID] = def.ScoreName
	}

	return c.JSON(http.StatusOK, scores)
}
