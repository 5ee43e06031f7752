package auth

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// JWTClaims represents the claims in our JWT token
type JWTClaims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

var jwtSecret []byte

// Configure sets the signing secret. Called once at startup from config.
func Configure(secret string) {
	jwtSecret = []byte(secret)
}

// GenerateUserToken generates a JWT token for an app user
func GenerateUserToken(userID string) (string, error) {
	claims := &JWTClaims{
		UserID: userID,
		Role:   "user",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(7 * 24 * time.Hour)), // 7 days
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// ValidateToken validates a JWT token and returns the claims
func ValidateToken(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return jwtSecret, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrInvalidKey
}

const userIDContextKey = "userID"

// Middleware validates the Bearer token and stores the authenticated user
// ID on the request context.
func Middleware(logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var token string
			header := c.Request().Header.Get("Authorization")
			if len(header) > 7 && header[:7] == "Bearer " {
				token = header[7:]
			}

			if token == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"error":   "missing_token",
					"message": "JWT token is required in Authorization header",
				})
			}

			claims, err := ValidateToken(token)
			if err != nil {
				logger.Warn("request rejected: invalid token", zap.Error(err))
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"error":   "invalid_token",
					"message": "Invalid or expired JWT token",
				})
			}

			if claims.UserID == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"error":   "invalid_token_claims",
					"message": "User ID not found in token",
				})
			}

			c.Set(userIDContextKey, claims.UserID)
			return next(c)
		}
	}
}

// UserID returns the authenticated user ID stored by Middleware.
func UserID(c echo.Context) string {
	id, _ := c.Get(userIDContextKey).(string)
	return id
}
