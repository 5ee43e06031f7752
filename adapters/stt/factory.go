package stt

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mobilev/server/domain/repositories"
)

// New selects a transcription backend by name. "watson" is the production
// default; "google" uses Cloud Speech via application default credentials;
// "mock" needs no external service.
func New(provider string, timeout time.Duration, languageCode string, logger *zap.Logger) (repositories.Transcriber, error) {
	switch provider {
	case "", "watson":
		return NewWatsonTranscriber(timeout, logger), nil
	case "google":
		return NewGoogleTranscriber(languageCode, logger), nil
	case "mock":
		return NewMockTranscriber(logger), nil
	default:
		return nil, fmt.Errorf("unknown STT provider: %s", provider)
	}
}
