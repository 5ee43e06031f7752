package stt

import (
	"context"

	"go.uber.org/zap"

	"github.com/mobilev/server/domain/entities"
	"github.com/mobilev/server/domain/repositories"
)

// MockTranscriber returns a canned transcript. Used in tests and for local
// development without service credentials.
type MockTranscriber struct {
	Transcript string
	Err        error
	logger     *zap.Logger
}

var _ repositories.Transcriber = (*MockTranscriber)(nil)

// NewMockTranscriber creates a mock returning a fixed transcript.
func NewMockTranscriber(logger *zap.Logger) *MockTranscriber {
	return &MockTranscriber{
		Transcript: "this is a mock transcription of the submitted recording",
		logger:     logger,
	}
}

func (m *MockTranscriber) Transcribe(ctx context.Context, audio []byte, cred entities.Credential) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	m.logger.Debug("mock transcription", zap.Int("audioSize", len(audio)))
	return m.Transcript, nil
}
