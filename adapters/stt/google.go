package stt

import (
	"context"
	"fmt"
	"strings"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"go.uber.org/zap"

	"github.com/mobilev/server/domain"
	"github.com/mobilev/server/domain/entities"
	"github.com/mobilev/server/domain/repositories"
)

// GoogleTranscriber uses Google Cloud Speech-to-Text. Authentication goes
// through application default credentials, so the shared credential row is
// ignored by this backend.
type GoogleTranscriber struct {
	languageCode string
	logger       *zap.Logger
}

var _ repositories.Transcriber = (*GoogleTranscriber)(nil)

// NewGoogleTranscriber creates a Google Cloud transcription client.
func NewGoogleTranscriber(languageCode string, logger *zap.Logger) *GoogleTranscriber {
	if languageCode == "" {
		languageCode = "en-GB"
	}
	return &GoogleTranscriber{languageCode: languageCode, logger: logger}
}

// Transcribe performs a synchronous recognize call over the full buffer.
func (g *GoogleTranscriber) Transcribe(ctx context.Context, audio []byte, _ entities.Credential) (string, error) {
	client, err := speech.NewClient(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: creating speech client: %v", domain.ErrTranscription, err)
	}
	defer client.Close()

	resp, err := client.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:     speechpb.RecognitionConfig_MP3,
			LanguageCode: g.languageCode,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audio},
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrTranscription, err)
	}

	var parts []string
	for _, result := range resp.Results {
		if len(result.Alternatives) > 0 {
			parts = append(parts, strings.TrimSpace(result.Alternatives[0].Transcript))
		}
	}

	transcript := strings.TrimSpace(strings.Join(parts, " "))
	g.logger.Info("transcription completed",
		zap.String("backend", "google"),
		zap.Int("results", len(resp.Results)))
	return transcript, nil
}
