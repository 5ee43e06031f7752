package stt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mobilev/server/domain"
	"github.com/mobilev/server/domain/entities"
	"github.com/mobilev/server/domain/repositories"
)

const (
	recognizePath  = "/v1/recognize"
	defaultTimeout = 120 * time.Second
)

// WatsonTranscriber calls the IBM Watson speech-to-text HTTP API. The API
// key and service URL come from the shared credential row and are passed in
// per call, never held on the adapter.
type WatsonTranscriber struct {
	client *http.Client
	logger *zap.Logger
}

var _ repositories.Transcriber = (*WatsonTranscriber)(nil)

// NewWatsonTranscriber creates a Watson transcription client. A zero
// timeout falls back to the default of two minutes.
func NewWatsonTranscriber(timeout time.Duration, logger *zap.Logger) *WatsonTranscriber {
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return &WatsonTranscriber{
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// watsonResponse mirrors the recognize endpoint's result payload.
type watsonResponse struct {
	Results []struct {
		Alternatives []struct {
			Transcript string  `json:"transcript"`
			Confidence float64 `json:"confidence"`
		} `json:"alternatives"`
		Final bool `json:"final"`
	} `json:"results"`
}

// Transcribe submits the full mp3 buffer in a single attempt. Network,
// auth and service errors all wrap ErrTranscription; the orchestrator
// treats them uniformly.
func (w *WatsonTranscriber) Transcribe(ctx context.Context, audio []byte, cred entities.Credential) (string, error) {
	if cred.APIKey == "" || cred.ServiceURL == "" {
		return "", fmt.Errorf("%w: transcription credentials are not configured", domain.ErrTranscription)
	}

	url := strings.TrimSuffix(cred.ServiceURL, "/") + recognizePath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(audio))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrTranscription, err)
	}
	req.SetBasicAuth("apikey", cred.APIKey)
	req.Header.Set("Content-Type", "audio/mp3")

	resp, err := w.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrTranscription, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		w.logger.Warn("speech service returned error",
			zap.Int("statusCode", resp.StatusCode),
			zap.String("response", string(body)))
		return "", fmt.Errorf("%w: service returned %d", domain.ErrTranscription, resp.StatusCode)
	}

	var result watsonResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("%w: decoding response: %v", domain.ErrTranscription, err)
	}

	// Silence or non-speech audio yields zero results, which is a valid
	// empty transcript, not an error.
	var parts []string
	for _, r := range result.Results {
		if len(r.Alternatives) > 0 {
			parts = append(parts, strings.TrimSpace(r.Alternatives[0].Transcript))
		}
	}

	transcript := strings.TrimSpace(strings.Join(parts, " "))
	w.logger.Info("transcription completed", zap.Int("words", len(strings.Fields(transcript))))
	return transcript, nil
}
