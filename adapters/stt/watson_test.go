package stt

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/mobilev/server/domain"
	"github.com/mobilev/server/domain/entities"
)

func TestWatsonTranscribe(t *testing.T) {
	var gotPath, gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")

		username, password, ok := r.BasicAuth()
		if !ok || username != "apikey" || password != "secret-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"results": [
				{"alternatives": [{"transcript": "hello there ", "confidence": 0.92}], "final": true},
				{"alternatives": [{"transcript": "general kenobi", "confidence": 0.87}], "final": true}
			]
		}`))
	}))
	defer server.Close()

	w := NewWatsonTranscriber(5*time.Second, zaptest.NewLogger(t))
	cred := entities.Credential{APIKey: "secret-key", ServiceURL: server.URL}

	transcript, err := w.Transcribe(context.Background(), []byte("mp3"), cred)
	require.NoError(t, err)
	assert.Equal(t, "hello there general kenobi", transcript)
	assert.Equal(t, "/v1/recognize", gotPath)
	assert.Equal(t, "audio/mp3", gotContentType)
}

func TestWatsonTranscribeEmptyResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": []}`))
	}))
	defer server.Close()

	w := NewWatsonTranscriber(5*time.Second, zaptest.NewLogger(t))
	cred := entities.Credential{APIKey: "secret-key", ServiceURL: server.URL}

	transcript, err := w.Transcribe(context.Background(), []byte("mp3"), cred)
	require.NoError(t, err, "silence is an empty transcript, not an error")
	assert.Empty(t, transcript)
}

func TestWatsonTranscribeServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))
	defer server.Close()

	w := NewWatsonTranscriber(5*time.Second, zaptest.NewLogger(t))
	cred := entities.Credential{APIKey: "secret-key", ServiceURL: server.URL}

	_, err := w.Transcribe(context.Background(), []byte("mp3"), cred)
	assert.ErrorIs(t, err, domain.ErrTranscription)
}

func TestWatsonTranscribeMissingCredentials(t *testing.T) {
	w := NewWatsonTranscriber(5*time.Second, zaptest.NewLogger(t))

	_, err := w.Transcribe(context.Background(), []byte("mp3"), entities.Credential{})
	assert.ErrorIs(t, err, domain.ErrTranscription)
}

func TestWatsonTranscribeContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
	}))
	defer server.Close()

	w := NewWatsonTranscriber(5*time.Second, zaptest.NewLogger(t))
	cred := entities.Credential{APIKey: "secret-key", ServiceURL: server.URL}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := w.Transcribe(ctx, []byte("mp3"), cred)
	assert.ErrorIs(t, err, domain.ErrTranscription)
}
