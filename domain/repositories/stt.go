package repositories

import (
	"context"

	"github.com/mobilev/server/domain/entities"
)

// Transcriber abstracts external speech recognition services.
type Transcriber interface {
	// Transcribe converts the full audio buffer to text, including silence
	// and non-speech content. Credentials are supplied per call, and exactly
	// one attempt is made. The caller bounds the wait through ctx.
	Transcribe(ctx context.Context, audio []byte, cred entities.Credential) (string, error)
}
