package repositories

import "context"

// AudioConverter normalizes client-supplied audio of arbitrary encoding
// into mp3 bytes suitable for storage and transcription. The returned
// buffer is independently owned; the input is never modified.
type AudioConverter interface {
	ToMP3(ctx context.Context, raw []byte) ([]byte, error)
}
