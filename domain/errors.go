package domain

import "errors"

// Pipeline failure taxonomy. Stage implementations wrap these so the
// orchestrator and the poll handler can branch with errors.Is.
var (
	// ErrDecode means the uploaded audio could not be decoded/converted.
	ErrDecode = errors.New("audio decode failed")

	// ErrTranscription means the external speech-to-text call failed.
	// Exactly one attempt is made; there is no retry distinction.
	ErrTranscription = errors.New("transcription failed")

	// ErrArtifact means a derived artifact (word cloud) could not be generated.
	ErrArtifact = errors.New("artifact generation failed")

	// ErrBlobStore means an encrypted artifact could not be read or written.
	ErrBlobStore = errors.New("blob store failure")
)
