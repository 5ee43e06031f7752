package entities

import (
	"errors"
	"strings"
)

// RecordingType distinguishes read-aloud text exercises from free speech.
type RecordingType string

const (
	RecordingTypeText  RecordingType = "Text"
	RecordingTypeAudio RecordingType = "Audio"
)

// SharePreference is the user's choice of which artifacts to share.
type SharePreference string

const (
	ShareNone      SharePreference = "none"
	ShareWordCloud SharePreference = "wordCloud"
	ShareAudio     SharePreference = "audio"
	ShareBoth      SharePreference = "both"
)

// IncludesWordCloud reports whether the preference covers word-cloud sharing.
func (p SharePreference) IncludesWordCloud() bool {
	return p == ShareWordCloud || p == ShareBoth
}

// IncludesAudio reports whether the preference covers audio sharing.
func (p SharePreference) IncludesAudio() bool {
	return p == ShareAudio || p == ShareBoth
}

// Score is one optional named score attached to a recording.
type Score struct {
	Name  *string `json:"name" bson:"name,omitempty"`
	Value *string `json:"value" bson:"value,omitempty"`
}

// Submission is a single recording handed over by the mobile app. It is
// transient: the pipeline consumes it and persists an Analysis plus any
// Shares. (UserID, DateRecorded) uniquely identifies one in-flight or
// completed job from the client's perspective.
type Submission struct {
	UserID       string
	DateRecorded string
	Type         RecordingType
	Duration     int // seconds
	Scores       [3]Score
	Share        SharePreference
	Audio        []byte
}

// Validate checks the submission before it is accepted onto the queue.
// Duration must be positive so the WPM calculation is always defined.
func (s *Submission) Validate() error {
	if s.UserID == "" {
		return errors.New("user ID is required")
	}
	if s.DateRecorded == "" {
		return errors.New("dateRecorded is required")
	}
	if s.Type != RecordingTypeText && s.Type != RecordingTypeAudio {
		return errors.New("type must be Text or Audio")
	}
	if s.Duration <= 0 {
		return errors.New("duration must be positive")
	}
	switch s.Share {
	case ShareNone, ShareWordCloud, ShareAudio, ShareBoth:
	default:
		return errors.New("invalid share preference")
	}
	if len(s.Audio) == 0 {
		return errors.New("audio payload is required")
	}
	return nil
}

// BaseFilename derives a unique, filesystem-safe artifact name from the
// owner and the recording timestamp.
func (s *Submission) BaseFilename() string {
	r := strings.NewReplacer(" ", "_", ":", "-")
	return s.UserID + "_" + r.Replace(s.DateRecorded)
}
