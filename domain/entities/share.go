package entities

import "time"

// ShareKind is the kind of artifact a Share exposes.
type ShareKind string

const (
	ShareKindWordCloud ShareKind = "Word Cloud"
	ShareKindAudio     ShareKind = "Audio"
)

// Share is a user-facing record exposing a generated artifact plus the
// scores entered for the recording. Zero, one or two shares are created per
// submission, depending on the share preference and the transcript content.
// Scores may later be rewritten through the score-update endpoint; nothing
// else about a share ever changes.
type Share struct {
	UserID       string        `bson:"user_id"`
	DateRecorded string        `bson:"date_recorded"`
	Type         RecordingType `bson:"type"`
	Duration     int           `bson:"duration"`
	WPM          int           `bson:"wpm"`
	Scores       [3]Score      `bson:"scores"`
	FileType     ShareKind     `bson:"file_type"`
	FilePath     string        `bson:"file_path"`
	CreatedAt    time.Time     `bson:"created_at"`
}
