package entities

import (
	"math"
	"strings"
	"time"
)

// AnalysisStatus is the terminal status of a processed submission.
type AnalysisStatus string

const (
	AnalysisStatusSuccess AnalysisStatus = "success"
	AnalysisStatusFailed  AnalysisStatus = "failed"
)

// Analysis is the completion record the mobile app polls for. It is written
// exactly once, when the background job reaches a terminal state, and never
// updated afterwards. A missing record means the job is still pending.
type Analysis struct {
	UserID        string         `bson:"user_id"`
	DateRecorded  string         `bson:"date_recorded"`
	Status        AnalysisStatus `bson:"status"`
	WPM           *int           `bson:"wpm,omitempty"`
	Transcript    *string        `bson:"transcript,omitempty"`
	WordCloudPath *string        `bson:"word_cloud_path,omitempty"`
	CreatedAt     time.Time      `bson:"created_at"`
}

// NewFailedAnalysis builds the terminal record for a failed job. All metric
// and artifact fields stay nil so the app stops polling without a payload.
func NewFailedAnalysis(userID, dateRecorded string) *Analysis {
	return &Analysis{
		UserID:       userID,
		DateRecorded: dateRecorded,
		Status:       AnalysisStatusFailed,
		CreatedAt:    time.Now(),
	}
}

// WordCount counts whitespace-delimited tokens in a transcript.
func WordCount(transcript string) int {
	return len(strings.Fields(transcript))
}

// WordsPerMinute computes the rounded speaking rate, with ties rounding to
// the nearest even integer. The caller guarantees seconds is positive
// (submissions with non-positive duration are rejected).
func WordsPerMinute(words, seconds int) int {
	minutes := float64(seconds) / 60
	return int(math.RoundToEven(float64(words) / minutes))
}
