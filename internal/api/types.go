package api

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// SubmissionRequest is the transcribe-analyse request body. Empty score
// strings mean "not entered".
type SubmissionRequest struct {
	DateRecorded string `json:"dateRecorded"`
	Type         string `json:"type"`
	Duration     string `json:"duration"`
	Score1Name   string `json:"score1_name"`
	Score1Value  string `json:"score1_value"`
	Score2Name   string `json:"score2_name"`
	Score2Value  string `json:"score2_value"`
	Score3Name   string `json:"score3_name"`
	Score3Value  string `json:"score3_value"`
	ShareType    string `json:"shareType"`
	AudioFile    string `json:"audioFile"` // base64
}

// PollRequest is the get-analysis request body.
type PollRequest struct {
	DateRecorded string `json:"dateRecorded"`
}

// AnalysisResponse is the poll payload for a completed recording. Absent
// fields are empty strings, never omitted.
type AnalysisResponse struct {
	Status     string `json:"status"`
	WPM        string `json:"WPM"`
	Transcript string `json:"transcript"`
	WordCloud  string `json:"wordCloud"` // base64 PNG
}

// StatusResponse carries only a status: pending polls and downgraded
// responses for unreadable word clouds.
type StatusResponse struct {
	Status string `json:"status"`
}

// UpdateScoresRequest is the update-recording-scores request body.
type UpdateScoresRequest struct {
	DateRecorded   string `json:"dateRecorded"`
	NewScore1Value string `json:"new_score1_value"`
	NewScore2Value string `json:"new_score2_value"`
	NewScore3Value string `json:"new_score3_value"`
}

// NamesResponse is the get-names payload.
type NamesResponse struct {
	FirstName string `json:"firstName"`
	SRO       string `json:"SRO"`
}
