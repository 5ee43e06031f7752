package entities

import "testing"

func TestWordCount(t *testing.T) {
	cases := []struct {
		transcript string
		want       int
	}{
		{"", 0},
		{"   ", 0},
		{"hello", 1},
		{"hello world", 2},
		{"  spaced   out \t tokens\nacross lines ", 5},
	}

	for _, c := range cases {
		if got := WordCount(c.transcript); got != c.want {
			t.Errorf("WordCount(%q) = %d, want %d", c.transcript, got, c.want)
		}
	}
}

func TestWordsPerMinute(t *testing.T) {
	cases := []struct {
		words   int
		seconds int
		want    int
	}{
		{120, 60, 120},
		{75, 30, 150},
		{0, 60, 0},
		{7, 25, 17},  // 16.8 rounds up
		{1, 120, 0},  // 0.5 ties to even
		{3, 120, 2},  // 1.5 ties to even
		{10, 45, 13}, // 13.33 rounds down
	}

	for _, c := range cases {
		if got := WordsPerMinute(c.words, c.seconds); got != c.want {
			t.Errorf("WordsPerMinute(%d, %d) = %d, want %d", c.words, c.seconds, got, c.want)
		}
	}
}

func TestNewFailedAnalysis(t *testing.T) {
	analysis := NewFailedAnalysis("user-1", "2024-03-01 10:30:00")

	if analysis.Status != AnalysisStatusFailed {
		t.Errorf("Expected status %s, got %s", AnalysisStatusFailed, analysis.Status)
	}
	if analysis.WPM != nil || analysis.Transcript != nil || analysis.WordCloudPath != nil {
		t.Error("Failed analysis must carry no metric or artifact fields")
	}
	if analysis.CreatedAt.IsZero() {
		t.Error("Expected CreatedAt to be set")
	}
}
