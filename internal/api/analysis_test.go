package api

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/mobilev/server/domain/entities"
	"github.com/mobilev/server/internal/auth"
	"github.com/mobilev/server/internal/jobs"
	"github.com/mobilev/server/usecase"
)

type stubConverter struct{}

func (stubConverter) ToMP3(ctx context.Context, raw []byte) ([]byte, error) {
	return []byte("mp3"), nil
}

type stubTranscriber struct{ text string }

func (s stubTranscriber) Transcribe(ctx context.Context, audio []byte, cred entities.Credential) (string, error) {
	return s.text, nil
}

type stubRenderer struct{}

func (stubRenderer) Render(transcript string) ([]byte, error) {
	return []byte("png"), nil
}

type memBlobStore struct {
	mu    sync.Mutex
	files map[string][]byte
}

func (m *memBlobStore) Put(path string, raw []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = raw
	return nil
}

func (m *memBlobStore) Get(path string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.files[path], nil
}

type memAnalysisRepo struct {
	mu      sync.Mutex
	records []*entities.Analysis
}

func (m *memAnalysisRepo) Create(ctx context.Context, analysis *entities.Analysis) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, analysis)
	return nil
}

func (m *memAnalysisRepo) GetByUserAndDate(ctx context.Context, userID, dateRecorded string) (*entities.Analysis, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.records {
		if r.UserID == userID && r.DateRecorded == dateRecorded {
			return r, nil
		}
	}
	return nil, nil
}

type memShareRepo struct {
	mu          sync.Mutex
	shares      []*entities.Share
	updatedUser string
	updatedDate string
}

func (m *memShareRepo) Create(ctx context.Context, share *entities.Share) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shares = append(m.shares, share)
	return nil
}

func (m *memShareRepo) UpdateScores(ctx context.Context, userID, dateRecorded string, values [3]*string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updatedUser = userID
	m.updatedDate = dateRecorded
	return 1, nil
}

type stubCredentialRepo struct{}

func (stubCredentialRepo) Get(ctx context.Context) (*entities.Credential, error) {
	return &entities.Credential{APIKey: "key", ServiceURL: "https://stt.example.com"}, nil
}

type passthroughTx struct{}

func (passthroughTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type stubUserRepo struct {
	user *entities.User
	sro  *entities.SRO
}

func (s *stubUserRepo) GetByID(ctx context.Context, id string) (*entities.User, error) {
	if s.user != nil && s.user.ID == id {
		return s.user, nil
	}
	return nil, nil
}

func (s *stubUserRepo) GetSRO(ctx context.Context, id string) (*entities.SRO, error) {
	return s.sro, nil
}

type apiFixture struct {
	e          *echo.Echo
	dispatcher *jobs.Dispatcher
	analyses   *memAnalysisRepo
	shares     *memShareRepo
	token      string
}

func newAPIFixture(t *testing.T) *apiFixture {
	auth.Configure("test-secret")
	token, err := auth.GenerateUserToken("user-1")
	require.NoError(t, err)

	logger := zaptest.NewLogger(t)
	analyses := &memAnalysisRepo{}
	shares := &memShareRepo{}

	svc := usecase.NewAnalysisService(
		stubConverter{},
		stubTranscriber{text: "one two three four"},
		stubRenderer{},
		&memBlobStore{files: make(map[string][]byte)},
		analyses, shares,
		stubCredentialRepo{}, passthroughTx{},
		"shares", time.Second, logger,
	)

	dispatcher := jobs.NewDispatcher(1, 8, logger)
	dispatcher.Start(context.Background())

	userRepo := &stubUserRepo{
		user: &entities.User{
			ID:        "user-1",
			FirstName: "Alex",
			SROID:     "sro-1",
			Scores: []entities.ScoreDefinition{
				{ScoreID: "score1", ScoreName: "Clarity"},
				{ScoreID: "score2", ScoreName: "Pace"},
			},
		},
		sro: &entities.SRO{ID: "sro-1", FirstName: "Jordan", LastName: "Reyes"},
	}

	e := echo.New()
	InitRoutes(e, svc, dispatcher, userRepo, logger)

	return &apiFixture{e: e, dispatcher: dispatcher, analyses: analyses, shares: shares, token: token}
}

func (f *apiFixture) request(method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set("Authorization", "Bearer "+f.token)
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func submissionBody(shareType string) string {
	body, _ := json.Marshal(SubmissionRequest{
		DateRecorded: "2024-03-01 10:30:00",
		Type:         "Text",
		Duration:     "60",
		Score1Name:   "Clarity",
		Score1Value:  "7",
		ShareType:    shareType,
		AudioFile:    base64.StdEncoding.EncodeToString([]byte("raw-audio")),
	})
	return string(body)
}

func TestTranscribeAnalyseAcceptsAndCompletes(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.request(http.MethodPost, "/api/v1/transcribe-analyse", submissionBody("both"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "successful", rec.Body.String())

	// Stop drains the queue, so the job has finished by the time it returns.
	f.dispatcher.Stop()

	rec = f.request(http.MethodPost, "/api/v1/get-analysis", `{"dateRecorded":"2024-03-01 10:30:00"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp AnalysisResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "4", resp.WPM)
	assert.Equal(t, "one two three four", resp.Transcript)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("png")), resp.WordCloud)

	f.shares.mu.Lock()
	defer f.shares.mu.Unlock()
	assert.Len(t, f.shares.shares, 2)
}

func TestTranscribeAnalyseRejectsUnauthenticated(t *testing.T) {
	f := newAPIFixture(t)
	defer f.dispatcher.Stop()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transcribe-analyse", strings.NewReader(submissionBody("none")))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTranscribeAnalyseValidation(t *testing.T) {
	f := newAPIFixture(t)
	defer f.dispatcher.Stop()

	cases := []struct {
		name string
		body string
	}{
		{"non-numeric duration", `{"dateRecorded":"2024-03-01 10:30:00","type":"Text","duration":"sixty","shareType":"none","audioFile":"AAAA"}`},
		{"bad base64", `{"dateRecorded":"2024-03-01 10:30:00","type":"Text","duration":"60","shareType":"none","audioFile":"!!!"}`},
		{"unknown type", `{"dateRecorded":"2024-03-01 10:30:00","type":"Video","duration":"60","shareType":"none","audioFile":"AAAA"}`},
		{"zero duration", `{"dateRecorded":"2024-03-01 10:30:00","type":"Text","duration":"0","shareType":"none","audioFile":"AAAA"}`},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec := f.request(http.MethodPost, "/api/v1/transcribe-analyse", c.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestGetAnalysisPending(t *testing.T) {
	f := newAPIFixture(t)
	defer f.dispatcher.Stop()

	rec := f.request(http.MethodPost, "/api/v1/get-analysis", `{"dateRecorded":"2099-01-01 00:00:00"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "incomplete", resp["status"])
	assert.NotContains(t, resp, "WPM", "pending responses carry only the status")
}

func TestUpdateRecordingScores(t *testing.T) {
	f := newAPIFixture(t)
	defer f.dispatcher.Stop()

	rec := f.request(http.MethodPost, "/api/v1/update-recording-scores",
		`{"dateRecorded":"2024-03-01 10:30:00","new_score1_value":"9"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "successful", rec.Body.String())

	// The update targets the token's user, not anything client-supplied.
	f.shares.mu.Lock()
	defer f.shares.mu.Unlock()
	assert.Equal(t, "user-1", f.shares.updatedUser)
	assert.Equal(t, "2024-03-01 10:30:00", f.shares.updatedDate)
}

func TestGetNames(t *testing.T) {
	f := newAPIFixture(t)
	defer f.dispatcher.Stop()

	rec := f.request(http.MethodGet, "/api/v1/get-names", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp NamesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Alex", resp.FirstName)
	assert.Equal(t, "Jordan Reyes", resp.SRO)
}

func TestGetScores(t *testing.T) {
	f := newAPIFixture(t)
	defer f.dispatcher.Stop()

	rec := f.request(http.MethodGet, "/api/v1/get-scores", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, map[string]string{"score1": "Clarity", "score2": "Pace"}, resp)
}
