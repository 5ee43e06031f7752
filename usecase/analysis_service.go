package usecase

import (
	"context"
	"encoding/base64"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/mobilev/server/domain"
	"github.com/mobilev/server/domain/entities"
	"github.com/mobilev/server/domain/repositories"
)

// AnalysisService orchestrates the transcription-and-analysis pipeline:
// convert, transcribe, analyse, persist, encrypt-and-store. Every
// submission ends in exactly one terminal completion record, whatever
// fails along the way.
type AnalysisService struct {
	converter   repositories.AudioConverter
	transcriber repositories.Transcriber
	renderer    repositories.WordCloudRenderer
	blobs       repositories.BlobStore
	analyses    repositories.AnalysisRepository
	shares      repositories.ShareRepository
	credentials repositories.CredentialRepository
	tx          repositories.Transactor
	sharesDir   string
	sttTimeout  time.Duration
	logger      *zap.Logger
}

// NewAnalysisService creates the pipeline orchestrator.
func NewAnalysisService(
	converter repositories.AudioConverter,
	transcriber repositories.Transcriber,
	renderer repositories.WordCloudRenderer,
	blobs repositories.BlobStore,
	analyses repositories.AnalysisRepository,
	shares repositories.ShareRepository,
	credentials repositories.CredentialRepository,
	tx repositories.Transactor,
	sharesDir string,
	sttTimeout time.Duration,
	logger *zap.Logger,
) *AnalysisService {
	if sttTimeout == 0 {
		sttTimeout = 120 * time.Second
	}
	return &AnalysisService{
		converter:   converter,
		transcriber: transcriber,
		renderer:    renderer,
		blobs:       blobs,
		analyses:    analyses,
		shares:      shares,
		credentials: credentials,
		tx:          tx,
		sharesDir:   sharesDir,
		sttTimeout:  sttTimeout,
		logger:      logger,
	}
}

// Process runs the full pipeline for one submission. It is executed on a
// worker, detached from the request that enqueued it.
func (s *AnalysisService) Process(ctx context.Context, sub *entities.Submission) {
	base := sub.BaseFilename()
	audioPath := filepath.Join(s.sharesDir, base+".mp3")
	cloudPath := filepath.Join(s.sharesDir, base+".png")

	logger := s.logger.With(
		zap.String("userID", sub.UserID),
		zap.String("dateRecorded", sub.DateRecorded))

	mp3, err := s.converter.ToMP3(ctx, sub.Audio)
	if err != nil {
		s.fail(ctx, logger, sub, err)
		return
	}

	cred, err := s.credentials.Get(ctx)
	if err == nil && cred == nil {
		err = fmt.Errorf("%w: transcription credentials are not configured", domain.ErrTranscription)
	}
	if err != nil {
		s.fail(ctx, logger, sub, err)
		return
	}

	// The transcription call gets its own copy of the converted audio;
	// the original buffer is retained untouched for storage.
	sttAudio := make([]byte, len(mp3))
	copy(sttAudio, mp3)

	sttCtx, cancel := context.WithTimeout(ctx, s.sttTimeout)
	transcript, err := s.transcriber.Transcribe(sttCtx, sttAudio, *cred)
	cancel()
	if err != nil {
		s.fail(ctx, logger, sub, err)
		return
	}

	words := entities.WordCount(transcript)
	wpm := entities.WordsPerMinute(words, sub.Duration)

	// Transcript and word cloud only surface for non-trivial Text
	// recordings; Audio jobs still get a WPM from the transcription.
	hasTextContent := sub.Type == entities.RecordingTypeText && words > 0

	if hasTextContent {
		image, err := s.renderer.Render(transcript)
		if err != nil {
			s.fail(ctx, logger, sub, err)
			return
		}
		if err := s.blobs.Put(cloudPath, image); err != nil {
			s.fail(ctx, logger, sub, err)
			return
		}
	}

	if sub.Share.IncludesAudio() {
		if err := s.blobs.Put(audioPath, mp3); err != nil {
			s.fail(ctx, logger, sub, err)
			return
		}
	}

	analysis := &entities.Analysis{
		UserID:       sub.UserID,
		DateRecorded: sub.DateRecorded,
		Status:       entities.AnalysisStatusSuccess,
		WPM:          &wpm,
		CreatedAt:    time.Now(),
	}
	if hasTextContent {
		analysis.Transcript = &transcript
		analysis.WordCloudPath = &cloudPath
	}

	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.analyses.Create(txCtx, analysis); err != nil {
			return err
		}
		if sub.Share.IncludesWordCloud() && hasTextContent {
			if err := s.shares.Create(txCtx, s.newShare(sub, wpm, entities.ShareKindWordCloud, cloudPath)); err != nil {
				return err
			}
		}
		if sub.Share.IncludesAudio() {
			if err := s.shares.Create(txCtx, s.newShare(sub, wpm, entities.ShareKindAudio, audioPath)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		// The transaction rolled back, so no record exists yet; degrade to
		// a terminal failure instead of leaving the submission pending.
		s.fail(ctx, logger, sub, err)
		return
	}

	logger.Info("analysis completed",
		zap.Int("wpm", wpm),
		zap.Int("words", words),
		zap.Bool("wordCloud", hasTextContent))
}

func (s *AnalysisService) newShare(sub *entities.Submission, wpm int, kind entities.ShareKind, path string) *entities.Share {
	return &entities.Share{
		UserID:       sub.UserID,
		DateRecorded: sub.DateRecorded,
		Type:         sub.Type,
		Duration:     sub.Duration,
		WPM:          wpm,
		Scores:       sub.Scores,
		FileType:     kind,
		FilePath:     path,
		CreatedAt:    time.Now(),
	}
}

// fail writes the terminal failed record so the app stops polling. No
// shares are created for failed jobs.
func (s *AnalysisService) fail(ctx context.Context, logger *zap.Logger, sub *entities.Submission, cause error) {
	logger.Error("analysis failed", zap.Error(cause))
	if err := s.analyses.Create(ctx, entities.NewFailedAnalysis(sub.UserID, sub.DateRecorded)); err != nil {
		logger.Error("failed to write terminal failure record", zap.Error(err))
	}
}

// PollResult is the response payload for the completion poll. When
// HasPayload is false only the status is serialized, matching the app's
// protocol for pending jobs and unreadable artifacts.
type PollResult struct {
	Status     string
	HasPayload bool
	WPM        string
	Transcript string
	WordCloud  string
}

// StatusIncomplete is reported while no completion record exists.
const StatusIncomplete = "incomplete"

// GetResult looks up the completion record for (userID, dateRecorded) and
// assembles the poll payload. Polling is idempotent: the stored record is
// never mutated, even when its word cloud can no longer be decrypted.
func (s *AnalysisService) GetResult(ctx context.Context, userID, dateRecorded string) (*PollResult, error) {
	analysis, err := s.analyses.GetByUserAndDate(ctx, userID, dateRecorded)
	if err != nil {
		return nil, err
	}
	if analysis == nil {
		return &PollResult{Status: StatusIncomplete}, nil
	}

	result := &PollResult{Status: string(analysis.Status), HasPayload: true}
	if analysis.WPM != nil {
		result.WPM = strconv.Itoa(*analysis.WPM)
	}
	if analysis.Transcript != nil {
		result.Transcript = *analysis.Transcript
	}

	if analysis.WordCloudPath != nil {
		image, err := s.blobs.Get(*analysis.WordCloudPath)
		if err != nil {
			s.logger.Warn("word cloud unreadable, downgrading poll response",
				zap.String("userID", userID),
				zap.String("dateRecorded", dateRecorded),
				zap.Error(err))
			return &PollResult{Status: string(entities.AnalysisStatusFailed)}, nil
		}
		result.WordCloud = base64.StdEncoding.EncodeToString(image)
	}

	return result, nil
}

// UpdateScores rewrites the score values on every share for the recording.
func (s *AnalysisService) UpdateScores(ctx context.Context, userID, dateRecorded string, values [3]*string) error {
	matched, err := s.shares.UpdateScores(ctx, userID, dateRecorded, values)
	if err != nil {
		return err
	}
	s.logger.Info("share scores updated",
		zap.String("userID", userID),
		zap.String("dateRecorded", dateRecorded),
		zap.Int64("shares", matched))
	return nil
}
