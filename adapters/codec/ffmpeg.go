package codec

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"go.uber.org/zap"

	"github.com/mobilev/server/domain"
	"github.com/mobilev/server/domain/repositories"
)

// FFmpegConverter normalizes uploaded audio through ffmpeg, piping the
// payload through stdin/stdout so no temp files are needed.
type FFmpegConverter struct {
	binary string
	logger *zap.Logger
}

var _ repositories.AudioConverter = (*FFmpegConverter)(nil)

// NewFFmpegConverter creates a converter using the ffmpeg binary on PATH.
func NewFFmpegConverter(logger *zap.Logger) *FFmpegConverter {
	return &FFmpegConverter{binary: "ffmpeg", logger: logger}
}

// ToMP3 decodes whatever encoding the client uploaded and re-encodes it as
// mp3. Malformed input surfaces as ErrDecode and fails the job.
func (f *FFmpegConverter) ToMP3(ctx context.Context, raw []byte) ([]byte, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty audio payload", domain.ErrDecode)
	}

	// ffmpeg -i pipe:0 -f mp3 pipe:1
	cmd := exec.CommandContext(ctx, f.binary,
		"-hide_banner", "-loglevel", "error",
		"-i", "pipe:0",
		"-f", "mp3",
		"pipe:1",
	)

	var out, stderr bytes.Buffer
	cmd.Stdin = bytes.NewReader(raw)
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		f.logger.Warn("ffmpeg conversion failed",
			zap.Error(err),
			zap.String("stderr", detail))
		return nil, fmt.Errorf("%w: ffmpeg: %v (%s)", domain.ErrDecode, err, detail)
	}

	if out.Len() == 0 {
		return nil, fmt.Errorf("%w: ffmpeg produced no output", domain.ErrDecode)
	}

	return out.Bytes(), nil
}
