package codec

import (
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"

	"github.com/mobilev/server/domain"
)

func requireFFmpeg(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		t.Skipf("ffmpeg not on PATH: %v", err)
	}
}

func TestToMP3EmptyPayload(t *testing.T) {
	c := NewFFmpegConverter(zaptest.NewLogger(t))

	_, err := c.ToMP3(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrDecode)
}

func TestToMP3MalformedInput(t *testing.T) {
	requireFFmpeg(t)
	c := NewFFmpegConverter(zaptest.NewLogger(t))

	_, err := c.ToMP3(context.Background(), []byte("definitely not audio"))
	assert.ErrorIs(t, err, domain.ErrDecode)
}

func TestToMP3CancelledContext(t *testing.T) {
	requireFFmpeg(t)
	c := NewFFmpegConverter(zaptest.NewLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ToMP3(ctx, []byte{0x00, 0x01})
	assert.ErrorIs(t, err, domain.ErrDecode)
}
