package wordcloud

import (
	"bytes"
	"fmt"
	"image/color"
	"image/png"
	"os"
	"strings"

	"github.com/psykhi/wordclouds"
	"go.uber.org/zap"

	"github.com/mobilev/server/domain"
	"github.com/mobilev/server/domain/repositories"
)

// Renderer draws transcript word clouds as PNG images.
type Renderer struct {
	fontFile string
	logger   *zap.Logger
}

var _ repositories.WordCloudRenderer = (*Renderer)(nil)

var palette = []color.Color{
	color.RGBA{0x1f, 0x77, 0xb4, 0xff},
	color.RGBA{0x2c, 0xa0, 0x2c, 0xff},
	color.RGBA{0xd6, 0x27, 0x28, 0xff},
	color.RGBA{0x94, 0x67, 0xbd, 0xff},
	color.RGBA{0xff, 0x7f, 0x0e, 0xff},
}

// NewRenderer creates a renderer using the given TTF font file.
func NewRenderer(fontFile string, logger *zap.Logger) (*Renderer, error) {
	if _, err := os.Stat(fontFile); err != nil {
		return nil, fmt.Errorf("word cloud font file: %w", err)
	}
	return &Renderer{fontFile: fontFile, logger: logger}, nil
}

// Frequencies maps each normalized word in the transcript to its count.
// Words are lowercased and stripped of surrounding punctuation so "Hello,"
// and "hello" weigh the same.
func Frequencies(transcript string) map[string]int {
	freqs := make(map[string]int)
	for _, token := range strings.Fields(transcript) {
		word := strings.Trim(strings.ToLower(token), ".,;:!?\"'()[]")
		if word == "" {
			continue
		}
		freqs[word]++
	}
	return freqs
}

// Render draws the word cloud and encodes it as PNG.
func (r *Renderer) Render(transcript string) ([]byte, error) {
	freqs := Frequencies(transcript)
	if len(freqs) == 0 {
		return nil, fmt.Errorf("%w: transcript has no words", domain.ErrArtifact)
	}

	cloud := wordclouds.NewWordcloud(
		freqs,
		wordclouds.FontFile(r.fontFile),
		wordclouds.FontMaxSize(120),
		wordclouds.FontMinSize(12),
		wordclouds.Width(1024),
		wordclouds.Height(768),
		wordclouds.Colors(palette),
		wordclouds.BackgroundColor(color.White),
	)
	img := cloud.Draw()

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("%w: encoding png: %v", domain.ErrArtifact, err)
	}

	r.logger.Debug("word cloud rendered",
		zap.Int("distinctWords", len(freqs)),
		zap.Int("pngBytes", buf.Len()))
	return buf.Bytes(), nil
}
