package ebitenbackend

import (
	"bytes"
	"fmt"
	"image"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/younwookim/puppet/internal/infrastructure/assets"
	"github.com/younwookim/puppet/internal/infrastructure/logging"
)

// Loader loads images into GPU textures and fonts into text faces.
// Parsed font files are shared between the sizes of one family.
type Loader struct {
	logger  *logging.Logger
	sources map[string]*text.GoTextFaceSource
}

// NewLoader creates a new loader
func NewLoader(logger *logging.Logger) *Loader {
	return &Loader{
		logger:  logger,
		sources: make(map[string]*text.GoTextFaceSource),
	}
}

// LoadImage implements assets.Loader
func (l *Loader) LoadImage(path string) (assets.Texture, error) {
	img, _, err := ebitenutil.NewImageFromFile(path)
	if err != nil {
		return nil, err
	}
	if l.logger.DebugEnabled() {
		b := img.Bounds()
		l.logger.Debugf("loaded image %s (%dx%d, %s)", path, b.Dx(), b.Dy(), fileSize(path))
	}
	return img, nil
}

// LoadFont implements assets.Loader
func (l *Loader) LoadFont(path string, size float64) (assets.Face, error) {
	src, ok := l.sources[path]
	if !ok {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		src, err = text.NewGoTextFaceSource(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to parse font: %w", err)
		}
		l.sources[path] = src
		l.logger.Debugf("loaded font %s (%s)", path, humanize.Bytes(uint64(len(data))))
	}
	return &text.GoTextFace{Source: src, Size: size}, nil
}

// LoadIcon decodes a window icon
func (l *Loader) LoadIcon(path string) (image.Image, error) {
	img, _, err := assets.DecodeFile(path)
	return img, err
}

func fileSize(path string) string {
	fi, err := os.Stat(path)
	if err != nil {
		return "unknown size"
	}
	return humanize.Bytes(uint64(fi.Size()))
}
