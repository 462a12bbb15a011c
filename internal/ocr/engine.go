// Package ocr runs local optical character recognition over screenshots.
// Recognition itself is delegated to Tesseract; this package only prepares
// images and normalizes results.
package ocr

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rishabhsai/RishBOT/internal/domain"
	"github.com/rishabhsai/RishBOT/internal/imaging"
	"github.com/rishabhsai/RishBOT/internal/observability"
)

// ErrUnavailable is returned when the binary was built without an OCR backend.
var ErrUnavailable = errors.New("local OCR is not available in this build")

// recognizer is the raw OCR backend.
type recognizer interface {
	recognize(ctx context.Context, png []byte) (text string, confidence float64, err error)
}

// Engine implements domain.OCREngine.
type Engine struct {
	cfg     Config
	backend recognizer
}

// NewEngine creates an OCR engine backed by the build's recognizer.
func NewEngine(cfg Config) *Engine {
	return &Engine{
		cfg:     cfg,
		backend: newBackend(cfg),
	}
}

// Recognize extracts text from encoded image bytes.
func (e *Engine) Recognize(ctx context.Context, image []byte) (*domain.OCRResult, error) {
	logger := observability.FromContext(ctx)

	prepared, err := imaging.PrepareForOCR(image, imaging.PrepareOptions{
		MinWidth:  e.cfg.MinWidth,
		Grayscale: e.cfg.Grayscale,
		MaxPixels: e.cfg.MaxPixels,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to prepare image: %w", err)
	}

	logger.Debug("running OCR",
		observability.String("format", prepared.Format),
		observability.Int("width", prepared.Width),
		observability.Int("height", prepared.Height),
	)

	text, confidence, err := e.backend.recognize(ctx, prepared.PNG)
	if err != nil {
		return nil, fmt.Errorf("recognition failed: %w", err)
	}

	logger.Debug("OCR completed",
		observability.Int("text_length", len(text)),
		observability.Float64("confidence", confidence),
	)

	return &domain.OCRResult{
		Text:       strings.TrimSpace(text),
		Confidence: clampConfidence(confidence),
	}, nil
}

func clampConfidence(c float64) float64 {
	switch {
	case c < 0:
		return 0
	case c > domain.CloudConfidence:
		return domain.CloudConfidence
	default:
		return c
	}
}
