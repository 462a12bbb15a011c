//go:build tesseract

package ocr

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

// tesseractBackend runs libtesseract through gosseract. A client is not safe
// for concurrent use, so each call gets its own.
type tesseractBackend struct {
	language string
}

func newBackend(cfg Config) recognizer {
	return &tesseractBackend{language: cfg.Language}
}

func (b *tesseractBackend) recognize(ctx context.Context, png []byte) (string, float64, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if b.language != "" {
		if err := client.SetLanguage(b.language); err != nil {
			return "", 0, fmt.Errorf("failed to set language: %w", err)
		}
	}

	if err := client.SetImageFromBytes(png); err != nil {
		return "", 0, fmt.Errorf("failed to load image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", 0, fmt.Errorf("failed to extract text: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return "", 0, fmt.Errorf("failed to read word confidences: %w", err)
	}

	return text, meanConfidence(boxes), nil
}

func meanConfidence(boxes []gosseract.BoundingBox) float64 {
	if len(boxes) == 0 {
		return 0
	}
	var sum float64
	for _, box := range boxes {
		sum += box.Confidence
	}
	return sum / float64(len(boxes))
}
