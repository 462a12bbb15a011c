//go:build !tesseract

package ocr_test

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rishabhsai/RishBOT/internal/ocr"
)

func TestNewEngine_WithoutTesseract(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 4, 4))))

	engine := ocr.NewEngine(ocr.Config{Language: "eng"})

	result, err := engine.Recognize(context.Background(), buf.Bytes())

	require.ErrorIs(t, err, ocr.ErrUnavailable)
	require.Nil(t, result)
}
