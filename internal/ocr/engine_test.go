package ocr //nolint:testpackage // Need access to the unexported backend seam

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rishabhsai/RishBOT/internal/imaging"
)

type fakeBackend struct {
	text       string
	confidence float64
	err        error
	got        []byte
}

func (f *fakeBackend) recognize(_ context.Context, data []byte) (string, float64, error) {
	f.got = data
	return f.text, f.confidence, f.err
}

func testPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 20, 10))))
	return buf.Bytes()
}

func TestEngine_Recognize(t *testing.T) {
	ctx := context.Background()

	t.Run("should return trimmed text and backend confidence", func(t *testing.T) {
		backend := &fakeBackend{text: "  x = 2\n", confidence: 87.5}
		engine := &Engine{cfg: Config{MinWidth: 40, Grayscale: true}, backend: backend}

		result, err := engine.Recognize(ctx, testPNG(t))

		require.NoError(t, err)
		require.Equal(t, "x = 2", result.Text)
		require.InDelta(t, 87.5, result.Confidence, 0.001)

		// The backend receives the preprocessed PNG, not the original bytes.
		prepared, err := png.DecodeConfig(bytes.NewReader(backend.got))
		require.NoError(t, err)
		require.Equal(t, 40, prepared.Width)
	})

	t.Run("should clamp confidence into range", func(t *testing.T) {
		engine := &Engine{backend: &fakeBackend{text: "a", confidence: 140}}

		result, err := engine.Recognize(ctx, testPNG(t))

		require.NoError(t, err)
		require.InDelta(t, 100.0, result.Confidence, 0.001)
	})

	t.Run("should wrap backend errors", func(t *testing.T) {
		engine := &Engine{backend: &fakeBackend{err: errors.New("tesseract crashed")}}

		result, err := engine.Recognize(ctx, testPNG(t))

		require.Error(t, err)
		require.Nil(t, result)
		require.Contains(t, err.Error(), "recognition failed")
	})

	t.Run("should reject images that cannot be decoded", func(t *testing.T) {
		backend := &fakeBackend{}
		engine := &Engine{backend: backend}

		result, err := engine.Recognize(ctx, []byte("garbage"))

		require.Error(t, err)
		require.Nil(t, result)
		require.Nil(t, backend.got)
	})
}

func TestEngine_Recognize_PixelLimit(t *testing.T) {
	backend := &fakeBackend{text: "never"}
	engine := &Engine{cfg: Config{MaxPixels: 100}, backend: backend}

	result, err := engine.Recognize(context.Background(), testPNG(t))

	require.ErrorIs(t, err, imaging.ErrTooLarge)
	require.Nil(t, result)
	require.Nil(t, backend.got)
}
