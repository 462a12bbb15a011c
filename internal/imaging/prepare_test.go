package imaging_test

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rishabhsai/RishBOT/internal/imaging"
)

func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 10, B: 10, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestPrepareForOCR(t *testing.T) {
	t.Run("should upscale narrow images and convert to grayscale", func(t *testing.T) {
		prepared, err := imaging.PrepareForOCR(encodePNG(t, 100, 50), imaging.PrepareOptions{
			MinWidth:  300,
			Grayscale: true,
		})

		require.NoError(t, err)
		require.Equal(t, "png", prepared.Format)
		require.Equal(t, 300, prepared.Width)
		require.Equal(t, 150, prepared.Height)

		decoded, err := png.Decode(bytes.NewReader(prepared.PNG))
		require.NoError(t, err)
		r, g, b, _ := decoded.At(10, 10).RGBA()
		require.Equal(t, r, g)
		require.Equal(t, g, b)
	})

	t.Run("should cap the upscale factor", func(t *testing.T) {
		prepared, err := imaging.PrepareForOCR(encodePNG(t, 10, 10), imaging.PrepareOptions{MinWidth: 1000})

		require.NoError(t, err)
		require.Equal(t, 40, prepared.Width)
		require.Equal(t, 40, prepared.Height)
	})

	t.Run("should leave wide images untouched", func(t *testing.T) {
		prepared, err := imaging.PrepareForOCR(encodePNG(t, 64, 32), imaging.PrepareOptions{MinWidth: 32})

		require.NoError(t, err)
		require.Equal(t, 64, prepared.Width)
		require.Equal(t, 32, prepared.Height)
	})

	t.Run("should reject undecodable bytes", func(t *testing.T) {
		prepared, err := imaging.PrepareForOCR([]byte("nope"), imaging.PrepareOptions{})

		require.Error(t, err)
		require.Nil(t, prepared)
		require.Contains(t, err.Error(), "failed to decode image")
	})
}

func TestPrepareForOCR_PixelLimit(t *testing.T) {
	t.Run("should reject oversized images from the header alone", func(t *testing.T) {
		// Declares 8000x8000 but only the header is needed to reject it.
		data := encodePNG(t, 8000, 1)
		data = withPNGHeight(t, data, 8000)

		prepared, err := imaging.PrepareForOCR(data, imaging.PrepareOptions{MaxPixels: 4096 * 4096})

		require.ErrorIs(t, err, imaging.ErrTooLarge)
		require.Nil(t, prepared)
	})

	t.Run("should accept images at the limit", func(t *testing.T) {
		prepared, err := imaging.PrepareForOCR(encodePNG(t, 20, 10), imaging.PrepareOptions{MaxPixels: 200})

		require.NoError(t, err)
		require.Equal(t, 20, prepared.Width)
	})

	t.Run("should keep the upscaled result under the limit", func(t *testing.T) {
		prepared, err := imaging.PrepareForOCR(encodePNG(t, 100, 100), imaging.PrepareOptions{
			MinWidth:  400,
			MaxPixels: 40000,
		})

		require.NoError(t, err)
		require.LessOrEqual(t, prepared.Width*prepared.Height, 40000)
		require.Greater(t, prepared.Width, 100)
	})
}

// withPNGHeight rewrites the IHDR height of an encoded PNG and fixes its CRC,
// producing a file whose header claims more rows than it carries.
func withPNGHeight(t *testing.T, data []byte, height uint32) []byte {
	t.Helper()

	const ihdrData = 16 // 8-byte signature + 4-byte length + 4-byte type
	out := append([]byte(nil), data...)
	require.Equal(t, "IHDR", string(out[12:16]))

	binary.BigEndian.PutUint32(out[ihdrData+4:ihdrData+8], height)
	crc := crc32.ChecksumIEEE(out[12 : ihdrData+13])
	binary.BigEndian.PutUint32(out[ihdrData+13:ihdrData+17], crc)
	return out
}
