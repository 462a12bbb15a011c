package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register decoder
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	"math"

	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"
	_ "golang.org/x/image/bmp"  // register decoder
	_ "golang.org/x/image/webp" // register decoder
)

// maxUpscale bounds how far a narrow capture is enlarged.
const maxUpscale = 4.0

// ErrTooLarge is returned when an image declares more pixels than allowed.
// The check runs on the header, before any pixel data is decoded.
var ErrTooLarge = errors.New("image exceeds pixel limit")

// PrepareOptions controls OCR preprocessing.
type PrepareOptions struct {
	// MinWidth upscales images narrower than this many pixels. Zero disables scaling.
	MinWidth int
	// Grayscale drops color before recognition.
	Grayscale bool
	// MaxPixels caps width*height of both the input and the upscaled result.
	// Zero disables the cap.
	MaxPixels int
}

// Prepared is an image ready for recognition.
type Prepared struct {
	PNG    []byte
	Format string
	Width  int
	Height int
}

// PrepareForOCR decodes an encoded image, applies the configured
// preprocessing and re-encodes it as PNG.
func PrepareForOCR(data []byte, opts PrepareOptions) (*Prepared, error) {
	header, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	if opts.MaxPixels > 0 && header.Width*header.Height > opts.MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d > %d", ErrTooLarge, header.Width, header.Height, opts.MaxPixels)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return nil, fmt.Errorf("image has no pixels (%dx%d)", bounds.Dx(), bounds.Dy())
	}

	if opts.MinWidth > 0 && bounds.Dx() < opts.MinWidth {
		scale := float64(opts.MinWidth) / float64(bounds.Dx())
		if scale > maxUpscale {
			scale = maxUpscale
		}
		if opts.MaxPixels > 0 {
			area := float64(bounds.Dx() * bounds.Dy())
			if limit := math.Sqrt(float64(opts.MaxPixels) / area); scale > limit {
				scale = limit
			}
		}
		width := int(float64(bounds.Dx()) * scale)
		height := int(float64(bounds.Dy()) * scale)
		if width > bounds.Dx() {
			img = transform.Resize(img, width, height, transform.Linear)
		}
	}

	if opts.Grayscale {
		img = effect.Grayscale(img)
	}

	var buf bytes.Buffer
	if err := imgio.PNGEncoder()(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	out := img.Bounds()
	return &Prepared{
		PNG:    buf.Bytes(),
		Format: format,
		Width:  out.Dx(),
		Height: out.Dy(),
	}, nil
}
