//go:build !tesseract

package ocr

import "context"

type unavailableBackend struct{}

func newBackend(Config) recognizer {
	return unavailableBackend{}
}

func (unavailableBackend) recognize(context.Context, []byte) (string, float64, error) {
	return "", 0, ErrUnavailable
}
