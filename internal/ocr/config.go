package ocr

// Config contains local OCR settings.
// MaxPixels rejects screenshots whose declared width*height exceeds it.
type Config struct {
	Language  string `env:"OCR_LANGUAGE"   envDefault:"eng"`
	MinWidth  int    `env:"OCR_MIN_WIDTH"  envDefault:"1024"`
	Grayscale bool   `env:"OCR_GRAYSCALE"  envDefault:"true"`
	MaxPixels int    `env:"OCR_MAX_PIXELS" envDefault:"16777216"`
}
