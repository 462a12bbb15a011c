package gemini

// Config contains Gemini provider configuration. Timeout is in seconds.
type Config struct {
	APIKey  string `env:"GEMINI_API_KEY"`
	BaseURL string `env:"GEMINI_BASE_URL"`
	Timeout int    `env:"GEMINI_TIMEOUT"  envDefault:"60"`
}
