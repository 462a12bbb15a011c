package ollama

// Config contains local completion daemon settings.
// Timeout is in seconds; zero leaves the transport default in place.
type Config struct {
	BaseURL string `env:"OLLAMA_BASE_URL" envDefault:"http://localhost:11434"`
	Timeout int    `env:"OLLAMA_TIMEOUT"  envDefault:"0"`
}
