package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/dig"

	eventsredis "github.com/rishabhsai/RishBOT/internal/events/redis"
	"github.com/rishabhsai/RishBOT/internal/ocr"
	"github.com/rishabhsai/RishBOT/internal/provider/echo"
	"github.com/rishabhsai/RishBOT/internal/provider/gemini"
	"github.com/rishabhsai/RishBOT/internal/provider/ollama"
	"github.com/rishabhsai/RishBOT/internal/provider/openai"
	"github.com/rishabhsai/RishBOT/internal/routing"
)

// Config represents the relay configuration.
type Config struct {
	Server  ServerConfig
	CORS    CORSConfig
	Routing routing.Config
	Ollama  ollama.Config
	OpenAI  openai.Config
	Gemini  gemini.Config
	Echo    echo.Config
	OCR     ocr.Config
	Events  eventsredis.Config
}

// ServerConfig contains HTTP server settings.
// Timeouts are in seconds. Local models can take minutes on long prompts.
type ServerConfig struct {
	Port         int   `env:"SERVER_PORT"           envDefault:"8080"`
	ReadTimeout  int   `env:"SERVER_READ_TIMEOUT"   envDefault:"30"`
	WriteTimeout int   `env:"SERVER_WRITE_TIMEOUT"  envDefault:"300"`
	MaxBodyBytes int64 `env:"SERVER_MAX_BODY_BYTES" envDefault:"20971520"`
}

// CORSConfig contains CORS policy settings.
type CORSConfig struct {
	AllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS"   envSeparator:"," envDefault:"*"`
	AllowedMethods   []string `env:"CORS_ALLOWED_METHODS"   envSeparator:"," envDefault:"GET,POST,OPTIONS"`
	AllowedHeaders   []string `env:"CORS_ALLOWED_HEADERS"   envSeparator:"," envDefault:"Content-Type,Authorization"`
	AllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS"                  envDefault:"true"`
	MaxAge           int      `env:"CORS_MAX_AGE"                            envDefault:"86400"`
}

// DepConfig is used for dependency injection with dig.
type DepConfig struct {
	dig.Out

	Server  *ServerConfig
	CORS    *CORSConfig
	Routing *routing.Config
	Ollama  *ollama.Config
	OpenAI  *openai.Config
	Gemini  *gemini.Config
	Echo    *echo.Config
	OCR     *ocr.Config
	Events  *eventsredis.Config
}

// Load loads environment files and parses configuration.
func Load() *Config {
	for _, file := range []string{".env"} {
		_ = godotenv.Load(file)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		panic(err)
	}

	return &cfg
}

// ParseDependenciesConfig returns pointers to sub-configs for dependency injection.
func ParseDependenciesConfig(cfg *Config) DepConfig {
	return DepConfig{
		Server:  &cfg.Server,
		CORS:    &cfg.CORS,
		Routing: &cfg.Routing,
		Ollama:  &cfg.Ollama,
		OpenAI:  &cfg.OpenAI,
		Gemini:  &cfg.Gemini,
		Echo:    &cfg.Echo,
		OCR:     &cfg.OCR,
		Events:  &cfg.Events,
	}
}
