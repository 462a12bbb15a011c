package routing

// Config selects upstreams per mode. TextMode applies to the text endpoints
// (solve, write, modify, expand-step, chat); ScreenMode to screen analysis.
type Config struct {
	TextMode      string `env:"RELAY_MODE"           envDefault:"local"`
	ScreenMode    string `env:"SCREEN_ANALYZE_MODE"  envDefault:"cloud"`
	LocalProvider string `env:"RELAY_LOCAL_PROVIDER" envDefault:"ollama"`
	LocalModel    string `env:"RELAY_LOCAL_MODEL"    envDefault:"gemma:2b"`
	CloudProvider string `env:"RELAY_CLOUD_PROVIDER" envDefault:"openai"`
	CloudModel    string `env:"RELAY_CLOUD_MODEL"    envDefault:"gpt-4o"`
}
