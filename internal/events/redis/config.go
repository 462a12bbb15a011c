package redis

// Config contains settings for publishing relay events to a Redis stream.
// An empty Addr disables the publisher. Buffer bounds the number of events
// waiting to be written; events beyond it are dropped.
type Config struct {
	Addr     string `env:"EVENTS_REDIS_ADDR"`
	Password string `env:"EVENTS_REDIS_PASSWORD"`
	DB       int    `env:"EVENTS_REDIS_DB"        envDefault:"0"`
	Stream   string `env:"EVENTS_STREAM"          envDefault:"rishbot:relay"`
	MaxLen   int64  `env:"EVENTS_STREAM_MAXLEN"   envDefault:"10000"`
	Buffer   int    `env:"EVENTS_BUFFER"          envDefault:"1024"`
}
