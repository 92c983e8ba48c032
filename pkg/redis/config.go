package redis

import "time"

// Config describes the optional Redis connection. An empty URL disables
// Redis; the service then only fans events out in-process.
type Config struct {
	URL            string        `env:"REDIS_URL"`                                          // redis://:password@localhost:6379/0
	ChannelPrefix  string        `env:"REDIS_CHANNEL_PREFIX" envDefault:"devicekit:events"` // session events go to <prefix>:<session id>
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"2s"`
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"10s"`
}

// Enabled reports whether a connection URL is configured.
func (c Config) Enabled() bool { return c.URL != "" }
