package redis

import "time"

// Config describes the Redis connection used for the preference cache. It is
// populated from the environment by the config package.
type Config struct {
	// ConnectionURL in "redis://:password@host:6379/0" form.
	ConnectionURL string `env:"REDIS_URL,required" envDefault:"redis://localhost:6379/0"`

	// Connect retries until the server answers a ping, bounded overall by
	// ConnectTimeout.
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
}
