package session

import "time"

type Config struct {
	CookieName string        `env:"SESSION_COOKIE_NAME" envDefault:"sid"`
	TTL        time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	RedisKey   string        `env:"SESSION_REDIS_PREFIX" envDefault:"session:"`
}

func DefaultConfig() Config {
	return Config{CookieName: "sid", TTL: 24 * time.Hour, RedisKey: defaultRedisPrefix}
}
