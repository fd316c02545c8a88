package internal

import "time"

type Config struct {
	Host string `env:"HOST,required=true"`
	Port int    `env:"PORT,required=true"`

	DBFilepath     string `env:"DB_FILEPATH,required=true"`
	BadgerFilepath string `env:"BADGER_FILEPATH,required=true"`

	LogLevel  string `env:"LOG_LEVEL,required=true"`
	JWTSecret string `env:"JWT_SECRET"`

	AuthTokenDuration time.Duration `env:"AUTH_TOKEN_DURATION,required=true"`
	PresenceTTL       time.Duration `env:"PRESENCE_TTL,required=true"`
	CacheTTL          time.Duration `env:"CACHE_TTL,required=true"`

	LimitMessages        int           `env:"LIMIT_MESSAGES,required=true"`
	ConnectionBufferSize int           `env:"CONNECTION_BUFFER_SIZE,required=true"`
	DeliveryTimeout      time.Duration `env:"DELIVERY_TIMEOUT,required=true"`
}
