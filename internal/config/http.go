package config

import "time"

type HTTP struct {
	BaseURL         string        `env:"BASE_URL,expand" envDefault:"/"`
	Address         string        `env:"ADDRESS,expand" envDefault:":3000"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	MaxBodySize     int64         `env:"MAX_BODY_SIZE" envDefault:"1048576"`
	CORS            CORS          `envPrefix:"CORS_"`
	RateLimit       RateLimit     `envPrefix:"RATE_LIMIT_"`
	Frontend        Frontend      `envPrefix:"FRONTEND_"`
	Metrics         Metrics       `envPrefix:"METRICS_"`
}

type CORS struct {
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	AllowedMethods []string `env:"ALLOWED_METHODS" envSeparator:"," envDefault:"GET,POST"`
	AllowedHeaders []string `env:"ALLOWED_HEADERS" envSeparator:"," envDefault:"Content-Type"`
}

type RateLimit struct {
	Enabled      bool          `env:"ENABLED" envDefault:"false"`
	Interval     time.Duration `env:"INTERVAL" envDefault:"100ms"`
	MaxBurst     int           `env:"MAX_BURST" envDefault:"20"`
	CacheSize    int           `env:"CACHE_SIZE" envDefault:"1024"`
	CacheTTL     time.Duration `env:"CACHE_TTL" envDefault:"10m"`
	TrustHeaders bool          `env:"TRUST_HEADERS" envDefault:"false"`
}

type Frontend struct {
	Enabled bool `env:"ENABLED" envDefault:"true"`
}

type Metrics struct {
	Enabled bool `env:"ENABLED" envDefault:"true"`
}
