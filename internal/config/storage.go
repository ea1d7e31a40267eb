package config

import "time"

type Storage struct {
	// URI of the primary todo store, its scheme selects the adapter
	// (mongodb, mongodb+srv, sqlite, memory)
	URI string `env:"URI,expand" envDefault:"mongodb://localhost:27017/todo?collection=list"`
	// Store used when the primary one cannot be reached at startup
	FallbackEnabled bool          `env:"FALLBACK_ENABLED" envDefault:"true"`
	FallbackURI     string        `env:"FALLBACK_URI,expand" envDefault:"memory://"`
	ConnectTimeout  time.Duration `env:"CONNECT_TIMEOUT" envDefault:"10s"`
}
