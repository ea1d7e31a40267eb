package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
)

type Config struct {
	Logger  Logger  `envPrefix:"LOGGER_"`
	HTTP    HTTP    `envPrefix:"HTTP_"`
	Storage Storage `envPrefix:"STORAGE_"`
	Sentry  Sentry  `envPrefix:"SENTRY_"`
}

func Parse() (*Config, error) {
	return ParseWithEnvironment(nil)
}

// ParseWithEnvironment parses the configuration from the given environment.
// A nil environment means the process environment.
func ParseWithEnvironment(environment map[string]string) (*Config, error) {
	conf, err := env.ParseAsWithOptions[Config](env.Options{
		Prefix:      "TODO_",
		Environment: environment,
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &conf, nil
}
