package config

type Sentry struct {
	DSN         string `env:"DSN,expand"`
	Environment string `env:"ENVIRONMENT" envDefault:"production"`
}
