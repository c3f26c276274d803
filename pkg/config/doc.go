// Package config loads env-tagged structs from the process environment,
// optionally seeded from .env files.
//
//	type Config struct {
//		BaseURL string `env:"BASE_URL"`
//		Debug   bool   `env:"DEBUG" envDefault:"false"`
//	}
//
//	cfg, err := config.Load[Config](config.WithPrefix("ERROR_HANDLER_"))
//
// Variables already present in the environment win over values from .env
// files. A missing default .env file is not an error; a missing explicitly
// named file is.
package config
