package cli

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env holds the defaults read from the environment. Command line flags take
// precedence over every field.
type Env struct {
	ConfigDir string  `env:"SWEETWATER_CONFIG_DIR" envDefault:"examples/config"`
	RedisAddr string  `env:"SWEETWATER_REDIS_ADDR"`
	HTTPAddr  string  `env:"SWEETWATER_HTTP_ADDR"`
	Debug     bool    `env:"SWEETWATER_DEBUG"`
	Seed      *uint64 `env:"SWEETWATER_SEED"`
}

// LoadEnv parses the SWEETWATER_* variables.
func LoadEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}
