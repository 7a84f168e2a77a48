package config

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix every recognized environment variable carries
// (CQL2_DEFAULT_CRS, CQL2_DEFAULT_PRECISION, ...).
const EnvPrefix = "CQL2_"

var (
	current     *Config
	currentOnce sync.Once
)

// Get returns the process-wide Config, loading it from the environment on
// first use. Subsequent calls return the same value.
func Get() *Config {
	currentOnce.Do(func() {
		cfg, err := load()
		if err != nil {
			// Environment variables are operator-supplied and validated at
			// process start; a malformed value is a deployment error, not a
			// recoverable one.
			panic(fmt.Sprintf("config: %v", err))
		}
		current = cfg
	})
	return current
}

// load reads CQL2_-prefixed environment variables with koanf's env provider,
// applies defaults, and validates the result.
func load() (*Config, error) {
	k := koanf.New(".")
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	cfg := &Config{
		DefaultCRS: k.String("default_crs"),
	}
	cfg.ApplyDefaults()
	if raw := k.String("default_precision"); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("CQL2_DEFAULT_PRECISION: %w", err)
		}
		cfg.DefaultPrecision = p
	}

	if cfg.DefaultPrecision < 0 || cfg.DefaultPrecision > MaxPrecision {
		return nil, fmt.Errorf("CQL2_DEFAULT_PRECISION must be in 0..%d, got %d", MaxPrecision, cfg.DefaultPrecision)
	}

	return cfg, nil
}
