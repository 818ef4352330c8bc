// Package config содержит логику чтения конфигурации админ-консоли.
package config

import (
	"flag"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config содержит параметры конфигурации админ-консоли.
type Config struct {
	APIAddress     string `env:"ADMIN_API_ADDRESS"`
	AdminToken     string `env:"ADMIN_API_TOKEN"`
	PageLimit      int    `env:"ADMIN_PAGE_LIMIT"`
	RequestTimeout int    `env:"ADMIN_REQUEST_TIMEOUT"`
	StubAddress    string `env:"ADMIN_STUB_ADDRESS"`
}

// Parse считывает конфигурацию из флагов командной строки и переменных окружения.
// Значения из окружения имеют приоритет над флагами.
func Parse() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	envAPIAddress := cfg.APIAddress
	envAdminToken := cfg.AdminToken
	envPageLimit := cfg.PageLimit
	envRequestTimeout := cfg.RequestTimeout
	envStubAddress := cfg.StubAddress

	flag.StringVar(&cfg.APIAddress, "a", "localhost:8080", "marketplace admin API address")
	flag.StringVar(&cfg.AdminToken, "t", "", "admin API bearer token")
	flag.IntVar(&cfg.PageLimit, "l", 20, "default page size for list views")
	flag.IntVar(&cfg.RequestTimeout, "timeout", 5, "request timeout in seconds")
	flag.StringVar(&cfg.StubAddress, "stub", "localhost:8080", "listen address for the stub backend")

	flag.Parse()

	if envAPIAddress != "" {
		cfg.APIAddress = envAPIAddress
	}
	if envAdminToken != "" {
		cfg.AdminToken = envAdminToken
	}
	if envPageLimit != 0 {
		cfg.PageLimit = envPageLimit
	}
	if envRequestTimeout != 0 {
		cfg.RequestTimeout = envRequestTimeout
	}
	if envStubAddress != "" {
		cfg.StubAddress = envStubAddress
	}

	if cfg.APIAddress == "" {
		cfg.APIAddress = "localhost:8080"
	}
	if cfg.PageLimit <= 0 {
		cfg.PageLimit = 20
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 5
	}

	return cfg, nil
}
