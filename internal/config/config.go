// Package config loads server settings from defaults, an optional JSON
// file, the environment and command-line flags, in that order.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Config holds runtime settings for the job board server.
type Config struct {
	Addr            string
	DatabasePath    string
	PasswordHasher  string
	AllowedOrigins  []string
	LogLevel        string
	LogFormat       string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// LoadDefaults populates c with development defaults.
func (c *Config) LoadDefaults() {
	c.Addr = ":5000"
	c.DatabasePath = "./data/bolsa.db"
	c.PasswordHasher = "bcrypt"
	c.AllowedOrigins = []string{"*"}
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.ReadTimeout = 15 * time.Second
	c.WriteTimeout = 15 * time.Second
	c.ShutdownTimeout = 10 * time.Second
}

// Load builds a Config from defaults, the JSON file named by -c/-config,
// the environment (lookup) and finally the flags in args.
func Load(args []string, lookup func(string) (string, bool)) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	fv, err := parseFlags(args)
	if err != nil {
		return nil, err
	}
	if fv.configFile != "" {
		if err := loadJSON(cfg, fv.configFile); err != nil {
			return nil, err
		}
	}
	if err := loadEnv(cfg, lookup); err != nil {
		return nil, err
	}
	fv.apply(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Addr == "" {
		errs = append(errs, errors.New("addr must not be empty"))
	}
	if c.DatabasePath == "" {
		errs = append(errs, errors.New("database path must not be empty"))
	}
	switch c.PasswordHasher {
	case "bcrypt", "sha256":
	default:
		errs = append(errs, fmt.Errorf("unknown password hasher %q", c.PasswordHasher))
	}
	return errors.Join(errs...)
}
