package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// jsonConfig is the on-disk shape. Durations are strings such as "15s".
// Absent fields leave the current value untouched.
type jsonConfig struct {
	Addr            *string  `json:"addr"`
	DatabasePath    *string  `json:"database_path"`
	PasswordHasher  *string  `json:"password_hasher"`
	AllowedOrigins  []string `json:"allowed_origins"`
	LogLevel        *string  `json:"log_level"`
	LogFormat       *string  `json:"log_format"`
	ReadTimeout     *string  `json:"read_timeout"`
	WriteTimeout    *string  `json:"write_timeout"`
	ShutdownTimeout *string  `json:"shutdown_timeout"`
}

func loadJSON(cfg *Config, path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	var c jsonConfig
	if err := json.Unmarshal(b, &c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&cfg.Addr, c.Addr)
	setString(&cfg.DatabasePath, c.DatabasePath)
	setString(&cfg.PasswordHasher, c.PasswordHasher)
	setString(&cfg.LogLevel, c.LogLevel)
	setString(&cfg.LogFormat, c.LogFormat)
	if c.AllowedOrigins != nil {
		cfg.AllowedOrigins = c.AllowedOrigins
	}
	for _, d := range []struct {
		dst *time.Duration
		src *string
	}{
		{&cfg.ReadTimeout, c.ReadTimeout},
		{&cfg.WriteTimeout, c.WriteTimeout},
		{&cfg.ShutdownTimeout, c.ShutdownTimeout},
	} {
		if d.src == nil {
			continue
		}
		v, err := time.ParseDuration(*d.src)
		if err != nil {
			return fmt.Errorf("parse config %s: %w", path, err)
		}
		*d.dst = v
	}
	return nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
