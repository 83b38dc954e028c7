package config

import (
	"fmt"
	"strings"
	"time"
)

const envPrefix = "JOBBOARD_"

func loadEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if lookup == nil {
		return nil
	}
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		if !ok || strings.TrimSpace(v) == "" {
			return "", false
		}
		return strings.TrimSpace(v), true
	}

	if p, ok := get("PORT"); ok {
		cfg.Addr = ":" + p
	}
	if v, ok := get(envPrefix + "ADDR"); ok {
		cfg.Addr = v
	}
	if v, ok := get(envPrefix + "DB"); ok {
		cfg.DatabasePath = v
	}
	if v, ok := get(envPrefix + "HASHER"); ok {
		cfg.PasswordHasher = v
	}
	if v, ok := get(envPrefix + "ALLOWED_ORIGINS"); ok {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		cfg.AllowedOrigins = origins
	}
	if v, ok := get(envPrefix + "LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := get(envPrefix + "LOG_FORMAT"); ok {
		cfg.LogFormat = v
	}
	if v, ok := get(envPrefix + "SHUTDOWN_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sSHUTDOWN_TIMEOUT: %w", envPrefix, err)
		}
		cfg.ShutdownTimeout = d
	}
	return nil
}
