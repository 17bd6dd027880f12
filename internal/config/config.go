package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type APIConfig struct {
	Addr          string
	SavePath      string
	SaveKey       string
	TickEvery     time.Duration
	TickMinutes   int
	AutosaveEvery time.Duration
	Seed          int64
}

type CLIConfig struct {
	SavePath string
	SaveKey  string
	// TickMinutes is how much game time one CLI action advances the clock.
	TickMinutes int
	Seed        int64
}

func LoadAPIFromEnv() APIConfig {
	addr := os.Getenv("PORT")
	if addr != "" {
		if !strings.HasPrefix(addr, ":") {
			addr = ":" + addr
		}
	} else {
		addr = envDefault("LIFEVERSE_API_ADDR", ":8080")
	}

	return APIConfig{
		Addr:          addr,
		SavePath:      strings.TrimSpace(os.Getenv("LIFEVERSE_SAVE_PATH")),
		SaveKey:       envDefault("LIFEVERSE_SAVE_KEY", "lifeverse"),
		TickEvery:     envDurationDefault("LIFEVERSE_TICK_EVERY", 5*time.Second),
		TickMinutes:   envIntDefault("LIFEVERSE_TICK_MINUTES", 60),
		AutosaveEvery: envDurationDefault("LIFEVERSE_AUTOSAVE_EVERY", time.Minute),
		Seed:          envInt64Default("LIFEVERSE_SEED", 0),
	}
}

func LoadCLIFromEnv() CLIConfig {
	return CLIConfig{
		SavePath:    strings.TrimSpace(os.Getenv("LIFEVERSE_SAVE_PATH")),
		SaveKey:     envDefault("LIFEVERSE_SAVE_KEY", "lifeverse"),
		TickMinutes: envIntDefault("LIFEVERSE_TICK_MINUTES", 60),
		Seed:        envInt64Default("LIFEVERSE_SEED", 0),
	}
}

func envDefault(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func envDurationDefault(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func envIntDefault(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envInt64Default(key string, fallback int64) int64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}
