package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

var ErrInvalidLogLevel = errors.New("invalid log level")

type Config struct {
	Port            string
	AllowOrigins    []string
	LogLevel        zerolog.Level
	LogFormat       string
	BroadcastBuffer int
	InputBuffer     int
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string { return ":" + c.Port }

// OriginPatterns turns the origin allowlist into host patterns for the
// websocket handshake check.
func (c Config) OriginPatterns() []string {
	var out []string
	for _, o := range c.AllowOrigins {
		u, err := url.Parse(o)
		if err == nil && u.Host != "" {
			out = append(out, u.Host)
			continue
		}
		out = append(out, o)
	}
	return out
}

func defaults() Config {
	return Config{
		Port:            "8080",
		LogLevel:        zerolog.InfoLevel,
		LogFormat:       "json",
		BroadcastBuffer: 32,
		InputBuffer:     64,
	}
}

// Load builds the configuration from defaults, then the optional Lua file
// named by WAR_CONFIG, then environment variables.
func Load() (Config, error) {
	c := defaults()

	if path := os.Getenv("WAR_CONFIG"); path != "" {
		if err := loadLuaFile(&c, path); err != nil {
			return Config{}, err
		}
	}

	if v := os.Getenv("PORT"); v != "" {
		c.Port = v
	}
	if v := os.Getenv("ORIGIN_ALLOWLIST"); v != "" {
		c.AllowOrigins = splitList(v)
	}
	if len(c.AllowOrigins) == 0 {
		c.AllowOrigins = []string{"http://localhost:" + c.Port, "http://127.0.0.1:" + c.Port}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		level, err := parseLogLevel(v)
		if err != nil {
			return Config{}, err
		}
		c.LogLevel = level
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		c.LogFormat = strings.ToLower(v)
	}
	if c.LogFormat != "json" && c.LogFormat != "console" {
		return Config{}, fmt.Errorf("invalid LOG_FORMAT %q", c.LogFormat)
	}

	var err error
	if c.BroadcastBuffer, err = envInt("BROADCAST_BUFFER", c.BroadcastBuffer); err != nil {
		return Config{}, err
	}
	if c.InputBuffer, err = envInt("INPUT_BUFFER", c.InputBuffer); err != nil {
		return Config{}, err
	}
	return c, nil
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid %s %q: must be a positive integer", key, v)
	}
	return n, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseLogLevel(s string) (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(s))
	if err != nil || s == "" {
		return zerolog.NoLevel, fmt.Errorf("%w %q", ErrInvalidLogLevel, s)
	}
	return level, nil
}
