package config

import (
	_ "embed"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed demo.yaml
var demoYAML []byte

const (
	DefaultWikipediaURL = "https://en.wikipedia.org"
	DefaultUserAgent    = "celebrity-twin/1.0 (https://github.com/kozaktomas/celebrity-twin)"
	DefaultThumbSize    = 400
)

type Config struct {
	Wikipedia WikipediaConfig
	Web       WebConfig
	Log       LogConfig
	Demo      DemoConfig
}

type WikipediaConfig struct {
	URL         string        // base URL without path, defaults to https://en.wikipedia.org
	UserAgent   string        // sent with every request, Wikimedia rejects anonymous clients
	ThumbSize   int           // pithumbsize for the page-images fallback (default 400)
	Timeout     time.Duration // per-request timeout, 0 means none
	MinInterval time.Duration // minimum spacing between requests, 0 disables pacing
}

type WebConfig struct {
	Host string
	Port int
}

type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // text or json
}

type DemoConfig struct {
	Matches []DemoMatch `yaml:"matches"`
}

type DemoMatch struct {
	Name    string  `yaml:"name"`
	Percent float64 `yaml:"percent"`
}

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

// envDuration reads an environment variable as a time.Duration ("1500ms", "2s").
// Negative or unparsable values fall back to the default.
func envDuration(key string, defaultVal time.Duration) time.Duration {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if d, err := time.ParseDuration(s); err == nil && d >= 0 {
		return d
	}
	return defaultVal
}

// envString returns the env var or the default when unset or empty.
func envString(key, defaultVal string) string {
	if s := os.Getenv(key); s != "" {
		return s
	}
	return defaultVal
}

func Load() *Config {
	var demo DemoConfig
	if err := yaml.Unmarshal(demoYAML, &demo); err != nil {
		// embedded file, can only fail on a broken build
		panic("failed to unmarshal embedded demo.yaml: " + err.Error())
	}

	return &Config{
		Wikipedia: WikipediaConfig{
			URL:         envString("WIKIPEDIA_URL", DefaultWikipediaURL),
			UserAgent:   envString("WIKIPEDIA_USER_AGENT", DefaultUserAgent),
			ThumbSize:   envInt("WIKIPEDIA_THUMB_SIZE", DefaultThumbSize),
			Timeout:     envDuration("WIKIPEDIA_TIMEOUT", 0),
			MinInterval: envDuration("WIKIPEDIA_MIN_INTERVAL", 0),
		},
		Web: WebConfig{
			Host: envString("WEB_HOST", "0.0.0.0"),
			Port: envInt("WEB_PORT", 8080),
		},
		Log: LogConfig{
			Level:  envString("LOG_LEVEL", "info"),
			Format: envString("LOG_FORMAT", "text"),
		},
		Demo: demo,
	}
}
