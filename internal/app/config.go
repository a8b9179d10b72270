package app

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// envPrefix namespaces the environment variables read by Load.
const envPrefix = "CIPHMSG_"

// Config holds runtime wiring options for building the app.
type Config struct {
	IndexerURL   string        `koanf:"indexer_url"`   // indexer base URL
	DataDir      string        `koanf:"data_dir"`      // key store and identity directory
	QueryTimeout time.Duration `koanf:"query_timeout"` // per indexer call
	QueryLimit   int           `koanf:"query_limit"`   // max entries per query
	Debug        bool          `koanf:"debug"`         // verbose logging
}

// Load builds the configuration from defaults overlaid with CIPHMSG_*
// environment variables (CIPHMSG_INDEXER_URL, CIPHMSG_DATA_DIR, ...).
func Load() (Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]interface{}{
		"indexer_url":   "http://127.0.0.1:8080",
		"data_dir":      defaultDataDir(),
		"query_timeout": 10 * time.Second,
		"query_limit":   1000,
		"debug":         false,
	}, "."), nil); err != nil {
		return Config{}, err
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".ciphmsg"
	}
	return filepath.Join(home, ".ciphmsg")
}
