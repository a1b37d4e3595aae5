package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the client configuration, sourced from the environment.
type Config struct {
	// APIURL is the base URL of the aggregator API server.
	APIURL string
	// StateDir is where the client keeps its token file and debug log.
	StateDir string
	// HTTPTimeout bounds every API request. No retries are performed.
	HTTPTimeout time.Duration
	// ChatRulesPath optionally points at a YAML file overriding the
	// built-in chat rules. Empty means use the defaults.
	ChatRulesPath string
}

// Load reads configuration from the environment, loading a .env file
// first if one is present.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		APIURL:        getEnv("NEWSDECK_API_URL", "http://localhost:8080"),
		StateDir:      getEnv("NEWSDECK_STATE_DIR", defaultStateDir()),
		HTTPTimeout:   time.Duration(getEnvInt("NEWSDECK_HTTP_TIMEOUT_SECONDS", 15)) * time.Second,
		ChatRulesPath: getEnv("NEWSDECK_CHAT_RULES", ""),
	}
}

// TokenPath is the location of the persisted token pair.
func (c Config) TokenPath() string {
	return filepath.Join(c.StateDir, "tokens.json")
}

// LogPath is the debug log file. The TUI owns stdout, so log output is
// redirected here.
func (c Config) LogPath() string {
	return filepath.Join(c.StateDir, "newsdeck.log")
}

func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".newsdeck"
	}
	return filepath.Join(home, ".newsdeck")
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			return n
		}
	}
	return defaultVal
}
