package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"

	DefaultDebounceMS = 400
)

// Config holds the unified application configuration
type Config struct {
	DataDir      string `json:"data_dir"`
	Backend      string `json:"backend"`
	DebounceMS   int    `json:"debounce_ms"`
	FlushOnClose bool   `json:"flush_on_close"`
}

// Settings represents the config file structure
type Settings struct {
	DataDir      string `json:"data_dir,omitempty"`
	Backend      string `json:"backend,omitempty"`
	DebounceMS   int    `json:"debounce_ms,omitempty"`
	FlushOnClose *bool  `json:"flush_on_close,omitempty"`
}

// CLIFlags holds parsed CLI flags. Zero values mean "not set".
type CLIFlags struct {
	DataDir   string
	Backend   string
	Ephemeral bool
}

// Load loads configuration with priority: CLI flags > env vars > config file > default
func Load(flags CLIFlags) (*Config, error) {
	cfg := &Config{
		Backend:    BackendFile,
		DebounceMS: DefaultDebounceMS,
	}

	// A local .env only fills in variables that aren't already exported.
	_ = godotenv.Load()

	configPath, err := getConfigPath()
	if err == nil {
		if fileConfig, err := loadConfigFile(configPath); err == nil {
			if fileConfig.DataDir != "" {
				cfg.DataDir = expandPath(fileConfig.DataDir)
			}
			if fileConfig.Backend != "" {
				cfg.Backend = fileConfig.Backend
			}
			if fileConfig.DebounceMS > 0 {
				cfg.DebounceMS = fileConfig.DebounceMS
			}
			if fileConfig.FlushOnClose != nil {
				cfg.FlushOnClose = *fileConfig.FlushOnClose
			}
		}
	}

	// Priority 2: Environment variables override config file
	if v := os.Getenv("KEEPNOTES_DIR"); v != "" {
		cfg.DataDir = expandPath(v)
	}
	if v := os.Getenv("KEEPNOTES_BACKEND"); v != "" {
		cfg.Backend = v
	}
	if v := os.Getenv("KEEPNOTES_DEBOUNCE_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			cfg.DebounceMS = ms
		}
	}
	if v := os.Getenv("KEEPNOTES_FLUSH_ON_CLOSE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.FlushOnClose = b
		}
	}

	// Priority 1: CLI flags override everything
	if flags.DataDir != "" {
		cfg.DataDir = expandPath(flags.DataDir)
	}
	if flags.Backend != "" {
		cfg.Backend = flags.Backend
	}
	if flags.Ephemeral {
		cfg.Backend = BackendMemory
	}

	if cfg.DataDir == "" {
		defaultDir, err := GetDefaultDir()
		if err != nil {
			return nil, err
		}
		cfg.DataDir = defaultDir
	}

	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))
	switch cfg.Backend {
	case BackendFile, BackendSQLite, BackendMemory:
	default:
		return nil, fmt.Errorf("unknown backend %q (want %s, %s or %s)", cfg.Backend, BackendFile, BackendSQLite, BackendMemory)
	}

	return cfg, nil
}

// Debounce is the editor commit delay.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}

// GetDefaultDir returns the default data directory path
func GetDefaultDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, "keepnotes"), nil
}

func getConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "keepnotes", "config.json"), nil
}

func loadConfigFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, err
	}

	return &settings, nil
}

// EnsureDataDir creates the data directory if it is missing.
func (c *Config) EnsureDataDir() error {
	if c.Backend == BackendMemory {
		return nil
	}
	return os.MkdirAll(c.DataDir, 0755)
}

// EnsureConfigFile creates the config file with defaults if it doesn't exist
func EnsureConfigFile() error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return err
	}

	defaultDir, err := GetDefaultDir()
	if err != nil {
		return err
	}

	flush := false
	settings := Settings{
		DataDir:      defaultDir,
		Backend:      BackendFile,
		DebounceMS:   DefaultDebounceMS,
		FlushOnClose: &flush,
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(homeDir, path[2:])
	}
	return path
}
