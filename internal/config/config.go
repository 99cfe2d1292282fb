package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Config captures everything jester reads at startup.
type Config struct {
	APIURL         string
	LogFile        string
	Theme          string
	MarkdownStyle  string
	Shuffle        time.Duration
	RequestTimeout time.Duration
}

const (
	defaultConfigPath     = "~/.config/jester/config.toml"
	defaultAPIURL         = "https://api.chucknorris.io/jokes"
	defaultLogFile        = "~/.local/share/jester/jester.log"
	defaultTheme          = "Nightfox"
	defaultMarkdownStyle  = "dark"
	defaultRequestTimeout = 10 * time.Second

	// EnvAPIURL overrides api_url from the config file.
	EnvAPIURL = "JESTER_API_URL"
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		APIURL:         defaultAPIURL,
		LogFile:        mustExpand(defaultLogFile),
		Theme:          defaultTheme,
		MarkdownStyle:  defaultMarkdownStyle,
		RequestTimeout: defaultRequestTimeout,
	}
}

// Load locates and parses the config file, falling back to defaults when
// missing. JESTER_API_URL in the environment wins over the file.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			applyEnv(&cfg)
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIURL                string `toml:"api_url"`
		LogFile               string `toml:"log_file"`
		Theme                 string `toml:"theme"`
		MarkdownStyle         string `toml:"markdown_style"`
		ShuffleSeconds        int    `toml:"shuffle_seconds"`
		RequestTimeoutSeconds int    `toml:"request_timeout_seconds"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIURL); v != "" {
		cfg.APIURL = v
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.Theme); v != "" {
		cfg.Theme = v
	}
	if v := strings.TrimSpace(raw.MarkdownStyle); v != "" {
		cfg.MarkdownStyle = v
	}
	if raw.ShuffleSeconds < 0 {
		return Config{}, fmt.Errorf("parse config: shuffle_seconds must not be negative")
	}
	cfg.Shuffle = time.Duration(raw.ShuffleSeconds) * time.Second
	if raw.RequestTimeoutSeconds < 0 {
		return Config{}, fmt.Errorf("parse config: request_timeout_seconds must not be negative")
	}
	if raw.RequestTimeoutSeconds > 0 {
		cfg.RequestTimeout = time.Duration(raw.RequestTimeoutSeconds) * time.Second
	}

	applyEnv(&cfg)
	return cfg, nil
}

// LoadEnvFile merges KEY=value pairs from a dotenv file into the process
// environment without overriding variables that are already set. A missing
// file is not an error.
func LoadEnvFile(path string) error {
	if strings.TrimSpace(path) == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return mustExpand(defaultConfigPath)
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvAPIURL)); v != "" {
		cfg.APIURL = v
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath resolves a leading ~ and returns an absolute path.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
