// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variables that override file values.
const (
	EnvAPIKey   = "GEMINI_API_KEY"
	EnvDataDir  = "ARCHINEWS_DATA_DIR"
	EnvLogLevel = "LOG_LEVEL"
	EnvParallel = "ARCHINEWS_PARALLEL"
	EnvPort     = "ARCHINEWS_PORT"
)

var logLevels = []string{"debug", "info", "warn", "error"}

// Config is the tool configuration. It can be loaded from a JSON or YAML file;
// every field is optional and missing values fall back to Defaults.
type Config struct {
	DataDir     string `json:"data_dir,omitempty" yaml:"data_dir,omitempty"`         // Directory holding the store files
	APIKey      string `json:"api_key,omitempty" yaml:"api_key,omitempty"`           // Gemini API key
	TextModel   string `json:"text_model,omitempty" yaml:"text_model,omitempty"`     // Model for text-only prompts
	VisionModel string `json:"vision_model,omitempty" yaml:"vision_model,omitempty"` // Model for prompts with an image
	Parallel    bool   `json:"parallel,omitempty" yaml:"parallel,omitempty"`         // Generate the three lengths concurrently
	LogLevel    string `json:"log_level,omitempty" yaml:"log_level,omitempty"`       // debug, info, warn or error
	Port        int    `json:"port,omitempty" yaml:"port,omitempty"`                 // HTTP server port
	Verbose     bool   `json:"verbose,omitempty" yaml:"verbose,omitempty"`           // Print generated artifacts in boxes
	FrameCache  string `json:"frame_cache,omitempty" yaml:"frame_cache,omitempty"`   // Lifetime of cached frames, e.g. "30m"
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		DataDir:    "data",
		LogLevel:   "info",
		Port:       8080,
		FrameCache: "30m",
	}
}

// Load reads path (when non-empty), applies environment overrides, fills
// defaults and validates the result.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	cfg.ApplyEnv(os.Getenv)
	merged := cfg.MergeWithDefaults(Defaults())
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// LoadConfig loads configuration from a file. Files ending in .yaml or .yml are
// parsed as YAML, anything else as JSON.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// ApplyEnv overrides fields with non-empty environment values read through getenv.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv(EnvAPIKey); v != "" {
		c.APIKey = v
	}
	if v := getenv(EnvDataDir); v != "" {
		c.DataDir = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	if v := getenv(EnvParallel); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Parallel = b
		}
	}
	if v := getenv(EnvPort); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Port = port
		}
	}
}

// Validate checks that the configuration has valid values.
// The API key is not required here; commands that call the model check it.
func (c *Config) Validate() error {
	if c.LogLevel != "" && !contains(logLevels, c.LogLevel) {
		return fmt.Errorf("config error: 'log_level' must be one of %s", strings.Join(logLevels, ", "))
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.FrameCache != "" {
		if d, err := time.ParseDuration(c.FrameCache); err != nil || d <= 0 {
			return fmt.Errorf("config error: 'frame_cache' must be a positive duration")
		}
	}
	if c.DataDir != "" {
		if info, err := os.Stat(c.DataDir); err == nil && !info.IsDir() {
			return fmt.Errorf("config error: data_dir is not a directory: %s", c.DataDir)
		}
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.DataDir == "" {
		result.DataDir = defaults.DataDir
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.TextModel == "" {
		result.TextModel = defaults.TextModel
	}
	if result.VisionModel == "" {
		result.VisionModel = defaults.VisionModel
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.FrameCache == "" {
		result.FrameCache = defaults.FrameCache
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// FrameCacheTTL returns the parsed frame cache lifetime, or zero when unset.
func (c *Config) FrameCacheTTL() time.Duration {
	d, err := time.ParseDuration(c.FrameCache)
	if err != nil {
		return 0
	}
	return d
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
