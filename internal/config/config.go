package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Defaults used when neither the config file nor the environment sets a value.
const (
	DefaultCommitLimit   = 100
	DefaultContextLines  = 3
	DefaultServerAddr    = "127.0.0.1:7417"
	DefaultLogMaxSize    = 1
	DefaultLogMaxBackups = 2
	DefaultLogMaxAge     = 30
)

// Environment variables read by Load.
const (
	EnvConfigPath  = "GITSCOPE_CONFIG"
	EnvCommitLimit = "GITSCOPE_COMMIT_LIMIT"
	EnvLogFile     = "GITSCOPE_LOG_FILE"
	EnvServerAddr  = "GITSCOPE_SERVER_ADDR"
)

// FileConfig is the on-disk representation. Unset fields are nil.
type FileConfig struct {
	CommitLimit   *int    `json:"commitLimit,omitempty"`
	ContextLines  *int    `json:"contextLines,omitempty"`
	LogFile       *string `json:"logFile,omitempty"`
	LogMaxSize    *int    `json:"logMaxSize,omitempty"`
	LogMaxBackups *int    `json:"logMaxBackups,omitempty"`
	LogMaxAge     *int    `json:"logMaxAge,omitempty"`
	ServerAddr    *string `json:"serverAddr,omitempty"`
}

// Config is the resolved configuration
type Config struct {
	CommitLimit   int
	ContextLines  int
	LogFile       string
	LogMaxSize    int
	LogMaxBackups int
	LogMaxAge     int
	ServerAddr    string

	// Path is where the config was (or would be) read from
	Path string
}

// Default returns a config with every default applied
func Default() *Config {
	return &Config{
		CommitLimit:   DefaultCommitLimit,
		ContextLines:  DefaultContextLines,
		LogMaxSize:    DefaultLogMaxSize,
		LogMaxBackups: DefaultLogMaxBackups,
		LogMaxAge:     DefaultLogMaxAge,
		ServerAddr:    DefaultServerAddr,
	}
}

// Path returns the config file location: $GITSCOPE_CONFIG, or
// gitscope/config.json under the user config directory.
func Path() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config directory: %w", err)
	}
	return filepath.Join(dir, "gitscope", "config.json"), nil
}

// ReadFile parses the config file at path. A missing file is an empty config.
func ReadFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &FileConfig{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var fc FileConfig
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &fc, nil
}

// Load reads the config file, applies defaults and then environment overrides.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	fc, err := ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Resolve(fc)
	cfg.Path = path
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Resolve fills unset fields of fc with defaults
func Resolve(fc *FileConfig) *Config {
	cfg := Default()
	if fc == nil {
		return cfg
	}
	if fc.CommitLimit != nil && *fc.CommitLimit > 0 {
		cfg.CommitLimit = *fc.CommitLimit
	}
	if fc.ContextLines != nil && *fc.ContextLines > 0 {
		cfg.ContextLines = *fc.ContextLines
	}
	if fc.LogFile != nil {
		cfg.LogFile = *fc.LogFile
	}
	if fc.LogMaxSize != nil && *fc.LogMaxSize > 0 {
		cfg.LogMaxSize = *fc.LogMaxSize
	}
	if fc.LogMaxBackups != nil && *fc.LogMaxBackups >= 0 {
		cfg.LogMaxBackups = *fc.LogMaxBackups
	}
	if fc.LogMaxAge != nil && *fc.LogMaxAge > 0 {
		cfg.LogMaxAge = *fc.LogMaxAge
	}
	if fc.ServerAddr != nil && *fc.ServerAddr != "" {
		cfg.ServerAddr = *fc.ServerAddr
	}
	return cfg
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvCommitLimit); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid %s %q: must be a positive integer", EnvCommitLimit, v)
		}
		c.CommitLimit = n
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		c.LogFile = v
	}
	if v := os.Getenv(EnvServerAddr); v != "" {
		c.ServerAddr = v
	}
	return nil
}

// Save writes fc to path, creating the parent directory if needed
func Save(path string, fc *FileConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configJSON, err := json.MarshalIndent(fc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(path, configJSON, 0600)
}
