// Package config loads runtime configuration from a TOML file with
// environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"fincache/internal/identity"
)

const (
	DefaultLogLevel = "info"
	DefaultIDPolicy = string(identity.PolicyContent)

	configFileName = ".fincache.toml"

	configDirEnvKey = "FINCACHE_CONFIG_DIR"
	rootEnvKey      = "FINCACHE_ROOT"
	logLevelEnvKey  = "FINCACHE_LOG_LEVEL"
	idPolicyEnvKey  = "FINCACHE_ID_POLICY"
)

// Config defines runtime configuration for fincache.
type Config struct {
	Root     string `toml:"root"`
	IDPolicy string `toml:"id_policy"`
	Compress bool   `toml:"compress"`
	LogLevel string `toml:"log_level"`
}

// Default returns default configuration values. Root is left empty and
// resolved at load time.
func Default() Config {
	return Config{
		Root:     "",
		IDPolicy: DefaultIDPolicy,
		Compress: false,
		LogLevel: DefaultLogLevel,
	}
}

// Load reads the config file and applies env overrides. A missing
// config file is not an error.
func Load() (*Config, error) {
	cfg := Default()

	path, err := Path()
	if err != nil {
		return nil, err
	}
	if err := loadFile(path, &cfg); err != nil {
		return nil, err
	}

	if root := strings.TrimSpace(os.Getenv(rootEnvKey)); root != "" {
		cfg.Root = root
	}
	if level := strings.TrimSpace(os.Getenv(logLevelEnvKey)); level != "" {
		cfg.LogLevel = level
	}
	if policy := strings.TrimSpace(os.Getenv(idPolicyEnvKey)); policy != "" {
		cfg.IDPolicy = policy
	}

	if cfg.Root == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			return nil, fmt.Errorf("resolve cache root: %w", err)
		}
		cfg.Root = filepath.Join(base, "fincache")
	}
	policy, err := identity.ParseIDPolicy(cfg.IDPolicy)
	if err != nil {
		return nil, err
	}
	cfg.IDPolicy = string(policy)
	if strings.TrimSpace(cfg.LogLevel) == "" {
		cfg.LogLevel = DefaultLogLevel
	}

	return &cfg, nil
}

// Path returns the config file location, honoring the config dir
// override.
func Path() (string, error) {
	if dir := strings.TrimSpace(os.Getenv(configDirEnvKey)); dir != "" {
		return filepath.Join(dir, configFileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configFileName), nil
}

func loadFile(path string, cfg *Config) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if info.IsDir() {
		return nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

var allowedKeys = []string{
	"root",
	"id_policy",
	"compress",
	"log_level",
}

// AllowedKeys returns the set of valid config keys.
func AllowedKeys() []string {
	return allowedKeys
}

// IsAllowedKey checks if a key is a valid config key.
func IsAllowedKey(key string) bool {
	for _, k := range allowedKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Get returns the value of a config key.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "root":
		return c.Root, nil
	case "id_policy":
		return c.IDPolicy, nil
	case "compress":
		return strconv.FormatBool(c.Compress), nil
	case "log_level":
		return c.LogLevel, nil
	default:
		return "", fmt.Errorf("unknown key: %s", key)
	}
}

// SetKey reads the TOML file at path, sets key=value, and writes it back.
func SetKey(path, key, value string) error {
	if !IsAllowedKey(key) {
		return fmt.Errorf("unknown key: %s", key)
	}

	data := make(map[string]any)
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &data); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	}

	parsedValue, err := parseSetValue(key, value)
	if err != nil {
		return err
	}
	data[key] = parsedValue

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(data)
}

func parseSetValue(key, value string) (any, error) {
	value = strings.TrimSpace(value)
	switch key {
	case "compress":
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("%s must be true or false", key)
		}
		return parsed, nil
	case "id_policy":
		if _, err := identity.ParseIDPolicy(value); err != nil {
			return nil, err
		}
		return value, nil
	default:
		return value, nil
	}
}
