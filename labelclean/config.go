package labelclean

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// AppName is used for XDG directory paths.
const AppName = "labelclean"

const defaultConfigFile = "config.json"

// DefaultConfigPath returns $XDG_CONFIG_HOME/labelclean/config.json.
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, defaultConfigFile)
}

// ResolveConfigPath picks the config file to use when the caller did not name
// one: ./config.json if it exists, otherwise the XDG location.
func ResolveConfigPath(path string) string {
	if strings.TrimSpace(path) != "" {
		return path
	}
	if _, err := os.Stat(defaultConfigFile); err == nil {
		return defaultConfigFile
	}
	return DefaultConfigPath()
}

// LoadConfig loads configuration from the given path. A missing file yields
// the defaults. The extension picks the decoder: .toml, .yaml/.yml, and JSON
// for everything else.
func LoadConfig(path string) (Config, error) {
	path = ResolveConfigPath(path)
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg.ApplyDefaults()
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := decodeConfig(path, data, &cfg); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

// SaveConfig persists configuration to disk.
func SaveConfig(path string, cfg Config) error {
	path = ResolveConfigPath(path)
	tmp := path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	cfg.ApplyDefaults()
	data, err := encodeConfig(path, cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp config: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename config: %w", err)
	}
	return nil
}

func decodeConfig(path string, data []byte, cfg *Config) error {
	switch configFormat(path) {
	case "toml":
		return toml.Unmarshal(data, cfg)
	case "yaml":
		return yaml.Unmarshal(data, cfg)
	default:
		return json.Unmarshal(data, cfg)
	}
}

func encodeConfig(path string, cfg Config) ([]byte, error) {
	switch configFormat(path) {
	case "toml":
		return toml.Marshal(cfg)
	case "yaml":
		return yaml.Marshal(cfg)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func configFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return "toml"
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "json"
	}
}
