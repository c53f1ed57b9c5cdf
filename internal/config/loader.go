package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Variants returns the names of the built-in rule sets.
func Variants() []string {
	return []string{"classic", "marathon"}
}

// Load loads the rules for a variant.
// Search order: customPath -> ~/.tstris/configs/<variant>.yaml -> ./configs/<variant>.yaml -> embedded default
//
// Every file is decoded over the variant's hard-coded defaults, so a file
// only needs the keys it changes.
func Load(variant, customPath string) (RulesConfig, error) {
	embedded := GetDefaultYAML(variant)
	if embedded == nil {
		return RulesConfig{}, fmt.Errorf("config: unknown variant %q", variant)
	}
	filename := variant + ".yaml"

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return RulesConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := Parse(variant, data)
		if err != nil {
			return RulesConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(variant, data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", filename)); err == nil {
		if cfg, err := Parse(variant, data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(variant, embedded)
	if err != nil {
		return defaultFor(variant), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML over the variant's hard-coded defaults.
func Parse(variant string, data []byte) (RulesConfig, error) {
	cfg := defaultFor(variant)
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return RulesConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tstris", "configs", filename)
}
