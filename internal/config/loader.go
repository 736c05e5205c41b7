package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const prismFile = "prism.yaml"

// Source names where a configuration came from.
type Source string

const (
	SourceCustom   Source = "custom"
	SourceUser     Source = "user"
	SourceLocal    Source = "local"
	SourceEmbedded Source = "embedded"
	SourceBuiltin  Source = "builtin"
)

// LoadPrism loads the Prism configuration.
// Search order: customPath -> ~/.prism/configs/prism.yaml ->
// ./configs/prism.yaml -> embedded default -> hardcoded default.
func LoadPrism(customPath string) (PrismConfig, error) {
	cfg, _, err := ResolvePrism(customPath)
	return cfg, err
}

// ResolvePrism is LoadPrism that also reports which source was used.
// A custom path that cannot be read or parsed is an error; the other
// locations are skipped silently when missing or malformed.
func ResolvePrism(customPath string) (PrismConfig, Source, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return PrismConfig{}, SourceCustom, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := parsePrism(data)
		if err != nil {
			return PrismConfig{}, SourceCustom, fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, SourceCustom, nil
	}

	if path := userConfigPath(prismFile); path != "" {
		if cfg, ok := tryFile(path); ok {
			return cfg, SourceUser, nil
		}
	}

	if cfg, ok := tryFile(filepath.Join("configs", prismFile)); ok {
		return cfg, SourceLocal, nil
	}

	if cfg, err := parsePrism(defaultPrismYAML); err == nil {
		return cfg, SourceEmbedded, nil
	}
	return DefaultPrismConfig(), SourceBuiltin, nil
}

func tryFile(path string) (PrismConfig, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return PrismConfig{}, false
	}
	cfg, err := parsePrism(data)
	if err != nil {
		return PrismConfig{}, false
	}
	return cfg, true
}

// parsePrism decodes YAML over the hardcoded defaults, so a partial file
// only overrides the keys it names, then validates the result.
func parsePrism(data []byte) (PrismConfig, error) {
	cfg := DefaultPrismConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return PrismConfig{}, fmt.Errorf("failed to parse yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return PrismConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".prism", "configs", filename)
}

// MarshalPrism renders cfg as YAML, for `prism config` style dumps.
func MarshalPrism(cfg PrismConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: failed to encode yaml: %w", err)
	}
	return data, nil
}
