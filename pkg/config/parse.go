package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ParseTuningConfigYAML parses a TuningConfig from YAML bytes and validates it.
// An empty log_level defaults to info.
func ParseTuningConfigYAML(data []byte) (*TuningConfig, error) {
	var cfg TuningConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config yaml: %w", err)
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	if err := validateTuningConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// ParseTuningConfigYAMLString parses a TuningConfig from a YAML string and validates it.
func ParseTuningConfigYAMLString(yamlText string) (*TuningConfig, error) {
	return ParseTuningConfigYAML([]byte(yamlText))
}

// MarshalTuningResultYAML renders a tuning result as YAML
func MarshalTuningResultYAML(result *TuningResult) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("tuning result is required")
	}
	data, err := yaml.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to render tuning result: %w", err)
	}
	return data, nil
}
