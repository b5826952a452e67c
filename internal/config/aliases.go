package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadActionAliases reads a YAML file mapping legacy action-type names to
// canonical ones, e.g. "left_click: click". An empty path disables aliasing.
func LoadActionAliases(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read action aliases file: %w", err)
	}

	aliases := make(map[string]string)
	if err := yaml.Unmarshal(data, &aliases); err != nil {
		return nil, fmt.Errorf("failed to parse action aliases file %s: %w", path, err)
	}
	for from, to := range aliases {
		if from == "" || to == "" {
			return nil, fmt.Errorf("action aliases file %s contains an empty name", path)
		}
	}
	return aliases, nil
}
