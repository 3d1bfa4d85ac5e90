// Package yaml loads docset build settings from YAML files.
package yaml

import (
	"fmt"
	"os"

	"github.com/fwojciec/docset"
	"gopkg.in/yaml.v3"
)

// LoadConfig reads the build settings stored at path. Fields absent from the
// file are left at their zero value so they can be merged over defaults.
func LoadConfig(path string) (*docset.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg docset.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, docset.Errorf(docset.EINVALID, "failed to parse config file %s: %v", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
