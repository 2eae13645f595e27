// Package config parses an ari.yaml settings file into a [File]. The ari
// CLI does not call [Load]; its commands take these settings from their
// own flags and $ADM_PATH.
package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// File is the on-disk shape of an ari.yaml settings file.
type File struct {
	// AdmPaths lists directories of ADM JSON documents, the setting the
	// CLI's --adm-path flag carries.
	AdmPaths []string `yaml:"adm_paths"`
	// MustNickname is the setting the --must-nickname flag carries.
	MustNickname bool `yaml:"must_nickname"`
	LogLevel     string `yaml:"log_level"`
	LogFormat    string `yaml:"log_format"`
}

// Load reads and parses a YAML settings file at path. A missing file is
// not an error; it returns a zero-value File.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &File{}, nil
		}

		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return &f, nil
}
