package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// AccessRule names the role required to read and to write one resource.
type AccessRule struct {
	Read  string `yaml:"read"`
	Write string `yaml:"write"`
}

// FileConfig is the optional YAML configuration file.
//
//	access:
//	  helprequest:
//	    read: USER
//	    write: ADMIN
type FileConfig struct {
	Access map[string]AccessRule `yaml:"access"`
}

var knownRoles = map[string]bool{"USER": true, "ADMIN": true}

// LoadFile reads and validates a FileConfig.
// The path is expected to come from a trusted source (env or CLI flag).
func LoadFile(path string) (*FileConfig, error) {
	// #nosec G304 -- path is provided by the operator, not request input
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := fc.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &fc, nil
}

func (fc *FileConfig) validate() error {
	for resource, rule := range fc.Access {
		for op, role := range map[string]string{"read": rule.Read, "write": rule.Write} {
			if role == "" {
				continue
			}
			if !knownRoles[strings.ToUpper(role)] {
				return fmt.Errorf("access.%s.%s: unknown role %q", resource, op, role)
			}
		}
	}
	return nil
}
