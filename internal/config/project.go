// Project configuration (vela.yaml) for a checked source tree.
//
// The file is optional. It declares checker-wide switches and the intrinsic
// element tags (lowercase tags like "text" or "view") with their attribute
// tables, which every checking session registers before user components.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Project represents the top-level vela.yaml configuration.
type Project struct {
	// Strict enables treating unreachable-arm reports as errors rather
	// than hints in editor output. Checking behavior is identical.
	Strict bool `yaml:"strict,omitempty"`

	// Intrinsics maps an element tag to its attribute table. Each
	// attribute maps to a builtin type name, with a trailing '?' marking
	// the attribute optional (e.g. "disabled: Boolean?").
	Intrinsics map[string]map[string]string `yaml:"intrinsics,omitempty"`
}

// Load reads and validates a vela.yaml file. A missing file yields the zero
// configuration, not an error.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Project{}, nil
		}
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a vela.yaml document.
func Parse(data []byte) (*Project, error) {
	var p Project
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("invalid vela.yaml: %w", err)
	}
	for tag, attrs := range p.Intrinsics {
		for attr, typeName := range attrs {
			if typeName == "" {
				return nil, fmt.Errorf("invalid vela.yaml: intrinsic %s attribute %s has no type", tag, attr)
			}
		}
	}
	return &p, nil
}
