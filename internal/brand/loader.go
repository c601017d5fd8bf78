package brand

// #region imports
import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// #endregion imports

// #region loader

// LoadProfile reads a brand profile from a YAML file.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}
	return ParseProfile(data)
}

// ParseProfile decodes YAML profile bytes and applies defaults.
func ParseProfile(data []byte) (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse profile: %w", err)
	}
	if p.Name == "" {
		return nil, fmt.Errorf("profile missing name")
	}
	if p.MinContrast <= 0 {
		p.MinContrast = DefaultMinContrast
	}
	return &p, nil
}

// #endregion loader
