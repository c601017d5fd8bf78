package replay

// #region imports
import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sketchfoundry/brandgate/internal/brand"
	"github.com/sketchfoundry/brandgate/internal/manifest"
)

// #endregion imports

// #region fixture-types

// Fixture is the top-level JSON structure for a replay run: a set of
// manifests with expected validation outcomes, optionally under a brand
// profile.
type Fixture struct {
	Description string         `json:"description"`
	Profile     *brand.Profile `json:"profile,omitempty"`
	Cases       []Case         `json:"cases"`
}

// Case pairs one manifest with its expected outcome.
type Case struct {
	Name     string             `json:"name"`
	Manifest *manifest.Manifest `json:"manifest"`
	Expect   Expectation        `json:"expect"`
}

// Expectation captures what the validator and synthesizer should report.
// Violations lists expected predicate IDs in evaluation order; Escaped
// asserts whether an escape path was synthesized.
type Expectation struct {
	Valid      bool     `json:"valid"`
	Violations []string `json:"violations,omitempty"`
	Escaped    bool     `json:"escaped"`
}

// #endregion fixture-types

// #region load-save

// LoadFixture reads a fixture from a JSON file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	var fx Fixture
	if err := json.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	if len(fx.Cases) == 0 {
		return nil, fmt.Errorf("fixture has no cases")
	}
	return &fx, nil
}

// SaveFixture writes a fixture as indented JSON.
func SaveFixture(path string, fx *Fixture) error {
	data, err := json.MarshalIndent(fx, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal fixture: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write fixture: %w", err)
	}
	return nil
}

// #endregion load-save
