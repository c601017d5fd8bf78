package predicate

// #region imports
import (
	"fmt"

	"github.com/sketchfoundry/brandgate/internal/brand"
	"github.com/sketchfoundry/brandgate/internal/manifest"
)

// #endregion imports

// #region severity

// Severity tags a predicate as blocking or advisory.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// #endregion severity

// #region predicate

// Finding is the outcome of a single predicate test.
type Finding struct {
	Valid   bool
	Message string
}

// Predicate pairs a named boolean test over a manifest with an optional
// deterministic repair. Tests never mutate their input; fixes return a
// new manifest.
type Predicate struct {
	ID       string
	Severity Severity
	Test     func(*manifest.Manifest) Finding
	Fix      func(*manifest.Manifest) *manifest.Manifest
}

// #endregion predicate

// #region helpers

func ok() Finding {
	return Finding{Valid: true}
}

func failf(format string, args ...interface{}) Finding {
	return Finding{Valid: false, Message: fmt.Sprintf(format, args...)}
}

// #endregion helpers

// #region default-set

// DefaultSet returns the fixed, ordered predicate collection. The order is
// part of the contract: it determines violation and report ordering. The
// brand profile may be nil, in which case brand_compliance passes
// vacuously. The returned set is owned by its validator and never mutated.
func DefaultSet(profile *brand.Profile) []Predicate {
	return []Predicate{
		{
			ID:       "color_contrast",
			Severity: SeverityError,
			Test:     testColorContrast,
			Fix:      FixColorContrast,
		},
		{
			ID:       "layout_coherence",
			Severity: SeverityError,
			Test:     testLayoutCoherence,
			Fix:      fixLayoutCoherence,
		},
		{
			ID:       "brand_compliance",
			Severity: SeverityWarning,
			Test:     func(m *manifest.Manifest) Finding { return testBrandCompliance(m, profile) },
			Fix:      func(m *manifest.Manifest) *manifest.Manifest { return fixBrandCompliance(m, profile) },
		},
		{
			ID:       "animation_physics",
			Severity: SeverityWarning,
			Test:     testAnimationPhysics,
			Fix:      fixAnimationPhysics,
		},
		{
			ID:       "canvas_validity",
			Severity: SeverityError,
			Test:     testCanvasValidity,
			Fix:      fixCanvasValidity,
		},
		{
			ID:       "text_readability",
			Severity: SeverityWarning,
			Test:     testTextReadability,
			Fix:      fixTextReadability,
		},
	}
}

// #endregion default-set
