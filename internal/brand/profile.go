package brand

// #region imports
import (
	"strings"

	"github.com/sketchfoundry/brandgate/internal/color"
	"github.com/sketchfoundry/brandgate/internal/manifest"
)

// #endregion imports

// #region constants

// PaletteTolerance is the perceptual-distance threshold (Lab deltaE units)
// within which a manifest color counts as "on palette".
const PaletteTolerance = 10.0

// DefaultMinContrast is the WCAG AA normal-text threshold used when a
// profile does not set its own.
const DefaultMinContrast = 4.5

// #endregion constants

// #region types

// GridSpec is an optional layout-grid constraint carried by a profile.
// The engine records it but does not currently enforce it.
type GridSpec struct {
	Columns int     `yaml:"columns" json:"columns"`
	Gutter  float64 `yaml:"gutter" json:"gutter"`
}

// Profile is a read-only brand definition owned by the caller: an allowed
// palette, an allowed font list, and a minimum contrast requirement.
type Profile struct {
	Name        string    `yaml:"name" json:"name"`
	Palette     []string  `yaml:"palette" json:"palette"`
	Fonts       []string  `yaml:"fonts" json:"fonts"`
	MinContrast float64   `yaml:"min_contrast" json:"min_contrast"`
	Grid        *GridSpec `yaml:"grid,omitempty" json:"grid,omitempty"`
}

// MinContrastOrDefault returns the profile's contrast floor, falling back
// to the WCAG AA default when unset.
func (p *Profile) MinContrastOrDefault() float64 {
	if p == nil || p.MinContrast <= 0 {
		return DefaultMinContrast
	}
	return p.MinContrast
}

// #endregion types

// #region membership

// IsOnBrand decides brand-subspace membership: palette containment, font
// allowance, and contrast compliance must all pass. A nil profile imposes
// no constraints and is vacuously true; so is any sub-check whose profile
// field is empty.
func IsOnBrand(m *manifest.Manifest, p *Profile) bool {
	if p == nil {
		return true
	}
	return paletteContained(m, p) && fontAllowed(m, p) && contrastCompliant(m, p)
}

// paletteContained requires every specified color role to sit within
// PaletteTolerance of at least one palette entry.
func paletteContained(m *manifest.Manifest, p *Profile) bool {
	if len(p.Palette) == 0 || m == nil || m.Colors == nil {
		return true
	}
	for _, role := range m.Colors.Roles() {
		if role.Value == "" {
			continue
		}
		if NearestPaletteDistance(role.Value, p.Palette) > PaletteTolerance {
			return false
		}
	}
	return true
}

// fontAllowed matches the manifest font family against the allowed list by
// case-insensitive substring in either direction ("Inter" matches
// "Inter Display").
func fontAllowed(m *manifest.Manifest, p *Profile) bool {
	if len(p.Fonts) == 0 || m == nil || m.Typography == nil || m.Typography.Family == "" {
		return true
	}
	family := strings.ToLower(strings.TrimSpace(m.Typography.Family))
	for _, f := range p.Fonts {
		allowed := strings.ToLower(strings.TrimSpace(f))
		if allowed == "" {
			continue
		}
		if strings.Contains(family, allowed) || strings.Contains(allowed, family) {
			return true
		}
	}
	return false
}

// contrastCompliant checks text/background contrast against the profile
// floor. ContrastRatio fails closed to 1.0, so unparseable colors fail
// here rather than passing silently.
func contrastCompliant(m *manifest.Manifest, p *Profile) bool {
	if m == nil || m.Colors == nil || m.Colors.Text == "" || m.Colors.Background == "" {
		return true
	}
	return color.ContrastRatio(m.Colors.Text, m.Colors.Background) >= p.MinContrastOrDefault()
}

// #endregion membership

// #region nearest

// NearestPaletteDistance returns the minimum perceptual distance from a
// color to any palette entry, or color.MaxDistance for an empty palette.
func NearestPaletteDistance(c string, palette []string) float64 {
	best := color.MaxDistance
	for _, entry := range palette {
		if d := color.PerceptualDistance(c, entry); d < best {
			best = d
		}
	}
	return best
}

// NearestPaletteColor returns the palette entry perceptually closest to c.
// An empty palette returns c unchanged.
func NearestPaletteColor(c string, palette []string) string {
	best := color.MaxDistance
	nearest := c
	for _, entry := range palette {
		if d := color.PerceptualDistance(c, entry); d < best {
			best = d
			nearest = entry
		}
	}
	return nearest
}

// #endregion nearest
