package color

// #region imports
import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// #endregion imports

// #region constants

// MaxDistance is the fail-closed sentinel for unparseable colors.
// It sits above any realizable Lab deltaE (black↔white is 100), so
// callers ranking by distance treat a bad color as maximally different.
const MaxDistance = 400.0

// MinContrast is the floor of the WCAG contrast-ratio range.
const MinContrast = 1.0

// #endregion constants

// #region parse

// Parse converts a hex color string to a colorful.Color.
// Accepts "#rrggbb", "rrggbb", "#rgb", and "rgb", case-insensitive.
// Returns false for anything it cannot parse.
func Parse(s string) (colorful.Color, bool) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return colorful.Color{}, false
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}, false
	}
	return c, true
}

// #endregion parse

// #region perceptual-distance

// PerceptualDistance computes the Lab deltaE between two hex colors on the
// classic CIE76 scale (L in 0..100 units). If either color fails to parse,
// it returns MaxDistance.
func PerceptualDistance(a, b string) float64 {
	ca, okA := Parse(a)
	cb, okB := Parse(b)
	if !okA || !okB {
		return MaxDistance
	}
	// colorful keeps L in 0..1; scale to the conventional 0..100 range.
	return ca.DistanceLab(cb) * 100.0
}

// #endregion perceptual-distance

// #region luminance

// RelativeLuminance computes WCAG relative luminance for a hex color.
// Returns false if the color does not parse.
func RelativeLuminance(s string) (float64, bool) {
	c, ok := Parse(s)
	if !ok {
		return 0, false
	}
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b, true
}

// #endregion luminance

// #region contrast-ratio

// ContrastRatio computes the WCAG contrast ratio between a foreground and
// background color: (L_lighter + 0.05) / (L_darker + 0.05), in [1, 21].
// Unparseable input fails closed to 1.0 so predicates downstream always
// receive a usable number.
func ContrastRatio(fg, bg string) float64 {
	lf, okF := RelativeLuminance(fg)
	lb, okB := RelativeLuminance(bg)
	if !okF || !okB {
		return MinContrast
	}
	lighter, darker := lf, lb
	if darker > lighter {
		lighter, darker = darker, lighter
	}
	return (lighter + 0.05) / (darker + 0.05)
}

// #endregion contrast-ratio

// #region lightness-shift

// ShiftLightness moves a hex color's Lab lightness by delta (on the 0..1
// scale colorful uses) and returns the clamped hex result. Unparseable
// input is returned unchanged.
func ShiftLightness(s string, delta float64) string {
	c, ok := Parse(s)
	if !ok {
		return s
	}
	l, a, b := c.Lab()
	l += delta
	if l < 0 {
		l = 0
	}
	if l > 1 {
		l = 1
	}
	return colorful.Lab(l, a, b).Clamped().Hex()
}

// #endregion lightness-shift

// #region blend

// BlendLab blends two hex colors in Lab space at fraction t (0 = a, 1 = b).
// If a fails to parse the result snaps to b; if b also fails, a is
// returned as-is.
func BlendLab(a, b string, t float64) string {
	ca, okA := Parse(a)
	cb, okB := Parse(b)
	switch {
	case okA && okB:
		return ca.BlendLab(cb, t).Clamped().Hex()
	case okB:
		return cb.Hex()
	default:
		return a
	}
}

// #endregion blend
