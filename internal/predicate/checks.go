package predicate

// #region imports
import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/sketchfoundry/brandgate/internal/brand"
	"github.com/sketchfoundry/brandgate/internal/color"
	"github.com/sketchfoundry/brandgate/internal/manifest"
)

// #endregion imports

// #region color-contrast

const (
	contrastFloor   = 4.5 // WCAG AA normal text
	lightnessStep   = 0.2
	maxShiftRetries = 5
	luminanceDark   = 0.05
	luminanceLight  = 0.95
)

func testColorContrast(m *manifest.Manifest) Finding {
	if m == nil || m.Colors == nil || m.Colors.Text == "" || m.Colors.Background == "" {
		return ok()
	}
	ratio := color.ContrastRatio(m.Colors.Text, m.Colors.Background)
	if ratio < contrastFloor {
		return failf("text/background contrast %.2f below %.1f", ratio, contrastFloor)
	}
	return ok()
}

// FixColorContrast repairs a low-contrast text color by darkening it in
// fixed lightness steps, then, if darkening saturates without reaching the
// floor, lightening from the original color instead. Exported because the
// repair itself is part of the engine's contract.
func FixColorContrast(m *manifest.Manifest) *manifest.Manifest {
	if m == nil || m.Colors == nil || m.Colors.Text == "" || m.Colors.Background == "" {
		return m.Clone()
	}
	out := m.Clone()
	bg := out.Colors.Background
	original := out.Colors.Text

	if repaired, done := shiftUntilReadable(original, bg, -lightnessStep, luminanceDark); done {
		out.Colors.Text = repaired
		return out
	}
	if repaired, done := shiftUntilReadable(original, bg, +lightnessStep, luminanceLight); done {
		out.Colors.Text = repaired
		return out
	}
	// Neither direction reached the floor within budget; keep the last
	// darkened candidate. The escape path remains the constructive route.
	out.Colors.Text = shiftN(original, -lightnessStep, maxShiftRetries)
	return out
}

// shiftUntilReadable walks the text color's lightness in one direction,
// stopping early once the contrast floor is met or luminance saturates.
func shiftUntilReadable(text, bg string, step, saturation float64) (string, bool) {
	c := text
	for i := 0; i < maxShiftRetries; i++ {
		c = color.ShiftLightness(c, step)
		if color.ContrastRatio(c, bg) >= contrastFloor {
			return c, true
		}
		lum, okLum := color.RelativeLuminance(c)
		if !okLum {
			return c, false
		}
		if step < 0 && lum <= saturation {
			break
		}
		if step > 0 && lum >= saturation {
			break
		}
	}
	if color.ContrastRatio(c, bg) >= contrastFloor {
		return c, true
	}
	return c, false
}

func shiftN(c string, step float64, n int) string {
	for i := 0; i < n; i++ {
		c = color.ShiftLightness(c, step)
	}
	return c
}

// #endregion color-contrast

// #region layout-coherence

const (
	defaultExtent = 100.0 // missing element width/height
	gridMargin    = 10.0
)

// box is a resolved axis-aligned bounding box.
type box struct {
	x, y, w, h float64
}

func resolveBox(el manifest.Element) box {
	b := box{w: defaultExtent, h: defaultExtent}
	if el.X != nil {
		b.x = *el.X
	}
	if el.Y != nil {
		b.y = *el.Y
	}
	if el.Width != nil {
		b.w = *el.Width
	}
	if el.Height != nil {
		b.h = *el.Height
	}
	return b
}

func overlaps(a, b box) bool {
	return a.x < b.x+b.w && b.x < a.x+a.w && a.y < b.y+b.h && b.y < a.y+a.h
}

func testLayoutCoherence(m *manifest.Manifest) Finding {
	if m == nil || len(m.Elements) < 2 {
		return ok()
	}
	boxes := make([]box, len(m.Elements))
	for i, el := range m.Elements {
		boxes[i] = resolveBox(el)
	}
	for i := 0; i < len(boxes); i++ {
		for j := i + 1; j < len(boxes); j++ {
			if overlaps(boxes[i], boxes[j]) {
				return failf("elements %d and %d overlap", i, j)
			}
		}
	}
	return ok()
}

// fixLayoutCoherence re-lays all elements on a ceil(sqrt(n)) square grid,
// one cell each, with a pitch wide enough for the largest element.
func fixLayoutCoherence(m *manifest.Manifest) *manifest.Manifest {
	out := m.Clone()
	if out == nil || len(out.Elements) == 0 {
		return out
	}
	n := len(out.Elements)
	cols := int(math.Ceil(math.Sqrt(float64(n))))

	pitch := defaultExtent
	for _, el := range out.Elements {
		b := resolveBox(el)
		if b.w > pitch {
			pitch = b.w
		}
		if b.h > pitch {
			pitch = b.h
		}
	}
	pitch += gridMargin

	for i := range out.Elements {
		x := float64(i%cols) * pitch
		y := float64(i/cols) * pitch
		out.Elements[i].X = &x
		out.Elements[i].Y = &y
	}
	return out
}

// #endregion layout-coherence

// #region brand-compliance

func testBrandCompliance(m *manifest.Manifest, profile *brand.Profile) Finding {
	if profile == nil || len(profile.Palette) == 0 || m == nil || m.Colors == nil {
		return ok()
	}
	for _, role := range m.Colors.Roles() {
		if role.Value == "" {
			continue
		}
		if d := brand.NearestPaletteDistance(role.Value, profile.Palette); d > brand.PaletteTolerance {
			return failf("%s color %s is %.1f units from the nearest brand color", role.Name, role.Value, d)
		}
	}
	return ok()
}

// fixBrandCompliance snaps every specified color role to its perceptually
// nearest palette entry.
func fixBrandCompliance(m *manifest.Manifest, profile *brand.Profile) *manifest.Manifest {
	out := m.Clone()
	if out == nil || out.Colors == nil || profile == nil || len(profile.Palette) == 0 {
		return out
	}
	snap := func(c string) string {
		if c == "" {
			return c
		}
		return brand.NearestPaletteColor(c, profile.Palette)
	}
	out.Colors.Primary = snap(out.Colors.Primary)
	out.Colors.Secondary = snap(out.Colors.Secondary)
	out.Colors.Tertiary = snap(out.Colors.Tertiary)
	out.Colors.Accent = snap(out.Colors.Accent)
	out.Colors.Background = snap(out.Colors.Background)
	out.Colors.Text = snap(out.Colors.Text)
	return out
}

// #endregion brand-compliance

// #region animation-physics

var namedEasings = map[string]bool{
	"linear":      true,
	"ease":        true,
	"ease-in":     true,
	"ease-out":    true,
	"ease-in-out": true,
	"bounce":      true,
	"elastic":     true,
}

var parametrizedEasing = regexp.MustCompile(
	`^(cubic-bezier\(\s*-?\d+(\.\d+)?\s*(,\s*-?\d+(\.\d+)?\s*){3}\)|steps\(\s*\d+\s*(,\s*(start|end)\s*)?\))$`)

func easingRecognized(e string) bool {
	e = strings.ToLower(strings.TrimSpace(e))
	return namedEasings[e] || parametrizedEasing.MatchString(e)
}

func testAnimationPhysics(m *manifest.Manifest) Finding {
	if m == nil || m.Motion == nil {
		return ok()
	}
	if m.Motion.Duration != nil {
		d := *m.Motion.Duration
		if math.IsNaN(d) || d <= 0 {
			return failf("animation duration %v is not positive", d)
		}
	}
	if m.Motion.Easing != "" && !easingRecognized(m.Motion.Easing) {
		return failf("unrecognized easing %q", m.Motion.Easing)
	}
	return ok()
}

func fixAnimationPhysics(m *manifest.Manifest) *manifest.Manifest {
	out := m.Clone()
	if out == nil || out.Motion == nil {
		return out
	}
	if out.Motion.Duration != nil {
		if d := *out.Motion.Duration; math.IsNaN(d) || d <= 0 {
			v := manifest.DefaultDuration
			out.Motion.Duration = &v
		}
	}
	if out.Motion.Easing != "" && !easingRecognized(out.Motion.Easing) {
		out.Motion.Easing = manifest.DefaultEasing
	}
	return out
}

// #endregion animation-physics

// #region canvas-validity

func testCanvasValidity(m *manifest.Manifest) Finding {
	if m == nil || m.Canvas == "" {
		return ok()
	}
	if _, _, okSpec := parseCanvas(m.Canvas); !okSpec {
		return failf("invalid canvas ratio %q", m.Canvas)
	}
	return ok()
}

// parseCanvas splits a "W:H" or "WxH" spec into positive components.
func parseCanvas(spec string) (float64, float64, bool) {
	s := strings.TrimSpace(spec)
	var parts []string
	switch {
	case strings.Contains(s, ":"):
		parts = strings.Split(s, ":")
	case strings.ContainsAny(s, "xX"):
		parts = strings.FieldsFunc(s, func(r rune) bool { return r == 'x' || r == 'X' })
	default:
		return 0, 0, false
	}
	if len(parts) != 2 {
		return 0, 0, false
	}
	w, errW := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	h, errH := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if errW != nil || errH != nil {
		return 0, 0, false
	}
	if math.IsNaN(w) || math.IsNaN(h) || math.IsInf(w, 0) || math.IsInf(h, 0) || w <= 0 || h <= 0 {
		return 0, 0, false
	}
	return w, h, true
}

func fixCanvasValidity(m *manifest.Manifest) *manifest.Manifest {
	out := m.Clone()
	if out == nil || out.Canvas == "" {
		return out
	}
	if _, _, okSpec := parseCanvas(out.Canvas); !okSpec {
		out.Canvas = manifest.DefaultCanvas
	}
	return out
}

// #endregion canvas-validity

// #region text-readability

func testTextReadability(m *manifest.Manifest) Finding {
	if m == nil {
		return ok()
	}
	if m.Text != nil && strings.TrimSpace(*m.Text) == "" {
		return failf("text is present but blank")
	}
	if m.Typography != nil && m.Typography.Size != nil {
		s := *m.Typography.Size
		if math.IsNaN(s) || s < manifest.MinFontSize || s > manifest.MaxFontSize {
			return failf("font size %v outside [%v, %v]", s, manifest.MinFontSize, manifest.MaxFontSize)
		}
	}
	return ok()
}

func fixTextReadability(m *manifest.Manifest) *manifest.Manifest {
	out := m.Clone()
	if out == nil {
		return out
	}
	if out.Text != nil && strings.TrimSpace(*out.Text) == "" {
		placeholder := manifest.DefaultText
		out.Text = &placeholder
	}
	if out.Typography != nil && out.Typography.Size != nil {
		s := *out.Typography.Size
		switch {
		case math.IsNaN(s):
			v := manifest.DefaultFontSize
			out.Typography.Size = &v
		case s < manifest.MinFontSize:
			v := manifest.MinFontSize
			out.Typography.Size = &v
		case s > manifest.MaxFontSize:
			v := manifest.MaxFontSize
			out.Typography.Size = &v
		}
	}
	return out
}

// #endregion text-readability
