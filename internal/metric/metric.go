package metric

// #region imports
import (
	"math"
	"strconv"
	"strings"

	"github.com/sketchfoundry/brandgate/internal/color"
	"github.com/sketchfoundry/brandgate/internal/manifest"
)

// #endregion imports

// #region constants

// Category weights and penalties are fixed constants, not tunables:
// validator behavior must be reproducible across builds. Motion carries
// half the weight of the other categories because animation matters least
// to static visual identity.
const (
	weightColor      = 1.0
	weightLayout     = 1.0
	weightTypography = 1.0
	weightMotion     = 0.5

	// AssumedCanvas is the square canvas edge, in pixels, against which
	// percentage positions are resolved before comparison.
	AssumedCanvas = 1000.0

	familyPenalty     = 50.0 // categorical font-family mismatch
	sizeTermScale     = 25.0 // normalized font-size magnitude
	weightTermScale   = 10.0 // normalized font-weight magnitude
	motionTypePenalty = 25.0 // categorical animation-type mismatch

	fontWeightSpan = 900.0
)

// #endregion constants

// #region breakdown

// Breakdown exposes the per-category components feeding Distance.
type Breakdown struct {
	Color      float64
	Layout     float64
	Typography float64
	Motion     float64
}

// #endregion breakdown

// #region distance

// Distance computes the weighted scalar distance between two visual
// states: the square root of the weighted sum of squared per-category
// distances. Identical states yield exactly 0 and the metric is symmetric.
// This is a ranking metric over heterogeneous units, not a geometric one.
func Distance(a, b *manifest.Manifest) float64 {
	br := ComputeBreakdown(a, b)
	sum := weightColor*br.Color*br.Color +
		weightLayout*br.Layout*br.Layout +
		weightTypography*br.Typography*br.Typography +
		weightMotion*br.Motion*br.Motion
	return math.Sqrt(sum)
}

// ComputeBreakdown computes the four per-category distances.
func ComputeBreakdown(a, b *manifest.Manifest) Breakdown {
	return Breakdown{
		Color:      colorDistance(a, b),
		Layout:     layoutDistance(a, b),
		Typography: typographyDistance(a, b),
		Motion:     motionDistance(a, b),
	}
}

// #endregion distance

// #region color-category

// colorDistance is the mean perceptual distance over the six named roles.
// Roles missing on either side are skipped, not zero-filled.
func colorDistance(a, b *manifest.Manifest) float64 {
	if a == nil || b == nil || a.Colors == nil || b.Colors == nil {
		return 0
	}
	rolesA := a.Colors.Roles()
	rolesB := b.Colors.Roles()
	var sum float64
	var n int
	for i := range rolesA {
		if rolesA[i].Value == "" || rolesB[i].Value == "" {
			continue
		}
		sum += color.PerceptualDistance(rolesA[i].Value, rolesB[i].Value)
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// #endregion color-category

// #region layout-category

// ResolvePosition converts a position string (plain number or percentage)
// to pixels on the assumed canvas. Unparseable or absent input resolves
// to 0.
func ResolvePosition(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if strings.HasSuffix(s, "%") {
		pct, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		if err != nil {
			return 0
		}
		return pct / 100.0 * AssumedCanvas
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// layoutDistance is the planar Euclidean distance between resolved
// positions. Skipped when either side has no layout.
func layoutDistance(a, b *manifest.Manifest) float64 {
	if a == nil || b == nil || a.Layout == nil || b.Layout == nil {
		return 0
	}
	dx := ResolvePosition(a.Layout.X) - ResolvePosition(b.Layout.X)
	dy := ResolvePosition(a.Layout.Y) - ResolvePosition(b.Layout.Y)
	return math.Hypot(dx, dy)
}

// #endregion layout-category

// #region typography-category

// typographyDistance blends a categorical family penalty with normalized
// size and weight magnitude terms. Fields missing on either side are
// skipped.
func typographyDistance(a, b *manifest.Manifest) float64 {
	if a == nil || b == nil || a.Typography == nil || b.Typography == nil {
		return 0
	}
	ta, tb := a.Typography, b.Typography
	var d float64
	if ta.Family != "" && tb.Family != "" &&
		!strings.EqualFold(strings.TrimSpace(ta.Family), strings.TrimSpace(tb.Family)) {
		d += familyPenalty
	}
	if ta.Size != nil && tb.Size != nil {
		d += math.Abs(*ta.Size-*tb.Size) / manifest.MaxFontSize * sizeTermScale
	}
	if ta.Weight != nil && tb.Weight != nil {
		d += math.Abs(*ta.Weight-*tb.Weight) / fontWeightSpan * weightTermScale
	}
	return d
}

// #endregion typography-category

// #region motion-category

// motionDistance treats an absent motion record as the zero track (no
// type, zero duration), so a still state and an animated one are a
// nonzero distance apart.
func motionDistance(a, b *manifest.Manifest) float64 {
	typeA, durA := motionFields(a)
	typeB, durB := motionFields(b)
	var d float64
	if typeA != typeB {
		d += motionTypePenalty
	}
	d += math.Abs(durA - durB)
	return d
}

func motionFields(m *manifest.Manifest) (string, float64) {
	if m == nil || m.Motion == nil {
		return "", 0
	}
	dur := 0.0
	if m.Motion.Duration != nil {
		dur = *m.Motion.Duration
	}
	return strings.ToLower(strings.TrimSpace(m.Motion.Type)), dur
}

// #endregion motion-category
