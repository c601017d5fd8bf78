package converge

// #region imports
import (
	"math"

	"github.com/sketchfoundry/brandgate/internal/color"
	"github.com/sketchfoundry/brandgate/internal/manifest"
)

// #endregion imports

// #region interpolate

// Interpolate builds a new manifest a fractional step from current toward
// ground. Colors blend in Lab space; numeric typography fields blend
// arithmetically; categorical fields and whole sub-records the ground
// state omits snap to the ground value. The result is a fresh value:
// neither input is touched, so recorded path steps stay independently
// inspectable.
func Interpolate(current, ground *manifest.Manifest, t float64) *manifest.Manifest {
	if current == nil {
		return ground.Clone()
	}
	out := &manifest.Manifest{
		BrandRef: ground.BrandRef,
		Canvas:   ground.Canvas,
	}
	out.Colors = blendColors(current.Colors, ground.Colors, t)
	out.Typography = blendTypography(current.Typography, ground.Typography, t)
	out.Layout = snapLayout(ground.Layout)
	if ground.Motion != nil {
		mo := *ground.Motion
		out.Motion = &mo
	}
	if ground.Effects != nil {
		e := *ground.Effects
		out.Effects = &e
	}
	if len(ground.Elements) > 0 {
		out.Elements = append([]manifest.Element(nil), ground.Elements...)
	}
	if ground.Text != nil {
		s := *ground.Text
		out.Text = &s
	}
	return out
}

// #endregion interpolate

// #region colors

func blendColors(cur, ground *manifest.ColorSet, t float64) *manifest.ColorSet {
	if ground == nil {
		return nil
	}
	if cur == nil {
		c := *ground
		return &c
	}
	return &manifest.ColorSet{
		Primary:    blendRole(cur.Primary, ground.Primary, t),
		Secondary:  blendRole(cur.Secondary, ground.Secondary, t),
		Tertiary:   blendRole(cur.Tertiary, ground.Tertiary, t),
		Accent:     blendRole(cur.Accent, ground.Accent, t),
		Background: blendRole(cur.Background, ground.Background, t),
		Text:       blendRole(cur.Text, ground.Text, t),
	}
}

// blendRole blends one color role toward ground. A role the ground state
// omits snaps to absent; a role the current state omits snaps to ground.
// Unparseable current values snap to the ground color (fail toward
// safety).
func blendRole(cur, ground string, t float64) string {
	if ground == "" {
		return ""
	}
	if cur == "" {
		return ground
	}
	return color.BlendLab(cur, ground, t)
}

// #endregion colors

// #region typography

func blendTypography(cur, ground *manifest.Typography, t float64) *manifest.Typography {
	if ground == nil {
		return nil
	}
	out := &manifest.Typography{
		Family:    ground.Family,
		Align:     ground.Align,
		Transform: ground.Transform,
	}
	var curSize, curWeight *float64
	if cur != nil {
		curSize = cur.Size
		curWeight = cur.Weight
	}
	out.Size = blendNumber(curSize, ground.Size, t)
	out.Weight = blendNumber(curWeight, ground.Weight, t)
	return out
}

// blendNumber moves a numeric field fractionally toward ground; missing
// or non-finite current values snap to ground.
func blendNumber(cur, ground *float64, t float64) *float64 {
	if ground == nil {
		return nil
	}
	if cur == nil || math.IsNaN(*cur) || math.IsInf(*cur, 0) {
		v := *ground
		return &v
	}
	v := *cur + t*(*ground-*cur)
	return &v
}

// #endregion typography

// #region layout

func snapLayout(ground *manifest.Layout) *manifest.Layout {
	if ground == nil {
		return nil
	}
	l := *ground
	if ground.Width != nil {
		w := *ground.Width
		l.Width = &w
	}
	if ground.Height != nil {
		h := *ground.Height
		l.Height = &h
	}
	return &l
}

// #endregion layout
