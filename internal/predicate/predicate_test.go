package predicate

import (
	"math"
	"strings"
	"testing"

	"github.com/sketchfoundry/brandgate/internal/brand"
	"github.com/sketchfoundry/brandgate/internal/color"
	"github.com/sketchfoundry/brandgate/internal/manifest"
)

func findPredicate(t *testing.T, set []Predicate, id string) Predicate {
	t.Helper()
	for _, p := range set {
		if p.ID == id {
			return p
		}
	}
	t.Fatalf("predicate %s not in set", id)
	return Predicate{}
}

func TestDefaultSetOrderFixed(t *testing.T) {
	want := []string{
		"color_contrast",
		"layout_coherence",
		"brand_compliance",
		"animation_physics",
		"canvas_validity",
		"text_readability",
	}
	set := DefaultSet(nil)
	if len(set) != len(want) {
		t.Fatalf("expected %d predicates, got %d", len(want), len(set))
	}
	for i, id := range want {
		if set[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, set[i].ID)
		}
	}
}

func TestEmptyManifestPassesEverything(t *testing.T) {
	// Absence means "not yet specified", never "invalid".
	for _, p := range DefaultSet(nil) {
		if f := p.Test(&manifest.Manifest{}); !f.Valid {
			t.Fatalf("%s failed an empty manifest: %s", p.ID, f.Message)
		}
	}
}

func TestGroundStatePassesEverything(t *testing.T) {
	g := manifest.GroundState()
	for _, p := range DefaultSet(nil) {
		if f := p.Test(g); !f.Valid {
			t.Fatalf("%s failed the ground state: %s", p.ID, f.Message)
		}
	}
}

func TestColorContrastRepairConvergence(t *testing.T) {
	m := &manifest.Manifest{
		Colors: &manifest.ColorSet{Text: "#777777", Background: "#888888"},
	}
	p := findPredicate(t, DefaultSet(nil), "color_contrast")
	if f := p.Test(m); f.Valid {
		t.Fatal("#777777 on #888888 should fail contrast")
	}

	fixed := p.Fix(m)
	ratio := color.ContrastRatio(fixed.Colors.Text, fixed.Colors.Background)
	if ratio < 4.5 {
		t.Fatalf("repaired contrast %v still below 4.5 (text %s)", ratio, fixed.Colors.Text)
	}
	if m.Colors.Text != "#777777" {
		t.Fatal("fix must not mutate the input manifest")
	}
}

func TestColorContrastLightensOnDarkBackground(t *testing.T) {
	m := &manifest.Manifest{
		Colors: &manifest.ColorSet{Text: "#222222", Background: "#111111"},
	}
	p := findPredicate(t, DefaultSet(nil), "color_contrast")
	fixed := p.Fix(m)
	if ratio := color.ContrastRatio(fixed.Colors.Text, fixed.Colors.Background); ratio < 4.5 {
		t.Fatalf("expected lightening repair to reach 4.5, got %v", ratio)
	}
}

func TestLayoutCoherenceOverlapAndGridFix(t *testing.T) {
	x := 0.0
	m := &manifest.Manifest{
		Elements: []manifest.Element{
			{ID: "a", X: &x, Y: &x},
			{ID: "b"}, // defaults to (0,0) 100x100 — overlaps a
			{ID: "c"},
		},
	}
	p := findPredicate(t, DefaultSet(nil), "layout_coherence")
	if f := p.Test(m); f.Valid {
		t.Fatal("coincident elements should overlap")
	}
	fixed := p.Fix(m)
	if f := p.Test(fixed); !f.Valid {
		t.Fatalf("grid re-layout should eliminate overlap: %s", f.Message)
	}
	if len(fixed.Elements) != 3 {
		t.Fatal("fix must keep every element")
	}
}

func TestLayoutCoherenceTouchingEdgesAllowed(t *testing.T) {
	zero, hundred := 0.0, 100.0
	m := &manifest.Manifest{
		Elements: []manifest.Element{
			{X: &zero, Y: &zero},
			{X: &hundred, Y: &zero},
		},
	}
	p := findPredicate(t, DefaultSet(nil), "layout_coherence")
	if f := p.Test(m); !f.Valid {
		t.Fatalf("edge-adjacent boxes must not count as overlap: %s", f.Message)
	}
}

func TestBrandComplianceSnapsToPalette(t *testing.T) {
	profile := &brand.Profile{
		Name:    "acme",
		Palette: []string{"#000000", "#ffffff", "#e63946"},
	}
	m := &manifest.Manifest{
		Colors: &manifest.ColorSet{Primary: "#00ff00", Text: "#050505"},
	}
	p := findPredicate(t, DefaultSet(profile), "brand_compliance")
	f := p.Test(m)
	if f.Valid {
		t.Fatal("#00ff00 should be off palette")
	}
	if !strings.Contains(f.Message, "primary") {
		t.Fatalf("message should name the offending role, got %q", f.Message)
	}

	fixed := p.Fix(m)
	if f := p.Test(fixed); !f.Valid {
		t.Fatalf("snapped colors should be on palette: %s", f.Message)
	}
}

func TestBrandComplianceVacuousWithoutPalette(t *testing.T) {
	m := &manifest.Manifest{Colors: &manifest.ColorSet{Primary: "#00ff00"}}
	p := findPredicate(t, DefaultSet(nil), "brand_compliance")
	if f := p.Test(m); !f.Valid {
		t.Fatal("no palette means no brand constraint")
	}
}

func TestAnimationPhysics(t *testing.T) {
	neg := -2.0
	nan := math.NaN()
	one := 1.0
	cases := []struct {
		name   string
		motion *manifest.Motion
		valid  bool
	}{
		{"nil motion", nil, true},
		{"negative duration", &manifest.Motion{Duration: &neg}, false},
		{"nan duration", &manifest.Motion{Duration: &nan}, false},
		{"bad easing", &manifest.Motion{Duration: &one, Easing: "zigzag"}, false},
		{"named easing", &manifest.Motion{Duration: &one, Easing: "ease-in-out"}, true},
		{"cubic bezier", &manifest.Motion{Duration: &one, Easing: "cubic-bezier(0.25, 0.1, 0.25, 1.0)"}, true},
		{"steps", &manifest.Motion{Duration: &one, Easing: "steps(4, end)"}, true},
	}
	p := findPredicate(t, DefaultSet(nil), "animation_physics")
	for _, c := range cases {
		f := p.Test(&manifest.Manifest{Motion: c.motion})
		if f.Valid != c.valid {
			t.Fatalf("%s: valid=%v, want %v (%s)", c.name, f.Valid, c.valid, f.Message)
		}
	}
}

func TestAnimationPhysicsFix(t *testing.T) {
	neg := -2.0
	m := &manifest.Manifest{Motion: &manifest.Motion{Duration: &neg, Easing: "zigzag"}}
	p := findPredicate(t, DefaultSet(nil), "animation_physics")
	fixed := p.Fix(m)
	if *fixed.Motion.Duration != manifest.DefaultDuration {
		t.Fatalf("duration should reset to %v, got %v", manifest.DefaultDuration, *fixed.Motion.Duration)
	}
	if fixed.Motion.Easing != manifest.DefaultEasing {
		t.Fatalf("easing should reset to %q, got %q", manifest.DefaultEasing, fixed.Motion.Easing)
	}
	if f := p.Test(fixed); !f.Valid {
		t.Fatalf("fixed motion should pass: %s", f.Message)
	}
}

func TestCanvasValidityScenario(t *testing.T) {
	m := &manifest.Manifest{Canvas: "0:0"}
	p := findPredicate(t, DefaultSet(nil), "canvas_validity")
	f := p.Test(m)
	if f.Valid {
		t.Fatal("0:0 canvas should fail")
	}
	if !strings.Contains(f.Message, "0:0") {
		t.Fatalf("message should reference the invalid ratio, got %q", f.Message)
	}
	fixed := p.Fix(m)
	if fixed.Canvas != "1:1" {
		t.Fatalf("canvas should reset to 1:1, got %s", fixed.Canvas)
	}
	if f := p.Test(fixed); !f.Valid {
		t.Fatalf("fixed canvas should pass: %s", f.Message)
	}
}

func TestCanvasValidityAcceptsBothSeparators(t *testing.T) {
	p := findPredicate(t, DefaultSet(nil), "canvas_validity")
	for _, spec := range []string{"16:9", "1920x1080", "1:1", "4X3"} {
		if f := p.Test(&manifest.Manifest{Canvas: spec}); !f.Valid {
			t.Fatalf("%q should be a valid canvas spec: %s", spec, f.Message)
		}
	}
	for _, spec := range []string{"abc:def", "-1:1", "1:", "100", "0x0"} {
		if f := p.Test(&manifest.Manifest{Canvas: spec}); f.Valid {
			t.Fatalf("%q should be invalid", spec)
		}
	}
}

func TestTextReadability(t *testing.T) {
	blank := "   "
	tiny := 2.0
	huge := 500.0
	p := findPredicate(t, DefaultSet(nil), "text_readability")

	if f := p.Test(&manifest.Manifest{Text: &blank}); f.Valid {
		t.Fatal("whitespace-only text should fail")
	}
	if f := p.Test(&manifest.Manifest{Typography: &manifest.Typography{Size: &tiny}}); f.Valid {
		t.Fatal("font size 2 should fail")
	}

	fixed := p.Fix(&manifest.Manifest{Text: &blank, Typography: &manifest.Typography{Size: &huge}})
	if *fixed.Text != manifest.DefaultText {
		t.Fatalf("blank text should become placeholder, got %q", *fixed.Text)
	}
	if *fixed.Typography.Size != manifest.MaxFontSize {
		t.Fatalf("oversize font should clamp to %v, got %v", manifest.MaxFontSize, *fixed.Typography.Size)
	}
}
