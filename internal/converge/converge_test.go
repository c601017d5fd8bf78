package converge

import (
	"math"
	"testing"

	"github.com/sketchfoundry/brandgate/internal/brand"
	"github.com/sketchfoundry/brandgate/internal/color"
	"github.com/sketchfoundry/brandgate/internal/manifest"
	"github.com/sketchfoundry/brandgate/internal/predicate"
	"github.com/sketchfoundry/brandgate/internal/validator"
)

func newSynth() (*Synthesizer, *validator.Validator) {
	v := validator.New(predicate.DefaultSet(nil))
	return New(v, nil), v
}

func TestEscapePathTerminatesAndEndsValid(t *testing.T) {
	neg := -1.0
	nan := math.NaN()
	blank := "  "
	adversarial := []*manifest.Manifest{
		{Canvas: "0:0"},
		{Colors: &manifest.ColorSet{Text: "#777777", Background: "#888888"}},
		{
			Colors:     &manifest.ColorSet{Text: "not-a-color", Background: "also bad"},
			Typography: &manifest.Typography{Size: &nan},
			Motion:     &manifest.Motion{Duration: &neg, Easing: "zigzag"},
			Canvas:     "abc:def",
			Text:       &blank,
		},
	}

	for i, m := range adversarial {
		synth, v := newSynth()
		path := synth.EscapePath(m)

		if len(path) == 0 || len(path) > MaxSteps+1 {
			t.Fatalf("case %d: path length %d outside (0, %d]", i, len(path), MaxSteps+1)
		}
		last := path[len(path)-1]
		if last.Phase != PhaseTerminal {
			t.Fatalf("case %d: last step phase %s, want terminal", i, last.Phase)
		}
		if last.Energy != 0 {
			t.Fatalf("case %d: terminal energy %v, want 0", i, last.Energy)
		}
		if res := v.Validate(last.State); !res.Valid {
			t.Fatalf("case %d: terminal state invalid: %+v", i, res.Violations)
		}
	}
}

func TestEscapePathDistanceShrinksToZero(t *testing.T) {
	synth, _ := newSynth()
	path := synth.EscapePath(&manifest.Manifest{
		Colors: &manifest.ColorSet{Text: "#777777", Background: "#888888"},
	})
	for i := 1; i < len(path); i++ {
		if path[i].Distance > path[i-1].Distance+1e-9 {
			t.Fatalf("distance rose between steps %d and %d: %v -> %v",
				i-1, i, path[i-1].Distance, path[i].Distance)
		}
	}
	if last := path[len(path)-1]; last.Distance != 0 {
		t.Fatalf("terminal distance = %v, want 0", last.Distance)
	}
}

func TestEscapePathStepIndicesSequential(t *testing.T) {
	synth, _ := newSynth()
	path := synth.EscapePath(&manifest.Manifest{Canvas: "0:0"})
	for i, step := range path {
		if step.Index != i+1 {
			t.Fatalf("step %d has index %d", i, step.Index)
		}
	}
}

func TestEscapePathStatesIndependent(t *testing.T) {
	synth, _ := newSynth()
	path := synth.EscapePath(&manifest.Manifest{
		Colors: &manifest.ColorSet{Text: "#777777", Background: "#888888"},
	})
	// Mutating one recorded state must not disturb another.
	if len(path) < 2 {
		t.Skip("path converged in a single step")
	}
	before := manifest.StructuralHash(path[1].State)
	path[0].State.Colors.Text = "#123456"
	if manifest.StructuralHash(path[1].State) != before {
		t.Fatal("recorded steps share storage")
	}
}

func TestEscapePathTerminalValidUnderBrandProfile(t *testing.T) {
	profile := &brand.Profile{
		Name:    "acme",
		Palette: []string{"#111111", "#eeeeee", "#e63946"},
	}
	v := validator.New(predicate.DefaultSet(profile))
	synth := New(v, profile)

	path := synth.EscapePath(&manifest.Manifest{Canvas: "0:0"})
	last := path[len(path)-1]
	if last.Phase != PhaseTerminal || last.Energy != 0 {
		t.Fatalf("unexpected terminal step: index=%d phase=%s energy=%v", last.Index, last.Phase, last.Energy)
	}
	if res := v.Validate(last.State); !res.Valid {
		t.Fatalf("terminal state must validate under the profile, got %+v", res.Violations)
	}
	if last.State.Colors.Text != "#111111" || last.State.Colors.Background != "#eeeeee" {
		t.Fatalf("ground colors should snap into the palette, got %+v", last.State.Colors)
	}
}

func TestTerminalAlwaysGroundState(t *testing.T) {
	synth, _ := newSynth()
	path := synth.EscapePath(&manifest.Manifest{Canvas: "0:0"})
	last := path[len(path)-1]
	if manifest.StructuralHash(last.State) != manifest.StructuralHash(manifest.GroundState()) {
		t.Fatal("terminal entry must be the ground state itself")
	}
}

func TestEnergyWeighting(t *testing.T) {
	res := &validator.Result{
		Violations: []validator.Violation{
			{PredicateID: "a", Severity: predicate.SeverityError},
			{PredicateID: "b", Severity: predicate.SeverityWarning},
			{PredicateID: "c", Severity: predicate.SeverityWarning},
		},
	}
	if e := Energy(res); e != 20 {
		t.Fatalf("energy = %v, want 20 (10 + 5 + 5)", e)
	}
	if e := Energy(&validator.Result{Valid: true}); e != 0 {
		t.Fatalf("valid result energy = %v, want 0", e)
	}
}

func TestInterpolateMovesColorsTowardGround(t *testing.T) {
	cur := &manifest.Manifest{
		Colors: &manifest.ColorSet{Text: "#777777", Background: "#888888"},
	}
	g := manifest.GroundState()
	next := Interpolate(cur, g, StepFraction)

	if next.Canvas != g.Canvas {
		t.Fatalf("canvas should snap to ground, got %s", next.Canvas)
	}
	if next.Motion != nil {
		t.Fatal("motion should snap to ground (absent)")
	}
	// Text color should be strictly darker than where it started.
	if next.Colors.Text == cur.Colors.Text {
		t.Fatal("text color should have moved")
	}
	d1 := dist(cur.Colors.Text, g.Colors.Text)
	d2 := dist(next.Colors.Text, g.Colors.Text)
	if d2 >= d1 {
		t.Fatalf("blend did not move toward ground: %v -> %v", d1, d2)
	}
}

func TestInterpolateSnapsUnparseableColors(t *testing.T) {
	cur := &manifest.Manifest{Colors: &manifest.ColorSet{Text: "garbage"}}
	next := Interpolate(cur, manifest.GroundState(), StepFraction)
	if next.Colors.Text != "#000000" {
		t.Fatalf("unparseable color should snap to ground, got %s", next.Colors.Text)
	}
}

func TestInterpolateBlendsFontSize(t *testing.T) {
	size := 500.0
	cur := &manifest.Manifest{Typography: &manifest.Typography{Size: &size}}
	g := manifest.GroundState()
	next := Interpolate(cur, g, 0.2)
	want := 500 + 0.2*(manifest.DefaultFontSize-500)
	if math.Abs(*next.Typography.Size-want) > 1e-9 {
		t.Fatalf("size = %v, want %v", *next.Typography.Size, want)
	}
}

func TestInterpolateNilCurrent(t *testing.T) {
	g := manifest.GroundState()
	next := Interpolate(nil, g, 0.2)
	if manifest.StructuralHash(next) != manifest.StructuralHash(g) {
		t.Fatal("nil current should interpolate to the ground state")
	}
}

func dist(a, b string) float64 {
	return color.PerceptualDistance(a, b)
}
