package converge

// #region imports
import (
	"github.com/sketchfoundry/brandgate/internal/brand"
	"github.com/sketchfoundry/brandgate/internal/manifest"
	"github.com/sketchfoundry/brandgate/internal/metric"
	"github.com/sketchfoundry/brandgate/internal/predicate"
	"github.com/sketchfoundry/brandgate/internal/validator"
)

// #endregion imports

// #region phases

// Phase names the synthesizer's state-machine states.
type Phase string

const (
	PhaseEvaluating    Phase = "evaluating"
	PhaseInterpolating Phase = "interpolating"
	PhaseTerminal      Phase = "terminal"
)

// #endregion phases

// #region constants

const (
	// MaxSteps is the hard bound on interpolation steps. With the
	// mandatory terminal entry, an escape path never exceeds MaxSteps+1
	// entries.
	MaxSteps = 10

	// StepFraction is the fixed fractional step toward the ground state
	// per interpolation.
	StepFraction = 0.2

	energyError   = 10.0
	energyWarning = 5.0
)

// #endregion constants

// #region types

// Step is one recorded entry of an escape path. Each State is an
// independent value: later steps never alias or disturb earlier ones.
// Distance is the metric distance from State to the ground state, a
// progress measure alongside the violation Energy.
type Step struct {
	Index    int                `json:"index"`
	Phase    Phase              `json:"phase"`
	State    *manifest.Manifest `json:"state"`
	Energy   float64            `json:"energy"`
	Distance float64            `json:"distance"`
}

// Synthesizer produces bounded escape paths from invalid manifests to the
// ground state.
type Synthesizer struct {
	v      *validator.Validator
	ground *manifest.Manifest
}

// New creates a Synthesizer converging through the given validator toward
// the ground state. The profile must be the one the validator's predicate
// set was built from: when it carries a palette, the ground colors are
// snapped into it so the terminal state stays inside the brand subspace.
func New(v *validator.Validator, profile *brand.Profile) *Synthesizer {
	return &Synthesizer{v: v, ground: groundFor(profile)}
}

func groundFor(profile *brand.Profile) *manifest.Manifest {
	g := manifest.GroundState()
	if profile == nil || len(profile.Palette) == 0 {
		return g
	}
	g.Colors.Primary = brand.NearestPaletteColor(g.Colors.Primary, profile.Palette)
	g.Colors.Background = brand.NearestPaletteColor(g.Colors.Background, profile.Palette)
	g.Colors.Text = brand.NearestPaletteColor(g.Colors.Text, profile.Palette)
	return g
}

// #endregion types

// #region energy

// Energy is the severity-weighted violation count of a validation result:
// 10 per failing error predicate, 5 per failing warning predicate.
func Energy(res *validator.Result) float64 {
	var e float64
	for _, v := range res.Violations {
		if v.Severity == predicate.SeverityError {
			e += energyError
		} else {
			e += energyWarning
		}
	}
	return e
}

// #endregion energy

// #region escape-path

// EscapePath synthesizes a bounded sequence of states interpolating the
// manifest toward the ground state. Each iteration moves a StepFraction
// step, records the new state with its violation energy, and re-checks
// validity. The loop stops on validity or after MaxSteps; the terminal
// entry is always the ground state itself with energy 0, so the path ends
// at a proven-valid state regardless of input. Energy may transiently
// rise between steps; only termination and terminal validity are
// guaranteed.
func (s *Synthesizer) EscapePath(m *manifest.Manifest) []Step {
	var path []Step
	current := m
	phase := PhaseEvaluating

	for step := 1; step <= MaxSteps; step++ {
		res := s.v.Validate(current)
		if res.Valid {
			break
		}
		phase = PhaseInterpolating
		next := Interpolate(current, s.ground, StepFraction)
		path = append(path, Step{
			Index:    step,
			Phase:    phase,
			State:    next,
			Energy:   Energy(s.v.Validate(next)),
			Distance: metric.Distance(next, s.ground),
		})
		current = next
	}

	path = append(path, Step{
		Index:    len(path) + 1,
		Phase:    PhaseTerminal,
		State:    s.ground.Clone(),
		Energy:   0,
		Distance: 0,
	})
	return path
}

// #endregion escape-path
