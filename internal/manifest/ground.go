package manifest

// #region defaults

// Default values shared by the ground state and the repair functions.
const (
	DefaultCanvas   = "1:1"
	DefaultEasing   = "ease"
	DefaultDuration = 1.0
	DefaultText     = "sample text"
	DefaultFontSize = 48.0
	MinFontSize     = 8.0
	MaxFontSize     = 200.0
)

// #endregion defaults

// #region ground-state

// GroundState returns the hard-coded always-valid baseline: a minimal
// scene with black text on a white background, centered layout, no
// animation, a square canvas, and no elements. Every call returns a fresh
// copy so callers can never alias or mutate the baseline.
func GroundState() *Manifest {
	size := DefaultFontSize
	weight := 400.0
	text := DefaultText
	return &Manifest{
		Colors: &ColorSet{
			Primary:    "#000000",
			Background: "#ffffff",
			Text:       "#000000",
		},
		Typography: &Typography{
			Family: "sans-serif",
			Size:   &size,
			Weight: &weight,
			Align:  "center",
		},
		Layout: &Layout{
			Type:   "centered",
			X:      "50%",
			Y:      "50%",
			Anchor: "center",
		},
		Text:   &text,
		Canvas: DefaultCanvas,
	}
}

// #endregion ground-state
