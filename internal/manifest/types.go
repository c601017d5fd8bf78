package manifest

// #region color-set
// ColorSet names the six color roles of a visual configuration.
// Empty string means the role is not yet specified.
type ColorSet struct {
	Primary    string `json:"primary,omitempty"`
	Secondary  string `json:"secondary,omitempty"`
	Tertiary   string `json:"tertiary,omitempty"`
	Accent     string `json:"accent,omitempty"`
	Background string `json:"background,omitempty"`
	Text       string `json:"text,omitempty"`
}

// Roles returns the role names and values in fixed role order.
func (c *ColorSet) Roles() []Role {
	if c == nil {
		return nil
	}
	return []Role{
		{"primary", c.Primary},
		{"secondary", c.Secondary},
		{"tertiary", c.Tertiary},
		{"accent", c.Accent},
		{"background", c.Background},
		{"text", c.Text},
	}
}

// Role pairs a color role name with its value.
type Role struct {
	Name  string
	Value string
}

// #endregion color-set

// #region typography
// Typography holds text styling. Numeric fields are pointers so absence
// stays distinguishable from zero.
type Typography struct {
	Family        string   `json:"family,omitempty"`
	Size          *float64 `json:"size,omitempty"`
	Weight        *float64 `json:"weight,omitempty"`
	LineHeight    *float64 `json:"line_height,omitempty"`
	LetterSpacing *float64 `json:"letter_spacing,omitempty"`
	Align         string   `json:"align,omitempty"`
	Transform     string   `json:"transform,omitempty"`
}

// #endregion typography

// #region layout
// Layout positions the main content block. X and Y accept plain numbers
// ("120") or percentages ("50%") resolved against the canvas.
type Layout struct {
	Type   string   `json:"type,omitempty"`
	X      string   `json:"x,omitempty"`
	Y      string   `json:"y,omitempty"`
	Anchor string   `json:"anchor,omitempty"`
	Width  *float64 `json:"width,omitempty"`
	Height *float64 `json:"height,omitempty"`
}

// #endregion layout

// #region motion
// Motion describes the animation track. Duration and Delay are seconds.
type Motion struct {
	Type      string   `json:"type,omitempty"`
	Duration  *float64 `json:"duration,omitempty"`
	Delay     *float64 `json:"delay,omitempty"`
	Easing    string   `json:"easing,omitempty"`
	Loop      *int     `json:"loop,omitempty"`
	Direction string   `json:"direction,omitempty"`
}

// #endregion motion

// #region effects
// Effects carries raw effect parameter strings; the engine treats them as
// opaque.
type Effects struct {
	Shadow  string `json:"shadow,omitempty"`
	Glow    string `json:"glow,omitempty"`
	Blur    string `json:"blur,omitempty"`
	Opacity string `json:"opacity,omitempty"`
}

// #endregion effects

// #region element
// Element is a positioned box used for overlap checking. Missing position
// defaults to 0 and missing extent to 100 when resolved.
type Element struct {
	ID     string   `json:"id,omitempty"`
	Kind   string   `json:"kind,omitempty"`
	X      *float64 `json:"x,omitempty"`
	Y      *float64 `json:"y,omitempty"`
	Width  *float64 `json:"width,omitempty"`
	Height *float64 `json:"height,omitempty"`
}

// #endregion element

// #region manifest
// Manifest is the central value: a structured visual configuration in
// which every field is independently optional. Absence means "not yet
// specified", never "invalid". Repairs and interpolation always produce a
// new Manifest; nothing in the engine mutates one in place.
type Manifest struct {
	Colors     *ColorSet   `json:"colors,omitempty"`
	Typography *Typography `json:"typography,omitempty"`
	Layout     *Layout     `json:"layout,omitempty"`
	Motion     *Motion     `json:"motion,omitempty"`
	Effects    *Effects    `json:"effects,omitempty"`
	Elements   []Element   `json:"elements,omitempty"`
	Text       *string     `json:"text,omitempty"`
	BrandRef   string      `json:"brand_ref,omitempty"`
	Canvas     string      `json:"canvas,omitempty"`
}

// #endregion manifest
