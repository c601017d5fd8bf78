package manifest

// #region imports
import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// #endregion imports

// #region clone

// Clone returns a deep copy of the manifest. A nil receiver clones to nil.
func (m *Manifest) Clone() *Manifest {
	if m == nil {
		return nil
	}
	out := &Manifest{
		BrandRef: m.BrandRef,
		Canvas:   m.Canvas,
	}
	if m.Colors != nil {
		c := *m.Colors
		out.Colors = &c
	}
	if m.Typography != nil {
		t := *m.Typography
		t.Size = cloneFloat(m.Typography.Size)
		t.Weight = cloneFloat(m.Typography.Weight)
		t.LineHeight = cloneFloat(m.Typography.LineHeight)
		t.LetterSpacing = cloneFloat(m.Typography.LetterSpacing)
		out.Typography = &t
	}
	if m.Layout != nil {
		l := *m.Layout
		l.Width = cloneFloat(m.Layout.Width)
		l.Height = cloneFloat(m.Layout.Height)
		out.Layout = &l
	}
	if m.Motion != nil {
		mo := *m.Motion
		mo.Duration = cloneFloat(m.Motion.Duration)
		mo.Delay = cloneFloat(m.Motion.Delay)
		mo.Loop = cloneInt(m.Motion.Loop)
		out.Motion = &mo
	}
	if m.Effects != nil {
		e := *m.Effects
		out.Effects = &e
	}
	if m.Elements != nil {
		out.Elements = make([]Element, len(m.Elements))
		for i, el := range m.Elements {
			el.X = cloneFloat(el.X)
			el.Y = cloneFloat(el.Y)
			el.Width = cloneFloat(el.Width)
			el.Height = cloneFloat(el.Height)
			out.Elements[i] = el
		}
	}
	if m.Text != nil {
		s := *m.Text
		out.Text = &s
	}
	return out
}

func cloneFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// #endregion clone

// #region structural-hash

// StructuralHash returns a stable content identity for a manifest: the
// SHA-256 of its canonical JSON form. Because the encoding walks typed
// struct fields in declaration order, two manifests with the same content
// hash identically regardless of how their source documents ordered
// fields. A nil manifest hashes to a fixed sentinel.
func StructuralHash(m *Manifest) string {
	if m == nil {
		return "nil"
	}
	data, err := json.Marshal(m)
	if err != nil {
		// Marshal of this struct cannot fail; keep the signature total anyway.
		return "unhashable"
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// #endregion structural-hash

// #region decode

// Decode parses a JSON document into a Manifest. Unknown fields are
// ignored: the upstream command parser emits a superset of what the
// engine reads.
func Decode(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// #endregion decode
