package manifest

import (
	"testing"
)

func TestStructuralHashFieldOrderIndependent(t *testing.T) {
	a, err := Decode([]byte(`{"colors":{"text":"#000000","background":"#ffffff"},"canvas":"1:1"}`))
	if err != nil {
		t.Fatalf("decode a: %v", err)
	}
	b, err := Decode([]byte(`{"canvas":"1:1","colors":{"background":"#ffffff","text":"#000000"}}`))
	if err != nil {
		t.Fatalf("decode b: %v", err)
	}
	if StructuralHash(a) != StructuralHash(b) {
		t.Fatal("structurally identical manifests must hash identically")
	}
}

func TestStructuralHashDistinguishesContent(t *testing.T) {
	a := &Manifest{Canvas: "1:1"}
	b := &Manifest{Canvas: "16:9"}
	if StructuralHash(a) == StructuralHash(b) {
		t.Fatal("different content must hash differently")
	}
}

func TestCloneIsDeep(t *testing.T) {
	size := 12.0
	x := 5.0
	text := "hello"
	m := &Manifest{
		Colors:     &ColorSet{Text: "#000000"},
		Typography: &Typography{Family: "serif", Size: &size},
		Elements:   []Element{{ID: "a", X: &x}},
		Text:       &text,
	}
	c := m.Clone()

	c.Colors.Text = "#ff0000"
	*c.Typography.Size = 99
	*c.Elements[0].X = 42
	*c.Text = "changed"

	if m.Colors.Text != "#000000" || *m.Typography.Size != 12.0 || *m.Elements[0].X != 5.0 || *m.Text != "hello" {
		t.Fatal("clone shares storage with the original")
	}
}

func TestCloneNil(t *testing.T) {
	var m *Manifest
	if m.Clone() != nil {
		t.Fatal("nil manifest should clone to nil")
	}
}

func TestGroundStateFreshCopies(t *testing.T) {
	g1 := GroundState()
	g2 := GroundState()
	g1.Colors.Text = "#ff0000"
	if g2.Colors.Text != "#000000" {
		t.Fatal("GroundState must return independent copies")
	}
}

func TestGroundStateShape(t *testing.T) {
	g := GroundState()
	if g.Canvas != DefaultCanvas {
		t.Fatalf("expected square canvas, got %s", g.Canvas)
	}
	if g.Motion != nil {
		t.Fatal("ground state must not animate")
	}
	if len(g.Elements) != 0 {
		t.Fatal("ground state must have no elements")
	}
	if g.Colors.Text != "#000000" || g.Colors.Background != "#ffffff" {
		t.Fatal("ground state must be black on white")
	}
}

func TestDecodeTolerantOfUnknownFields(t *testing.T) {
	m, err := Decode([]byte(`{"canvas":"4:3","upstream_only":true}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if m.Canvas != "4:3" {
		t.Fatalf("expected canvas 4:3, got %s", m.Canvas)
	}
}
