package stylefx

import (
	"testing"
)

func TestComposeTransformOrder(t *testing.T) {
	got := ComposeTransform(map[string]string{
		"translateX": "10px",
		"opacity":    "1",
		"rotateX":    "30deg",
		"scale":      "2",
		"skewY":      "5deg",
	})
	want := "scale(2) rotateX(30deg) translateX(10px) skewY(5deg)"
	if got != want {
		t.Errorf("ComposeTransform = %q, want %q", got, want)
	}
}

func TestComposeTransformEmpty(t *testing.T) {
	if got := ComposeTransform(map[string]string{"opacity": "1", "scale": ""}); got != "" {
		t.Errorf("ComposeTransform = %q, want empty", got)
	}
}

func TestParseTransform(t *testing.T) {
	got := ParseTransform("scale(2) translateX(calc(10px + 5px)) matrix(1,0,0,1,0,0) rotate( 45deg )")
	want := StyleMap{
		"scale":      "2",
		"translateX": "calc(10px + 5px)",
		"rotate":     "45deg",
	}
	if !got.Equal(want) {
		t.Errorf("ParseTransform = %v, want %v", got, want)
	}
}

func TestComposeParseTransformRoundTrip(t *testing.T) {
	in := StyleMap{"scale": "1.5", "rotateY": "20deg", "translateY": "-4px"}
	if got := ParseTransform(ComposeTransform(in)); !got.Equal(in) {
		t.Errorf("round trip = %v, want %v", got, in)
	}
}

func TestIsTransformProperty(t *testing.T) {
	for _, name := range TransformProperties() {
		if !IsTransformProperty(name) {
			t.Errorf("IsTransformProperty(%q) = false", name)
		}
	}
	for _, name := range []string{"transform", "opacity", "top", "translate"} {
		if IsTransformProperty(name) {
			t.Errorf("IsTransformProperty(%q) = true", name)
		}
	}
}

func TestNewBaseStyle(t *testing.T) {
	b := NewBaseStyle([]StyleDecl{
		{Property: " opacity ", StartValue: "0.5"},
		{Property: "transform", StartValue: "scale(1.5) rotate(10deg)"},
		{Property: "", StartValue: "ignored"},
	})
	want := StyleMap{"opacity": "0.5", "scale": "1.5", "rotate": "10deg"}
	if got := b.Snapshot(); !got.Equal(want) {
		t.Errorf("Snapshot = %v, want %v", got, want)
	}
	if _, ok := b.Get("transform"); ok {
		t.Error("base holds a composed transform key")
	}
}

func TestBaseStyleSnapshotIsCopy(t *testing.T) {
	b := NewBaseStyle([]StyleDecl{{Property: "top", StartValue: "0px"}})
	snap := b.Snapshot()
	snap["top"] = "99px"
	if v, _ := b.Get("top"); v != "0px" {
		t.Errorf("base mutated through snapshot: top = %q", v)
	}
}

func TestComposeStyles(t *testing.T) {
	t.Run("no transform members", func(t *testing.T) {
		out := composeStyles(StyleMap{"opacity": "1", "top": "5px"})
		if _, ok := out[TransformKey]; ok {
			t.Errorf("transform key present: %v", out)
		}
		if len(out) != 2 {
			t.Errorf("len = %d, want 2", len(out))
		}
	})
	t.Run("members joined", func(t *testing.T) {
		out := composeStyles(StyleMap{"opacity": "1", "rotateX": "10deg", "scale": "2"})
		want := StyleMap{"opacity": "1", "transform": "scale(2) rotateX(10deg)"}
		if !out.Equal(want) {
			t.Errorf("composeStyles = %v, want %v", out, want)
		}
	})
}
