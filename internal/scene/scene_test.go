package scene

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestParseColor(t *testing.T) {
	cases := []struct {
		in   string
		want rl.Color
		ok   bool
	}{
		{"#c08040", rl.NewColor(0xc0, 0x80, 0x40, bodyAlpha), true},
		{"#FFFFFF", rl.NewColor(255, 255, 255, bodyAlpha), true},
		{"", rl.Color{}, false},
		{"c08040", rl.Color{}, false},
		{"#c0804", rl.Color{}, false},
		{"#zz8040", rl.Color{}, false},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			got, ok := ParseColor(c.in)
			if ok != c.ok || got != c.want {
				t.Fatalf("ParseColor(%q) = %v, %v; want %v, %v", c.in, got, ok, c.want, c.ok)
			}
		})
	}
}

func TestBodyColorFallsBackToState(t *testing.T) {
	if BodyColor("", true) != simulateColor {
		t.Fatalf("simulating body should use the simulate color")
	}
	if BodyColor("nope", false) != staticColor {
		t.Fatalf("static body should use the static color")
	}
	if BodyColor("#010203", false) == staticColor {
		t.Fatalf("scene color should win")
	}
}
