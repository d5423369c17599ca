package simplequi

import (
	"errors"
	"image/color"
	"testing"
)

func TestParseColourNamed(t *testing.T) {
	tests := []struct {
		spec   string
		expect color.NRGBA
	}{
		{"red", color.NRGBA{255, 0, 0, 255}},
		{"Red", color.NRGBA{255, 0, 0, 255}},
		{"YELLOW", color.NRGBA{255, 255, 0, 255}},
		{"aqua", color.NRGBA{0, 255, 255, 255}},
		{"darkviolet", color.NRGBA{148, 0, 211, 255}},
		{" white ", color.NRGBA{255, 255, 255, 255}},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			c, err := ParseColour(tt.spec)
			if err != nil {
				t.Fatalf("ParseColour(%q) error: %v", tt.spec, err)
			}
			if c.Kind != ColourNamed {
				t.Errorf("ParseColour(%q).Kind = %v, want ColourNamed", tt.spec, c.Kind)
			}
			if c.NRGBA != tt.expect {
				t.Errorf("ParseColour(%q) = %v, want %v", tt.spec, c.NRGBA, tt.expect)
			}
		})
	}
}

func TestParseColourHex(t *testing.T) {
	tests := []struct {
		spec   string
		expect color.NRGBA
	}{
		{"#f00", color.NRGBA{255, 0, 0, 255}},
		{"#F00", color.NRGBA{255, 0, 0, 255}},
		{"#1234", color.NRGBA{0x11, 0x22, 0x33, 0x44}},
		{"#80ff00", color.NRGBA{0x80, 0xff, 0x00, 255}},
		{"#80ff007f", color.NRGBA{0x80, 0xff, 0x00, 0x7f}},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			c, err := ParseColour(tt.spec)
			if err != nil {
				t.Fatalf("ParseColour(%q) error: %v", tt.spec, err)
			}
			if c.Kind != ColourHex {
				t.Errorf("ParseColour(%q).Kind = %v, want ColourHex", tt.spec, c.Kind)
			}
			if c.NRGBA != tt.expect {
				t.Errorf("ParseColour(%q) = %v, want %v", tt.spec, c.NRGBA, tt.expect)
			}
		})
	}
}

func TestParseColourFunctions(t *testing.T) {
	tests := []struct {
		spec   string
		kind   ColourKind
		expect color.NRGBA
	}{
		{"rgb(255, 0, 0)", ColourRGB, color.NRGBA{255, 0, 0, 255}},
		{"RGB(0, 255, 0)", ColourRGB, color.NRGBA{0, 255, 0, 255}},
		{"rgb(100%, 0%, 0%)", ColourRGB, color.NRGBA{255, 0, 0, 255}},
		{"rgba(0, 255, 0, 0.5)", ColourRGBA, color.NRGBA{0, 255, 0, 128}},
		{"rgba(0, 0, 255, 1)", ColourRGBA, color.NRGBA{0, 0, 255, 255}},
		{"hsl(0, 100, 50)", ColourHSL, color.NRGBA{255, 0, 0, 255}},
		{"hsl(120, 100, 50)", ColourHSL, color.NRGBA{0, 255, 0, 255}},
		{"hsla(240, 100, 50, 0.5)", ColourHSLA, color.NRGBA{0, 0, 255, 128}},

		// Sloppy punctuation is tolerated, including a missing close paren.
		{"rgb(10%, 50%, 12%", ColourRGB, color.NRGBA{26, 128, 31, 255}},
		{"hsla(180, 50, 0, 0.5", ColourHSLA, color.NRGBA{0, 0, 0, 128}},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			c, err := ParseColour(tt.spec)
			if err != nil {
				t.Fatalf("ParseColour(%q) error: %v", tt.spec, err)
			}
			if c.Kind != tt.kind {
				t.Errorf("ParseColour(%q).Kind = %v, want %v", tt.spec, c.Kind, tt.kind)
			}
			if c.NRGBA != tt.expect {
				t.Errorf("ParseColour(%q) = %v, want %v", tt.spec, c.NRGBA, tt.expect)
			}
		})
	}
}

func TestParseColourErrors(t *testing.T) {
	tests := []struct {
		spec   string
		reason string
	}{
		{"", reasonUnknown},
		{"blurple", reasonUnknown},
		{"rgb(10, 20)", reasonTooFew},
		{"rgb()", reasonTooFew},
		{"rgb(300, 0, 0)", reasonInvalid},
		{"rgb(101%, 0%, 0%)", reasonInvalid},
		{"rgba(0, 0, 0, 1.5)", reasonInvalid},
		{"hsl(361, 0, 0)", reasonInvalid},
		{"hsl(0, 101, 0)", reasonInvalid},
		{"#12345", reasonInvalid},
		{"#gggggg", reasonInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			_, err := ParseColour(tt.spec)
			if err == nil {
				t.Fatalf("ParseColour(%q) = nil error, want %q", tt.spec, tt.reason)
			}
			var cerr *ColourError
			if !errors.As(err, &cerr) {
				t.Fatalf("ParseColour(%q) error type = %T, want *ColourError", tt.spec, err)
			}
			if cerr.Reason != tt.reason {
				t.Errorf("ParseColour(%q) reason = %q, want %q", tt.spec, cerr.Reason, tt.reason)
			}
			if cerr.Spec != tt.spec {
				t.Errorf("ParseColour(%q) spec = %q, want the input back", tt.spec, cerr.Spec)
			}
		})
	}
}

func TestColourCache(t *testing.T) {
	rt, _ := newTestRuntime()

	if len(rt.colours) != len(preloadedColours) {
		t.Fatalf("warm cache has %d entries, want %d", len(rt.colours), len(preloadedColours))
	}
	for _, name := range preloadedColours {
		if _, ok := rt.colours[name]; !ok {
			t.Errorf("preloaded colour %q missing from cache", name)
		}
	}

	before := len(rt.colours)
	rt.colour("rgb(1, 2, 3)")
	if len(rt.colours) != before+1 {
		t.Errorf("cache size after first parse = %d, want %d", len(rt.colours), before+1)
	}
	rt.colour("rgb(1, 2, 3)")
	if len(rt.colours) != before+1 {
		t.Errorf("repeated lookup grew the cache to %d entries", len(rt.colours))
	}
}

func TestColourCachePanicsOnInvalid(t *testing.T) {
	rt, _ := newTestRuntime()
	msg := mustPanic(t, func() { rt.colour("blurple") })
	if msg == "" {
		t.Error("panic message is empty")
	}
}

func BenchmarkParseColour(b *testing.B) {
	b.ReportAllocs()
	for b.Loop() {
		_, _ = ParseColour("rgba(32, 64, 128, 0.5)")
	}
}

func BenchmarkColourCacheHit(b *testing.B) {
	rt, _ := newTestRuntime()
	b.ReportAllocs()
	for b.Loop() {
		rt.colour("Red")
	}
}
