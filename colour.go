package simplequi

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// --- Colour model ---

// ColourKind identifies which CSS colour syntax produced a Colour.
type ColourKind uint8

const (
	ColourNamed ColourKind = iota // SVG colour keyword, e.g. "aqua"
	ColourHex                     // #rgb, #rgba, #rrggbb or #rrggbbaa
	ColourRGB                     // rgb(r, g, b) with 0-255 or percentage channels
	ColourRGBA                    // rgba(r, g, b, a) with alpha in 0-1
	ColourHSL                     // hsl(h, s, l) with h in 0-360 and s, l in 0-100
	ColourHSLA                    // hsla(h, s, l, a) with alpha in 0-1
)

// Colour is a parsed CSS-style colour specification.
type Colour struct {
	Kind  ColourKind
	NRGBA color.NRGBA // resolved channels, non-premultiplied
}

// ColourError reports a colour specification that could not be parsed.
type ColourError struct {
	Spec   string
	Reason string
}

func (e *ColourError) Error() string {
	return fmt.Sprintf("simplequi: %s: %q", e.Reason, e.Spec)
}

// Parse failure reasons, also visible in panics from the drawing API.
const (
	reasonUnknown = "unknown colour string"
	reasonTooFew  = "not enough values in colour string"
	reasonInvalid = "invalid values in colour string"
)

// Channel divisors per syntax. The first three channels are normalised into
// 0-1 by these; the fourth is always an alpha already in 0-1.
var (
	rgbDivisors = [4]float64{255, 255, 255, 1}
	pctDivisors = [4]float64{100, 100, 100, 1}
	hslDivisors = [4]float64{360, 100, 100, 1}
)

// ParseColour parses a CSS-style colour string: an SVG colour name in any
// case, a #hex form, or an rgb()/rgba()/hsl()/hsla() function. Function
// syntax is tolerant of sloppy punctuation, including a missing closing
// parenthesis, matching what browsers accept.
func ParseColour(spec string) (Colour, error) {
	lower := strings.ToLower(strings.TrimSpace(spec))
	switch {
	case lower == "":
		return Colour{}, &ColourError{spec, reasonUnknown}
	case lower[0] == '#':
		return parseHexColour(spec, lower[1:])
	case strings.HasPrefix(lower, "rgba"):
		return parseChannels(spec, lower[4:], ColourRGBA)
	case strings.HasPrefix(lower, "rgb"):
		return parseChannels(spec, lower[3:], ColourRGB)
	case strings.HasPrefix(lower, "hsla"):
		return parseChannels(spec, lower[4:], ColourHSLA)
	case strings.HasPrefix(lower, "hsl"):
		return parseChannels(spec, lower[3:], ColourHSL)
	default:
		c, ok := colornames.Map[lower]
		if !ok {
			return Colour{}, &ColourError{spec, reasonUnknown}
		}
		return Colour{Kind: ColourNamed, NRGBA: color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff}}, nil
	}
}

// mustColour is ParseColour for specs known to be valid at compile time.
func mustColour(spec string) Colour {
	c, err := ParseColour(spec)
	if err != nil {
		panic(err.Error())
	}
	return c
}

// --- Hex forms ---

func parseHexColour(spec, digits string) (Colour, error) {
	var r, g, b uint8
	a := uint8(0xff)
	var ok bool
	switch len(digits) {
	case 3, 4:
		r, ok = hexByte(digits[0], digits[0])
		if ok {
			g, ok = hexByte(digits[1], digits[1])
		}
		if ok {
			b, ok = hexByte(digits[2], digits[2])
		}
		if ok && len(digits) == 4 {
			a, ok = hexByte(digits[3], digits[3])
		}
	case 6, 8:
		r, ok = hexByte(digits[0], digits[1])
		if ok {
			g, ok = hexByte(digits[2], digits[3])
		}
		if ok {
			b, ok = hexByte(digits[4], digits[5])
		}
		if ok && len(digits) == 8 {
			a, ok = hexByte(digits[6], digits[7])
		}
	default:
		ok = false
	}
	if !ok {
		return Colour{}, &ColourError{spec, reasonInvalid}
	}
	return Colour{Kind: ColourHex, NRGBA: color.NRGBA{R: r, G: g, B: b, A: a}}, nil
}

func hexNibble(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	}
	return 0, false
}

func hexByte(hi, lo byte) (uint8, bool) {
	h, hok := hexNibble(hi)
	l, lok := hexNibble(lo)
	return h<<4 | l, hok && lok
}

// --- Function forms ---

// parseChannels handles the rgb/rgba/hsl/hsla syntaxes. rest is the input
// after its prefix, normally "(10, 20, 30)"; numbers are extracted wherever
// they appear and everything between them is ignored.
func parseChannels(spec, rest string, kind ColourKind) (Colour, error) {
	divisors := rgbDivisors
	switch {
	case kind == ColourHSL || kind == ColourHSLA:
		divisors = hslDivisors
	case strings.Contains(rest, "%"):
		divisors = pctDivisors
	}

	values := scanNumbers(rest)
	if len(values) < 3 {
		return Colour{}, &ColourError{spec, reasonTooFew}
	}
	channels := [4]float64{0, 0, 0, 1}
	for i := 0; i < len(values) && i < 4; i++ {
		v := values[i] / divisors[i]
		if v > 1 {
			return Colour{}, &ColourError{spec, reasonInvalid}
		}
		channels[i] = v
	}

	alpha := uint8(channels[3]*255 + 0.5)
	if kind == ColourHSL || kind == ColourHSLA {
		r, g, b := colorful.Hsl(channels[0]*360, channels[1], channels[2]).Clamped().RGB255()
		return Colour{Kind: kind, NRGBA: color.NRGBA{R: r, G: g, B: b, A: alpha}}, nil
	}
	return Colour{Kind: kind, NRGBA: color.NRGBA{
		R: uint8(channels[0]*255 + 0.5),
		G: uint8(channels[1]*255 + 0.5),
		B: uint8(channels[2]*255 + 0.5),
		A: alpha,
	}}, nil
}

// scanNumbers extracts non-negative decimal numbers from s in order.
func scanNumbers(s string) []float64 {
	var out []float64
	for i := 0; i < len(s); {
		if s[i] < '0' || s[i] > '9' {
			i++
			continue
		}
		j := i
		for j < len(s) && s[j] >= '0' && s[j] <= '9' {
			j++
		}
		if j < len(s) && s[j] == '.' {
			j++
			for j < len(s) && s[j] >= '0' && s[j] <= '9' {
				j++
			}
		}
		if v, err := strconv.ParseFloat(s[i:j], 64); err == nil {
			out = append(out, v)
		}
		i = j
	}
	return out
}

// --- Runtime cache ---

// preloadedColours is the palette warmed into every Runtime's cache up
// front; anything else parses on first use.
var preloadedColours = []string{
	"Aqua", "Black", "Blue", "Fuchsia", "Gray", "Green", "Lime", "Maroon",
	"Navy", "Olive", "Orange", "Purple", "Red", "Silver", "Teal", "White",
	"Yellow",
}

// colour resolves spec through the runtime cache, parsing on first sight.
// Invalid specs panic; the drawing API validates colours at record time so
// bad strings fail at the call that passed them.
func (rt *Runtime) colour(spec string) Colour {
	if c, ok := rt.colours[spec]; ok {
		return c
	}
	c, err := ParseColour(spec)
	if err != nil {
		panic(err.Error())
	}
	rt.colours[spec] = c
	return c
}
