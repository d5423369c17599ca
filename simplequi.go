package simplequi

import (
	"image"
	"time"
)

// --- Geometry ---

// Point is a position in canvas coordinates. The origin sits at the top-left
// corner of the canvas, x grows rightward and y grows downward. Fractional
// coordinates are accepted everywhere and truncated toward zero at the moment
// a primitive is recorded.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// truncated returns the whole-pixel form of p.
func (p Point) truncated() image.Point {
	return image.Point{X: int(p.X), Y: int(p.Y)}
}

// Size is a width and height pair in pixels.
type Size struct {
	W, H float64
}

// Sz is shorthand for Size{w, h}.
func Sz(w, h float64) Size {
	return Size{W: w, H: h}
}

func (s Size) truncated() image.Point {
	return image.Point{X: int(s.W), Y: int(s.H)}
}

// --- Asset states ---

// assetState tracks the lifecycle of an asynchronously loaded asset.
type assetState uint8

const (
	assetLoading assetState = iota // bytes not fetched or not yet decoded
	assetReady                     // decoded and usable
	assetFailed                    // fetch or decode failed; terminal
)

// --- Package-level API ---

// defaultRuntime backs the package-level convenience functions below, which
// cover the common one-script case. Tests and embedders construct their own
// Runtime and use the equivalent methods on it.
var defaultRuntime *Runtime

func defaultRT() *Runtime {
	if defaultRuntime == nil {
		defaultRuntime = NewRuntime()
	}
	return defaultRuntime
}

// CreateFrame opens the application window: a control panel on the left and
// a drawing canvas of the given size on the right. The optional trailing
// argument overrides the control panel width in pixels.
func CreateFrame(title string, canvasWidth, canvasHeight int, controlWidth ...int) *Frame {
	return defaultRT().CreateFrame(title, canvasWidth, canvasHeight, controlWidth...)
}

// CreateTimer returns a stopped timer that calls handler every interval once
// started. A running timer keeps the application alive.
func CreateTimer(interval time.Duration, handler func()) *Timer {
	return defaultRT().CreateTimer(interval, handler)
}

// LoadImage starts fetching and decoding the image behind a URL or local
// path. The returned handle reports zero width and height until loading
// finishes, and drawing it before then shows nothing.
func LoadImage(url string) *Image {
	return defaultRT().LoadImage(url)
}

// LoadSound starts fetching and decoding the sound behind a URL or local
// path. WAV, MP3 and Ogg Vorbis clips are supported.
func LoadSound(url string) *Sound {
	return defaultRT().LoadSound(url)
}

// Run drives the application without opening a window and blocks until
// nothing keeps it alive. Scripts with a frame call Frame.Start instead;
// Run is for scripts that only use timers and sounds.
func Run() {
	defaultRT().Run()
}

// SetDebug switches diagnostic logging and the on-screen overlay on or off.
// Setting the SIMPLEQUI_DEBUG=1 environment variable has the same effect.
func SetDebug(enabled bool) {
	defaultRT().SetDebug(enabled)
}
