// Package simplequi is a desktop re-creation of the browser "simplegui"
// drawing and event API, built on [Ebitengine].
//
// Scripts build a window with a control panel and a canvas, register
// handlers, and hand control to the library. Every callback runs on one
// cooperative application loop, so handlers never need locks.
//
// # Quick start
//
//	var colour = "Red"
//
//	func draw(canvas *simplequi.Canvas) {
//		canvas.DrawCircle(simplequi.Pt(150, 100), 40, 2, colour, colour)
//	}
//
//	func main() {
//		frame := simplequi.CreateFrame("Example", 300, 200)
//		frame.AddButton("Blue!", func() { colour = "Blue" })
//		frame.SetDrawHandler(draw)
//		frame.Start()
//	}
//
// [Frame.Start] blocks until the application exits: when the window has been
// closed and no timer is running, no sound is playing and no asset is still
// loading.
//
// # Drawing
//
// The draw handler runs about every 17 milliseconds and receives a fresh
// [Canvas] each time. It must paint the complete scene on every call; the
// library compares the recorded output against the previous cycle and skips
// the repaint entirely when nothing changed, so a static scene costs almost
// nothing.
//
// Colours are CSS-style strings: SVG names ("aqua", "Red"), hex forms
// ("#80ff00"), and rgb()/rgba()/hsl()/hsla() functions. Coordinates may be
// fractional and are truncated to whole pixels.
//
// # Assets
//
// [LoadImage] and [LoadSound] fetch from a local path or an http(s) URL in
// the background. An [Image] reports zero width and height until it is
// ready, and drawing it before then shows nothing, so scripts never wait. A
// [Sound] played before it is ready starts as soon as loading finishes.
//
// # Events
//
// Key handlers receive browser-style key codes; compare them against
// [KeyCode] values. Mouse handlers receive the canvas position as a [Point]
// in whole pixels. No events are delivered before [Frame.Start].
//
// # Testing
//
// [Frame.InjectKeyDown], [Frame.InjectClick] and friends queue synthetic
// input through the same dispatch path as the real devices, which makes
// scripted interaction tests deterministic.
//
// [Ebitengine]: https://ebitengine.org
package simplequi
