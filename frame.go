package simplequi

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// defaultControlWidth is the control panel width used when CreateFrame is
// not given one.
const defaultControlWidth = 200

// Frame is the application window: a control panel down the left edge and
// the drawing canvas filling the rest. A process shows at most one frame;
// creating another closes and replaces it.
type Frame struct {
	rt    *Runtime
	title string

	surface *surface
	router  *router
	panel   *panel

	panelWidth int
	open       bool
}

// CreateFrame opens the application window with a canvas of the given size.
// The optional trailing argument overrides the control panel width in
// pixels. The window appears when Start runs the application.
func (rt *Runtime) CreateFrame(title string, canvasWidth, canvasHeight int, controlWidth ...int) *Frame {
	if canvasWidth <= 0 || canvasHeight <= 0 {
		panic(fmt.Sprintf("simplequi: canvas size must be positive, got %dx%d", canvasWidth, canvasHeight))
	}
	cw := defaultControlWidth
	if len(controlWidth) > 0 {
		cw = controlWidth[0]
		if cw < 0 {
			panic("simplequi: control width must not be negative")
		}
	}
	if old := rt.frame; old != nil && old.open {
		old.Close()
	}
	f := &Frame{rt: rt, title: title, panelWidth: cw, open: true}
	f.surface = newSurface(rt, canvasWidth, canvasHeight)
	f.router = &router{rt: rt, surface: f.surface}
	f.panel = newPanel(rt, cw, canvasHeight)
	rt.frame = f
	rt.track(f)
	if rt.state == stateRunning {
		// Replacing the frame mid-run retitles and resizes the live window.
		ebiten.SetWindowTitle(title)
		ebiten.SetWindowSize(f.totalWidth(), f.height())
	}
	return f
}

// Start opens the input gate, begins the draw cycle and blocks running the
// application until it exits. Call it last in setup, once handlers and
// controls are in place.
func (f *Frame) Start() {
	f.surface.start()
	f.rt.Run()
}

// Close dismisses the window. The application exits once nothing else keeps
// it alive; a still-running timer or playing sound holds it open.
func (f *Frame) Close() {
	if !f.open {
		return
	}
	f.open = false
	f.surface.started = false
	f.rt.untrack(f)
}

// --- Handlers ---

// SetDrawHandler installs the draw callback, called about every 17
// milliseconds once the frame has started. Replacing the handler restarts
// the cadence.
func (f *Frame) SetDrawHandler(handler func(*Canvas)) {
	f.surface.setDrawHandler(handler)
}

// SetCanvasBackground sets the canvas clear colour. The default is black.
func (f *Frame) SetCanvasBackground(colour string) {
	f.surface.setBackground(colour)
}

// SetKeyDownHandler installs the key press callback. The handler receives a
// key code; compare against KeyCode values.
func (f *Frame) SetKeyDownHandler(handler func(key int)) {
	f.router.keyDown = []func(int){handler, func(key int) {
		f.panel.noteKey("Down " + keyLabel(key))
	}}
}

// SetKeyUpHandler installs the key release callback.
func (f *Frame) SetKeyUpHandler(handler func(key int)) {
	f.router.keyUp = []func(int){handler, func(key int) {
		f.panel.noteKey("Up " + keyLabel(key))
	}}
}

// SetMouseClickHandler installs the mouse click callback, fired when a
// button is released over the canvas. The handler receives the canvas
// position in whole pixels.
func (f *Frame) SetMouseClickHandler(handler func(at Point)) {
	f.router.click = []func(Point){handler, func(at Point) {
		f.panel.noteMouse(fmt.Sprintf("Click %d, %d", int(at.X), int(at.Y)))
	}}
}

// SetMouseDragHandler installs the mouse drag callback, fired as the pointer
// moves over the canvas with a button held.
func (f *Frame) SetMouseDragHandler(handler func(at Point)) {
	f.router.drag = []func(Point){handler, func(at Point) {
		f.panel.noteMouse(fmt.Sprintf("Move - %d, %d", int(at.X), int(at.Y)))
	}}
}

// GetCanvasTextWidth returns the width in pixels the canvas would use to
// draw str at the given size. The optional trailing argument selects the
// face, defaulting to serif.
func (f *Frame) GetCanvasTextWidth(str string, fontSize int, fontFace ...string) int {
	face := FaceSerif
	if len(fontFace) > 0 {
		face = fontFace[0]
	}
	return f.rt.textWidth(str, fontSize, face)
}

// --- Controls ---

// AddLabel appends a static text row to the control panel. The optional
// trailing argument fixes the row width in pixels.
func (f *Frame) AddLabel(text string, width ...int) *Control {
	return f.panel.add(&Control{kind: controlLabel, text: text, width: firstOr(width, 0)})
}

// AddButton appends a push button. handler runs on the application loop when
// the button is pressed. The optional trailing argument fixes the button
// width in pixels.
func (f *Frame) AddButton(text string, handler func(), width ...int) *Control {
	return f.panel.add(&Control{kind: controlButton, text: text, onClick: handler, width: firstOr(width, 0)})
}

// AddInput appends a labelled text entry of the given width. handler
// receives the contents when the user presses enter.
func (f *Frame) AddInput(text string, handler func(text string), width int) *Control {
	return f.panel.add(&Control{kind: controlInput, text: text, onInput: handler, width: width})
}

func firstOr(values []int, fallback int) int {
	if len(values) > 0 {
		return values[0]
	}
	return fallback
}

// --- Synthetic input ---

// InjectKeyDown queues a synthetic key press, as if the user pressed the key
// with the canvas focused. Synthetic events follow the same gating as real
// ones: nothing is delivered before Start.
func (f *Frame) InjectKeyDown(key int) {
	f.router.push(inputEvent{kind: eventKeyDown, key: key})
}

// InjectKeyUp queues a synthetic key release.
func (f *Frame) InjectKeyUp(key int) {
	f.router.push(inputEvent{kind: eventKeyUp, key: key})
}

// InjectClick queues a synthetic mouse click at a window position. Clicks
// over the control panel press widgets; clicks over the canvas reach the
// mouse click handler with canvas coordinates.
func (f *Frame) InjectClick(at Point) {
	if int(at.X) < f.panelWidth {
		f.panel.pendingClicks = append(f.panel.pendingClicks, at)
		return
	}
	f.router.push(inputEvent{kind: eventClick, at: Pt(at.X-float64(f.panelWidth), at.Y)})
}

// InjectDrag queues a synthetic mouse drag at a window position over the
// canvas.
func (f *Frame) InjectDrag(at Point) {
	if int(at.X) < f.panelWidth {
		return
	}
	f.router.push(inputEvent{kind: eventDrag, at: Pt(at.X-float64(f.panelWidth), at.Y)})
}

// --- Window plumbing ---

func (f *Frame) totalWidth() int { return f.panelWidth + f.surface.width }
func (f *Frame) height() int     { return f.surface.height }

// pollDevice reads real keyboard and mouse state for this display frame.
// Keystrokes go to the focused input widget when there is one, and to the
// canvas handlers otherwise.
func (f *Frame) pollDevice() {
	f.panel.pollDevice()
	if f.panel.focused == nil {
		f.router.pollKeys()
	}
	f.router.pollMouse(f.panelWidth, 0)
}

// draw paints the whole window: panel on the left, canvas on the right.
func (f *Frame) draw(screen *ebiten.Image) {
	f.panel.draw(screen)
	f.surface.blit(screen, f.panelWidth, 0)
	if f.rt.debug {
		f.rt.drawDebugOverlay(screen)
	}
}
