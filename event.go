package simplequi

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// eventKind discriminates queued input events.
type eventKind uint8

const (
	eventKeyDown eventKind = iota
	eventKeyUp
	eventClick // fires on button release
	eventDrag  // pointer moved while a button is held
)

type inputEvent struct {
	kind eventKind
	key  int   // key events
	at   Point // mouse events, canvas coordinates, whole pixels
}

// pollButtons are the buttons that produce click and drag events.
var pollButtons = [...]ebiten.MouseButton{
	ebiten.MouseButtonLeft,
	ebiten.MouseButtonMiddle,
	ebiten.MouseButtonRight,
}

// router queues input events and delivers each to its registered handler
// pair: the user handler first, then the frame's status hook. Events pushed
// before the owning surface starts are dropped.
type router struct {
	rt      *Runtime
	surface *surface

	keyDown []func(int)
	keyUp   []func(int)
	click   []func(Point)
	drag    []func(Point)

	pending []inputEvent

	keyBuf       []ebiten.Key
	lastX, lastY int
}

// push queues an event for the next dispatch. Input arriving before the
// surface has started is silently dropped, so handlers never see events from
// before the application began.
func (r *router) push(ev inputEvent) {
	if !r.surface.started {
		r.rt.debugf("dropping input event before start")
		return
	}
	ev.at = ev.at.truncatedPoint()
	r.pending = append(r.pending, ev)
}

// dispatchPending delivers queued events in arrival order. Handlers may push
// further events; those wait for the next pass.
func (r *router) dispatchPending() {
	events := r.pending
	r.pending = nil
	for i := range events {
		ev := &events[i]
		r.rt.stats.events++
		switch ev.kind {
		case eventKeyDown:
			for _, h := range r.keyDown {
				h(ev.key)
			}
		case eventKeyUp:
			for _, h := range r.keyUp {
				h(ev.key)
			}
		case eventClick:
			for _, h := range r.click {
				h(ev.at)
			}
		case eventDrag:
			for _, h := range r.drag {
				h(ev.at)
			}
		}
	}
}

// pollKeys queues key edges from the real keyboard. Physical keys with no
// key code are ignored.
func (r *router) pollKeys() {
	r.keyBuf = inpututil.AppendJustPressedKeys(r.keyBuf[:0])
	for _, k := range r.keyBuf {
		if code, ok := ebitenKeyCodes[k]; ok {
			r.push(inputEvent{kind: eventKeyDown, key: code})
		}
	}
	r.keyBuf = inpututil.AppendJustReleasedKeys(r.keyBuf[:0])
	for _, k := range r.keyBuf {
		if code, ok := ebitenKeyCodes[k]; ok {
			r.push(inputEvent{kind: eventKeyUp, key: code})
		}
	}
}

// pollMouse queues click and drag events from the real mouse. The offset is
// the canvas position within the window; events outside the canvas are not
// delivered.
func (r *router) pollMouse(offsetX, offsetY int) {
	x, y := ebiten.CursorPosition()
	cx, cy := x-offsetX, y-offsetY
	inside := cx >= 0 && cy >= 0 && cx < r.surface.width && cy < r.surface.height
	if inside {
		for _, b := range pollButtons {
			if inpututil.IsMouseButtonJustReleased(b) {
				r.push(inputEvent{kind: eventClick, at: Pt(float64(cx), float64(cy))})
				break
			}
		}
		if anyMouseButtonDown() && (cx != r.lastX || cy != r.lastY) {
			r.push(inputEvent{kind: eventDrag, at: Pt(float64(cx), float64(cy))})
		}
	}
	r.lastX, r.lastY = cx, cy
}

func anyMouseButtonDown() bool {
	for _, b := range pollButtons {
		if ebiten.IsMouseButtonPressed(b) {
			return true
		}
	}
	return false
}

// truncatedPoint returns p with both coordinates truncated to whole pixels,
// which is what mouse handlers receive.
func (p Point) truncatedPoint() Point {
	return Point{X: float64(int(p.X)), Y: float64(int(p.Y))}
}
