package simplequi

import (
	"image"
	"image/color"
	"unicode"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	text "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// controlKind discriminates panel controls.
type controlKind uint8

const (
	controlLabel controlKind = iota
	controlButton
	controlInput
)

// Panel layout metrics, in pixels.
const (
	panelPad      = 8
	controlGap    = 6
	controlHeight = 24
	statusRowGap  = 20
	panelFontSize = 13

	buttonFlashSeconds = 0.25
)

var (
	panelBackground = color.NRGBA{R: 0xf0, G: 0xf0, B: 0xf0, A: 0xff}
	panelTextColour = color.NRGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xff}
	buttonFace      = color.NRGBA{R: 0xdc, G: 0xdc, B: 0xdc, A: 0xff}
	buttonFlash     = color.NRGBA{R: 0x64, G: 0x96, B: 0xc8, A: 0xff}
	controlEdge     = color.NRGBA{R: 0x90, G: 0x90, B: 0x90, A: 0xff}
	inputFace       = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	focusEdge       = color.NRGBA{R: 0x38, G: 0x6e, B: 0xc8, A: 0xff}
)

// Control is one entry in the control panel: a label, a button or a text
// input.
type Control struct {
	panel *panel
	kind  controlKind

	text  string // caption; for inputs, the row label above the box
	value string // inputs only: the editable contents
	width int    // 0 means fill the panel

	onClick func()       // buttons
	onInput func(string) // inputs, fired on enter

	flash    *gween.Tween // press feedback; nil when idle
	flashVal float32
}

// GetText returns the control's text: a label's caption, a button's caption
// or the contents of an input's box.
func (c *Control) GetText() string {
	if c.kind == controlInput {
		return c.value
	}
	return c.text
}

// SetText replaces a label's or button's caption, or the contents of an
// input's box.
func (c *Control) SetText(text string) {
	if c.kind == controlInput {
		c.value = text
		return
	}
	c.text = text
}

// --- Panel ---

// panel stacks controls down the left edge of the frame and shows the key
// and mouse status rows at the bottom.
type panel struct {
	rt *Runtime

	width  int
	height int

	controls []*Control
	focused  *Control // input receiving keystrokes; nil when none

	keyStatus   string
	mouseStatus string

	pendingClicks []Point
	runeBuf       []rune
}

func newPanel(rt *Runtime, width, height int) *panel {
	return &panel{rt: rt, width: width, height: height}
}

func (p *panel) add(c *Control) *Control {
	c.panel = p
	p.controls = append(p.controls, c)
	return c
}

func (p *panel) noteKey(s string)   { p.keyStatus = s }
func (p *panel) noteMouse(s string) { p.mouseStatus = s }

// bounds computes each control's hit rectangle, stacking from the top. An
// input's rectangle is its editable box; the caption row above it is inert.
func (p *panel) bounds() []image.Rectangle {
	rects := make([]image.Rectangle, len(p.controls))
	y := panelPad
	for i, c := range p.controls {
		if c.kind == controlInput {
			y += controlHeight // caption row
		}
		w := c.width
		if w <= 0 {
			w = p.width - 2*panelPad
		}
		rects[i] = image.Rect(panelPad, y, panelPad+w, y+controlHeight)
		y += controlHeight + controlGap
	}
	return rects
}

// dispatchPending delivers queued panel clicks on the application loop.
func (p *panel) dispatchPending() {
	clicks := p.pendingClicks
	p.pendingClicks = nil
	for _, at := range clicks {
		p.handleClick(at)
	}
}

// handleClick presses the button or focuses the input under the window
// point; a click on nothing drops focus.
func (p *panel) handleClick(at Point) {
	pt := image.Pt(int(at.X), int(at.Y))
	rects := p.bounds()
	for i, c := range p.controls {
		if !pt.In(rects[i]) {
			continue
		}
		switch c.kind {
		case controlButton:
			p.press(c)
		case controlInput:
			p.focused = c
		}
		return
	}
	p.focused = nil
}

// press runs the button handler and starts its flash.
func (p *panel) press(c *Control) {
	p.focused = nil
	c.flash = gween.New(1, 0, buttonFlashSeconds, ease.OutQuad)
	c.flashVal = 1
	if c.onClick != nil {
		c.onClick()
	}
}

// update advances button flash animations one loop pass.
func (p *panel) update() {
	for _, c := range p.controls {
		if c.flash == nil {
			continue
		}
		v, done := c.flash.Update(1.0 / 60.0)
		c.flashVal = v
		if done {
			c.flash = nil
			c.flashVal = 0
		}
	}
}

// pollDevice queues real mouse presses over the panel and feeds keystrokes
// to the focused input.
func (p *panel) pollDevice() {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		if x < p.width {
			p.pendingClicks = append(p.pendingClicks, Pt(float64(x), float64(y)))
		} else {
			p.focused = nil
		}
	}
	if p.focused != nil {
		p.typeInto(p.focused)
	}
}

// typeInto feeds this frame's keystrokes into c. Enter commits the value
// through the input handler and drops focus; backspace repeats while held.
func (p *panel) typeInto(c *Control) {
	p.runeBuf = ebiten.AppendInputChars(p.runeBuf[:0])
	for _, r := range p.runeBuf {
		p.typeRune(c, r)
	}
	if repeatingKey(ebiten.KeyBackspace) {
		p.backspace(c)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter) {
		p.commit(c)
	}
}

// typeRune appends one typed rune; non-printing input is ignored.
func (p *panel) typeRune(c *Control, r rune) {
	if unicode.IsPrint(r) {
		c.value += string(r)
	}
}

// backspace removes the last rune of the value.
func (p *panel) backspace(c *Control) {
	if len(c.value) == 0 {
		return
	}
	_, size := utf8.DecodeLastRuneInString(c.value)
	c.value = c.value[:len(c.value)-size]
}

// commit hands the value to the input handler and drops focus.
func (p *panel) commit(c *Control) {
	p.focused = nil
	if c.onInput != nil {
		c.onInput(c.value)
	}
}

// repeatingKey reports a key press with keyboard-style auto-repeat: once on
// the initial press, then every third display frame after half a second.
func repeatingKey(key ebiten.Key) bool {
	d := inpututil.KeyPressDuration(key)
	if d == 1 {
		return true
	}
	return d >= 30 && (d-30)%3 == 0
}

// --- Drawing ---

// draw paints the panel region of the window.
func (p *panel) draw(screen *ebiten.Image) {
	area := screen.SubImage(image.Rect(0, 0, p.width, p.height)).(*ebiten.Image)
	area.Fill(panelBackground)

	face := p.rt.font(FaceSansSerif, panelFontSize)
	rects := p.bounds()
	for i, c := range p.controls {
		r := rects[i]
		switch c.kind {
		case controlLabel:
			drawAlignedText(area, c.text, face, r.Min.X, midY(r), text.AlignStart, panelTextColour)
		case controlButton:
			vector.FillRect(area, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), buttonFace, false)
			if c.flashVal > 0 {
				overlay := buttonFlash
				overlay.A = uint8(c.flashVal * 255)
				vector.FillRect(area, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), overlay, false)
			}
			vector.StrokeRect(area, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), 1, controlEdge, false)
			drawAlignedText(area, c.text, face, (r.Min.X+r.Max.X)/2, midY(r), text.AlignCenter, panelTextColour)
		case controlInput:
			drawAlignedText(area, c.text, face, r.Min.X, r.Min.Y-controlHeight/2, text.AlignStart, panelTextColour)
			vector.FillRect(area, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), inputFace, false)
			edge := controlEdge
			if p.focused == c {
				edge = focusEdge
			}
			vector.StrokeRect(area, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), 1, edge, false)
			drawAlignedText(area, c.value, face, r.Min.X+4, midY(r), text.AlignStart, panelTextColour)
			if p.focused == c {
				w, _ := text.Measure(c.value, face, 0)
				cx := float32(r.Min.X+4) + float32(w) + 1
				vector.StrokeLine(area, cx, float32(r.Min.Y+4), cx, float32(r.Max.Y-4), 1, panelTextColour, false)
			}
		}
	}

	statusTop := p.height - panelPad - 2*statusRowGap
	drawAlignedText(area, "Key: "+p.keyStatus, face, panelPad, statusTop+statusRowGap/2, text.AlignStart, panelTextColour)
	drawAlignedText(area, "Mouse: "+p.mouseStatus, face, panelPad, statusTop+statusRowGap+statusRowGap/2, text.AlignStart, panelTextColour)
}

func midY(r image.Rectangle) int {
	return (r.Min.Y + r.Max.Y) / 2
}

// drawAlignedText draws one line of text vertically centred on y. align
// positions the text relative to x horizontally.
func drawAlignedText(dst *ebiten.Image, s string, face *text.GoTextFace, x, y int, align text.Align, clr color.NRGBA) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(clr)
	op.PrimaryAlign = align
	op.SecondaryAlign = text.AlignCenter
	text.Draw(dst, s, face, op)
}
