package simplequi

import (
	"fmt"
	"image"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// tickInterval is the cadence of the draw cycle, close to sixty frames per
// second.
const tickInterval = 17 * time.Millisecond

// --- Primitives ---

// primKind discriminates recorded draw primitives.
type primKind uint8

const (
	primText primKind = iota
	primLine
	primPolyline
	primPolygon
	primCircle
	primArc
	primPoint
	primImage
)

// primitive is one recorded draw call in whole-pixel coordinates. Two
// primitives compare equal exactly when they would paint the same pixels,
// which is what frame-to-frame diffing relies on.
type primitive struct {
	kind primKind

	pts    []image.Point // vertices, endpoints, or the single anchor point
	radius int
	width  int
	line   string // stroke colour
	fill   string // fill colour; "" paints no fill

	// Text.
	text string
	size int
	face string

	// Arcs, in sixteenths of a degree. Sweeps that run clockwise on screen
	// are stored negative.
	start16 int
	sweep16 int

	// Images.
	img *Image
	key viewKey
	dst image.Point // destination centre
}

// equal reports structural equality, including every vertex.
func (p *primitive) equal(q *primitive) bool {
	if p.kind != q.kind || p.radius != q.radius || p.width != q.width ||
		p.line != q.line || p.fill != q.fill ||
		p.text != q.text || p.size != q.size || p.face != q.face ||
		p.start16 != q.start16 || p.sweep16 != q.sweep16 ||
		p.img != q.img || p.key != q.key || p.dst != q.dst {
		return false
	}
	if len(p.pts) != len(q.pts) {
		return false
	}
	for i := range p.pts {
		if p.pts[i] != q.pts[i] {
			return false
		}
	}
	return true
}

// frameBuffer is the complete recorded output of one draw cycle.
type frameBuffer []primitive

// equal reports whether two buffers would paint identical frames.
func (b frameBuffer) equal(o frameBuffer) bool {
	if len(b) != len(o) {
		return false
	}
	for i := range b {
		if !b[i].equal(&o[i]) {
			return false
		}
	}
	return true
}

// angle16 converts radians to sixteenths of a degree, the resolution the
// painter works in. Quarter turns convert exactly.
func angle16(rad float64) int {
	return int(math.Round(rad * (360 * 16) / (2 * math.Pi)))
}

// --- Recorder ---

// Canvas records draw calls during a draw handler. It is only valid for the
// duration of the call that received it. Angles are radians with zero at the
// three o'clock position, increasing clockwise on screen; colours accept any
// string ParseColour accepts.
type Canvas struct {
	s *surface
}

// DrawText records a line of text whose lower-left corner sits at point. The
// optional trailing argument selects the font face; the default is serif.
func (c *Canvas) DrawText(str string, point Point, fontSize int, colour string, fontFace ...string) {
	checkPrintable(str)
	face := FaceSerif
	if len(fontFace) > 0 {
		face = fontFace[0]
	}
	// Building the face up front validates the size and face name and warms
	// the cache the painter will hit.
	c.s.rt.font(face, fontSize)
	c.s.record(primitive{
		kind: primText,
		pts:  []image.Point{point.truncated()},
		text: str,
		size: fontSize,
		face: face,
		line: c.s.checkColour(colour),
	})
}

// DrawLine records a line segment from p1 to p2.
func (c *Canvas) DrawLine(p1, p2 Point, lineWidth float64, colour string) {
	c.s.record(primitive{
		kind:  primLine,
		pts:   []image.Point{p1.truncated(), p2.truncated()},
		width: c.s.checkWidth(lineWidth),
		line:  c.s.checkColour(colour),
	})
}

// DrawPolyline records line segments connecting each successive pair of
// points. At least two points are required.
func (c *Canvas) DrawPolyline(points []Point, lineWidth float64, colour string) {
	if len(points) < 2 {
		panic("simplequi: a polyline needs at least two points")
	}
	c.s.record(primitive{
		kind:  primPolyline,
		pts:   truncatePoints(points),
		width: c.s.checkWidth(lineWidth),
		line:  c.s.checkColour(colour),
	})
}

// DrawPolygon records a closed polygon through points, outlined in
// lineColour and optionally filled. At least three points are required.
func (c *Canvas) DrawPolygon(points []Point, lineWidth float64, lineColour string, fillColour ...string) {
	if len(points) < 3 {
		panic("simplequi: a polygon needs at least three points")
	}
	c.s.record(primitive{
		kind:  primPolygon,
		pts:   truncatePoints(points),
		width: c.s.checkWidth(lineWidth),
		line:  c.s.checkColour(lineColour),
		fill:  c.s.checkFill(fillColour),
	})
}

// DrawCircle records a circle outlined in lineColour and optionally filled.
func (c *Canvas) DrawCircle(center Point, radius, lineWidth float64, lineColour string, fillColour ...string) {
	c.s.record(primitive{
		kind:   primCircle,
		pts:    []image.Point{center.truncated()},
		radius: int(radius),
		width:  c.s.checkWidth(lineWidth),
		line:   c.s.checkColour(lineColour),
		fill:   c.s.checkFill(fillColour),
	})
}

// DrawArc records a circular arc from startAngle to endAngle. Filled arcs
// paint the pie wedge between the two radii.
func (c *Canvas) DrawArc(center Point, radius, startAngle, endAngle, lineWidth float64, lineColour string, fillColour ...string) {
	c.s.record(primitive{
		kind:    primArc,
		pts:     []image.Point{center.truncated()},
		radius:  int(radius),
		width:   c.s.checkWidth(lineWidth),
		line:    c.s.checkColour(lineColour),
		fill:    c.s.checkFill(fillColour),
		start16: angle16(startAngle),
		sweep16: -angle16(endAngle - startAngle),
	})
}

// DrawPoint records a single pixel.
func (c *Canvas) DrawPoint(point Point, colour string) {
	c.s.record(primitive{
		kind: primPoint,
		pts:  []image.Point{point.truncated()},
		line: c.s.checkColour(colour),
	})
}

// DrawImage records a view of img: the crop of sourceSize centred on
// sourceCenter, scaled to destSize, optionally rotated clockwise by rotation
// radians and centred on destCenter. Nothing is recorded while img is still
// loading or after it failed.
func (c *Canvas) DrawImage(img *Image, sourceCenter Point, sourceSize Size, destCenter Point, destSize Size, rotation ...float64) {
	if img == nil || img.GetWidth() == 0 || img.GetHeight() == 0 {
		return
	}
	var rot float64
	if len(rotation) > 0 {
		rot = rotation[0]
	}
	sc := sourceCenter.truncated()
	ss := sourceSize.truncated()
	ds := destSize.truncated()
	c.s.record(primitive{
		kind: primImage,
		img:  img,
		key: viewKey{
			srcCX: sc.X, srcCY: sc.Y,
			srcW: ss.X, srcH: ss.Y,
			dstW: ds.X, dstH: ds.Y,
			rotation: rot,
		},
		dst: destCenter.truncated(),
	})
}

func truncatePoints(points []Point) []image.Point {
	out := make([]image.Point, len(points))
	for i, p := range points {
		out[i] = p.truncated()
	}
	return out
}

// --- Surface ---

// surface owns the frame buffer and the periodic draw cycle of a frame's
// canvas. Each cycle records a fresh buffer through the draw handler and
// commits it only when it differs structurally from the committed one, so a
// handler that draws the same scene every cycle costs no repaints.
type surface struct {
	rt     *Runtime
	width  int
	height int

	background Colour
	bgSpec     string

	handler func(*Canvas)
	started bool
	next    time.Time

	objects   frameBuffer // committed output of the last changed cycle
	recording frameBuffer // scratch buffer for the cycle in progress

	buffer     *ebiten.Image // rasterised committed output
	needsPaint bool

	ticks      int // draw cycles run
	repaints   int // cycles whose output changed
	suppressed int // cycles whose output matched the committed frame
}

func newSurface(rt *Runtime, width, height int) *surface {
	return &surface{
		rt:         rt,
		width:      width,
		height:     height,
		background: mustColour("Black"),
		bgSpec:     "Black",
	}
}

func (s *surface) record(p primitive) {
	s.recording = append(s.recording, p)
}

func (s *surface) checkColour(spec string) string {
	s.rt.colour(spec) // panics on invalid input
	return spec
}

func (s *surface) checkFill(fill []string) string {
	if len(fill) == 0 || fill[0] == "" {
		return ""
	}
	return s.checkColour(fill[0])
}

func (s *surface) checkWidth(w float64) int {
	if w <= 0 {
		panic(fmt.Sprintf("simplequi: line width must be positive, got %v", w))
	}
	return int(w)
}

// setBackground changes the canvas clear colour. A background change alone
// repaints the next frame even when the recorded primitives did not change.
func (s *surface) setBackground(spec string) {
	c := s.rt.colour(spec)
	if spec == s.bgSpec {
		return
	}
	s.background = c
	s.bgSpec = spec
	s.needsPaint = true
}

// setDrawHandler installs handler and restarts the draw cadence. The first
// cycle under the new handler happens one interval from now, and never
// before the surface has started.
func (s *surface) setDrawHandler(handler func(*Canvas)) {
	s.handler = handler
	if s.started {
		s.next = s.rt.now().Add(tickInterval)
	}
}

// start opens the input gate and begins the draw cycle.
func (s *surface) start() {
	if s.started {
		return
	}
	s.started = true
	if s.handler != nil {
		s.next = s.rt.now().Add(tickInterval)
	}
}

// maybeTick runs one draw cycle when the deadline has arrived. After a stall
// the cadence realigns to now instead of bursting to catch up.
func (s *surface) maybeTick(now time.Time) {
	if !s.started || s.handler == nil || now.Before(s.next) {
		return
	}
	s.next = s.next.Add(tickInterval)
	if !now.Before(s.next) {
		s.next = now.Add(tickInterval)
	}
	s.tick()
}

// tick records one frame through the draw handler and commits it only if it
// differs from the committed frame. The two buffers swap on commit, so a
// steady scene allocates nothing.
func (s *surface) tick() {
	s.recording = s.recording[:0]
	s.handler(&Canvas{s: s})
	s.ticks++
	if s.recording.equal(s.objects) {
		s.suppressed++
		return
	}
	s.objects, s.recording = s.recording, s.objects
	s.repaints++
	s.needsPaint = true
}
