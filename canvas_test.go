package simplequi

import (
	"image"
	"math"
	"strings"
	"testing"
	"time"
)

func newTestSurface() (*surface, *testClock) {
	rt, clk := newTestRuntime()
	return newSurface(rt, 300, 200), clk
}

// --- Diffing ---

func TestTickSuppressesIdenticalFrames(t *testing.T) {
	s, _ := newTestSurface()
	s.handler = func(c *Canvas) {
		c.DrawCircle(Pt(150, 100), 99, 2, "Green", "Purple")
		c.DrawLine(Pt(0, 0), Pt(150, 150), 3, "Red")
	}
	s.started = true

	for i := 0; i < 5; i++ {
		s.tick()
	}
	if s.ticks != 5 {
		t.Fatalf("ticks = %d, want 5", s.ticks)
	}
	if s.repaints != 1 {
		t.Errorf("repaints = %d, want 1 (first frame only)", s.repaints)
	}
	if s.suppressed != 4 {
		t.Errorf("suppressed = %d, want 4", s.suppressed)
	}
	if len(s.objects) != 2 {
		t.Errorf("committed buffer holds %d primitives, want 2", len(s.objects))
	}
}

func TestTickCommitsChangedFrames(t *testing.T) {
	s, _ := newTestSurface()
	radius := 10.0
	s.handler = func(c *Canvas) {
		c.DrawCircle(Pt(150, 100), radius, 2, "Green")
	}
	s.started = true

	for i := 0; i < 5; i++ {
		s.tick()
		radius++
	}
	if s.repaints != 5 {
		t.Errorf("repaints = %d, want 5 (every frame changed)", s.repaints)
	}
	if s.suppressed != 0 {
		t.Errorf("suppressed = %d, want 0", s.suppressed)
	}
}

func TestTickOrderMatters(t *testing.T) {
	s, _ := newTestSurface()
	flip := false
	s.handler = func(c *Canvas) {
		if flip {
			c.DrawPoint(Pt(2, 2), "Red")
			c.DrawPoint(Pt(1, 1), "Blue")
		} else {
			c.DrawPoint(Pt(1, 1), "Blue")
			c.DrawPoint(Pt(2, 2), "Red")
		}
	}
	s.started = true

	s.tick()
	flip = true
	s.tick()
	if s.repaints != 2 {
		t.Errorf("repaints = %d, want 2: same primitives in a new order is a new frame", s.repaints)
	}
}

func TestEmptyFramesStaySuppressed(t *testing.T) {
	s, _ := newTestSurface()
	s.handler = func(c *Canvas) {}
	s.started = true

	s.tick()
	s.tick()
	if s.repaints != 0 {
		t.Errorf("repaints = %d, want 0: empty output matches the initial empty frame", s.repaints)
	}
	if s.suppressed != 2 {
		t.Errorf("suppressed = %d, want 2", s.suppressed)
	}
}

// --- Cadence ---

func TestMaybeTickHonoursDeadline(t *testing.T) {
	rt, clk := newTestRuntime()
	s := newSurface(rt, 300, 200)
	calls := 0
	s.setDrawHandler(func(c *Canvas) { calls++ })

	// Not started: no deadline, no draw.
	clk.advance(time.Second)
	s.maybeTick(clk.now)
	if calls != 0 {
		t.Fatalf("draw handler ran %d times before start", calls)
	}

	s.start()
	s.maybeTick(clk.now)
	if calls != 0 {
		t.Fatalf("draw handler ran before the first interval elapsed")
	}

	clk.advance(tickInterval)
	s.maybeTick(clk.now)
	if calls != 1 {
		t.Fatalf("calls = %d after one interval, want 1", calls)
	}

	// Half an interval: nothing.
	clk.advance(tickInterval / 2)
	s.maybeTick(clk.now)
	if calls != 1 {
		t.Errorf("calls = %d after half an interval, want still 1", calls)
	}
	clk.advance(tickInterval / 2)
	s.maybeTick(clk.now)
	if calls != 2 {
		t.Errorf("calls = %d after the second interval, want 2", calls)
	}
}

func TestMaybeTickCoalescesStalls(t *testing.T) {
	rt, clk := newTestRuntime()
	s := newSurface(rt, 300, 200)
	calls := 0
	s.setDrawHandler(func(c *Canvas) { calls++ })
	s.start()

	// A long stall fires once and realigns instead of bursting.
	clk.advance(10 * tickInterval)
	s.maybeTick(clk.now)
	if calls != 1 {
		t.Fatalf("calls = %d after a stall, want 1", calls)
	}
	s.maybeTick(clk.now)
	if calls != 1 {
		t.Fatalf("calls = %d immediately after coalescing, want still 1", calls)
	}
	clk.advance(tickInterval)
	s.maybeTick(clk.now)
	if calls != 2 {
		t.Errorf("calls = %d one interval after realigning, want 2", calls)
	}
}

func TestSetDrawHandlerRestartsCadence(t *testing.T) {
	rt, clk := newTestRuntime()
	s := newSurface(rt, 300, 200)
	s.setDrawHandler(func(c *Canvas) {})
	s.start()

	clk.advance(tickInterval - time.Millisecond)
	s.setDrawHandler(func(c *Canvas) {})
	s.maybeTick(clk.now)
	if s.ticks != 0 {
		t.Fatalf("ticks = %d right after replacing the handler, want 0", s.ticks)
	}
	clk.advance(tickInterval)
	s.maybeTick(clk.now)
	if s.ticks != 1 {
		t.Errorf("ticks = %d one interval after replacing the handler, want 1", s.ticks)
	}
}

// --- Recording ---

func TestRecordTruncatesCoordinates(t *testing.T) {
	s, _ := newTestSurface()
	s.handler = func(c *Canvas) {
		c.DrawPoint(Pt(10.7, 4.2), "Red")
		c.DrawPolyline([]Point{{0.9, 10.7}, {10.9, 10.5}, {5, 5}}, 1.9, "White")
	}
	s.started = true
	s.tick()

	if got := s.objects[0].pts[0]; got != image.Pt(10, 4) {
		t.Errorf("point recorded at %v, want (10,4)", got)
	}
	wantPts := []image.Point{image.Pt(0, 10), image.Pt(10, 10), image.Pt(5, 5)}
	for i, want := range wantPts {
		if got := s.objects[1].pts[i]; got != want {
			t.Errorf("polyline vertex %d recorded at %v, want %v", i, got, want)
		}
	}
	if got := s.objects[1].width; got != 1 {
		t.Errorf("line width recorded as %d, want 1 (truncated from 1.9)", got)
	}
}

func TestAngle16(t *testing.T) {
	tests := []struct {
		name   string
		rad    float64
		expect int
	}{
		{"zero", 0, 0},
		{"quarter", math.Pi / 2, 90 * 16},
		{"half", math.Pi, 180 * 16},
		{"three quarters", 3 * math.Pi / 2, 270 * 16},
		{"full", 2 * math.Pi, 360 * 16},
		{"small", 0.1, 92},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := angle16(tt.rad); got != tt.expect {
				t.Errorf("angle16(%v) = %d, want %d", tt.rad, got, tt.expect)
			}
		})
	}
}

func TestArcRecordsNativeAngles(t *testing.T) {
	s, _ := newTestSurface()
	s.handler = func(c *Canvas) {
		c.DrawArc(Pt(105, 94), 20, math.Pi, 3*math.Pi/2, 1, "Red")
	}
	s.started = true
	s.tick()

	arc := s.objects[0]
	if arc.start16 != 180*16 {
		t.Errorf("start16 = %d, want %d", arc.start16, 180*16)
	}
	if arc.sweep16 != -90*16 {
		t.Errorf("sweep16 = %d, want %d (screen-clockwise sweeps are negative)", arc.sweep16, -90*16)
	}
}

func TestRecordValidation(t *testing.T) {
	s, _ := newTestSurface()
	run := func(fn func(*Canvas)) func() {
		return func() {
			s.handler = fn
			s.started = true
			s.tick()
		}
	}

	tests := []struct {
		name string
		fn   func(*Canvas)
		want string
	}{
		{"bad colour", func(c *Canvas) { c.DrawLine(Pt(0, 0), Pt(1, 1), 1, "blurple") }, "unknown colour string"},
		{"bad fill", func(c *Canvas) { c.DrawCircle(Pt(0, 0), 5, 1, "Red", "nope") }, "unknown colour string"},
		{"zero width", func(c *Canvas) { c.DrawLine(Pt(0, 0), Pt(1, 1), 0, "Red") }, "line width must be positive"},
		{"negative width", func(c *Canvas) { c.DrawCircle(Pt(0, 0), 5, -1, "Red") }, "line width must be positive"},
		{"short polyline", func(c *Canvas) { c.DrawPolyline([]Point{{1, 1}}, 1, "Red") }, "at least two points"},
		{"short polygon", func(c *Canvas) { c.DrawPolygon([]Point{{1, 1}, {2, 2}}, 1, "Red") }, "at least three points"},
		{"bad text", func(c *Canvas) { c.DrawText("a\nb", Pt(0, 0), 12, "Red") }, "non-printing"},
		{"bad font size", func(c *Canvas) { c.DrawText("hi", Pt(0, 0), 0, "Red") }, "invalid font size"},
		{"bad font face", func(c *Canvas) { c.DrawText("hi", Pt(0, 0), 12, "Red", "cursive") }, "invalid font face"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := mustPanic(t, run(tt.fn))
			if !strings.Contains(msg, tt.want) {
				t.Errorf("panic = %q, want it to mention %q", msg, tt.want)
			}
		})
	}
}

func TestHairlineWidthRecordsZero(t *testing.T) {
	s, _ := newTestSurface()
	s.handler = func(c *Canvas) {
		c.DrawLine(Pt(0, 0), Pt(10, 10), 0.5, "Red")
	}
	s.started = true
	s.tick()
	if got := s.objects[0].width; got != 0 {
		t.Errorf("width = %d, want 0 (0.5 truncates; painting promotes it to a hairline)", got)
	}
	if strokeWidth(0) != 1 {
		t.Errorf("strokeWidth(0) = %v, want 1", strokeWidth(0))
	}
}

func TestDrawImageNotReadyRecordsNothing(t *testing.T) {
	s, _ := newTestSurface()
	pending := s.rt.LoadImage("never-finishes.png")
	s.handler = func(c *Canvas) {
		c.DrawImage(pending, Pt(50, 50), Sz(100, 100), Pt(150, 100), Sz(100, 100))
	}
	s.started = true
	s.tick()

	if len(s.objects) != 0 {
		t.Errorf("buffer holds %d primitives, want 0 while the image is loading", len(s.objects))
	}
	if s.repaints != 0 {
		t.Errorf("repaints = %d, want 0", s.repaints)
	}
}

func TestBackgroundChangeForcesRepaint(t *testing.T) {
	s, _ := newTestSurface()
	if s.bgSpec != "Black" {
		t.Fatalf("default background = %q, want Black", s.bgSpec)
	}
	s.setBackground("Black")
	if s.needsPaint {
		t.Error("setting the same background marked the surface dirty")
	}
	s.setBackground("Aqua")
	if !s.needsPaint {
		t.Error("background change did not mark the surface dirty")
	}
	if s.background != mustColour("Aqua") {
		t.Errorf("background = %v, want aqua", s.background)
	}
}

func TestFillOptional(t *testing.T) {
	s, _ := newTestSurface()
	s.handler = func(c *Canvas) {
		c.DrawCircle(Pt(10, 10), 5, 1, "Red")
		c.DrawCircle(Pt(10, 10), 5, 1, "Red", "Blue")
	}
	s.started = true
	s.tick()

	if got := s.objects[0].fill; got != "" {
		t.Errorf("unfilled circle recorded fill %q, want empty", got)
	}
	if got := s.objects[1].fill; got != "Blue" {
		t.Errorf("filled circle recorded fill %q, want Blue", got)
	}
	if s.repaints != 1 {
		t.Errorf("repaints = %d, want 1: fill presence distinguishes the primitives", s.repaints)
	}
}

func BenchmarkTickSteadyScene(b *testing.B) {
	s, _ := newTestSurface()
	s.handler = func(c *Canvas) {
		c.DrawCircle(Pt(150, 100), 99, 2, "Green", "Purple")
		c.DrawLine(Pt(0, 0), Pt(150, 150), 3, "Red")
		c.DrawText("score 100", Pt(10, 20), 14, "White")
	}
	s.started = true
	s.tick()
	b.ReportAllocs()
	for b.Loop() {
		s.tick()
	}
}

func BenchmarkBufferEqual(b *testing.B) {
	s, _ := newTestSurface()
	s.handler = func(c *Canvas) {
		for i := 0; i < 50; i++ {
			c.DrawPoint(Pt(float64(i), float64(i)), "Red")
		}
	}
	s.started = true
	s.tick()
	other := make(frameBuffer, len(s.objects))
	copy(other, s.objects)
	b.ReportAllocs()
	for b.Loop() {
		if !s.objects.equal(other) {
			b.Fatal("buffers should be equal")
		}
	}
}
