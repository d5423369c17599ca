package simplequi

import (
	"log"
	"os"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	text "github.com/hajimehoshi/ebiten/v2/text/v2"
)

// appState tracks the application lifecycle.
type appState uint8

const (
	stateNotStarted appState = iota // setup code still running
	stateRunning                    // loop active
	stateExited                     // loop finished; terminal
)

// Runtime owns the application loop: the task queue, the set of busy
// resources, running timers, loaded sounds and the optional frame. The loop
// is cooperative and single-threaded; every callback (draw handlers, input
// handlers, timer and asset completions) runs on the loop goroutine. post is
// the one method safe to call from anywhere else.
type Runtime struct {
	mu    sync.Mutex
	tasks []func()

	state   appState
	tracked map[any]struct{}
	timers  []*Timer
	fireBuf []*Timer
	sounds  []*Sound
	frame   *Frame

	colours     map[string]Colour
	fonts       map[fontSpec]*text.GoTextFace
	fontSources map[string]*text.GoTextFaceSource

	// Seams for tests: the wall clock, the asset fetcher and the sound
	// player factory.
	nowFn          func() time.Time
	fetch          fetchFunc
	newSoundPlayer func(data []byte) (soundPlayer, error)

	debug bool
	stats debugStats
}

// NewRuntime returns a Runtime with an empty tracked set and a warm colour
// cache. Debug logging starts on when SIMPLEQUI_DEBUG=1 is set.
func NewRuntime() *Runtime {
	rt := &Runtime{
		tracked:     make(map[any]struct{}),
		colours:     make(map[string]Colour, len(preloadedColours)),
		fonts:       make(map[fontSpec]*text.GoTextFace),
		fontSources: make(map[string]*text.GoTextFaceSource),
		nowFn:       time.Now,
		fetch:       fetchBytes,
		debug:       os.Getenv("SIMPLEQUI_DEBUG") == "1",
	}
	for _, name := range preloadedColours {
		rt.colours[name] = mustColour(name)
	}
	return rt
}

func (rt *Runtime) now() time.Time {
	return rt.nowFn()
}

// --- Task queue ---

// post queues fn to run on the application loop. Safe from any goroutine.
func (rt *Runtime) post(fn func()) {
	rt.mu.Lock()
	rt.tasks = append(rt.tasks, fn)
	rt.mu.Unlock()
}

// drainTasks runs queued tasks in order until the queue is empty, including
// tasks posted by the tasks themselves.
func (rt *Runtime) drainTasks() {
	for {
		rt.mu.Lock()
		if len(rt.tasks) == 0 {
			rt.mu.Unlock()
			return
		}
		fn := rt.tasks[0]
		rt.tasks = rt.tasks[1:]
		rt.mu.Unlock()
		fn()
	}
}

// --- Tracked resources ---

// track registers r as keeping the application alive. Tracking the same
// resource twice is harmless.
func (rt *Runtime) track(r any) {
	rt.tracked[r] = struct{}{}
	rt.debugf("tracking %T, %d tracked", r, len(rt.tracked))
}

// untrack releases r and schedules a quiescence check. The check is deferred
// onto the loop so that anything the current call stack is about to register
// gets a chance to do so before the verdict.
func (rt *Runtime) untrack(r any) {
	delete(rt.tracked, r)
	rt.debugf("untracking %T, %d tracked", r, len(rt.tracked))
	rt.post(rt.checkQuiescence)
}

// checkQuiescence ends the application when nothing busy remains: no tracked
// resource and no open window. It re-reads state at run time, so a check
// scheduled by an untrack is vetoed by anything registered since.
func (rt *Runtime) checkQuiescence() {
	if rt.state != stateRunning {
		return
	}
	if len(rt.tracked) > 0 {
		return
	}
	if rt.frame != nil && rt.frame.open {
		return
	}
	rt.debugf("nothing left to do, exiting")
	rt.state = stateExited
}

// --- Loop ---

// step runs one pass of the application loop: queued tasks first, then due
// timers, finished sounds, pending input and the draw cycle.
func (rt *Runtime) step(now time.Time) {
	rt.drainTasks()
	if rt.state != stateRunning {
		return
	}
	rt.fireTimers(now)
	rt.pollSounds()
	if f := rt.frame; f != nil && f.open {
		f.panel.dispatchPending()
		f.panel.update()
		f.router.dispatchPending()
		f.surface.maybeTick(now)
	}
	rt.stats.steps++
	rt.logStats(now)
}

// Run starts the application loop and blocks until the application exits.
// Scripts with a frame normally call Frame.Start, which funnels here. Run
// returns immediately if the loop has already run.
func (rt *Runtime) Run() {
	if rt.state != stateNotStarted {
		return
	}
	rt.state = stateRunning
	// A script that registered nothing should exit rather than hang.
	rt.post(rt.checkQuiescence)

	if f := rt.frame; f != nil && f.open {
		rt.runWindowed(f)
	}
	rt.runHeadless()
}

func (rt *Runtime) runWindowed(f *Frame) {
	ebiten.SetWindowTitle(f.title)
	ebiten.SetWindowSize(f.totalWidth(), f.height())
	ebiten.SetWindowClosingHandled(true)
	if err := ebiten.RunGame(&game{rt: rt}); err != nil {
		log.Printf("simplequi: display loop: %v", err)
		rt.state = stateExited
	}
}

// runHeadless drains remaining work (timers, loading sounds) for scripts
// that never opened a window, or after the window is gone.
func (rt *Runtime) runHeadless() {
	for rt.state == stateRunning {
		now := rt.now()
		rt.step(now)
		if rt.state != stateRunning {
			return
		}
		time.Sleep(rt.sleepUntilNext(now))
	}
}

// sleepUntilNext picks a sleep long enough to be polite and short enough not
// to miss the nearest timer deadline.
func (rt *Runtime) sleepUntilNext(now time.Time) time.Duration {
	d := 10 * time.Millisecond
	for _, t := range rt.timers {
		if t.running {
			if until := t.next.Sub(now); until < d {
				d = until
			}
		}
	}
	if d < time.Millisecond {
		d = time.Millisecond
	}
	return d
}

// --- Display adapter ---

// game adapts the Runtime to the display loop.
type game struct {
	rt *Runtime
}

func (g *game) Update() error {
	rt := g.rt
	if f := rt.frame; f != nil && f.open {
		if ebiten.IsWindowBeingClosed() {
			f.Close()
		} else {
			f.pollDevice()
		}
	}
	rt.step(rt.now())
	if rt.state != stateRunning {
		return ebiten.Termination
	}
	if rt.frame == nil || !rt.frame.open {
		// The window is gone but something still holds the application
		// open; finish in the headless loop.
		return ebiten.Termination
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if f := g.rt.frame; f != nil && f.open {
		f.draw(screen)
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if f := g.rt.frame; f != nil {
		return f.totalWidth(), f.height()
	}
	return outsideWidth, outsideHeight
}
