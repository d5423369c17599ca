package simplequi

import (
	"fmt"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// debugStats holds loop counters, reported once per second when debug
// logging is on.
type debugStats struct {
	steps   int
	events  int
	lastLog time.Time
}

// SetDebug switches diagnostic logging and the on-screen overlay on or off.
// The SIMPLEQUI_DEBUG=1 environment variable sets the initial state.
func (rt *Runtime) SetDebug(enabled bool) {
	rt.debug = enabled
}

// debugf writes one diagnostic line to stderr when debug logging is on.
func (rt *Runtime) debugf(format string, args ...any) {
	if !rt.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[simplequi] "+format+"\n", args...)
}

// logStats reports loop counters to stderr once per second.
func (rt *Runtime) logStats(now time.Time) {
	if !rt.debug {
		return
	}
	if rt.stats.lastLog.IsZero() {
		rt.stats.lastLog = now
		return
	}
	if now.Sub(rt.stats.lastLog) < time.Second {
		return
	}
	rt.stats.lastLog = now
	var draws, repaints, suppressed int
	if f := rt.frame; f != nil {
		draws = f.surface.ticks
		repaints = f.surface.repaints
		suppressed = f.surface.suppressed
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[simplequi] steps: %d | events: %d | draws: %d | repaints: %d | suppressed: %d | tracked: %d\n",
		rt.stats.steps, rt.stats.events, draws, repaints, suppressed, len(rt.tracked))
}

// drawDebugOverlay prints live counters over the canvas corner.
func (rt *Runtime) drawDebugOverlay(screen *ebiten.Image) {
	f := rt.frame
	if f == nil {
		return
	}
	msg := fmt.Sprintf("tps %0.0f fps %0.0f\ndraws %d repaints %d suppressed %d\ntracked %d",
		ebiten.ActualTPS(), ebiten.ActualFPS(),
		f.surface.ticks, f.surface.repaints, f.surface.suppressed, len(rt.tracked))
	ebitenutil.DebugPrintAt(screen, msg, f.panelWidth+4, 4)
}
