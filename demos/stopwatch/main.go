// stopwatch is the classic simplegui timer game: stop the clock on a whole
// second to score a point.
package main

import (
	"fmt"
	"time"

	"github.com/ArthurGW/simplequi"
)

const (
	canvasW   = 300
	canvasH   = 200
	timeSize  = 40
	scoreSize = 24
)

func main() {
	tenths := 0
	wins, tries := 0, 0
	running := false

	frame := simplequi.CreateFrame("Stopwatch: The Game", canvasW, canvasH)
	frame.SetCanvasBackground("black")

	timer := simplequi.CreateTimer(100*time.Millisecond, func() {
		tenths++
	})

	frame.AddButton("Start", func() {
		running = true
		timer.Start()
	}, 100)
	frame.AddButton("Stop", func() {
		if running {
			tries++
			if tenths%10 == 0 {
				wins++
			}
		}
		running = false
		timer.Stop()
	}, 100)
	frame.AddButton("Reset", func() {
		running = false
		timer.Stop()
		tenths, wins, tries = 0, 0, 0
	}, 100)

	frame.SetDrawHandler(func(canvas *simplequi.Canvas) {
		clock := formatTenths(tenths)
		x := (canvasW - frame.GetCanvasTextWidth(clock, timeSize)) / 2
		canvas.DrawText(clock, simplequi.Pt(float64(x), 120), timeSize, "white")
		score := fmt.Sprintf("%d/%d", wins, tries)
		canvas.DrawText(score, simplequi.Pt(230, 30), scoreSize, "green")
	})

	frame.Start()
}

// formatTenths renders a count of tenths of a second as M:SS.T.
func formatTenths(t int) string {
	return fmt.Sprintf("%d:%02d.%d", t/600, (t/10)%60, t%10)
}
