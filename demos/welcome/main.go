// welcome is the stock CodeSkulptor greeting: every canvas primitive, the
// full control panel, and a timer that logs on a cadence and eventually
// stops itself.
package main

import (
	"log"
	"math"
	"time"

	"github.com/ArthurGW/simplequi"
)

const (
	canvasW = 300
	canvasH = 200
)

var faces = []string{
	simplequi.FaceSerif,
	simplequi.FaceSansSerif,
	simplequi.FaceMonospace,
}

func main() {
	message := "Welcome!"
	face := 0

	frame := simplequi.CreateFrame("Home", canvasW, canvasH)
	frame.SetCanvasBackground("aqua")
	frame.AddButton("Click me", func() {
		message = "Good job!"
		face = (face + 1) % len(faces)
	})

	label := frame.AddLabel("lAB1", 120)
	frame.AddInput("INPgUT", label.SetText, 300)

	frame.SetKeyDownHandler(func(int) {})
	frame.SetKeyUpHandler(func(int) {})
	frame.SetMouseClickHandler(func(simplequi.Point) {})
	frame.SetMouseDragHandler(func(simplequi.Point) {})

	// Restarting a timer every tenth fire exercises stop/start without ever
	// letting the reference count reach zero; the thirtieth fire stops it
	// for good, leaving the open frame to keep the process alive.
	var timer *simplequi.Timer
	calls := 0
	timer = simplequi.CreateTimer(500*time.Millisecond, func() {
		calls++
		if calls%10 == 0 {
			timer.Stop()
			timer.Start()
			log.Printf("timer restarted after %d fires", calls)
			if calls%30 == 0 {
				timer.Stop()
				log.Printf("timer stopped for good")
			}
		}
	})
	timer.Start()

	frame.SetDrawHandler(func(canvas *simplequi.Canvas) {
		canvas.DrawCircle(simplequi.Pt(150, 100), 99, 2, "green", "purple")
		canvas.DrawLine(simplequi.Pt(100, 0), simplequi.Pt(100, 199), 3, "red")
		canvas.DrawPoint(simplequi.Pt(150, 100), "yellow")
		canvas.DrawPoint(simplequi.Pt(0, 0), "red")
		canvas.DrawPoint(simplequi.Pt(299, 199), "red")
		canvas.DrawPoint(simplequi.Pt(299, 0), "red")
		canvas.DrawPoint(simplequi.Pt(0, 199), "red")
		canvas.DrawPolyline([]simplequi.Point{
			simplequi.Pt(0, 199), simplequi.Pt(150, 100), simplequi.Pt(150, 150),
		}, 2, "green")
		canvas.DrawPolygon([]simplequi.Point{
			simplequi.Pt(0, 100), simplequi.Pt(150, 50), simplequi.Pt(0, 50),
		}, 2, "green", "blue")
		canvas.DrawArc(simplequi.Pt(150, 100), 50, 0, math.Pi/2, 2, "orange")
		canvas.DrawText(message, simplequi.Pt(0, 199), 48, "Red", faces[face])
	})

	frame.Start()
}
