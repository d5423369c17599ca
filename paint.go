package simplequi

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	text "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// radiansPer16 converts the painter's angle unit back to radians.
const radiansPer16 = (2 * math.Pi) / (360 * 16)

// blit rasterises pending changes and draws the canvas onto dst at the given
// offset. Rasterisation happens here, not at commit time, so suppressed
// cycles never touch the GPU.
func (s *surface) blit(dst *ebiten.Image, offsetX, offsetY int) {
	if s.buffer == nil {
		s.buffer = ebiten.NewImage(s.width, s.height)
		s.needsPaint = true
	}
	if s.needsPaint {
		s.rasterise()
		s.needsPaint = false
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), float64(offsetY))
	dst.DrawImage(s.buffer, op)
}

// rasterise repaints the committed frame into the offscreen buffer.
func (s *surface) rasterise() {
	s.buffer.Fill(s.background.NRGBA)
	for i := range s.objects {
		s.paint(&s.objects[i])
	}
}

func (s *surface) paint(p *primitive) {
	switch p.kind {
	case primText:
		s.paintText(p)
	case primLine:
		s.paintLine(p)
	case primPolyline:
		s.paintPolyline(p)
	case primPolygon:
		s.paintPolygon(p)
	case primCircle:
		s.paintCircle(p)
	case primArc:
		s.paintArc(p)
	case primPoint:
		s.paintPoint(p)
	case primImage:
		s.paintImage(p)
	}
}

func (s *surface) colourOf(spec string) color.NRGBA {
	return s.rt.colour(spec).NRGBA
}

// strokeWidth maps a recorded width to pixels; widths that truncated to zero
// still paint a hairline.
func strokeWidth(w int) float32 {
	if w < 1 {
		return 1
	}
	return float32(w)
}

func (s *surface) paintText(p *primitive) {
	f := s.rt.font(p.face, p.size)
	pt := p.pts[0]
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(pt.X), float64(pt.Y)-f.Metrics().HAscent)
	op.ColorScale.ScaleWithColor(s.colourOf(p.line))
	text.Draw(s.buffer, p.text, f, op)
}

func (s *surface) paintLine(p *primitive) {
	a, b := p.pts[0], p.pts[1]
	vector.StrokeLine(s.buffer, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y),
		strokeWidth(p.width), s.colourOf(p.line), true)
}

func (s *surface) paintPolyline(p *primitive) {
	var path vector.Path
	path.MoveTo(float32(p.pts[0].X), float32(p.pts[0].Y))
	for _, pt := range p.pts[1:] {
		path.LineTo(float32(pt.X), float32(pt.Y))
	}
	s.strokePath(&path, p.width, p.line)
}

func (s *surface) paintPolygon(p *primitive) {
	var path vector.Path
	path.MoveTo(float32(p.pts[0].X), float32(p.pts[0].Y))
	for _, pt := range p.pts[1:] {
		path.LineTo(float32(pt.X), float32(pt.Y))
	}
	path.Close()
	if p.fill != "" {
		s.fillPath(&path, p.fill)
	}
	s.strokePath(&path, p.width, p.line)
}

func (s *surface) paintCircle(p *primitive) {
	c := p.pts[0]
	cx, cy, r := float32(c.X), float32(c.Y), float32(p.radius)
	if p.fill != "" {
		vector.FillCircle(s.buffer, cx, cy, r, s.colourOf(p.fill), true)
	}
	vector.StrokeCircle(s.buffer, cx, cy, r, strokeWidth(p.width), s.colourOf(p.line), true)
}

// paintArc strokes the arc between the recorded angles; a filled arc paints
// the pie wedge between the radii and outlines the whole wedge.
func (s *surface) paintArc(p *primitive) {
	c := p.pts[0]
	cx, cy, r := float32(c.X), float32(c.Y), float32(p.radius)
	start := float32(float64(p.start16) * radiansPer16)
	end := float32(float64(p.start16-p.sweep16) * radiansPer16)
	dir := vector.Clockwise
	if p.sweep16 > 0 {
		dir = vector.CounterClockwise
	}
	if p.fill != "" {
		var pie vector.Path
		pie.MoveTo(cx, cy)
		pie.Arc(cx, cy, r, start, end, dir)
		pie.Close()
		s.fillPath(&pie, p.fill)
		s.strokePath(&pie, p.width, p.line)
		return
	}
	var path vector.Path
	path.Arc(cx, cy, r, start, end, dir)
	s.strokePath(&path, p.width, p.line)
}

func (s *surface) paintPoint(p *primitive) {
	pt := p.pts[0]
	vector.FillRect(s.buffer, float32(pt.X), float32(pt.Y), 1, 1, s.colourOf(p.line), false)
}

func (s *surface) paintImage(p *primitive) {
	view := p.img.view(p.key)
	if view == nil {
		return
	}
	b := view.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(p.dst.X)-float64(b.Dx())/2, float64(p.dst.Y)-float64(b.Dy())/2)
	s.buffer.DrawImage(view, op)
}

func (s *surface) strokePath(path *vector.Path, width int, colour string) {
	op := &vector.DrawPathOptions{AntiAlias: true}
	op.ColorScale.ScaleWithColor(s.colourOf(colour))
	vector.StrokePath(s.buffer, path, &vector.StrokeOptions{Width: strokeWidth(width)}, op)
}

func (s *surface) fillPath(path *vector.Path, colour string) {
	op := &vector.DrawPathOptions{AntiAlias: true}
	op.ColorScale.ScaleWithColor(s.colourOf(colour))
	vector.FillPath(s.buffer, path, nil, op)
}
