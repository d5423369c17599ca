package simplequi

import (
	"bytes"
	"fmt"
	"math"
	"unicode"

	"github.com/go-fonts/latin-modern/lmroman10regular"
	text "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// Font faces selectable in DrawText and GetCanvasTextWidth. The names mirror
// the CSS generic families.
const (
	FaceSerif     = "serif"
	FaceSansSerif = "sans-serif"
	FaceMonospace = "monospace"
)

// faceData holds the embedded font file for each face name.
var faceData = map[string][]byte{
	FaceSerif:     lmroman10regular.TTF,
	FaceSansSerif: goregular.TTF,
	FaceMonospace: gomono.TTF,
}

// fontSpec keys the prepared face cache.
type fontSpec struct {
	face string
	size int
}

// font returns the prepared face for the given family and pixel size,
// building and caching it on first use. Invalid sizes and unknown face
// names panic.
func (rt *Runtime) font(face string, size int) *text.GoTextFace {
	if size <= 0 {
		panic("simplequi: invalid font size")
	}
	spec := fontSpec{face: face, size: size}
	if f, ok := rt.fonts[spec]; ok {
		return f
	}
	f := &text.GoTextFace{Source: rt.fontSource(face), Size: float64(size)}
	rt.fonts[spec] = f
	return f
}

func (rt *Runtime) fontSource(face string) *text.GoTextFaceSource {
	if src, ok := rt.fontSources[face]; ok {
		return src
	}
	data, ok := faceData[face]
	if !ok {
		panic(fmt.Sprintf("simplequi: invalid font face %q: valid faces are %q, %q and %q",
			face, FaceSerif, FaceSansSerif, FaceMonospace))
	}
	src, err := text.NewGoTextFaceSource(bytes.NewReader(data))
	if err != nil {
		panic(fmt.Sprintf("simplequi: parsing embedded %s font: %v", face, err))
	}
	rt.fontSources[face] = src
	return src
}

// textWidth measures the pixel width of s at the given size and face.
func (rt *Runtime) textWidth(s string, size int, face string) int {
	checkPrintable(s)
	w, _ := text.Measure(s, rt.font(face, size), 0)
	return int(math.Ceil(w))
}

// checkPrintable rejects text containing non-printing characters, which the
// canvas has no sensible way to show.
func checkPrintable(s string) {
	for _, r := range s {
		if !unicode.IsPrint(r) {
			panic("simplequi: text may not contain non-printing characters")
		}
	}
}
