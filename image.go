package simplequi

import (
	"bytes"
	"image"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Image is a picture loaded from a URL or local path. Loading is
// asynchronous: GetWidth and GetHeight report zero until the pixels arrive,
// and drawing an Image that is not ready records nothing.
//
// Each distinct way an image is drawn (crop, target size, rotation) is
// prepared once and cached on the handle, so a draw handler repeating the
// same calls every cycle costs one map lookup per call.
type Image struct {
	rt  *Runtime
	url string

	state assetState
	src   *ebiten.Image
	w, h  int

	views map[viewKey]*ebiten.Image
}

// LoadImage starts fetching and decoding the image behind url.
func (rt *Runtime) LoadImage(url string) *Image {
	img := &Image{rt: rt, url: url, views: make(map[viewKey]*ebiten.Image)}
	rt.fetchAsync(url, img.complete)
	return img
}

// complete runs on the application loop once the fetch finishes.
func (img *Image) complete(data []byte, err error) {
	if err != nil {
		img.state = assetFailed
		log.Printf("simplequi: image %s failed to load: %v", img.url, err)
		return
	}
	decoded, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		img.state = assetFailed
		log.Printf("simplequi: image %s failed to decode: %v", img.url, err)
		return
	}
	img.src = ebiten.NewImageFromImage(decoded)
	img.w = decoded.Bounds().Dx()
	img.h = decoded.Bounds().Dy()
	img.state = assetReady
}

// GetWidth returns the pixel width of the decoded image, or 0 while the
// image is loading or after it failed.
func (img *Image) GetWidth() int {
	if img.state != assetReady {
		return 0
	}
	return img.w
}

// GetHeight returns the pixel height of the decoded image, or 0 while the
// image is loading or after it failed.
func (img *Image) GetHeight() int {
	if img.state != assetReady {
		return 0
	}
	return img.h
}

// --- Prepared views ---

// viewKey identifies one prepared view of a source image: a crop rectangle
// given as centre and size, a target size, and a rotation in radians.
type viewKey struct {
	srcCX, srcCY int
	srcW, srcH   int
	dstW, dstH   int
	rotation     float64
}

// view returns the prepared image for key, cutting, scaling and rotating it
// on first use. It returns nil until the source pixels are ready, when the
// crop misses the source entirely, or when the target size is empty.
func (img *Image) view(key viewKey) *ebiten.Image {
	if img.state != assetReady {
		return nil
	}
	if v, ok := img.views[key]; ok {
		return v
	}
	v := img.buildView(key)
	img.views[key] = v
	return v
}

func (img *Image) buildView(key viewKey) *ebiten.Image {
	if key.dstW <= 0 || key.dstH <= 0 {
		return nil
	}
	x0 := key.srcCX - key.srcW/2
	y0 := key.srcCY - key.srcH/2
	crop := image.Rect(x0, y0, x0+key.srcW, y0+key.srcH).Intersect(img.src.Bounds())
	if crop.Empty() {
		return nil
	}
	view := img.src.SubImage(crop).(*ebiten.Image)
	if key.dstW != crop.Dx() || key.dstH != crop.Dy() {
		scaled := ebiten.NewImage(key.dstW, key.dstH)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(float64(key.dstW)/float64(crop.Dx()), float64(key.dstH)/float64(crop.Dy()))
		scaled.DrawImage(view, op)
		view = scaled
	}
	if key.rotation != 0 {
		view = rotated(view, key.rotation)
	}
	return view
}

// rotated renders src turned by rot radians (clockwise on screen) into a
// fresh image just big enough for the rotated bounds.
func rotated(src *ebiten.Image, rot float64) *ebiten.Image {
	w := float64(src.Bounds().Dx())
	h := float64(src.Bounds().Dy())
	sin := math.Abs(math.Sin(rot))
	cos := math.Abs(math.Cos(rot))
	rw := max(int(math.Ceil(w*cos+h*sin)), 1)
	rh := max(int(math.Ceil(w*sin+h*cos)), 1)
	dst := ebiten.NewImage(rw, rh)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-w/2, -h/2)
	op.GeoM.Rotate(rot)
	op.GeoM.Translate(float64(rw)/2, float64(rh)/2)
	dst.DrawImage(src, op)
	return dst
}
