package scene

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/disintegration/imaging"
)

// pixelsPerUnit maps scene units onto preview pixels.
const pixelsPerUnit = 0.5

// RenderInfo describes one completed preview render.
type RenderInfo struct {
	Path    string
	Width   int
	Height  int
	Seconds float64
}

// Render rasterizes a flat orthographic preview of the scene onto the XY
// plane and, when path is non-empty, encodes it to disk in the format implied
// by the path extension.
func (d *Document) Render(path string, width, height int) (RenderInfo, error) {
	start := time.Now()

	d.mu.Lock()
	if width <= 0 {
		width = d.renderWidth
	}
	if height <= 0 {
		height = d.renderHeight
	}
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	fill(img, img.Bounds(), color.NRGBA{R: 38, G: 38, B: 42, A: 255})

	for _, obj := range d.objects {
		fill(img, d.projectLocked(obj, width, height), d.objectColorLocked(obj))
	}
	d.mu.Unlock()

	if path != "" {
		if err := imaging.Save(img, path); err != nil {
			return RenderInfo{}, fmt.Errorf("Render failed: %v", err)
		}
	}

	return RenderInfo{
		Path:    path,
		Width:   width,
		Height:  height,
		Seconds: time.Since(start).Seconds(),
	}, nil
}

// projectLocked maps an object's XY footprint to image coordinates, with the
// scene origin at the image center and Y pointing up.
func (d *Document) projectLocked(obj *Object, width, height int) image.Rectangle {
	cx := float64(width)/2 + obj.Position[0]*pixelsPerUnit
	cy := float64(height)/2 - obj.Position[1]*pixelsPerUnit

	halfW := obj.Size[0] * obj.Scale[0] * pixelsPerUnit / 2
	halfH := obj.Size[1] * obj.Scale[1] * pixelsPerUnit / 2
	if halfW < 1 {
		halfW = 1
	}
	if halfH < 1 {
		halfH = 1
	}

	return image.Rect(int(cx-halfW), int(cy-halfH), int(cx+halfW), int(cy+halfH))
}

func (d *Document) objectColorLocked(obj *Object) color.NRGBA {
	if obj.Material != "" {
		if mat := d.findMaterial(obj.Material); mat != nil {
			return color.NRGBA{
				R: channel(mat.Color[0]),
				G: channel(mat.Color[1]),
				B: channel(mat.Color[2]),
				A: 255,
			}
		}
	}
	return color.NRGBA{R: 200, G: 200, B: 200, A: 255}
}

func fill(img *image.NRGBA, rect image.Rectangle, c color.NRGBA) {
	rect = rect.Intersect(img.Bounds())
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
}

func channel(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v * 255)
}
