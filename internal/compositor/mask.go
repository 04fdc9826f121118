package compositor

import (
	"image"
	"image/color"
	"math"
)

// roundedMask builds an alpha mask for a w×h rectangle with the given
// corner radius. Corner pixels get a one-pixel analytic falloff so the
// curve does not alias badly at typical frame sizes.
func roundedMask(w, h int, radius float64) *image.Alpha {
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	r := radius
	maxR := math.Min(float64(w), float64(h)) / 2
	if r > maxR {
		r = maxR
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			fx, fy := float64(x)+0.5, float64(y)+0.5

			// Distance from the pixel to the nearest corner circle center;
			// zero outside the corner squares, where the pixel is opaque.
			cx := math.Max(r-fx, math.Max(fx-(float64(w)-r), 0))
			cy := math.Max(r-fy, math.Max(fy-(float64(h)-r), 0))
			d := math.Hypot(cx, cy)

			var a uint8
			switch {
			case d <= r-0.5:
				a = 255
			case d >= r+0.5:
				a = 0
			default:
				a = uint8((r + 0.5 - d) * 255)
			}
			mask.SetAlpha(x, y, color.Alpha{A: a})
		}
	}
	return mask
}

// applyMask multiplies the premultiplied surface by the alpha mask.
func applyMask(img *image.RGBA, mask *image.Alpha) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			a := mask.AlphaAt(x-b.Min.X, y-b.Min.Y).A
			if a == 255 {
				continue
			}
			i := img.PixOffset(x, y)
			if a == 0 {
				img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = 0, 0, 0, 0
				continue
			}
			f := uint32(a)
			img.Pix[i] = uint8(uint32(img.Pix[i]) * f / 255)
			img.Pix[i+1] = uint8(uint32(img.Pix[i+1]) * f / 255)
			img.Pix[i+2] = uint8(uint32(img.Pix[i+2]) * f / 255)
			img.Pix[i+3] = uint8(uint32(img.Pix[i+3]) * f / 255)
		}
	}
}
