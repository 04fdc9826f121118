package compositor

import "image"

// boxBlur approximates a gaussian blur with three box-blur passes. The
// radius is derived from the requested blur strength in pixels. In-place.
func boxBlur(img *image.RGBA, blur float64) {
	radius := int(blur/2 + 0.5)
	if radius < 1 {
		radius = 1
	}
	tmp := image.NewRGBA(img.Bounds())
	for pass := 0; pass < 3; pass++ {
		blurHorizontal(img, tmp, radius)
		blurVertical(tmp, img, radius)
	}
}

// blurHorizontal runs a sliding-window average along rows. Premultiplied
// channels average independently, so one accumulator per channel is enough.
func blurHorizontal(src, dst *image.RGBA, radius int) {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	window := float64(2*radius + 1)

	for y := 0; y < h; y++ {
		var sum [4]float64
		for x := -radius; x <= radius; x++ {
			addPixel(&sum, src, clampInt(x, 0, w-1), y, 1)
		}
		for x := 0; x < w; x++ {
			writePixel(dst, x, y, sum, window)
			addPixel(&sum, src, clampInt(x+radius+1, 0, w-1), y, 1)
			addPixel(&sum, src, clampInt(x-radius, 0, w-1), y, -1)
		}
	}
}

func blurVertical(src, dst *image.RGBA, radius int) {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	window := float64(2*radius + 1)

	for x := 0; x < w; x++ {
		var sum [4]float64
		for y := -radius; y <= radius; y++ {
			addPixel(&sum, src, x, clampInt(y, 0, h-1), 1)
		}
		for y := 0; y < h; y++ {
			writePixel(dst, x, y, sum, window)
			addPixel(&sum, src, x, clampInt(y+radius+1, 0, h-1), 1)
			addPixel(&sum, src, x, clampInt(y-radius, 0, h-1), -1)
		}
	}
}

func addPixel(sum *[4]float64, img *image.RGBA, x, y int, sign float64) {
	i := img.PixOffset(img.Bounds().Min.X+x, img.Bounds().Min.Y+y)
	sum[0] += sign * float64(img.Pix[i])
	sum[1] += sign * float64(img.Pix[i+1])
	sum[2] += sign * float64(img.Pix[i+2])
	sum[3] += sign * float64(img.Pix[i+3])
}

func writePixel(img *image.RGBA, x, y int, sum [4]float64, window float64) {
	i := img.PixOffset(img.Bounds().Min.X+x, img.Bounds().Min.Y+y)
	img.Pix[i] = uint8(sum[0]/window + 0.5)
	img.Pix[i+1] = uint8(sum[1]/window + 0.5)
	img.Pix[i+2] = uint8(sum[2]/window + 0.5)
	img.Pix[i+3] = uint8(sum[3]/window + 0.5)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
