// Package compositor rasterizes one visual frame: a screen panel with its
// isometric pose, depth blur, rounded clipping, drop shadow, and the
// cross-blend between two panels inside a transition window.
package compositor

import (
	"image"
	"image/color"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/ivlev/sitereel/internal/project"
)

// Fixed drawing constants. Changing any of these changes pixel-level
// output, so they are not configurable.
const (
	paddingRatio  = 0.10 // fit margin on each side
	cornerRadius  = 12.0
	shadowBlur    = 30.0
	shadowOffsetX = 10.0
	shadowOffsetY = 15.0
	shadowAlpha   = 0.5
	skewXFactor   = 0.5 // skewX = tan(rotateY) × 0.5
	skewYFactor   = 0.3 // skewY = tan(rotateX) × 0.3
)

// Params describes how a single panel is drawn.
type Params struct {
	Transform project.IsometricTransform
	Blur      float64 // px
	Opacity   float64 // [0, 1]
	OffsetX   float64 // extra screen-space offset (motion deltas, camera)
	OffsetY   float64
	ScaleMul  float64 // extra scale multiplier from motion, 0 means 1
	RotateY   float64 // extra Y-rotation from motion, degrees
}

// FitRect computes the panel size for a source of srcW×srcH inside a
// frame of frameW×frameH, preserving aspect ratio with the fixed 10%
// padding margin on each side.
func FitRect(srcW, srcH, frameW, frameH int) (w, h int) {
	availW := float64(frameW) * (1 - 2*paddingRatio)
	availH := float64(frameH) * (1 - 2*paddingRatio)
	if srcW <= 0 || srcH <= 0 {
		return 0, 0
	}
	scale := math.Min(availW/float64(srcW), availH/float64(srcH))
	w = int(float64(srcW)*scale + 0.5)
	h = int(float64(srcH)*scale + 0.5)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// Draw renders one panel onto dst. The source is fitted with the padding
// margin, scaled multiplicatively by the transform, rotated by rotateZ,
// skewed to approximate rotateX/rotateY, clipped to a rounded rectangle
// and composited over a fixed drop shadow.
//
// rotateX/rotateY are deliberately approximated by shear when projecting
// to the 2D raster; replacing this with a true perspective projection
// would change output.
func Draw(dst *image.RGBA, src image.Image, p Params) {
	if src == nil {
		return
	}
	bounds := dst.Bounds()
	frameW, frameH := bounds.Dx(), bounds.Dy()
	sb := src.Bounds()
	panelW, panelH := FitRect(sb.Dx(), sb.Dy(), frameW, frameH)
	if panelW == 0 || panelH == 0 {
		return
	}

	panel := renderPanel(src, panelW, panelH, p.Blur, p.Opacity)
	aff := panelAffine(p, panelW, panelH, frameW, frameH)

	drawShadow(dst, panel, aff, p.Opacity)
	xdraw.BiLinear.Transform(dst, aff, panel, panel.Bounds(), xdraw.Over, nil)
}

// renderPanel scales the source into a panel surface, clips the corners
// and applies opacity and depth blur.
func renderPanel(src image.Image, w, h int, blur, opacity float64) *image.RGBA {
	panel := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(panel, panel.Bounds(), src, src.Bounds(), xdraw.Src, nil)

	applyMask(panel, roundedMask(w, h, cornerRadius))
	if blur > 0 {
		boxBlur(panel, blur)
	}
	if opacity < 1 {
		applyAlpha(panel, opacity)
	}
	return panel
}

// panelAffine builds the source→destination affine map: center the panel,
// scale, skew, rotate, then place at the frame center plus translation.
func panelAffine(p Params, panelW, panelH, frameW, frameH int) f64.Aff3 {
	scale := p.Transform.Scale
	if scale <= 0 {
		scale = 1
	}
	if p.ScaleMul > 0 {
		scale *= p.ScaleMul
	}

	rotX := p.Transform.RotateX * math.Pi / 180
	rotY := (p.Transform.RotateY + p.RotateY) * math.Pi / 180
	rotZ := p.Transform.RotateZ * math.Pi / 180

	skewX := math.Tan(rotY) * skewXFactor
	skewY := math.Tan(rotX) * skewYFactor

	// Linear part: Rz ∘ Shear ∘ Scale.
	a := scale * 1
	b := scale * skewX
	c := scale * skewY
	d := scale * 1

	sin, cos := math.Sincos(rotZ)
	la := cos*a - sin*c
	lb := cos*b - sin*d
	lc := sin*a + cos*c
	ld := sin*b + cos*d

	cx := float64(frameW)/2 + p.Transform.TranslateX + p.OffsetX
	cy := float64(frameH)/2 + p.Transform.TranslateY + p.OffsetY
	px := float64(panelW) / 2
	py := float64(panelH) / 2

	return f64.Aff3{
		la, lb, cx - la*px - lb*py,
		lc, ld, cy - lc*px - ld*py,
	}
}

// drawShadow composites the fixed drop shadow: the panel's silhouette,
// blurred, offset and drawn at half strength under the panel.
func drawShadow(dst *image.RGBA, panel *image.RGBA, aff f64.Aff3, opacity float64) {
	pb := panel.Bounds()
	silhouette := image.NewRGBA(pb)
	for y := pb.Min.Y; y < pb.Max.Y; y++ {
		for x := pb.Min.X; x < pb.Max.X; x++ {
			a := panel.RGBAAt(x, y).A
			v := uint8(float64(a) * shadowAlpha * opacity)
			silhouette.SetRGBA(x, y, color.RGBA{A: v})
		}
	}
	boxBlur(silhouette, shadowBlur)

	shifted := aff
	shifted[2] += shadowOffsetX
	shifted[5] += shadowOffsetY
	xdraw.BiLinear.Transform(dst, shifted, silhouette, pb, xdraw.Over, nil)
}

// TransitionEase is the symmetric ease-in-out quadratic used for
// cross-blending: 2t² below the midpoint, else 1-(-2t+2)²/2.
func TransitionEase(t float64) float64 {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	if t < 0.5 {
		return 2 * t * t
	}
	u := -2*t + 2
	return 1 - u*u/2
}

// DrawTransition blends two panels during a transition window. The
// outgoing image fades out over the first half of the window
// (alpha = 1 − eased(progress)); the incoming image fades in across the
// whole window (alpha = eased(progress)).
func DrawTransition(dst *image.RGBA, outgoing, incoming image.Image, outParams, inParams Params, progress float64) {
	eased := TransitionEase(progress)

	if outgoing != nil && progress < 0.5 {
		op := outParams
		op.Opacity = outParams.Opacity * (1 - eased)
		Draw(dst, outgoing, op)
	}
	if incoming != nil {
		ip := inParams
		ip.Opacity = inParams.Opacity * eased
		Draw(dst, incoming, ip)
	}
}

// Clear fills the frame with the background color.
func Clear(dst *image.RGBA, bg color.RGBA) {
	b := dst.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := dst.Pix[dst.PixOffset(b.Min.X, y):dst.PixOffset(b.Max.X, y)]
		for i := 0; i < len(row); i += 4 {
			row[i] = bg.R
			row[i+1] = bg.G
			row[i+2] = bg.B
			row[i+3] = bg.A
		}
	}
}

// applyAlpha scales every channel of the premultiplied surface.
func applyAlpha(img *image.RGBA, alpha float64) {
	if alpha >= 1 {
		return
	}
	if alpha < 0 {
		alpha = 0
	}
	for i := 0; i < len(img.Pix); i++ {
		img.Pix[i] = uint8(float64(img.Pix[i]) * alpha)
	}
}
