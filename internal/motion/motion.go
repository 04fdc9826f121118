// Package motion turns a scene's entry/exit settings into keyframe deltas
// the renderer applies on top of the static isometric transform.
package motion

import "github.com/ivlev/sitereel/internal/project"

// slideDistance is the fixed directional travel for slide variants, px.
const slideDistance = 100

// Spring response parameters for the "spring" easing.
const (
	SpringStiffness = 300
	SpringDamping   = 30
)

// Delta is one keyframe's deviation from the scene's static pose.
type Delta struct {
	Opacity    float64
	OffsetX    float64
	OffsetY    float64
	Scale      float64 // multiplier, 1 = unchanged
	RotateYDeg float64
}

// identityDelta leaves the static pose untouched.
func identityDelta() Delta {
	return Delta{Opacity: 1, Scale: 1}
}

// hiddenDelta is the fully-animated-out pose for a kind and direction sign.
func hiddenDelta(kind project.MotionKind, sign float64) Delta {
	d := Delta{Opacity: 0, Scale: 1}
	switch kind {
	case project.MotionNone:
		return identityDelta()
	case project.MotionFade:
		// opacity only
	case project.MotionSlideUp:
		d.OffsetY = slideDistance * sign
	case project.MotionSlideDown:
		d.OffsetY = -slideDistance * sign
	case project.MotionSlideLeft:
		d.OffsetX = slideDistance * sign
	case project.MotionSlideRight:
		d.OffsetX = -slideDistance * sign
	case project.MotionZoomIn:
		d.Scale = 0.8
	case project.MotionZoomOut:
		d.Scale = 1.2
	case project.MotionRotate:
		d.RotateYDeg = 90 * sign
	default:
		return identityDelta()
	}
	return d
}

// Timing describes how a variant's keyframes are driven.
type Timing struct {
	DurationMs int
	Spring     bool
	// Stiffness/Damping are meaningful only when Spring is set.
	Stiffness float64
	Damping   float64
	// Bezier holds the cubic-bezier control quadruple for non-spring curves.
	Bezier [4]float64
}

// Variant is the animation description for one side (entry or exit) of a
// scene's motion.
type Variant struct {
	Initial Delta // pose before the animation starts
	Animate Delta // pose the animation settles into
	Timing  Timing
}

// bezierFor maps every non-spring easing to a fixed control quadruple.
func bezierFor(e project.Easing) [4]float64 {
	switch e {
	case project.EaseLinear:
		return [4]float64{0, 0, 1, 1}
	case project.EaseIn:
		return [4]float64{0.42, 0, 1, 1}
	case project.EaseOut:
		return [4]float64{0, 0, 0.58, 1}
	default: // ease-in-out
		return [4]float64{0.42, 0, 0.58, 1}
	}
}

// Compose builds the variant for a scene. Entry animates from the hidden
// pose to identity; exit animates from identity to the hidden pose with the
// direction sign flipped, so a slide-left entry and its exit are mirror
// images. Durations come from EntryDuration/ExitDuration and are
// independent of the scene's own duration; overlap with neighboring
// scenes' motion is intentional.
func Compose(scene project.Scene, entry bool) Variant {
	m := scene.Motion

	kind := m.Exit
	sign := -1.0
	durationMs := m.ExitDuration
	if entry {
		kind = m.Entry
		sign = 1.0
		durationMs = m.EntryDuration
	}
	if durationMs <= 0 {
		durationMs = 600
	}

	timing := Timing{DurationMs: durationMs}
	if m.Easing == project.EaseSpring {
		timing.Spring = true
		timing.Stiffness = SpringStiffness
		timing.Damping = SpringDamping
	} else {
		timing.Bezier = bezierFor(m.Easing)
	}

	hidden := hiddenDelta(kind, sign)
	if entry {
		return Variant{Initial: hidden, Animate: identityDelta(), Timing: timing}
	}
	return Variant{Initial: identityDelta(), Animate: hidden, Timing: timing}
}

// At evaluates the variant at normalized progress t, interpolating every
// delta channel linearly. The easing itself is applied by the caller's
// clock (bezier or spring sampler); At assumes t is already eased.
func (v Variant) At(t float64) Delta {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	a, b := v.Initial, v.Animate
	return Delta{
		Opacity:    a.Opacity + (b.Opacity-a.Opacity)*t,
		OffsetX:    a.OffsetX + (b.OffsetX-a.OffsetX)*t,
		OffsetY:    a.OffsetY + (b.OffsetY-a.OffsetY)*t,
		Scale:      a.Scale + (b.Scale-a.Scale)*t,
		RotateYDeg: a.RotateYDeg + (b.RotateYDeg-a.RotateYDeg)*t,
	}
}
