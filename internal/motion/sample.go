package motion

import "math"

// Sample maps linear progress t in [0, 1] to eased progress for this
// timing. Bezier curves evaluate the cubic-bezier y at the x equal to t;
// spring timing samples a damped oscillator settling from 0 to 1 over the
// variant's duration.
func (tm Timing) Sample(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	if tm.Spring {
		return tm.springAt(t)
	}
	return bezierY(tm.Bezier, t)
}

// springAt evaluates the unit-mass damped spring response x(t) with the
// variant's stiffness and damping, normalized so t=1 lands on the settled
// position.
func (tm Timing) springAt(t float64) float64 {
	stiffness := tm.Stiffness
	damping := tm.Damping
	if stiffness <= 0 {
		stiffness = SpringStiffness
	}
	if damping <= 0 {
		damping = SpringDamping
	}

	seconds := float64(tm.DurationMs) / 1000
	if seconds <= 0 {
		seconds = 0.6
	}
	elapsed := t * seconds

	omega := math.Sqrt(stiffness)
	zeta := damping / (2 * omega)

	if zeta >= 1 {
		// Critically or over-damped: no oscillation term.
		return 1 - math.Exp(-omega*elapsed)*(1+omega*elapsed)
	}

	omegaD := omega * math.Sqrt(1-zeta*zeta)
	decay := math.Exp(-zeta * omega * elapsed)
	x := 1 - decay*(math.Cos(omegaD*elapsed)+(zeta*omega/omegaD)*math.Sin(omegaD*elapsed))
	if x < 0 {
		return 0
	}
	return x
}

// bezierY solves the cubic-bezier (0,0)-(x1,y1)-(x2,y2)-(1,1) for the
// parameter whose x equals t, then returns the curve's y there. A few
// Newton iterations are enough at frame-rate sampling precision.
func bezierY(ctrl [4]float64, t float64) float64 {
	x1, y1, x2, y2 := ctrl[0], ctrl[1], ctrl[2], ctrl[3]
	if x1 == y1 && x2 == y2 {
		return t // linear shortcut
	}

	u := t
	for i := 0; i < 8; i++ {
		x := bezierComponent(u, x1, x2) - t
		if math.Abs(x) < 1e-6 {
			break
		}
		dx := bezierDerivative(u, x1, x2)
		if math.Abs(dx) < 1e-9 {
			break
		}
		u -= x / dx
		if u < 0 {
			u = 0
		} else if u > 1 {
			u = 1
		}
	}
	return bezierComponent(u, y1, y2)
}

func bezierComponent(u, p1, p2 float64) float64 {
	inv := 1 - u
	return 3*inv*inv*u*p1 + 3*inv*u*u*p2 + u*u*u
}

func bezierDerivative(u, p1, p2 float64) float64 {
	inv := 1 - u
	return 3*inv*inv*p1 + 6*inv*u*(p2-p1) + 3*u*u*(1-p2)
}
