package motion

import (
	"math"
	"testing"

	"github.com/ivlev/sitereel/internal/project"
)

func sceneWith(entry, exit project.MotionKind, easing project.Easing) project.Scene {
	return project.Scene{
		ID:       project.NewID(),
		ScreenID: "s",
		Duration: 5000,
		Motion: project.MotionSettings{
			Entry:         entry,
			Exit:          exit,
			EntryDuration: 400,
			ExitDuration:  700,
			Easing:        easing,
		},
	}
}

func TestSlideEntryExitMirrorSymmetry(t *testing.T) {
	scene := sceneWith(project.MotionSlideLeft, project.MotionSlideLeft, project.EaseInOut)

	entry := Compose(scene, true)
	exit := Compose(scene, false)

	if entry.Initial.OffsetX != -exit.Animate.OffsetX {
		t.Errorf("slide entry start %.0f and exit end %.0f are not mirrored",
			entry.Initial.OffsetX, exit.Animate.OffsetX)
	}
	if entry.Initial.OffsetX == 0 {
		t.Error("slide variant produced no horizontal offset")
	}
}

func TestFadeIsOpacityOnly(t *testing.T) {
	scene := sceneWith(project.MotionFade, project.MotionFade, project.EaseLinear)
	v := Compose(scene, true)

	if v.Initial.Opacity != 0 || v.Animate.Opacity != 1 {
		t.Errorf("fade entry opacity: %f -> %f", v.Initial.Opacity, v.Animate.Opacity)
	}
	if v.Initial.OffsetX != 0 || v.Initial.OffsetY != 0 || v.Initial.Scale != 1 || v.Initial.RotateYDeg != 0 {
		t.Errorf("fade must not move or scale: %+v", v.Initial)
	}
}

func TestZoomVariants(t *testing.T) {
	in := Compose(sceneWith(project.MotionZoomIn, project.MotionZoomIn, project.EaseOut), true)
	if in.Initial.Scale != 0.8 {
		t.Errorf("zoom-in starts at scale 0.8, got %.2f", in.Initial.Scale)
	}
	out := Compose(sceneWith(project.MotionZoomOut, project.MotionZoomOut, project.EaseOut), true)
	if out.Initial.Scale != 1.2 {
		t.Errorf("zoom-out starts at scale 1.2, got %.2f", out.Initial.Scale)
	}
}

func TestRotateSignFlips(t *testing.T) {
	scene := sceneWith(project.MotionRotate, project.MotionRotate, project.EaseIn)
	entry := Compose(scene, true)
	exit := Compose(scene, false)

	if entry.Initial.RotateYDeg != 90 {
		t.Errorf("rotate entry starts at +90°, got %.0f", entry.Initial.RotateYDeg)
	}
	if exit.Animate.RotateYDeg != -90 {
		t.Errorf("rotate exit ends at -90°, got %.0f", exit.Animate.RotateYDeg)
	}
}

func TestNoneIsIdentity(t *testing.T) {
	scene := sceneWith(project.MotionNone, project.MotionNone, project.EaseLinear)
	v := Compose(scene, true)
	if v.Initial != identityDelta() || v.Animate != identityDelta() {
		t.Errorf("none must be identity on both ends: %+v -> %+v", v.Initial, v.Animate)
	}
}

func TestDurationIndependentOfScene(t *testing.T) {
	scene := sceneWith(project.MotionFade, project.MotionFade, project.EaseLinear)

	entry := Compose(scene, true)
	exit := Compose(scene, false)

	if entry.Timing.DurationMs != 400 {
		t.Errorf("entry duration %d, want 400", entry.Timing.DurationMs)
	}
	if exit.Timing.DurationMs != 700 {
		t.Errorf("exit duration %d, want 700", exit.Timing.DurationMs)
	}
	if entry.Timing.DurationMs == scene.Duration {
		t.Error("motion duration must not track scene duration")
	}
}

func TestSpringTiming(t *testing.T) {
	scene := sceneWith(project.MotionFade, project.MotionFade, project.EaseSpring)
	v := Compose(scene, true)

	if !v.Timing.Spring {
		t.Fatal("spring easing must select the spring response")
	}
	if v.Timing.Stiffness != 300 || v.Timing.Damping != 30 {
		t.Errorf("spring parameters (%.0f, %.0f), want (300, 30)", v.Timing.Stiffness, v.Timing.Damping)
	}
}

func TestBezierQuadruples(t *testing.T) {
	cases := []struct {
		easing project.Easing
		want   [4]float64
	}{
		{project.EaseLinear, [4]float64{0, 0, 1, 1}},
		{project.EaseIn, [4]float64{0.42, 0, 1, 1}},
		{project.EaseOut, [4]float64{0, 0, 0.58, 1}},
		{project.EaseInOut, [4]float64{0.42, 0, 0.58, 1}},
	}
	for _, tc := range cases {
		v := Compose(sceneWith(project.MotionFade, project.MotionFade, tc.easing), true)
		if v.Timing.Spring {
			t.Errorf("%s must not be a spring", tc.easing)
		}
		if v.Timing.Bezier != tc.want {
			t.Errorf("%s bezier %v, want %v", tc.easing, v.Timing.Bezier, tc.want)
		}
	}
}

func TestAtInterpolatesChannels(t *testing.T) {
	scene := sceneWith(project.MotionSlideUp, project.MotionSlideUp, project.EaseLinear)
	v := Compose(scene, true)

	mid := v.At(0.5)
	if math.Abs(mid.Opacity-0.5) > 1e-9 {
		t.Errorf("mid opacity %.2f, want 0.5", mid.Opacity)
	}
	if math.Abs(mid.OffsetY-v.Initial.OffsetY/2) > 1e-9 {
		t.Errorf("mid offsetY %.2f, want %.2f", mid.OffsetY, v.Initial.OffsetY/2)
	}

	if v.At(-1) != v.Initial {
		t.Error("At must clamp below zero")
	}
	if v.At(2) != v.Animate {
		t.Error("At must clamp above one")
	}
}
