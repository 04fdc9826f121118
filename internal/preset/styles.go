package preset

import "github.com/ivlev/sitereel/internal/project"

// sectionDuration biases the base duration by how long a viewer typically
// dwells on a section kind.
func sectionDuration(sectionType string, base int) int {
	if base <= 0 {
		base = 3000
	}
	switch sectionType {
	case "hero":
		return base + 1000
	case "footer", "cta":
		return base - 500
	default:
		return base
	}
}

func alternate(index int, a, b float64) float64 {
	if index%2 == 0 {
		return a
	}
	return b
}

func init() {
	register(showcase())
	register(cascade())
	register(orbit())
}

// showcase is a calm centered presentation: a single fixed tilt, fades,
// slow downward camera sweeps.
func showcase() Style {
	return Style{
		Name:        "showcase",
		Description: "Centered panels with a fixed tilt and gentle fades",
		GetTransform: func(index, total int, sectionType string) project.IsometricTransform {
			t := project.DefaultTransform()
			t.RotateX = 8
			t.RotateY = -12
			t.Scale = 1
			if sectionType == "hero" {
				t.Scale = 1.1
			}
			return t
		},
		GetMotion: func(index, total int, sectionType string) project.MotionSettings {
			return project.MotionSettings{
				Entry:         project.MotionFade,
				Exit:          project.MotionFade,
				EntryDuration: 600,
				ExitDuration:  600,
				Easing:        project.EaseInOut,
			}
		},
		GetDuration: sectionDuration,
		GetCameraSettings: func(index, total int, sectionType string) *project.SectionCameraSettings {
			return &project.SectionCameraSettings{
				MoveDirection:      project.MoveTopToBottom,
				MoveOffsetX:        0,
				MoveOffsetY:        40,
				TransitionDuration: 900,
			}
		},
		GlobalCamera: &project.GlobalCameraSettings{RotateX: 8, RotateY: -12, Perspective: 1400, ZSpacing: 900},
		DOF:          &project.DOFSettings{Enabled: true, Aperture: 1.5, MaxBlur: 6},
	}
}

// cascade slides panels in alternately from the sides with a stronger
// tilt, like cards being dealt.
func cascade() Style {
	return Style{
		Name:        "cascade",
		Description: "Alternating side slides with a pronounced tilt",
		GetTransform: func(index, total int, sectionType string) project.IsometricTransform {
			t := project.DefaultTransform()
			t.RotateX = 15
			t.RotateY = alternate(index, -25, 25)
			t.RotateZ = alternate(index, -3, 3)
			t.Scale = 0.95
			t.Perspective = 1000
			return t
		},
		GetMotion: func(index, total int, sectionType string) project.MotionSettings {
			entry := project.MotionSlideLeft
			if index%2 == 1 {
				entry = project.MotionSlideRight
			}
			return project.MotionSettings{
				Entry:         entry,
				Exit:          project.MotionFade,
				EntryDuration: 500,
				ExitDuration:  400,
				Easing:        project.EaseOut,
			}
		},
		GetDuration: sectionDuration,
		GetCameraSettings: func(index, total int, sectionType string) *project.SectionCameraSettings {
			dir := project.MoveLeftToRight
			offsetX := 60.0
			if index%2 == 1 {
				dir = project.MoveRightToLeft
				offsetX = -60
			}
			return &project.SectionCameraSettings{
				MoveDirection:      dir,
				MoveOffsetX:        offsetX,
				MoveOffsetY:        0,
				TransitionDuration: 700,
			}
		},
		GlobalCamera: &project.GlobalCameraSettings{RotateX: 15, RotateY: 0, Perspective: 1000, ZSpacing: 700},
		DOF:          &project.DOFSettings{Enabled: true, Aperture: 2.5, MaxBlur: 10},
	}
}

// orbit rotates panels in with a springy zoom, deeper spacing and heavy
// depth falloff.
func orbit() Style {
	return Style{
		Name:        "orbit",
		Description: "Rotating entries with springy zoom and deep stacking",
		GetTransform: func(index, total int, sectionType string) project.IsometricTransform {
			t := project.DefaultTransform()
			t.RotateX = 5
			t.RotateY = alternate(index, -35, 35)
			t.Scale = 0.9
			t.Perspective = 800
			t.TranslateX = alternate(index, -40, 40)
			return t
		},
		GetMotion: func(index, total int, sectionType string) project.MotionSettings {
			entry := project.MotionRotate
			if sectionType == "hero" {
				entry = project.MotionZoomIn
			}
			return project.MotionSettings{
				Entry:         entry,
				Exit:          project.MotionZoomOut,
				EntryDuration: 700,
				ExitDuration:  500,
				Easing:        project.EaseSpring,
			}
		},
		GetDuration: sectionDuration,
		GetCameraSettings: func(index, total int, sectionType string) *project.SectionCameraSettings {
			return &project.SectionCameraSettings{
				MoveDirection:      project.MoveBottomToTop,
				MoveOffsetX:        alternate(index, 30, -30),
				MoveOffsetY:        -50,
				TransitionDuration: 800,
			}
		},
		GlobalCamera: &project.GlobalCameraSettings{RotateX: 5, RotateY: 20, Perspective: 800, ZSpacing: 600},
		DOF:          &project.DOFSettings{Enabled: true, Aperture: 3, MaxBlur: 12},
	}
}
