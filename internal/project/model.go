package project

import (
	"sort"

	"github.com/google/uuid"
)

// Screen is one captured image region. Immutable once created except for
// deletion; Scenes reference it by ID.
type Screen struct {
	ID           string    `yaml:"id"`
	SourceURL    string    `yaml:"sourceUrl,omitempty"`
	ScrollOffset int       `yaml:"scrollOffset,omitempty"`
	Image        string    `yaml:"image"` // file path or data URI
	Thumbnail    string    `yaml:"thumbnail,omitempty"`
	Width        int       `yaml:"width"`
	Height       int       `yaml:"height"`
	SectionType  string    `yaml:"sectionType,omitempty"`
	Crop         *CropRect `yaml:"crop,omitempty"`
}

// CropRect selects a sub-region of a Screen's image.
type CropRect struct {
	X      int `yaml:"x"`
	Y      int `yaml:"y"`
	Width  int `yaml:"w"`
	Height int `yaml:"h"`
}

// IsometricTransform is the static 3D pose of a scene's panel. Always fully
// populated wherever the renderer consumes it.
type IsometricTransform struct {
	RotateX     float64 `yaml:"rotateX"`     // degrees, [-60, 60]
	RotateY     float64 `yaml:"rotateY"`     // degrees, [-60, 60]
	RotateZ     float64 `yaml:"rotateZ"`     // degrees, [-45, 45]
	Perspective float64 `yaml:"perspective"` // px, [500, 2000]
	Scale       float64 `yaml:"scale"`       // [0.3, 2]
	TranslateX  float64 `yaml:"translateX"`  // px
	TranslateY  float64 `yaml:"translateY"`  // px
	TranslateZ  float64 `yaml:"translateZ"`  // px
}

// Clamp returns the transform with every field forced into its legal range.
func (t IsometricTransform) Clamp() IsometricTransform {
	t.RotateX = clampF(t.RotateX, -60, 60)
	t.RotateY = clampF(t.RotateY, -60, 60)
	t.RotateZ = clampF(t.RotateZ, -45, 45)
	t.Perspective = clampF(t.Perspective, 500, 2000)
	t.Scale = clampF(t.Scale, 0.3, 2)
	return t
}

// DefaultTransform is the neutral pose.
func DefaultTransform() IsometricTransform {
	return IsometricTransform{Perspective: 1000, Scale: 1}
}

// MotionKind enumerates entry/exit animation variants.
type MotionKind string

const (
	MotionNone       MotionKind = "none"
	MotionFade       MotionKind = "fade"
	MotionSlideUp    MotionKind = "slide-up"
	MotionSlideDown  MotionKind = "slide-down"
	MotionSlideLeft  MotionKind = "slide-left"
	MotionSlideRight MotionKind = "slide-right"
	MotionZoomIn     MotionKind = "zoom-in"
	MotionZoomOut    MotionKind = "zoom-out"
	MotionRotate     MotionKind = "rotate"
)

// Easing enumerates the supported easing curves.
type Easing string

const (
	EaseLinear Easing = "linear"
	EaseIn     Easing = "ease-in"
	EaseOut    Easing = "ease-out"
	EaseInOut  Easing = "ease-in-out"
	EaseSpring Easing = "spring"
)

// MotionSettings describes how a scene enters and leaves the frame.
type MotionSettings struct {
	Entry         MotionKind `yaml:"entry"`
	Exit          MotionKind `yaml:"exit"`
	EntryDuration int        `yaml:"entryDuration"` // ms, > 0
	ExitDuration  int        `yaml:"exitDuration"`  // ms, > 0
	Easing        Easing     `yaml:"easing"`
}

// DefaultMotion is a plain fade in/out.
func DefaultMotion() MotionSettings {
	return MotionSettings{
		Entry:         MotionFade,
		Exit:          MotionFade,
		EntryDuration: 600,
		ExitDuration:  600,
		Easing:        EaseInOut,
	}
}

// MoveDirection enumerates per-scene camera sweep directions.
type MoveDirection string

const (
	MoveTopToBottom MoveDirection = "top-to-bottom"
	MoveBottomToTop MoveDirection = "bottom-to-top"
	MoveLeftToRight MoveDirection = "left-to-right"
	MoveRightToLeft MoveDirection = "right-to-left"
	MoveNone        MoveDirection = "none"
)

// SectionCameraSettings is the optional per-scene camera movement.
type SectionCameraSettings struct {
	MoveDirection      MoveDirection `yaml:"moveDirection"`
	MoveOffsetX        float64       `yaml:"moveOffsetX"`        // px, [-200, 200]
	MoveOffsetY        float64       `yaml:"moveOffsetY"`        // px, [-200, 200]
	TransitionDuration int           `yaml:"transitionDuration"` // ms, > 0
}

// Clamp forces the offsets into their legal range.
func (s SectionCameraSettings) Clamp() SectionCameraSettings {
	s.MoveOffsetX = clampF(s.MoveOffsetX, -200, 200)
	s.MoveOffsetY = clampF(s.MoveOffsetY, -200, 200)
	if s.TransitionDuration <= 0 {
		s.TransitionDuration = 800
	}
	return s
}

// GlobalCameraSettings fixes the isometric viewing angle for the whole
// project. ZSpacing must stay positive; the calculator guards zero anyway.
type GlobalCameraSettings struct {
	RotateX     float64 `yaml:"rotateX"`
	RotateY     float64 `yaml:"rotateY"`
	Perspective float64 `yaml:"perspective"`
	ZSpacing    float64 `yaml:"zSpacing"`
}

// DefaultGlobalCamera is a gentle isometric tilt.
func DefaultGlobalCamera() GlobalCameraSettings {
	return GlobalCameraSettings{RotateX: 12, RotateY: -18, Perspective: 1200, ZSpacing: 800}
}

// DOFSettings controls depth-of-field blur falloff.
type DOFSettings struct {
	Enabled  bool    `yaml:"enabled"`
	Aperture float64 `yaml:"aperture"` // [1, 10]
	MaxBlur  float64 `yaml:"maxBlur"`  // px, [0, 20]
}

// Clamp forces aperture and max blur into their legal ranges.
func (d DOFSettings) Clamp() DOFSettings {
	d.Aperture = clampF(d.Aperture, 1, 10)
	d.MaxBlur = clampF(d.MaxBlur, 0, 20)
	return d
}

// DefaultDOF enables a moderate falloff.
func DefaultDOF() DOFSettings {
	return DOFSettings{Enabled: true, Aperture: 2, MaxBlur: 8}
}

// TransitionType enumerates single-layer playback transitions.
type TransitionType string

const (
	TransitionFade TransitionType = "fade"
	TransitionNone TransitionType = "none"
)

// TransitionSettings is used only in single-layer playback.
type TransitionSettings struct {
	Type     TransitionType `yaml:"type"`
	Duration int            `yaml:"duration"` // ms
}

// Scene is one timed entry in the video timeline.
type Scene struct {
	ID         string                 `yaml:"id"`
	ScreenID   string                 `yaml:"screenId"`
	Duration   int                    `yaml:"duration"` // ms, > 0
	Transform  IsometricTransform     `yaml:"transform"`
	Motion     MotionSettings         `yaml:"motion"`
	Transition TransitionSettings     `yaml:"transition"`
	Order      int                    `yaml:"order"`
	Camera     *SectionCameraSettings `yaml:"camera,omitempty"`
	// ZDepth overrides the computed depth (-order × zSpacing) when set.
	// It is derived state, never authoritative.
	ZDepth *float64 `yaml:"zDepth,omitempty"`
}

// Settings is the project-wide settings bundle.
type Settings struct {
	AspectRatio string               `yaml:"aspectRatio"`
	Width       int                  `yaml:"width"`
	Height      int                  `yaml:"height"`
	FPS         int                  `yaml:"fps"`
	Camera      GlobalCameraSettings `yaml:"camera"`
	DOF         DOFSettings          `yaml:"dof"`
}

// DefaultSettings is a 16:9 1080p project.
func DefaultSettings() Settings {
	return Settings{
		AspectRatio: "16:9",
		Width:       1920,
		Height:      1080,
		FPS:         30,
		Camera:      DefaultGlobalCamera(),
		DOF:         DefaultDOF(),
	}
}

// Project is the aggregate: screens, ordered scenes, settings.
type Project struct {
	Screens  []Screen `yaml:"screens"`
	Scenes   []Scene  `yaml:"scenes"`
	Settings Settings `yaml:"settings"`
}

// NewID returns a fresh identifier for screens and scenes.
func NewID() string {
	return uuid.NewString()
}

// TotalDuration sums all scene durations in milliseconds. Always recomputed;
// a cached total would go stale on every scene mutation.
func (p Project) TotalDuration() int {
	total := 0
	for _, s := range p.Scenes {
		total += s.Duration
	}
	return total
}

// SortedScenes returns scenes ordered by their Order field. List position
// should already equal Order, but resolvers sort defensively.
func (p Project) SortedScenes() []Scene {
	out := make([]Scene, len(p.Scenes))
	copy(out, p.Scenes)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// ScreenByID looks a screen up by identifier.
func (p Project) ScreenByID(id string) (Screen, bool) {
	for _, s := range p.Screens {
		if s.ID == id {
			return s, true
		}
	}
	return Screen{}, false
}

// RenderableScenes returns the ordered scenes whose screen reference still
// resolves. A scene with a dangling screenId is invalid and is excluded
// from rendering.
func (p Project) RenderableScenes() []Scene {
	ids := make(map[string]struct{}, len(p.Screens))
	for _, s := range p.Screens {
		ids[s.ID] = struct{}{}
	}
	var out []Scene
	for _, sc := range p.SortedScenes() {
		if _, ok := ids[sc.ScreenID]; ok {
			out = append(out, sc)
		}
	}
	return out
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
