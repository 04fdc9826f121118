// Package camera computes the per-frame camera transform and the depth
// metrics of every visible layer from a resolved timeline position.
package camera

import (
	"math"

	"github.com/ivlev/sitereel/internal/project"
)

// Phase classification boundaries inside a scene's progress. Fixed design
// constants, not configurable.
const (
	EnterPhaseEnd  = 0.2
	ExitPhaseStart = 0.8
)

// LayerWindow is how many neighbor scenes on each side of the active one
// receive depth metrics in cinematic multi-layer mode.
const LayerWindow = 2

// Phase names the portion of a scene the camera is currently in.
type Phase int

const (
	PhaseEntering Phase = iota
	PhaseHolding
	PhaseExiting
)

// Layer carries the depth metrics of one visible scene.
type Layer struct {
	SceneIndex int
	Z          float64 // layer position along the depth axis
	Distance   float64 // layerZ - cameraZ
	Blur       float64 // px, [0, maxBlur]
	Opacity    float64 // [0.4, 1]
}

// State is the deterministic camera output for one point in time.
type State struct {
	Phase   Phase
	OffsetX float64
	OffsetY float64
	Z       float64 // camera position along the depth axis
	RotateX float64
	RotateY float64
	Layers  []Layer
}

// Matrix composes rotX ∘ rotY ∘ translate(-offsetX, -offsetY, -Z). The
// negation is deliberate: the camera is conceptually stationary and the
// world translates beneath it.
func (s State) Matrix() Mat4 {
	return RotationX(s.RotateX).
		Mul(RotationY(s.RotateY)).
		Mul(Translation(-s.OffsetX, -s.OffsetY, -s.Z))
}

// SceneZ returns a scene's depth: -index × zSpacing unless an explicit
// override is present.
func SceneZ(scenes []project.Scene, index int, global project.GlobalCameraSettings) float64 {
	if index >= 0 && index < len(scenes) && scenes[index].ZDepth != nil {
		return *scenes[index].ZDepth
	}
	return -float64(index) * global.ZSpacing
}

// sceneOffset reads a scene's camera sweep target, zero when unset or when
// the direction is none.
func sceneOffset(scenes []project.Scene, index int) (x, y float64) {
	if index < 0 || index >= len(scenes) {
		return 0, 0
	}
	cam := scenes[index].Camera
	if cam == nil || cam.MoveDirection == project.MoveNone {
		return 0, 0
	}
	c := cam.Clamp()
	return c.MoveOffsetX, c.MoveOffsetY
}

// Compute resolves the camera state for a scene index and its progress.
//
// Progress below 0.2 is the entering phase: the offset ramps from zero to
// the scene's target with ease-out-cubic. Between 0.2 and 0.8 the offset
// holds. Above 0.8 the offset blends toward the next scene's target with
// ease-in-out-cubic weighting; without a next scene it holds.
func Compute(scenes []project.Scene, index int, progress float64, global project.GlobalCameraSettings, dof project.DOFSettings) State {
	progress = clamp01(progress)
	targetX, targetY := sceneOffset(scenes, index)

	state := State{
		RotateX: global.RotateX,
		RotateY: global.RotateY,
		Z:       SceneZ(scenes, index, global),
	}

	switch {
	case progress < EnterPhaseEnd:
		state.Phase = PhaseEntering
		t := EaseOutCubic(progress / EnterPhaseEnd)
		state.OffsetX = targetX * t
		state.OffsetY = targetY * t
	case progress > ExitPhaseStart:
		state.Phase = PhaseExiting
		if index+1 < len(scenes) {
			nextX, nextY := sceneOffset(scenes, index+1)
			blend := EaseInOutCubic((progress - ExitPhaseStart) / (1 - ExitPhaseStart))
			state.OffsetX = lerp(targetX, nextX, blend)
			state.OffsetY = lerp(targetY, nextY, blend)
		} else {
			state.OffsetX = targetX
			state.OffsetY = targetY
		}
	default:
		state.Phase = PhaseHolding
		state.OffsetX = targetX
		state.OffsetY = targetY
	}

	state.Layers = computeLayers(scenes, index, state.Z, global, dof)
	return state
}

// computeLayers derives blur and opacity for the scenes around the active
// one. zSpacing of zero would divide by zero in the blur normalization, so
// it degrades to zero distance and no blur.
func computeLayers(scenes []project.Scene, index int, cameraZ float64, global project.GlobalCameraSettings, dof project.DOFSettings) []Layer {
	dof = dof.Clamp()
	lo := index - LayerWindow
	if lo < 0 {
		lo = 0
	}
	hi := index + LayerWindow
	if hi > len(scenes)-1 {
		hi = len(scenes) - 1
	}

	var layers []Layer
	for i := lo; i <= hi; i++ {
		z := SceneZ(scenes, i, global)
		distance := z - cameraZ

		normalized := 0.0
		if global.ZSpacing > 0 {
			normalized = math.Abs(distance) / global.ZSpacing
		} else {
			distance = 0
		}

		blur := 0.0
		if dof.Enabled {
			blur = math.Min(normalized*dof.Aperture*dof.MaxBlur, dof.MaxBlur)
		}

		opacity := 1.0
		if global.ZSpacing > 0 {
			opacity = math.Max(0.4, 1-(math.Abs(distance)/(2*global.ZSpacing))*0.3)
		}

		layers = append(layers, Layer{
			SceneIndex: i,
			Z:          z,
			Distance:   distance,
			Blur:       blur,
			Opacity:    opacity,
		})
	}
	return layers
}
