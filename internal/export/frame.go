package export

import (
	"image"
	"image/color"
	"sort"

	"github.com/ivlev/sitereel/internal/camera"
	"github.com/ivlev/sitereel/internal/compositor"
	"github.com/ivlev/sitereel/internal/motion"
	"github.com/ivlev/sitereel/internal/project"
	"github.com/ivlev/sitereel/internal/timeline"
)

// backgroundColor is the studio backdrop behind the floating panels.
var backgroundColor = color.RGBA{R: 18, G: 18, B: 24, A: 255}

// frameRenderer samples the scene model at one global time and rasterizes
// the visible layers. It owns no mutable per-frame state beyond the
// destination surface handed in, so export and preview can each hold one.
type frameRenderer struct {
	scenes   []project.Scene
	images   map[string]image.Image // keyed by screen ID
	settings project.Settings
}

func (r *frameRenderer) render(dst *image.RGBA, timeMs float64) {
	compositor.Clear(dst, backgroundColor)

	pos, ok := timeline.Resolve(r.scenes, timeMs)
	if !ok {
		return
	}
	state := camera.Compute(r.scenes, pos.SceneIndex, pos.SceneProgress, r.settings.Camera, r.settings.DOF)
	trans := timeline.TransitionAt(r.scenes, timeMs)

	// Back to front: the most distant layer lands on the surface first.
	layers := make([]camera.Layer, len(state.Layers))
	copy(layers, state.Layers)
	sort.Slice(layers, func(i, j int) bool { return layers[i].Distance < layers[j].Distance })

	var fromParams, toParams *compositor.Params
	var fromImg, toImg image.Image

	for _, layer := range layers {
		sc := r.scenes[layer.SceneIndex]
		img := r.images[sc.ScreenID]
		if img == nil {
			continue
		}

		p := compositor.Params{
			Transform: sc.Transform.Clamp(),
			Blur:      layer.Blur,
			Opacity:   layer.Opacity,
			OffsetX:   -state.OffsetX,
			OffsetY:   -state.OffsetY,
		}
		if layer.SceneIndex == pos.SceneIndex {
			delta := r.motionDelta(sc, pos)
			p.Opacity *= delta.Opacity
			p.OffsetX += delta.OffsetX
			p.OffsetY += delta.OffsetY
			p.ScaleMul = delta.Scale
			p.RotateY = delta.RotateYDeg
		}

		if trans.Active && layer.SceneIndex == trans.FromIndex {
			fp := p
			fromParams, fromImg = &fp, img
			continue
		}
		if trans.Active && layer.SceneIndex == trans.ToIndex {
			tp := p
			toParams, toImg = &tp, img
			continue
		}
		compositor.Draw(dst, img, p)
	}

	if trans.Active {
		out := compositor.Params{}
		in := compositor.Params{}
		if fromParams != nil {
			out = *fromParams
		}
		if toParams != nil {
			in = *toParams
		}
		compositor.DrawTransition(dst, fromImg, toImg, out, in, trans.Progress)
	}
}

// motionDelta evaluates the active scene's entry or exit animation at the
// current scene-local time. Outside both windows the pose is untouched.
func (r *frameRenderer) motionDelta(sc project.Scene, pos timeline.Position) motion.Delta {
	local := pos.SceneLocalTime
	duration := float64(sc.Duration)

	entry := motion.Compose(sc, true)
	entryWindow := float64(entry.Timing.DurationMs)
	if local < entryWindow {
		return entry.At(entry.Timing.Sample(local / entryWindow))
	}

	exit := motion.Compose(sc, false)
	exitWindow := float64(exit.Timing.DurationMs)
	if duration > 0 && local > duration-exitWindow {
		t := (local - (duration - exitWindow)) / exitWindow
		return exit.At(exit.Timing.Sample(t))
	}

	return motion.Delta{Opacity: 1, Scale: 1}
}
