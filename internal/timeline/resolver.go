// Package timeline maps global timeline time to scene-local state. Every
// function here is pure: identical inputs produce identical results
// regardless of call order, which is what makes seeking idempotent.
package timeline

import "github.com/ivlev/sitereel/internal/project"

// TransitionWindowMs is the fixed cross-blend window at every scene
// boundary. The interactive preview and the export pipeline must share this
// value or the two drift visually.
const TransitionWindowMs = 300

// Position is the resolved location of a time value on the timeline.
type Position struct {
	SceneIndex     int
	SceneLocalTime float64 // ms into the active scene
	SceneProgress  float64 // [0, 1]
}

// Resolve maps a global time in milliseconds to the active scene. Time
// values are clamped: anything at or before zero resolves to the first
// scene at progress 0, anything at or past the total duration resolves to
// the last scene at progress 1. An empty scene list yields ok=false and the
// caller renders nothing.
func Resolve(scenes []project.Scene, timeMs float64) (Position, bool) {
	if len(scenes) == 0 {
		return Position{}, false
	}
	if timeMs <= 0 {
		return Position{SceneIndex: 0, SceneLocalTime: 0, SceneProgress: 0}, true
	}

	accumulated := 0.0
	for i, sc := range scenes {
		dur := float64(sc.Duration)
		if timeMs < accumulated+dur {
			local := timeMs - accumulated
			progress := 0.0
			if dur > 0 {
				progress = local / dur
			}
			return Position{SceneIndex: i, SceneLocalTime: local, SceneProgress: progress}, true
		}
		accumulated += dur
	}

	last := len(scenes) - 1
	return Position{
		SceneIndex:     last,
		SceneLocalTime: float64(scenes[last].Duration),
		SceneProgress:  1,
	}, true
}

// Transition describes transition-zone membership for a time value.
type Transition struct {
	Active       bool
	FromIndex    int     // outgoing scene
	ToIndex      int     // incoming scene
	Progress     float64 // [0, 1] across the window
}

// TransitionAt reports whether timeMs falls inside the fixed window at a
// scene boundary. The very first and very last edges of the timeline have
// no neighbor to blend with and are never in a transition.
func TransitionAt(scenes []project.Scene, timeMs float64) Transition {
	if len(scenes) < 2 {
		return Transition{}
	}

	boundary := 0.0
	for i := 0; i < len(scenes)-1; i++ {
		boundary += float64(scenes[i].Duration)
		half := float64(TransitionWindowMs) / 2
		if timeMs >= boundary-half && timeMs < boundary+half {
			return Transition{
				Active:    true,
				FromIndex: i,
				ToIndex:   i + 1,
				Progress:  (timeMs - (boundary - half)) / float64(TransitionWindowMs),
			}
		}
	}
	return Transition{}
}
