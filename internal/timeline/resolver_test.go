package timeline

import (
	"math"
	"testing"

	"github.com/ivlev/sitereel/internal/project"
)

func scenesWithDurations(durations ...int) []project.Scene {
	scenes := make([]project.Scene, len(durations))
	for i, d := range durations {
		scenes[i] = project.Scene{ID: project.NewID(), ScreenID: "s", Duration: d, Order: i}
	}
	return scenes
}

func TestResolveWalksDurations(t *testing.T) {
	scenes := scenesWithDurations(2000, 3000, 1000)

	pos, ok := Resolve(scenes, 2500)
	if !ok {
		t.Fatal("expected a result")
	}
	if pos.SceneIndex != 1 {
		t.Errorf("expected scene 1, got %d", pos.SceneIndex)
	}
	want := (2500.0 - 2000.0) / 3000.0
	if math.Abs(pos.SceneProgress-want) > 1e-9 {
		t.Errorf("expected progress %.4f, got %.4f", want, pos.SceneProgress)
	}
	if math.Abs(pos.SceneLocalTime-500) > 1e-9 {
		t.Errorf("expected local time 500, got %.2f", pos.SceneLocalTime)
	}
}

func TestResolveClampsAtEdges(t *testing.T) {
	scenes := scenesWithDurations(2000, 3000, 1000)

	pos, _ := Resolve(scenes, 0)
	if pos.SceneIndex != 0 || pos.SceneProgress != 0 {
		t.Errorf("at t=0 expected (0, 0), got (%d, %.2f)", pos.SceneIndex, pos.SceneProgress)
	}

	pos, _ = Resolve(scenes, -500)
	if pos.SceneIndex != 0 || pos.SceneProgress != 0 {
		t.Errorf("negative time should clamp to start, got (%d, %.2f)", pos.SceneIndex, pos.SceneProgress)
	}

	pos, _ = Resolve(scenes, 6000)
	if pos.SceneIndex != 2 || pos.SceneProgress != 1 {
		t.Errorf("at total duration expected (2, 1), got (%d, %.2f)", pos.SceneIndex, pos.SceneProgress)
	}

	pos, _ = Resolve(scenes, 99999)
	if pos.SceneIndex != 2 || pos.SceneProgress != 1 {
		t.Errorf("past end should clamp, got (%d, %.2f)", pos.SceneIndex, pos.SceneProgress)
	}
}

func TestResolveEmptyList(t *testing.T) {
	if _, ok := Resolve(nil, 100); ok {
		t.Error("empty scene list must yield no result")
	}
}

func TestResolveIsPure(t *testing.T) {
	scenes := scenesWithDurations(1500, 2500)

	first, _ := Resolve(scenes, 1700)
	Resolve(scenes, 3999)
	Resolve(scenes, 0)
	second, _ := Resolve(scenes, 1700)

	if first != second {
		t.Errorf("resolver accumulated state: %+v vs %+v", first, second)
	}
}

func TestResolveAlwaysInRange(t *testing.T) {
	scenes := scenesWithDurations(700, 1300, 2000, 100)
	total := 0
	for _, s := range scenes {
		total += s.Duration
	}

	for tms := 0; tms <= total; tms += 17 {
		pos, ok := Resolve(scenes, float64(tms))
		if !ok {
			t.Fatalf("no result at t=%d", tms)
		}
		if pos.SceneIndex < 0 || pos.SceneIndex >= len(scenes) {
			t.Fatalf("scene index %d out of range at t=%d", pos.SceneIndex, tms)
		}
		if pos.SceneProgress < 0 || pos.SceneProgress > 1 {
			t.Fatalf("progress %.4f out of range at t=%d", pos.SceneProgress, tms)
		}
	}
}

func TestTransitionAtBoundary(t *testing.T) {
	scenes := scenesWithDurations(2000, 2000)

	tr := TransitionAt(scenes, 2000)
	if !tr.Active {
		t.Fatal("expected transition at boundary center")
	}
	if tr.FromIndex != 0 || tr.ToIndex != 1 {
		t.Errorf("expected 0->1, got %d->%d", tr.FromIndex, tr.ToIndex)
	}
	if math.Abs(tr.Progress-0.5) > 1e-9 {
		t.Errorf("expected mid-window progress 0.5, got %.3f", tr.Progress)
	}

	if tr := TransitionAt(scenes, 2000-float64(TransitionWindowMs)/2-1); tr.Active {
		t.Error("just before window should not be a transition")
	}
	if tr := TransitionAt(scenes, 2000+float64(TransitionWindowMs)/2); tr.Active {
		t.Error("window end is exclusive")
	}
}

func TestTransitionNeverAtGlobalEdges(t *testing.T) {
	scenes := scenesWithDurations(2000, 2000)
	if tr := TransitionAt(scenes, 0); tr.Active {
		t.Error("timeline start must not be a transition")
	}
	if tr := TransitionAt(scenes, 4000); tr.Active {
		t.Error("timeline end must not be a transition")
	}
	if tr := TransitionAt(scenesWithDurations(3000), 1500); tr.Active {
		t.Error("single scene has no transitions")
	}
}
